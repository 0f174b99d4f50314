package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:"8080"`                 // Port server
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME" envDefault:"jammshop"`      // Tên cơ sở dữ liệu
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials (cookie session)
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"300"`           // Số request tối đa trong window (0 = disable)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limit toàn cục

	// Firebase (hosted auth)
	FirebaseProjectID       string `env:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"`
	FirebaseSuperAdminUID   string `env:"FIREBASE_SUPER_ADMIN_UID"` // UID được nâng lên super_admin khi khởi động
	SessionCookieName       string `env:"SESSION_COOKIE_NAME" envDefault:"session"`

	// Cron
	CronSecret           string `env:"CRON_SECRET"`                           // Shared secret cho /cron/*, rỗng = từ chối mọi request
	DealsRefreshInterval int    `env:"DEALS_REFRESH_INTERVAL" envDefault:"0"` // Giây, 0 = không chạy scheduler nội bộ

	// Analytics rate limit (dùng chung store Redis giữa các instance)
	RedisAddr          string `env:"REDIS_ADDR"` // Rỗng = dùng memory store
	RedisPassword      string `env:"REDIS_PASSWORD"`
	RedisDB            int    `env:"REDIS_DB" envDefault:"0"`
	AnalyticsRateLimit string `env:"ANALYTICS_RATE_LIMIT" envDefault:"60-M"` // Định dạng ulule: <số>-<S|M|H|D>

	// External catalog sync
	SyncProvider    string `env:"SYNC_PROVIDER" envDefault:"mock"` // mock | http
	SyncProviderURL string `env:"SYNC_PROVIDER_URL"`
	SyncTimeout     int    `env:"SYNC_TIMEOUT" envDefault:"10"` // Giây cho mỗi request tới provider

	// TLS/HTTPS Configuration
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"`
	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`
}

// getEnvPath trả về đường dẫn đến file env dựa trên GO_ENV
func getEnvPath() string {
	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" {
		goEnv = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Đi lên dần để tìm thư mục config/env
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", goEnv))
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig đọc cấu hình. File env là tuỳ chọn, biến môi trường của process luôn được ưu tiên.
func NewConfig(files ...string) (*Configuration, error) {
	if len(files) == 0 {
		if p := getEnvPath(); p != "" {
			files = []string{p}
		}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		// godotenv.Load không ghi đè biến đã có trong môi trường
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", f, err)
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
