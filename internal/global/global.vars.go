package global

import (
	"jammshop/config"
	"jammshop/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionNames chứa tên các collection trong MongoDB
type MongoDB_CollectionNames struct {
	Profiles        string // Hồ sơ người dùng và vai trò (khoá = UID của Firebase)
	Products        string // Sản phẩm
	Categories      string // Danh mục
	Brands          string // Thương hiệu / nhà cung cấp
	Orders          string // Đơn hàng
	DealRankings    string // Bảng xếp hạng deal (tính lại bởi cron)
	AnalyticsEvents string // Sự kiện analytics từ storefront
}

// Các biến toàn cục
var (
	Validate             *validator.Validate                         // Validator dùng chung
	MongoDB_Session      *mongo.Client                               // Phiên kết nối MongoDB
	MongoDB_ServerConfig *config.Configuration                       // Cấu hình server
	MongoDB_ColNames     MongoDB_CollectionNames                     // Tên các collection
	RegistryCollections  = registry.NewRegistry[*mongo.Collection]() // Registry các collection đã mở
)

// InitColNames gán tên collection mặc định
func InitColNames() {
	MongoDB_ColNames = MongoDB_CollectionNames{
		Profiles:        "profiles",
		Products:        "products",
		Categories:      "categories",
		Brands:          "brands",
		Orders:          "orders",
		DealRankings:    "deal_rankings",
		AnalyticsEvents: "analytics_events",
	}
}
