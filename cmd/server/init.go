package main

import (
	"context"
	"time"

	"jammshop/config"
	analyticsmodels "jammshop/internal/api/analytics/models"
	authmodels "jammshop/internal/api/auth/models"
	authsvc "jammshop/internal/api/auth/service"
	brandmodels "jammshop/internal/api/brand/models"
	catalogmodels "jammshop/internal/api/catalog/models"
	categorymodels "jammshop/internal/api/category/models"
	dealmodels "jammshop/internal/api/deal/models"
	ordermodels "jammshop/internal/api/order/models"
	"jammshop/internal/database"
	"jammshop/internal/global"
	"jammshop/internal/utility"

	"github.com/sirupsen/logrus"
)

// sessionVerifier là verifier Firebase, nil khi chưa cấu hình (mọi request đều là khách)
var sessionVerifier authsvc.SessionVerifier

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
	initFirebase()         // Khởi tạo Firebase
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.InitColNames()
	logrus.Info("Initialized collection names")
}

// Hàm khởi tạo validator (custom validators: no_xss, slug, role, brand_type, exists)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("Failed to initialize config: %v", err)
	}
	global.MongoDB_ServerConfig = cfg
	logrus.Info("Initialized server config")
}

// collectionModels: collection -> model dùng để tạo index từ tag
func collectionModels() map[string]interface{} {
	names := global.MongoDB_ColNames
	return map[string]interface{}{
		names.Profiles:        authmodels.Profile{},
		names.Products:        catalogmodels.Product{},
		names.Categories:      categorymodels.Category{},
		names.Brands:          brandmodels.Brand{},
		names.Orders:          ordermodels.Order{},
		names.DealRankings:    dealmodels.DealRanking{},
		names.AnalyticsEvents: analyticsmodels.Event{},
	}
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := global.MongoDB_Session.Database(global.MongoDB_ServerConfig.MongoDB_DBName)
	models := collectionModels()
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	if err := database.EnsureCollections(ctx, db, names); err != nil {
		logrus.Fatalf("Failed to ensure collections: %v", err)
	}
	logrus.Info("Ensured database and collections")

	// Lỗi tạo index không chặn khởi động
	for name, model := range models {
		if err := database.CreateIndexes(ctx, db.Collection(name), model); err != nil {
			logrus.Warnf("Failed to create indexes for %s: %v", name, err)
		}
	}
}

// initFirebase khởi tạo Firebase Admin SDK
func initFirebase() {
	cfg := global.MongoDB_ServerConfig

	// Kiểm tra Firebase config có đầy đủ không
	if cfg.FirebaseProjectID == "" || cfg.FirebaseCredentialsPath == "" {
		logrus.Warn("Firebase config không đầy đủ, bỏ qua khởi tạo Firebase (mọi request là khách)")
		return
	}

	verifier, err := utility.InitFirebase(context.Background(), cfg.FirebaseProjectID, cfg.FirebaseCredentialsPath)
	if err != nil {
		// Không fatal để các route công khai vẫn chạy
		logrus.Errorf("Failed to initialize Firebase: %v", err)
		return
	}
	sessionVerifier = verifier
	logrus.Info("Firebase initialized successfully")
}
