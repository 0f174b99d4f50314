package main

import (
	"context"
	"time"

	authsvc "jammshop/internal/api/auth/service"
	"jammshop/internal/global"
	"jammshop/internal/logger"
)

func InitDefaultData() {
	log := logger.GetAppLogger()

	// Nâng UID cấu hình lên super_admin. User phải đã tồn tại trong Firebase Authentication.
	uid := global.MongoDB_ServerConfig.FirebaseSuperAdminUID
	if uid == "" {
		log.Info("FIREBASE_SUPER_ADMIN_UID not set, skipping super admin bootstrap")
		return
	}

	userService, err := authsvc.NewUserService()
	if err != nil {
		log.Fatalf("Failed to initialize user service: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := userService.EnsureSuperAdmin(ctx, uid, ""); err != nil {
		log.Warnf("Failed to ensure super admin %s: %v", uid, err)
		return
	}
	log.Infof("Super admin ensured for UID %s", uid)
}
