package main

import (
	"context"
	"strings"
	"time"

	analyticshdl "jammshop/internal/api/analytics/handler"
	analyticsrouter "jammshop/internal/api/analytics/router"
	authrouter "jammshop/internal/api/auth/router"
	authsvc "jammshop/internal/api/auth/service"
	basehdl "jammshop/internal/api/base/handler"
	brandrouter "jammshop/internal/api/brand/router"
	catalogrouter "jammshop/internal/api/catalog/router"
	categoryrouter "jammshop/internal/api/category/router"
	cronrouter "jammshop/internal/api/cron/router"
	dealrouter "jammshop/internal/api/deal/router"
	"jammshop/internal/api/middleware"
	orderrouter "jammshop/internal/api/order/router"
	apirouter "jammshop/internal/api/router"
	"jammshop/internal/common"
	"jammshop/internal/global"
	"jammshop/internal/logger"
	"jammshop/internal/metrics"
	"jammshop/internal/ratelimit"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
)

// errorHandler trả lỗi chưa được handler xử lý (route không tồn tại, body quá lớn, ...) theo cùng format
func errorHandler(c fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		code := common.ErrCodeInternalServer.Code
		switch e.Code {
		case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge:
			code = common.ErrCodeValidationInput.Code
		case fiber.StatusUnauthorized:
			code = common.ErrCodeAuthToken.Code
		case fiber.StatusForbidden:
			code = common.ErrCodeAuthRole.Code
		case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
			code = common.ErrCodeDatabaseQuery.Code
		case fiber.StatusTooManyRequests:
			code = common.ErrCodeRateLimit.Code
		}
		return basehdl.JSONResponse(c, e.Code, fiber.Map{
			"error":  e.Message,
			"code":   code,
			"status": "error",
		})
	}
	return basehdl.HandleError(c, err)
}

// healthHandler ping MongoDB
func healthHandler(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c, 2*time.Second)
	defer cancel()
	if global.MongoDB_Session == nil || global.MongoDB_Session.Ping(ctx, nil) != nil {
		return basehdl.JSONResponse(c, fiber.StatusServiceUnavailable, fiber.Map{"status": "error"})
	}
	return basehdl.JSONResponse(c, fiber.StatusOK, fiber.Map{"status": "ok"})
}

// InitFiberApp khởi tạo ứng dụng Fiber với các middleware cần thiết
func InitFiberApp() *fiber.App {
	cfg := global.MongoDB_ServerConfig
	log := logger.GetAppLogger()

	app := fiber.New(fiber.Config{
		AppName:       "Jammshop API",
		ServerHeader:  "Jammshop API",
		CaseSensitive: true,
		BodyLimit:     1 * 1024 * 1024,

		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,

		ErrorHandler: errorHandler,
	})

	// =========================================
	// MIDDLEWARE STACK
	// =========================================

	// 1. Request ID
	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))

	// 2. Metrics theo route pattern
	metrics.Init()
	app.Use(metrics.Middleware())

	// 3. CORS, đặt trước các middleware khác để xử lý preflight
	allowOrigins := []string{"*"}
	if cfg.CORS_Origins != "*" {
		allowOrigins = strings.Split(cfg.CORS_Origins, ",")
		for i, origin := range allowOrigins {
			allowOrigins[i] = strings.TrimSpace(origin)
		}
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: cfg.CORS_AllowCredentials,
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		MaxAge:           24 * 60 * 60,
	}))

	// 4. Security headers
	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	// 5. Rate limit toàn cục theo IP (trong process)
	if cfg.RateLimit_Enabled && cfg.RateLimit_Max > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit_Max,
			Expiration: time.Duration(cfg.RateLimit_Window) * time.Second,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return basehdl.HandleError(c, common.ErrTooManyRequests)
			},
			Next: func(c fiber.Ctx) bool {
				return c.Path() == "/api/health" || c.Method() == fiber.MethodOptions
			},
		}))
		log.Infof("Rate limiting enabled: %d requests per %d seconds", cfg.RateLimit_Max, cfg.RateLimit_Window)
	} else {
		log.Info("Rate limiting disabled")
	}

	// 6. Recover
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.WithRequest(c).WithField("panic", e).Error("Panic recovered")
		},
	}))

	// =========================================
	// ROUTES
	// =========================================
	r := apirouter.NewRouter(app, cfg)

	analyticsLimiter, err := ratelimit.NewLimiter(ratelimit.Config{
		Rate:          cfg.AnalyticsRateLimit,
		Prefix:        "jammshop:analytics",
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		log.Fatalf("Failed to create analytics rate limiter: %v", err)
	}
	r.WithAnalyticsLimiter(ratelimit.Middleware(analyticsLimiter, analyticshdl.ClientIP))

	var session fiber.Handler
	if sessionVerifier != nil {
		sessionService, err := authsvc.NewSessionService(sessionVerifier)
		if err != nil {
			log.Fatalf("Failed to create session service: %v", err)
		}
		session = middleware.Session(sessionService, cfg.SessionCookieName)
	}

	platform := func(api fiber.Router, _ *apirouter.Router) error {
		api.Get("/health", healthHandler)
		api.Get("/metrics", metrics.Handler())
		return nil
	}

	if err := apirouter.SetupRoutes(app, r, session,
		platform,
		authrouter.Register,
		catalogrouter.Register,
		categoryrouter.Register,
		brandrouter.Register,
		dealrouter.Register,
		orderrouter.Register,
		analyticsrouter.Register,
		cronrouter.Register,
	); err != nil {
		log.Fatalf("Failed to setup routes: %v", err)
	}

	return app
}
