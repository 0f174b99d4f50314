package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	dealsvc "jammshop/internal/api/deal/service"
	"jammshop/internal/database"
	"jammshop/internal/global"
	"jammshop/internal/logger"
	"jammshop/internal/worker"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/sync/errgroup"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

// listen chạy server, HTTPS khi bật TLS và có đủ cert/key
func listen(app *fiber.App) error {
	cfg := global.MongoDB_ServerConfig
	address := ":" + cfg.Address
	log := logger.GetAppLogger()

	listenConfig := fiber.ListenConfig{DisableStartupMessage: true}

	if cfg.EnableTLS && cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.TLSCertFile, cfg.TLSKeyFile)
		if err != nil {
			return fmt.Errorf("load TLS certificate: %w", err)
		}
		ln, err := net.Listen("tcp", address)
		if err != nil {
			return fmt.Errorf("create listener: %w", err)
		}
		tlsListener := tls.NewListener(ln, &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		})
		log.WithField("address", address).Info("Starting server with HTTPS/TLS")
		return app.Listener(tlsListener, listenConfig)
	}

	log.WithFields(map[string]interface{}{
		"address":  address,
		"protocol": "HTTP",
	}).Info("Starting server with HTTP")
	return app.Listen(address, listenConfig)
}

// Hàm main
func main() {
	initLogger()
	defer logger.Shutdown()

	InitGlobal()
	InitRegistry()
	InitDefaultData()

	app := InitFiberApp()
	log := logger.GetAppLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return listen(app)
	})

	// Scheduler deal nội bộ, chỉ chạy khi có DEALS_REFRESH_INTERVAL
	if interval := global.MongoDB_ServerConfig.DealsRefreshInterval; interval > 0 {
		dealService, err := dealsvc.NewDealService()
		if err != nil {
			log.WithError(err).Error("Failed to create deal service, continuing without deals worker")
		} else if w := worker.NewDealsRefreshWorker(dealService, time.Duration(interval)*time.Second, time.Minute); w != nil {
			g.Go(func() error {
				w.Start(gctx)
				return nil
			})
		}
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("Server shutdown failed")
		}
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return database.CloseInstance(closeCtx, global.MongoDB_Session)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
	log.Info("Server stopped")
}
