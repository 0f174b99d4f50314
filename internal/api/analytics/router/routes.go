// Package router đăng ký POST /analytics và các route thống kê của admin.
package router

import (
	"fmt"

	analyticshdl "jammshop/internal/api/analytics/handler"
	apirouter "jammshop/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

// Register đăng ký route analytics
func Register(api fiber.Router, r *apirouter.Router) error {
	analyticsHandler, err := analyticshdl.NewAnalyticsHandler()
	if err != nil {
		return fmt.Errorf("create analytics handler: %w", err)
	}
	RegisterWith(api, r, analyticsHandler)
	return nil
}

// RegisterWith đăng ký route analytics với handler có sẵn
func RegisterWith(api fiber.Router, r *apirouter.Router, analyticsHandler *analyticshdl.AnalyticsHandler) {
	apirouter.RegisterRouteWithMiddleware(api, "/analytics", fiber.MethodPost, "/", r.AnalyticsLimiter(), analyticsHandler.HandleTrack)

	admin := r.Admin()
	admin.Get("/stats", analyticsHandler.HandleStats)
	admin.Get("/analytics/events", analyticsHandler.HandleListEvents)
	admin.Get("/analytics/top", analyticsHandler.HandleTop)
}
