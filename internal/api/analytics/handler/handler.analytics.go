// Package analyticshdl - handler nhận sự kiện analytics và trả thống kê cho admin.
package analyticshdl

import (
	"fmt"
	"strconv"
	"strings"

	models "jammshop/internal/api/analytics/models"
	analyticssvc "jammshop/internal/api/analytics/service"
	basehdl "jammshop/internal/api/base/handler"
	"jammshop/internal/api/middleware"
	"jammshop/internal/common"

	"github.com/gofiber/fiber/v3"
)

// AnalyticsHandler xử lý /analytics, /admin/analytics/* và /admin/stats
type AnalyticsHandler struct {
	AnalyticsService *analyticssvc.AnalyticsService
}

// NewAnalyticsHandler tạo một instance mới của AnalyticsHandler
func NewAnalyticsHandler() (*AnalyticsHandler, error) {
	analyticsService, err := analyticssvc.NewAnalyticsService()
	if err != nil {
		return nil, fmt.Errorf("failed to create analytics service: %v", err)
	}
	return NewAnalyticsHandlerWith(analyticsService), nil
}

// NewAnalyticsHandlerWith tạo AnalyticsHandler từ service có sẵn
func NewAnalyticsHandlerWith(analyticsService *analyticssvc.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{AnalyticsService: analyticsService}
}

// ClientIP lấy hop đầu tiên của X-Forwarded-For, không có thì dùng IP kết nối
func ClientIP(c fiber.Ctx) string {
	if fwd := c.Get(fiber.HeaderXForwardedFor); fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return first
		}
	}
	return c.IP()
}

// HandleTrack POST /analytics {name, props?, user_id?}
func (h *AnalyticsHandler) HandleTrack(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		body, err := basehdl.ParseBodyMap(c)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		name, ok := body["name"].(string)
		if !ok || strings.TrimSpace(name) == "" {
			return basehdl.HandleError(c, common.ErrNameRequired)
		}

		event := models.Event{
			Name:      name,
			IP:        ClientIP(c),
			UserAgent: c.Get(fiber.HeaderUserAgent),
		}
		if raw, exists := body["props"]; exists && raw != nil {
			props, ok := raw.(map[string]interface{})
			if !ok {
				return basehdl.HandleError(c, common.ValidationError("props must be an object", nil))
			}
			event.Props = props
		}
		if uid, ok := body["user_id"].(string); ok && strings.TrimSpace(uid) != "" {
			event.UserID = strings.TrimSpace(uid)
		} else if actor := middleware.ActorFrom(c); actor != nil {
			event.UserID = actor.ID
		}

		if err := h.AnalyticsService.Record(c, event); err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.HandleOK(c, nil)
	})
}

// HandleListEvents GET /admin/analytics/events?name=
func (h *AnalyticsHandler) HandleListEvents(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		result, err := h.AnalyticsService.ListEvents(c, c.Query("name"), basehdl.QueryPage(c, 20, 100))
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, result)
	})
}

// HandleTop GET /admin/analytics/top?days=7
func (h *AnalyticsHandler) HandleTop(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		days, err := strconv.Atoi(c.Query("days"))
		if err != nil {
			days = analyticssvc.DefaultTopDays
		}
		rows, err := h.AnalyticsService.Top(c, days)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.HandleData(c, rows)
	})
}

// HandleStats GET /admin/stats
func (h *AnalyticsHandler) HandleStats(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		stats, err := h.AnalyticsService.Stats(c)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.HandleData(c, stats)
	})
}
