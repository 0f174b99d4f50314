// Package metrics khai báo các counter Prometheus và handler /metrics.
package metrics

import (
	"strconv"
	"sync"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jammshop",
			Name:      "http_requests_total",
			Help:      "number of HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	DealsRefreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jammshop",
			Name:      "deals_refreshes_total",
			Help:      "number of deal ranking refreshes by outcome",
		},
		[]string{"outcome"},
	)

	SyncProducts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jammshop",
			Name:      "sync_products_total",
			Help:      "number of externally sourced products processed by outcome",
		},
		[]string{"outcome"},
	)

	AnalyticsEvents = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "jammshop",
			Name:      "analytics_events_total",
			Help:      "number of analytics events accepted",
		},
	)
)

// Outcome labels
const (
	OutcomeOK      = "ok"
	OutcomeUpdated = "updated"
	OutcomeFailed  = "failed"
)

var initOnce sync.Once

// Init đăng ký các collector vào registry mặc định, gọi nhiều lần vẫn an toàn
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(HTTPRequests, DealsRefreshes, SyncProducts, AnalyticsEvents)
	})
}

// Middleware đếm request theo route pattern (không theo path thật để tránh bùng nổ label)
func Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		route := c.Route().Path
		HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		return err
	}
}

// Handler trả về handler exposition cho GET /metrics
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
