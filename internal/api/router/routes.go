// Package router gom các nhóm route dùng chung (/api, /api/admin, /api/cron) và
// cho từng domain tự đăng ký route của mình.
package router

import (
	"strings"

	"jammshop/config"
	authmodels "jammshop/internal/api/auth/models"
	"jammshop/internal/api/middleware"

	"github.com/gofiber/fiber/v3"
)

// Fiber v3: middleware truyền trực tiếp vào router.Get(path, mw, handler) có thể bị bỏ qua.
// Luôn đăng ký middleware bằng .Use() trên group, xem RegisterRouteWithMiddleware.

// RoutePrefix chứa các prefix của API
type RoutePrefix struct {
	API   string
	Admin string
	Cron  string
}

// NewRoutePrefix trả về prefix mặc định
func NewRoutePrefix() RoutePrefix {
	return RoutePrefix{
		API:   "/api",
		Admin: "/admin",
		Cron:  "/cron",
	}
}

// Router giữ cấu hình và các group đã gắn middleware cho các domain dùng chung
type Router struct {
	app    *fiber.App
	config *config.Configuration

	admin fiber.Router
	cron  fiber.Router

	analyticsLimiter fiber.Handler
}

// NewRouter tạo Router mới
func NewRouter(app *fiber.App, cfg *config.Configuration) *Router {
	if cfg == nil {
		cfg = &config.Configuration{}
	}
	return &Router{
		app:    app,
		config: cfg,
	}
}

// WithAnalyticsLimiter gắn limiter cho POST /analytics
func (r *Router) WithAnalyticsLimiter(h fiber.Handler) *Router {
	r.analyticsLimiter = h
	return r
}

// Config trả về cấu hình server
func (r *Router) Config() *config.Configuration {
	return r.config
}

// Admin trả về group /api/admin, mọi route bên trong yêu cầu vai trò admin trở lên
func (r *Router) Admin() fiber.Router {
	return r.admin
}

// Cron trả về group /api/cron, mọi route bên trong yêu cầu ?secret= khớp CRON_SECRET
func (r *Router) Cron() fiber.Router {
	return r.cron
}

// AnalyticsLimiter trả về các middleware giới hạn tần suất cho analytics (có thể rỗng)
func (r *Router) AnalyticsLimiter() []fiber.Handler {
	if r.analyticsLimiter == nil {
		return nil
	}
	return []fiber.Handler{r.analyticsLimiter}
}

// RegisterRouteWithMiddleware đăng ký một route với middleware qua group.Use()
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	switch strings.ToUpper(method) {
	case fiber.MethodGet:
		routeGroup.Get(path, handler)
	case fiber.MethodPost:
		routeGroup.Post(path, handler)
	case fiber.MethodPut:
		routeGroup.Put(path, handler)
	case fiber.MethodPatch:
		routeGroup.Patch(path, handler)
	case fiber.MethodDelete:
		routeGroup.Delete(path, handler)
	}
}

// RegisterFunc là hàm đăng ký route của một domain
type RegisterFunc func(api fiber.Router, r *Router) error

// SetupRoutes dựng group /api (session), /api/admin (admin gate), /api/cron (secret)
// rồi gọi lần lượt các RegisterFunc
func SetupRoutes(app *fiber.App, r *Router, session fiber.Handler, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	api := app.Group(prefix.API)
	if session != nil {
		api.Use(session)
	}

	r.admin = api.Group(prefix.Admin)
	r.admin.Use(middleware.RequireRole(authmodels.RoleAdmin))

	r.cron = api.Group(prefix.Cron)
	r.cron.Use(middleware.CronSecret(r.config.CronSecret))

	for _, reg := range regs {
		if err := reg(api, r); err != nil {
			return err
		}
	}
	return nil
}
