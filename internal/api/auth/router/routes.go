// Package router đăng ký các route thuộc domain auth: /me và /admin/users.
package router

import (
	"fmt"

	authhdl "jammshop/internal/api/auth/handler"
	models "jammshop/internal/api/auth/models"
	"jammshop/internal/api/middleware"
	apirouter "jammshop/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

// Register đăng ký tất cả route auth
func Register(api fiber.Router, r *apirouter.Router) error {
	userHandler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("create user handler: %w", err)
	}
	RegisterWith(api, r, userHandler)
	return nil
}

// RegisterWith đăng ký route auth với handler có sẵn
func RegisterWith(api fiber.Router, r *apirouter.Router, userHandler *authhdl.UserHandler) {
	userOnly := middleware.RequireRole(models.RoleUser)
	apirouter.RegisterRouteWithMiddleware(api, "/me", fiber.MethodGet, "/", []fiber.Handler{userOnly}, userHandler.HandleMe)

	admin := r.Admin()
	admin.Get("/users", userHandler.HandleList)
	admin.Get("/users/:id", userHandler.HandleGet)
	admin.Patch("/users/:id", userHandler.HandleUpdateRole)
}
