// Package router đăng ký các route thuộc domain brand.
package router

import (
	"fmt"

	brandhdl "jammshop/internal/api/brand/handler"
	apirouter "jammshop/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

// Register đăng ký tất cả route brand
func Register(api fiber.Router, r *apirouter.Router) error {
	brandHandler, err := brandhdl.NewBrandHandler()
	if err != nil {
		return fmt.Errorf("create brand handler: %w", err)
	}
	RegisterWith(api, r, brandHandler)
	return nil
}

// RegisterWith đăng ký route brand với handler có sẵn
func RegisterWith(api fiber.Router, r *apirouter.Router, brandHandler *brandhdl.BrandHandler) {
	api.Get("/brands", brandHandler.HandleListPublic)
	api.Get("/brands/:slug", brandHandler.HandleGetBySlug)
	api.Get("/brands/:slug/products", brandHandler.HandleProducts)

	admin := r.Admin()
	admin.Get("/brands", brandHandler.HandleListAdmin)
	admin.Post("/brands", brandHandler.HandleCreate)
	admin.Patch("/brands/:id", brandHandler.HandleUpdate)
	admin.Delete("/brands/:id", brandHandler.HandleDelete)
}
