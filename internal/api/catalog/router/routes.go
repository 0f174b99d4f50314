// Package router đăng ký các route thuộc domain catalog: /products, /search và /admin/products.
package router

import (
	"fmt"

	cataloghdl "jammshop/internal/api/catalog/handler"
	apirouter "jammshop/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

// Register đăng ký tất cả route catalog
func Register(api fiber.Router, r *apirouter.Router) error {
	productHandler, err := cataloghdl.NewProductHandler()
	if err != nil {
		return fmt.Errorf("create product handler: %w", err)
	}
	RegisterWith(api, r, productHandler)
	return nil
}

// RegisterWith đăng ký route catalog với handler có sẵn
func RegisterWith(api fiber.Router, r *apirouter.Router, productHandler *cataloghdl.ProductHandler) {
	api.Get("/products", productHandler.HandleListPublic)
	api.Get("/products/:id", productHandler.HandleGetPublic)
	api.Get("/search", productHandler.HandleSearch)

	admin := r.Admin()
	admin.Get("/products", productHandler.HandleListAdmin)
	admin.Post("/products", productHandler.HandleCreate)
	admin.Patch("/products/:id", productHandler.HandleUpdate)
	admin.Delete("/products/:id", productHandler.HandleDelete)
}
