// Package router đăng ký các route thuộc domain category.
package router

import (
	"fmt"

	categoryhdl "jammshop/internal/api/category/handler"
	apirouter "jammshop/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

// Register đăng ký tất cả route category
func Register(api fiber.Router, r *apirouter.Router) error {
	categoryHandler, err := categoryhdl.NewCategoryHandler()
	if err != nil {
		return fmt.Errorf("create category handler: %w", err)
	}
	RegisterWith(api, r, categoryHandler)
	return nil
}

// RegisterWith đăng ký route category với handler có sẵn
func RegisterWith(api fiber.Router, r *apirouter.Router, categoryHandler *categoryhdl.CategoryHandler) {
	api.Get("/categories", categoryHandler.HandleListPublic)

	admin := r.Admin()
	admin.Get("/categories", categoryHandler.HandleList)
	admin.Post("/categories", categoryHandler.HandleCreate)
	admin.Patch("/categories/:id", categoryHandler.HandleUpdate)
	admin.Delete("/categories/:id", categoryHandler.HandleDelete)
}
