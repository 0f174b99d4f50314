// Package router đăng ký /admin/orders.
package router

import (
	"fmt"

	orderhdl "jammshop/internal/api/order/handler"
	apirouter "jammshop/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

// Register đăng ký route đơn hàng
func Register(api fiber.Router, r *apirouter.Router) error {
	orderHandler, err := orderhdl.NewOrderHandler()
	if err != nil {
		return fmt.Errorf("create order handler: %w", err)
	}
	RegisterWith(api, r, orderHandler)
	return nil
}

// RegisterWith đăng ký route đơn hàng với handler có sẵn
func RegisterWith(_ fiber.Router, r *apirouter.Router, orderHandler *orderhdl.OrderHandler) {
	admin := r.Admin()
	admin.Get("/orders", orderHandler.HandleList)
	admin.Get("/orders/:id", orderHandler.HandleGet)
	admin.Patch("/orders/:id", orderHandler.HandleUpdate)
}
