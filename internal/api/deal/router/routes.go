// Package router đăng ký route deal.
package router

import (
	"fmt"

	dealhdl "jammshop/internal/api/deal/handler"
	apirouter "jammshop/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

// Register đăng ký route deal
func Register(api fiber.Router, r *apirouter.Router) error {
	dealHandler, err := dealhdl.NewDealHandler()
	if err != nil {
		return fmt.Errorf("create deal handler: %w", err)
	}
	RegisterWith(api, r, dealHandler)
	return nil
}

// RegisterWith đăng ký route deal với handler có sẵn
func RegisterWith(api fiber.Router, _ *apirouter.Router, dealHandler *dealhdl.DealHandler) {
	api.Get("/deals", dealHandler.HandleList)
}
