// Package router đăng ký /cron/*.
package router

import (
	"fmt"

	cronhdl "jammshop/internal/api/cron/handler"
	apirouter "jammshop/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

// Register đăng ký route cron
func Register(api fiber.Router, r *apirouter.Router) error {
	cronHandler, err := cronhdl.NewCronHandler(r.Config())
	if err != nil {
		return fmt.Errorf("create cron handler: %w", err)
	}
	RegisterWith(api, r, cronHandler)
	return nil
}

// RegisterWith đăng ký route cron với handler có sẵn
func RegisterWith(_ fiber.Router, r *apirouter.Router, cronHandler *cronhdl.CronHandler) {
	cron := r.Cron()
	cron.Get("/refresh-deals", cronHandler.HandleRefreshDeals)
	cron.Get("/refresh-brands", cronHandler.HandleRefreshBrands)
	cron.Get("/sync-external", cronHandler.HandleSyncExternal)
}
