// Package cronhdl - handler cho các job gọi từ cron ngoài (/cron/*). Secret được kiểm tra ở group.
package cronhdl

import (
	"context"
	"fmt"
	"time"

	"jammshop/config"
	basehdl "jammshop/internal/api/base/handler"
	brandsvc "jammshop/internal/api/brand/service"
	catalogsvc "jammshop/internal/api/catalog/service"
	dealsvc "jammshop/internal/api/deal/service"
	"jammshop/internal/logger"
	extsync "jammshop/internal/sync"

	"github.com/gofiber/fiber/v3"
)

// DealRefresher tính lại bảng xếp hạng deal
type DealRefresher interface {
	Refresh(ctx context.Context) (dealsvc.RefreshResult, error)
}

// BrandRefresher đếm lại product_count của thương hiệu
type BrandRefresher interface {
	RefreshProductCounts(ctx context.Context) (brandsvc.RefreshResult, error)
}

// CatalogSyncer chạy một vòng đồng bộ nguồn ngoài
type CatalogSyncer interface {
	Run(ctx context.Context) (extsync.Result, error)
}

// CronHandler xử lý /cron/*
type CronHandler struct {
	Deals  DealRefresher
	Brands BrandRefresher
	Syncer CatalogSyncer
}

// NewCronHandler tạo CronHandler, provider đồng bộ chọn theo cấu hình
func NewCronHandler(cfg *config.Configuration) (*CronHandler, error) {
	dealService, err := dealsvc.NewDealService()
	if err != nil {
		return nil, fmt.Errorf("failed to create deal service: %v", err)
	}
	brandService, err := brandsvc.NewBrandService()
	if err != nil {
		return nil, fmt.Errorf("failed to create brand service: %v", err)
	}
	productService, err := catalogsvc.NewProductService()
	if err != nil {
		return nil, fmt.Errorf("failed to create product service: %v", err)
	}
	provider, err := extsync.NewProvider(cfg.SyncProvider, cfg.SyncProviderURL, time.Duration(cfg.SyncTimeout)*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync provider: %v", err)
	}
	return NewCronHandlerWith(dealService, brandService, extsync.NewSyncer(productService, provider)), nil
}

// NewCronHandlerWith tạo CronHandler từ các job có sẵn
func NewCronHandlerWith(deals DealRefresher, brands BrandRefresher, syncer CatalogSyncer) *CronHandler {
	return &CronHandler{Deals: deals, Brands: brands, Syncer: syncer}
}

// HandleRefreshDeals GET /cron/refresh-deals
func (h *CronHandler) HandleRefreshDeals(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		res, err := h.Deals.Refresh(c)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		logger.LogAction("cron_refresh_deals", c, map[string]interface{}{"ranked": res.Ranked})
		return basehdl.HandleOK(c, fiber.Map{"ranked": res.Ranked, "refreshed_at": res.RefreshedAt})
	})
}

// HandleRefreshBrands GET /cron/refresh-brands
func (h *CronHandler) HandleRefreshBrands(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		res, err := h.Brands.RefreshProductCounts(c)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		logger.LogAction("cron_refresh_brands", c, map[string]interface{}{"updated": res.Updated, "failed": res.Failed})
		return basehdl.HandleOK(c, fiber.Map{"brands": res.Brands, "updated": res.Updated, "failed": res.Failed})
	})
}

// HandleSyncExternal GET /cron/sync-external
func (h *CronHandler) HandleSyncExternal(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		res, err := h.Syncer.Run(c)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		logger.LogAction("cron_sync_external", c, map[string]interface{}{
			"processed": res.Processed,
			"updated":   res.Updated,
			"failed":    res.Failed,
		})
		return basehdl.HandleOK(c, fiber.Map{"processed": res.Processed, "updated": res.Updated, "failed": res.Failed})
	})
}
