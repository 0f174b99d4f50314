// Package brandhdl - handler thương hiệu.
package brandhdl

import (
	"fmt"

	basehdl "jammshop/internal/api/base/handler"
	branddto "jammshop/internal/api/brand/dto"
	brandsvc "jammshop/internal/api/brand/service"
	cataloghdl "jammshop/internal/api/catalog/handler"
	catalogsvc "jammshop/internal/api/catalog/service"
	"jammshop/internal/common"
	"jammshop/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// BrandHandler xử lý các route thương hiệu
type BrandHandler struct {
	BrandService   *brandsvc.BrandService
	ProductService *catalogsvc.ProductService
}

// NewBrandHandler tạo một instance mới của BrandHandler
func NewBrandHandler() (*BrandHandler, error) {
	brandService, err := brandsvc.NewBrandService()
	if err != nil {
		return nil, fmt.Errorf("failed to create brand service: %v", err)
	}
	productService, err := catalogsvc.NewProductService()
	if err != nil {
		return nil, fmt.Errorf("failed to create product service: %v", err)
	}
	return NewBrandHandlerWith(brandService, productService), nil
}

// NewBrandHandlerWith tạo BrandHandler từ các service có sẵn
func NewBrandHandlerWith(brandService *brandsvc.BrandService, productService *catalogsvc.ProductService) *BrandHandler {
	return &BrandHandler{BrandService: brandService, ProductService: productService}
}

func listParams(c fiber.Ctx, defaultActive string, maxSize int64) brandsvc.ListParams {
	return brandsvc.ListParams{
		Search:        c.Query("q"),
		Type:          c.Query("type"),
		Active:        c.Query("active"),
		DefaultActive: defaultActive,
		Page:          basehdl.QueryPage(c, 20, maxSize),
		Sort:          basehdl.QuerySort(c, brandsvc.BrandSortFields),
	}
}

// HandleListPublic GET /brands (mặc định chỉ thương hiệu đang hoạt động)
func (h *BrandHandler) HandleListPublic(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		result, err := h.BrandService.List(c, listParams(c, "true", 50))
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, result)
	})
}

// HandleGetBySlug GET /brands/:slug
func (h *BrandHandler) HandleGetBySlug(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		brand, err := h.BrandService.GetBySlug(c, c.Params("slug"))
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.HandleData(c, brand)
	})
}

// HandleProducts GET /brands/:slug/products
func (h *BrandHandler) HandleProducts(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		brand, err := h.BrandService.GetBySlug(c, c.Params("slug"))
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		params := cataloghdl.PublicListParamsFrom(c)
		params.Brand = brand.ID.Hex()
		result, err := h.ProductService.ListPublic(c, params)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, result)
	})
}

// HandleListAdmin GET /admin/brands (mặc định mọi trạng thái)
func (h *BrandHandler) HandleListAdmin(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		result, err := h.BrandService.List(c, listParams(c, "all", 100))
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, result)
	})
}

// HandleCreate POST /admin/brands
func (h *BrandHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input branddto.BrandCreateInput
		if err := basehdl.ParseBody(c, &input); err != nil {
			return basehdl.HandleError(c, err)
		}
		if input.Name == "" {
			return basehdl.HandleError(c, common.ErrNameRequired)
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			return basehdl.HandleError(c, err)
		}
		brand, err := h.BrandService.Create(c, input)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		logger.LogCRUD("create", "brand", brand.ID.Hex(), c, map[string]interface{}{"slug": brand.Slug})
		return basehdl.HandleCreated(c, brand)
	})
}

// HandleUpdate PATCH /admin/brands/:id
func (h *BrandHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		body, err := basehdl.ParseBodyMap(c)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		brand, err := h.BrandService.Update(c, id, body)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		logger.LogCRUD("update", "brand", id.Hex(), c, map[string]interface{}{"fields": brandsvc.BrandWhitelist.Present(body)})
		return basehdl.HandleData(c, brand)
	})
}

// HandleDelete DELETE /admin/brands/:id
func (h *BrandHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		if err := h.BrandService.Delete(c, id); err != nil {
			return basehdl.HandleError(c, err)
		}
		logger.LogCRUD("delete", "brand", id.Hex(), c, nil)
		return basehdl.HandleOK(c, nil)
	})
}
