// Package cataloghdl - handler sản phẩm: danh sách công khai, tìm kiếm và CRUD admin.
package cataloghdl

import (
	"fmt"

	basehdl "jammshop/internal/api/base/handler"
	catalogdto "jammshop/internal/api/catalog/dto"
	catalogsvc "jammshop/internal/api/catalog/service"
	"jammshop/internal/common"
	"jammshop/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// Kích thước trang theo endpoint
const (
	PublicPageSize    = 20
	PublicMaxPageSize = 50
	SearchPageSize    = 10
	SearchMaxPageSize = 20
	AdminPageSize     = 20
	AdminMaxPageSize  = 100
)

// ProductHandler xử lý các route sản phẩm
type ProductHandler struct {
	ProductService *catalogsvc.ProductService
}

// NewProductHandler tạo một instance mới của ProductHandler
func NewProductHandler() (*ProductHandler, error) {
	productService, err := catalogsvc.NewProductService()
	if err != nil {
		return nil, fmt.Errorf("failed to create product service: %v", err)
	}
	return NewProductHandlerWith(productService), nil
}

// NewProductHandlerWith tạo ProductHandler từ service có sẵn
func NewProductHandlerWith(productService *catalogsvc.ProductService) *ProductHandler {
	return &ProductHandler{ProductService: productService}
}

// PublicListParamsFrom đọc tham số danh sách công khai từ query string
func PublicListParamsFrom(c fiber.Ctx) catalogsvc.PublicListParams {
	return catalogsvc.PublicListParams{
		Search:   c.Query("q"),
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
		MinPrice: c.Query("min_price"),
		MaxPrice: c.Query("max_price"),
		InStock:  c.Query("in_stock"),
		Featured: c.Query("featured"),
		Page:     basehdl.QueryPage(c, PublicPageSize, PublicMaxPageSize),
		Sort:     basehdl.QuerySort(c, catalogsvc.ProductSortFields),
	}
}

// HandleListPublic GET /products
func (h *ProductHandler) HandleListPublic(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		result, err := h.ProductService.ListPublic(c, PublicListParamsFrom(c))
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, result)
	})
}

// HandleGetPublic GET /products/:id
func (h *ProductHandler) HandleGetPublic(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			return basehdl.HandleError(c, common.ErrNotFound)
		}
		product, err := h.ProductService.GetPublic(c, id)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.HandleData(c, product)
	})
}

// HandleSearch GET /search?q=
func (h *ProductHandler) HandleSearch(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		page := basehdl.QueryPage(c, SearchPageSize, SearchMaxPageSize)
		result, err := h.ProductService.Search(c, c.Query("q"), page)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, result)
	})
}

// HandleListAdmin GET /admin/products
func (h *ProductHandler) HandleListAdmin(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		params := catalogsvc.AdminListParams{
			Search:   c.Query("q"),
			Status:   c.Query("status"),
			Category: c.Query("category"),
			Brand:    c.Query("brand"),
			Stock:    c.Query("stock"),
			Page:     basehdl.QueryPage(c, AdminPageSize, AdminMaxPageSize),
			Sort:     basehdl.QuerySort(c, catalogsvc.ProductSortFields),
		}
		result, err := h.ProductService.ListAdmin(c, params)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, result)
	})
}

// HandleCreate POST /admin/products
func (h *ProductHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input catalogdto.ProductCreateInput
		if err := basehdl.ParseBody(c, &input); err != nil {
			return basehdl.HandleError(c, err)
		}
		if input.Name == "" {
			return basehdl.HandleError(c, common.ErrNameRequired)
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			return basehdl.HandleError(c, err)
		}
		product, err := h.ProductService.Create(c, input)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		logger.LogCRUD("create", "product", product.ID.Hex(), c, nil)
		return basehdl.HandleCreated(c, product)
	})
}

// HandleUpdate PATCH /admin/products/:id
func (h *ProductHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		body, err := basehdl.ParseBodyMap(c)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		product, err := h.ProductService.Update(c, id, body)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		logger.LogCRUD("update", "product", id.Hex(), c, map[string]interface{}{"fields": catalogsvc.ProductWhitelist.Present(body)})
		return basehdl.HandleData(c, product)
	})
}

// HandleDelete DELETE /admin/products/:id
func (h *ProductHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		if err := h.ProductService.Delete(c, id); err != nil {
			return basehdl.HandleError(c, err)
		}
		logger.LogCRUD("delete", "product", id.Hex(), c, nil)
		return basehdl.HandleOK(c, nil)
	})
}
