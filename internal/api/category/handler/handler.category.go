// Package categoryhdl - handler danh mục.
package categoryhdl

import (
	"fmt"

	basehdl "jammshop/internal/api/base/handler"
	categorydto "jammshop/internal/api/category/dto"
	categorysvc "jammshop/internal/api/category/service"
	"jammshop/internal/common"
	"jammshop/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// CategoryHandler xử lý các route danh mục
type CategoryHandler struct {
	CategoryService *categorysvc.CategoryService
}

// NewCategoryHandler tạo một instance mới của CategoryHandler
func NewCategoryHandler() (*CategoryHandler, error) {
	categoryService, err := categorysvc.NewCategoryService()
	if err != nil {
		return nil, fmt.Errorf("failed to create category service: %v", err)
	}
	return NewCategoryHandlerWith(categoryService), nil
}

// NewCategoryHandlerWith tạo CategoryHandler từ service có sẵn
func NewCategoryHandlerWith(categoryService *categorysvc.CategoryService) *CategoryHandler {
	return &CategoryHandler{CategoryService: categoryService}
}

// HandleListPublic GET /categories
func (h *CategoryHandler) HandleListPublic(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		items, err := h.CategoryService.ListPublic(c)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.HandleData(c, items)
	})
}

// HandleList GET /admin/categories?q&page&pageSize
func (h *CategoryHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		params := categorysvc.ListParams{
			Search: c.Query("q"),
			Page:   basehdl.QueryPage(c, 20, 100),
			Sort:   basehdl.QuerySort(c, categorysvc.CategorySortFields),
		}
		result, err := h.CategoryService.List(c, params)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, result)
	})
}

// HandleCreate POST /admin/categories
func (h *CategoryHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input categorydto.CategoryCreateInput
		if err := basehdl.ParseBody(c, &input); err != nil {
			return basehdl.HandleError(c, err)
		}
		if input.Name == "" {
			return basehdl.HandleError(c, common.ErrNameRequired)
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			return basehdl.HandleError(c, err)
		}
		category, err := h.CategoryService.Create(c, input)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		logger.LogCRUD("create", "category", category.ID.Hex(), c, map[string]interface{}{"slug": category.Slug})
		return basehdl.HandleCreated(c, category)
	})
}

// HandleUpdate PATCH /admin/categories/:id
func (h *CategoryHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		body, err := basehdl.ParseBodyMap(c)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		category, err := h.CategoryService.Update(c, id, body)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		logger.LogCRUD("update", "category", id.Hex(), c, map[string]interface{}{"fields": categorysvc.CategoryWhitelist.Present(body)})
		return basehdl.HandleData(c, category)
	})
}

// HandleDelete DELETE /admin/categories/:id
func (h *CategoryHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		if err := h.CategoryService.Delete(c, id); err != nil {
			return basehdl.HandleError(c, err)
		}
		logger.LogCRUD("delete", "category", id.Hex(), c, nil)
		return basehdl.HandleOK(c, nil)
	})
}
