// Package dealhdl - handler GET /deals.
package dealhdl

import (
	"fmt"

	basehdl "jammshop/internal/api/base/handler"
	dealsvc "jammshop/internal/api/deal/service"
	"jammshop/internal/common"

	"github.com/gofiber/fiber/v3"
)

// DealHandler xử lý các route deal
type DealHandler struct {
	DealService *dealsvc.DealService
}

// NewDealHandler tạo một instance mới của DealHandler
func NewDealHandler() (*DealHandler, error) {
	dealService, err := dealsvc.NewDealService()
	if err != nil {
		return nil, fmt.Errorf("failed to create deal service: %v", err)
	}
	return NewDealHandlerWith(dealService), nil
}

// NewDealHandlerWith tạo DealHandler từ service có sẵn
func NewDealHandlerWith(dealService *dealsvc.DealService) *DealHandler {
	return &DealHandler{DealService: dealService}
}

// HandleList GET /deals?page&pageSize&min_discount
func (h *DealHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		page := basehdl.QueryPage(c, 20, 50)
		result, err := h.DealService.List(c, page, c.Query("min_discount"))
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, result)
	})
}
