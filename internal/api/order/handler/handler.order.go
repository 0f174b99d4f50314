// Package orderhdl - handler đơn hàng cho admin.
package orderhdl

import (
	"fmt"

	basehdl "jammshop/internal/api/base/handler"
	ordersvc "jammshop/internal/api/order/service"
	"jammshop/internal/common"
	"jammshop/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// OrderHandler xử lý /admin/orders
type OrderHandler struct {
	OrderService *ordersvc.OrderService
}

// NewOrderHandler tạo một instance mới của OrderHandler
func NewOrderHandler() (*OrderHandler, error) {
	orderService, err := ordersvc.NewOrderService()
	if err != nil {
		return nil, fmt.Errorf("failed to create order service: %v", err)
	}
	return NewOrderHandlerWith(orderService), nil
}

// NewOrderHandlerWith tạo OrderHandler từ service có sẵn
func NewOrderHandlerWith(orderService *ordersvc.OrderService) *OrderHandler {
	return &OrderHandler{OrderService: orderService}
}

// HandleList GET /admin/orders?q=&status=&payment=&start=&end=
func (h *OrderHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		result, err := h.OrderService.List(c, ordersvc.ListParams{
			Search:  c.Query("q"),
			Status:  c.Query("status"),
			Payment: c.Query("payment"),
			Start:   c.Query("start"),
			End:     c.Query("end"),
			Page:    basehdl.QueryPage(c, 20, 100),
			Sort:    basehdl.QuerySort(c, ordersvc.OrderSortFields),
		})
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, result)
	})
}

// HandleGet GET /admin/orders/:id
func (h *OrderHandler) HandleGet(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		order, err := h.OrderService.Get(c, id)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.HandleData(c, order)
	})
}

// HandleUpdate PATCH /admin/orders/:id
func (h *OrderHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		body, err := basehdl.ParseBodyMap(c)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		order, err := h.OrderService.Update(c, id, body)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		logger.LogCRUD("update", "order", id.Hex(), c, map[string]interface{}{
			"status":         order.Status,
			"payment_status": order.PaymentStatus,
		})
		return basehdl.HandleData(c, order)
	})
}
