// Package authhdl - handler quản lý người dùng và thông tin người dùng hiện tại.
package authhdl

import (
	"fmt"

	authdto "jammshop/internal/api/auth/dto"
	models "jammshop/internal/api/auth/models"
	authsvc "jammshop/internal/api/auth/service"
	basehdl "jammshop/internal/api/base/handler"
	"jammshop/internal/api/middleware"
	"jammshop/internal/common"
	"jammshop/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// UserHandler xử lý các route /admin/users và /me
type UserHandler struct {
	UserService *authsvc.UserService
}

// NewUserHandler tạo một instance mới của UserHandler
func NewUserHandler() (*UserHandler, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	return NewUserHandlerWith(userService), nil
}

// NewUserHandlerWith tạo UserHandler từ service có sẵn
func NewUserHandlerWith(userService *authsvc.UserService) *UserHandler {
	return &UserHandler{UserService: userService}
}

// HandleList liệt kê người dùng: ?q&role&page&pageSize&sort&order
func (h *UserHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		params := authsvc.UserListParams{
			Search: c.Query("q"),
			Role:   c.Query("role"),
			Page:   basehdl.QueryPage(c, 20, 100),
			Sort:   basehdl.QuerySort(c, authsvc.UserSortFields),
		}
		result, err := h.UserService.List(c, params)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, result)
	})
}

// HandleGet lấy một người dùng theo id
func (h *UserHandler) HandleGet(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		profile, err := h.UserService.Get(c, c.Params("id"))
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.HandleData(c, profile)
	})
}

// HandleUpdateRole đổi vai trò người dùng
func (h *UserHandler) HandleUpdateRole(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input authdto.UserRoleUpdateInput
		if err := basehdl.ParseBody(c, &input); err != nil {
			return basehdl.HandleError(c, err)
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			return basehdl.HandleError(c, err)
		}

		id := c.Params("id")
		profile, err := h.UserService.UpdateRole(c, middleware.ActorFrom(c), id, input.Role)
		if err != nil {
			if common.StatusOf(err) == common.StatusForbidden {
				logger.LogPermission("role_change_denied", c, map[string]interface{}{"target_id": id, "role": input.Role})
			}
			return basehdl.HandleError(c, err)
		}

		logger.LogPermission("role_change", c, map[string]interface{}{"target_id": id, "role": input.Role})
		return basehdl.HandleData(c, profile)
	})
}

// HandleMe trả về Actor hiện tại kèm profile
func (h *UserHandler) HandleMe(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		actor := middleware.ActorFrom(c)
		if actor == nil {
			return basehdl.HandleError(c, common.ErrUnauthorized)
		}
		profile, err := h.UserService.Me(c, actor)
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		out := authdto.MeOutput{
			ID:      actor.ID,
			Email:   actor.Email,
			Name:    actor.Name,
			Role:    string(actor.Role),
			IsAdmin: actor.Role.AtLeast(models.RoleAdmin),
		}
		if profile != nil {
			out.Profile = profile
		}
		return basehdl.HandleData(c, out)
	})
}
