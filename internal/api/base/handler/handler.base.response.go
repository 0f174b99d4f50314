// Package basehdl chứa các helper chung cho handler: chuẩn hoá response, đọc body,
// đọc tham số phân trang/sắp xếp và bắt panic.
package basehdl

import (
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	basequery "jammshop/internal/api/base/query"
	"jammshop/internal/common"
	"jammshop/internal/global"
	"jammshop/internal/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set(fiber.HeaderContentType, "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// ErrorBody dựng body lỗi thống nhất: {"error", "code", "status", "details"?}
func ErrorBody(err error) (int, fiber.Map) {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		body := fiber.Map{
			"error":  customErr.Message,
			"code":   customErr.Code.Code,
			"status": "error",
		}
		if customErr.Details != nil {
			body["details"] = customErr.Details
		}
		return customErr.StatusCode, body
	}
	// Lỗi chưa phân loại: 500, message giữ nguyên
	return common.StatusInternalServerError, fiber.Map{
		"error":  err.Error(),
		"code":   common.ErrCodeInternalServer.Code,
		"status": "error",
	}
}

// HandleError ghi lỗi ra response, lỗi 5xx được log kèm request
func HandleError(c fiber.Ctx, err error) error {
	status, body := ErrorBody(err)
	if status >= common.StatusInternalServerError {
		logger.WithRequest(c).WithError(err).Error("Request failed")
	}
	return JSONResponse(c, status, body)
}

// HandleData trả về 200 {"data": ...}
func HandleData(c fiber.Ctx, data interface{}) error {
	return JSONResponse(c, common.StatusOK, fiber.Map{"data": data})
}

// HandleCreated trả về 201 {"ok": true, "data": ...}
func HandleCreated(c fiber.Ctx, data interface{}) error {
	return JSONResponse(c, common.StatusCreated, fiber.Map{"ok": true, "data": data})
}

// HandleOK trả về 200 {"ok": true} cộng các field bổ sung
func HandleOK(c fiber.Ctx, extra fiber.Map) error {
	body := fiber.Map{"ok": true}
	for k, v := range extra {
		body[k] = v
	}
	return JSONResponse(c, common.StatusOK, body)
}

// SafeHandler bọc handler với recover để server luôn trả về JSON, kể cả khi panic
func SafeHandler(c fiber.Ctx, handler func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithRequest(c).WithField("stack", string(debug.Stack())).Errorf("Handler panic: %v", r)
			err = HandleError(c, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("unexpected error: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return handler()
}

// ParseBody decode JSON body vào struct, body rỗng hoặc sai JSON -> 400
func ParseBody(c fiber.Ctx, out interface{}) error {
	body := c.Body()
	if len(body) == 0 {
		return common.ErrInvalidFormat
	}
	if err := json.Unmarshal(body, out); err != nil {
		return common.ErrInvalidFormat
	}
	return nil
}

// ValidateInput chạy validator trên DTO, lỗi -> 400 kèm danh sách field sai
func ValidateInput(input interface{}) error {
	err := global.ValidateStruct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return common.ValidationError(err.Error(), nil)
	}
	fields := make([]string, 0, len(verrs))
	details := make([]fiber.Map, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
		details = append(details, fiber.Map{"field": fe.Field(), "rule": fe.Tag()})
	}
	return common.ValidationError(fmt.Sprintf("Invalid %s", strings.Join(fields, ", ")), details)
}

// ParseBodyMap decode JSON body thành map (dùng cho partial update)
func ParseBodyMap(c fiber.Ctx) (map[string]interface{}, error) {
	var m map[string]interface{}
	if err := ParseBody(c, &m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, common.ErrInvalidFormat
	}
	return m, nil
}

// ParseObjectIDParam đọc path param dạng ObjectID
func ParseObjectIDParam(c fiber.Ctx, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return primitive.NilObjectID, common.ErrInvalidID
	}
	return id, nil
}

// QueryPage đọc page/pageSize từ query string
func QueryPage(c fiber.Ctx, defaultSize, maxSize int64) basequery.PageSpec {
	return basequery.ParsePage(c.Query("page"), c.Query("pageSize"), defaultSize, maxSize)
}

// QuerySort đọc sort/order từ query string theo whitelist
func QuerySort(c fiber.Ctx, whitelist []string) basequery.SortSpec {
	return basequery.ParseSort(c.Query("sort"), c.Query("order"), whitelist, basequery.DefaultSortField)
}
