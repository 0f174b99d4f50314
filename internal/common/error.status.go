package common

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP Status Code Constants
const (
	// Success Codes (2xx)
	StatusOK      = 200 // Thành công
	StatusCreated = 201 // Tạo mới thành công

	// Client Error Codes (4xx)
	StatusBadRequest      = 400 // Yêu cầu không hợp lệ
	StatusUnauthorized    = 401 // Chưa xác thực hoặc không đủ quyền
	StatusForbidden       = 403 // Không được phép nâng quyền
	StatusNotFound        = 404 // Không tìm thấy tài nguyên
	StatusTooManyRequests = 429 // Quá nhiều yêu cầu

	// Server Error Codes (5xx)
	StatusInternalServerError = 500 // Lỗi server
	StatusBadGateway          = 502 // Nhà cung cấp bên ngoài trả lỗi
)

// Response Messages (trả thẳng cho client nên giữ tiếng Anh)
const (
	MsgUnauthorized    = "Unauthorized"
	MsgForbidden       = "Forbidden"
	MsgNotFound        = "Not found"
	MsgInvalidBody     = "Invalid JSON body"
	MsgNoUpdatable     = "No updatable fields provided"
	MsgInvalidNumber   = "Invalid numeric value"
	MsgNameRequired    = "Name is required"
	MsgTooManyRequests = "Too many requests"
	MsgInternalError   = "Internal Server Error"
)

// ErrorCode định nghĩa mã lỗi chi tiết
type ErrorCode struct {
	Code        string // Mã lỗi (ví dụ: AUTH_001)
	Category    string // Phân loại lỗi (ví dụ: Authentication)
	SubCategory string // Phân loại con (ví dụ: Token)
	Description string // Mô tả chi tiết
}

// Định nghĩa các mã lỗi theo hệ thống phân cấp
var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{Code: "SYS_001", Category: "System", SubCategory: "Internal", Description: "Lỗi hệ thống nội bộ"}
	ErrCodeUpstream       = ErrorCode{Code: "SYS_002", Category: "System", SubCategory: "Upstream", Description: "Lỗi từ nhà cung cấp bên ngoài"}
	ErrCodeRateLimit      = ErrorCode{Code: "SYS_003", Category: "System", SubCategory: "RateLimit", Description: "Vượt quá giới hạn request"}

	// Authentication Errors (AUTH_xxx)
	ErrCodeAuthToken  = ErrorCode{Code: "AUTH_001", Category: "Authentication", SubCategory: "Token", Description: "Thiếu hoặc sai session"}
	ErrCodeAuthSecret = ErrorCode{Code: "AUTH_002", Category: "Authentication", SubCategory: "Secret", Description: "Sai shared secret của cron"}
	ErrCodeAuthRole   = ErrorCode{Code: "AUTH_003", Category: "Authentication", SubCategory: "Role", Description: "Vai trò không đủ quyền"}

	// Validation Errors (VAL_xxx)
	ErrCodeValidationInput  = ErrorCode{Code: "VAL_001", Category: "Validation", SubCategory: "Input", Description: "Lỗi dữ liệu đầu vào"}
	ErrCodeValidationFormat = ErrorCode{Code: "VAL_002", Category: "Validation", SubCategory: "Format", Description: "Lỗi định dạng dữ liệu"}

	// Database Errors (DB_xxx)
	ErrCodeDatabase           = ErrorCode{Code: "DB", Category: "Database", SubCategory: "General", Description: "Lỗi cơ sở dữ liệu chung"}
	ErrCodeDatabaseConnection = ErrorCode{Code: "DB_001", Category: "Database", SubCategory: "Connection", Description: "Lỗi kết nối cơ sở dữ liệu"}
	ErrCodeDatabaseQuery      = ErrorCode{Code: "DB_002", Category: "Database", SubCategory: "Query", Description: "Lỗi truy vấn dữ liệu"}
)

// Error định nghĩa cấu trúc lỗi chi tiết
type Error struct {
	Code       ErrorCode // Mã lỗi chi tiết
	Message    string    // Thông báo lỗi
	StatusCode int       // HTTP status code
	Details    any       // Thông tin chi tiết thêm về lỗi
}

// Error trả về message của lỗi
func (e *Error) Error() string {
	return e.Message
}

// Is cho phép errors.Is so khớp theo mã lỗi và message
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code.Code == t.Code.Code && e.Message == t.Message
}

// NewError tạo một error mới với đầy đủ thông tin
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// Custom errors
var (
	// Authentication Errors
	ErrUnauthorized  = NewError(ErrCodeAuthToken, MsgUnauthorized, StatusUnauthorized, nil)
	ErrInsufficient  = NewError(ErrCodeAuthRole, MsgUnauthorized, StatusUnauthorized, nil)
	ErrForbidden     = NewError(ErrCodeAuthRole, MsgForbidden, StatusForbidden, nil)
	ErrBadCronSecret = NewError(ErrCodeAuthSecret, MsgUnauthorized, StatusUnauthorized, nil)

	// Validation Errors
	ErrInvalidInput      = NewError(ErrCodeValidationInput, "Invalid input", StatusBadRequest, nil)
	ErrInvalidFormat     = NewError(ErrCodeValidationFormat, MsgInvalidBody, StatusBadRequest, nil)
	ErrInvalidID         = NewError(ErrCodeValidationFormat, "Invalid id", StatusBadRequest, nil)
	ErrNoUpdatableFields = NewError(ErrCodeValidationInput, MsgNoUpdatable, StatusBadRequest, nil)
	ErrInvalidNumber     = NewError(ErrCodeValidationFormat, MsgInvalidNumber, StatusBadRequest, nil)
	ErrNameRequired      = NewError(ErrCodeValidationInput, MsgNameRequired, StatusBadRequest, nil)
	ErrRequiredField     = NewError(ErrCodeValidationInput, "Missing required field", StatusBadRequest, nil)

	// Database Errors
	ErrNotFound = NewError(ErrCodeDatabaseQuery, MsgNotFound, StatusNotFound, nil)

	// System Errors
	ErrTooManyRequests = NewError(ErrCodeRateLimit, MsgTooManyRequests, StatusTooManyRequests, nil)
	ErrUpstream        = NewError(ErrCodeUpstream, "Upstream provider error", StatusBadGateway, nil)
)

// ValidationError tạo lỗi 400 với message cụ thể (ví dụ: "role must be one of ...")
func ValidationError(message string, details any) error {
	return NewError(ErrCodeValidationInput, message, StatusBadRequest, details)
}

// StoreError bọc lỗi store chưa phân loại: 500 và giữ nguyên message của store
func StoreError(err error) error {
	if err == nil {
		return nil
	}
	return NewError(ErrCodeDatabase, err.Error(), StatusInternalServerError, nil)
}

// ConvertMongoError chuyển đổi lỗi MongoDB sang lỗi hệ thống
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	// Lỗi đã được phân loại thì giữ nguyên
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	// Các lỗi store còn lại đều là 500, message của store giữ nguyên
	if mongo.IsDuplicateKeyError(err) {
		return NewError(ErrCodeDatabaseQuery, err.Error(), StatusInternalServerError, nil)
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return NewError(ErrCodeDatabaseConnection, err.Error(), StatusInternalServerError, nil)
	}

	// Lỗi command: trả message gốc, không kèm prefix của driver
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return NewError(ErrCodeDatabaseQuery, strings.TrimSpace(cmdErr.Message), StatusInternalServerError, cmdErr.Name)
	}

	return StoreError(err)
}

// StatusOf trả về HTTP status tương ứng với một error bất kỳ
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return StatusInternalServerError
}
