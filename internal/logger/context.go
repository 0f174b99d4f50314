package logger

import (
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// Các key trong c.Locals mà logger đọc ra
const (
	LocalRequestID = "requestid"
	LocalUserID    = "user_id"
)

// WithRequest trả về logger entry với request context từ Fiber
func WithRequest(c fiber.Ctx) *logrus.Entry {
	entry := logrus.NewEntry(GetAppLogger())

	// Request ID: ưu tiên Locals, sau đó header request/response
	var requestID string
	if rid, ok := c.Locals(LocalRequestID).(string); ok {
		requestID = rid
	}
	if requestID == "" {
		requestID = c.Get(fiber.HeaderXRequestID)
	}
	if requestID == "" {
		requestID = c.GetRespHeader(fiber.HeaderXRequestID)
	}
	if requestID != "" {
		entry = entry.WithField("request_id", requestID)
	}

	if uid, ok := c.Locals(LocalUserID).(string); ok && uid != "" {
		entry = entry.WithField("user_id", uid)
	}

	return entry.WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"ip":     c.IP(),
	})
}

// WithModule trả về logger entry với module name (auth, catalog, deal, ...)
func WithModule(module string) *logrus.Entry {
	return GetAppLogger().WithField("module", module)
}

// WithRequestModule kết hợp WithRequest và module
func WithRequestModule(c fiber.Ctx, module string) *logrus.Entry {
	return WithRequest(c).WithField("module", module)
}

// WithFields trả về logger entry với các fields bổ sung
func WithFields(fields map[string]interface{}) *logrus.Entry {
	return GetAppLogger().WithFields(logrus.Fields(fields))
}

// WithError trả về logger entry với error
func WithError(err error) *logrus.Entry {
	return GetAppLogger().WithError(err)
}
