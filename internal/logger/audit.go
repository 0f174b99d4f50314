package logger

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// AuditAction mô tả một hành động cần ghi audit
type AuditAction struct {
	Action       string                 `json:"action"`        // Tên hành động (ví dụ: "crud_update", "role_change")
	UserID       string                 `json:"user_id"`       // ID người thực hiện
	ResourceID   string                 `json:"resource_id"`   // ID tài nguyên bị ảnh hưởng
	ResourceType string                 `json:"resource_type"` // Loại tài nguyên (product, category, profile, ...)
	IP           string                 `json:"ip"`
	UserAgent    string                 `json:"user_agent"`
	Details      map[string]interface{} `json:"details"`
	Timestamp    time.Time              `json:"timestamp"`
}

// LogAction log một hành động audit
func LogAction(action string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}

	audit := AuditAction{
		Action:    action,
		IP:        c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
		Details:   details,
		Timestamp: time.Now(),
	}
	if uid, ok := c.Locals(LocalUserID).(string); ok {
		audit.UserID = uid
	}
	if rt, ok := details["resource_type"].(string); ok {
		audit.ResourceType = rt
	}
	if rid, ok := details["resource_id"].(string); ok {
		audit.ResourceID = rid
	}
	if requestID := c.GetRespHeader(fiber.HeaderXRequestID); requestID != "" {
		audit.Details["request_id"] = requestID
	}

	GetAuditLogger().WithFields(logrus.Fields{
		"action":        audit.Action,
		"user_id":       audit.UserID,
		"resource_id":   audit.ResourceID,
		"resource_type": audit.ResourceType,
		"ip":            audit.IP,
		"user_agent":    audit.UserAgent,
		"details":       audit.Details,
		"timestamp":     audit.Timestamp,
	}).Info("Audit log")
}

// LogCRUD log các thao tác CRUD của admin
func LogCRUD(operation string, resourceType string, resourceID string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["operation"] = operation
	details["resource_type"] = resourceType
	details["resource_id"] = resourceID

	LogAction("crud_"+operation, c, details)
}

// LogPermission log các thay đổi vai trò
func LogPermission(action string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["permission_action"] = action

	LogAction("permission_"+action, c, details)
}
