// Package middleware chứa các middleware dùng chung của API: session, phân quyền theo vai trò, cron secret.
package middleware

import (
	"context"
	"crypto/subtle"
	"strings"

	authmodels "jammshop/internal/api/auth/models"
	basehdl "jammshop/internal/api/base/handler"
	"jammshop/internal/common"
	"jammshop/internal/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

const (
	// LocalActor là key lưu Actor trong c.Locals
	LocalActor = "actor"
	// LocalSessionErr giữ lỗi store khi xác định session, RequireRole trả lại lỗi này
	LocalSessionErr = "session_err"
)

// SessionResolver chuyển token session thành Actor
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*authmodels.Actor, error)
}

// sessionToken lấy token từ cookie session, sau đó tới header Authorization: Bearer
func sessionToken(c fiber.Ctx, cookieName string) string {
	if cookieName != "" {
		if v := strings.TrimSpace(c.Cookies(cookieName)); v != "" {
			return v
		}
	}
	authHeader := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// Session xác định Actor của request nếu có. Không bao giờ chặn request:
// route công khai vẫn chạy, route cần quyền dùng RequireRole.
// Lỗi store (5xx) được giữ lại trong Locals để route cần quyền trả về 500 thay vì 401.
func Session(resolver SessionResolver, cookieName string) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := sessionToken(c, cookieName)
		if token == "" || resolver == nil {
			return c.Next()
		}

		actor, err := resolver.Resolve(c, token)
		if err != nil {
			// Token sai/hết hạn không phải lỗi server, chỉ log ở mức debug
			entry := logger.WithRequestModule(c, "auth").WithError(err)
			if common.StatusOf(err) >= common.StatusInternalServerError {
				entry.Warn("Session resolve failed")
				c.Locals(LocalSessionErr, err)
			} else {
				entry.Debug("Session rejected")
			}
			return c.Next()
		}
		if actor != nil {
			c.Locals(LocalActor, actor)
			c.Locals(logger.LocalUserID, actor.ID)
		}
		return c.Next()
	}
}

// ActorFrom lấy Actor đã được Session gắn vào request
func ActorFrom(c fiber.Ctx) *authmodels.Actor {
	actor, _ := c.Locals(LocalActor).(*authmodels.Actor)
	return actor
}

// RequireRole chặn request khi không có Actor hoặc vai trò thấp hơn min.
// Cả hai trường hợp đều trả 401 {"error": "Unauthorized"}, trừ khi session lỗi do store.
func RequireRole(min authmodels.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		actor := ActorFrom(c)
		if actor == nil {
			if err, ok := c.Locals(LocalSessionErr).(error); ok {
				return basehdl.HandleError(c, err)
			}
			return basehdl.HandleError(c, common.ErrUnauthorized)
		}
		if !actor.Role.AtLeast(min) {
			logger.WithRequestModule(c, "auth").WithFields(logrus.Fields{
				"role":     actor.Role,
				"required": min,
			}).Warn("Role check failed")
			return basehdl.HandleError(c, common.ErrInsufficient)
		}
		return c.Next()
	}
}

// CronSecret so khớp query ?secret= với secret cấu hình.
// Secret cấu hình rỗng thì mọi request đều bị từ chối.
func CronSecret(secret string) fiber.Handler {
	return func(c fiber.Ctx) error {
		given := c.Query("secret")
		if secret == "" || subtle.ConstantTimeCompare([]byte(given), []byte(secret)) != 1 {
			logger.WithRequestModule(c, "cron").Warn("Cron secret mismatch")
			return basehdl.HandleError(c, common.ErrBadCronSecret)
		}
		return c.Next()
	}
}
