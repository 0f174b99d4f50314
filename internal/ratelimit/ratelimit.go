// Package ratelimit dựng limiter theo IP (ulule/limiter) cho các route công khai có ghi dữ liệu.
// Store Redis dùng chung giữa các instance, không cấu hình Redis thì dùng memory store.
package ratelimit

import (
	"fmt"
	"strconv"

	basehdl "jammshop/internal/api/base/handler"
	"jammshop/internal/common"
	"jammshop/internal/logger"

	"github.com/gofiber/fiber/v3"
	rds "github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// Config cấu hình limiter
type Config struct {
	Rate          string // Định dạng ulule: "<số>-<S|M|H|D>"
	Prefix        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// NewClient tạo redis client từ cấu hình
func NewClient(cfg Config) *rds.Client {
	return rds.NewClient(&rds.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// NewLimiter tạo limiter với store Redis (khi có RedisAddr) hoặc memory
func NewLimiter(cfg Config) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(cfg.Rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", cfg.Rate, err)
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "jammshop:ratelimit"
	}

	var store limiter.Store
	if cfg.RedisAddr != "" {
		store, err = sredis.NewStoreWithOptions(NewClient(cfg), limiter.StoreOptions{Prefix: prefix})
		if err != nil {
			return nil, fmt.Errorf("create redis limiter store: %w", err)
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: prefix, CleanUpInterval: limiter.DefaultCleanUpInterval})
	}
	return limiter.New(store, rate), nil
}

// KeyFunc trả về khoá giới hạn cho một request
type KeyFunc func(c fiber.Ctx) string

// Middleware chặn request vượt hạn mức với 429. Lỗi store không chặn request.
func Middleware(l *limiter.Limiter, key KeyFunc) fiber.Handler {
	if key == nil {
		key = func(c fiber.Ctx) string { return c.IP() }
	}
	return func(c fiber.Ctx) error {
		limiterCtx, err := l.Get(c, key(c))
		if err != nil {
			logger.WithRequestModule(c, "ratelimit").WithError(err).Warn("Rate limiter unavailable")
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.FormatInt(limiterCtx.Limit, 10))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(limiterCtx.Remaining, 10))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(limiterCtx.Reset, 10))

		if limiterCtx.Reached {
			return basehdl.HandleError(c, common.ErrTooManyRequests)
		}
		return c.Next()
	}
}
