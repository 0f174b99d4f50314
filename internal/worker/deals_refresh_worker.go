// Package worker - DealsRefreshWorker tính lại bảng xếp hạng deal theo chu kỳ trong process,
// dùng khi không có cron ngoài gọi /cron/refresh-deals.
package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	dealsvc "jammshop/internal/api/deal/service"
	"jammshop/internal/logger"
)

// DealRefresher là job tính lại deal
type DealRefresher interface {
	Refresh(ctx context.Context) (dealsvc.RefreshResult, error)
}

// DealsRefreshWorker chạy DealRefresher mỗi interval
type DealsRefreshWorker struct {
	refresher    DealRefresher
	interval     time.Duration
	initialDelay time.Duration // Chờ trước lần chạy đầu tiên (tránh chạy lúc startup)
}

// NewDealsRefreshWorker tạo worker mới, interval <= 0 thì trả về nil (không chạy)
func NewDealsRefreshWorker(refresher DealRefresher, interval, initialDelay time.Duration) *DealsRefreshWorker {
	if refresher == nil || interval <= 0 {
		return nil
	}
	if initialDelay < 0 {
		initialDelay = 0
	}
	return &DealsRefreshWorker{
		refresher:    refresher,
		interval:     interval,
		initialDelay: initialDelay,
	}
}

// Start chạy worker cho tới khi ctx bị huỷ
func (w *DealsRefreshWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()
	log.WithField("interval", w.interval.String()).Info("[DEALS_REFRESH] Starting deals refresh worker")

	if w.initialDelay > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(w.initialDelay):
		}
	}
	w.runOnce(ctx, log)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("[DEALS_REFRESH] Deals refresh worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx, log)
		}
	}
}

// runOnce chạy một lần, panic được nuốt để lần sau vẫn chạy
func (w *DealsRefreshWorker) runOnce(ctx context.Context, log *logrus.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("[DEALS_REFRESH] Panic khi refresh, sẽ chạy lại ở lần tiếp theo")
		}
	}()

	start := time.Now()
	res, err := w.refresher.Refresh(ctx)
	if err != nil {
		log.WithError(err).Error("[DEALS_REFRESH] Refresh thất bại")
		return
	}
	log.WithFields(map[string]interface{}{
		"ranked":   res.Ranked,
		"duration": time.Since(start).String(),
	}).Info("[DEALS_REFRESH] Deals refreshed")
}
