package extsync

import (
	"context"

	catalogmodels "jammshop/internal/api/catalog/models"
	"jammshop/internal/logger"
	"jammshop/internal/metrics"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductStore là phần catalog mà Syncer cần
type ProductStore interface {
	ListExternal(ctx context.Context) ([]catalogmodels.Product, error)
	ApplyQuote(ctx context.Context, id primitive.ObjectID, price float64, stock int64) (catalogmodels.Product, error)
}

// Result tổng kết một lần đồng bộ
type Result struct {
	Processed int `json:"processed"`
	Updated   int `json:"updated"`
	Failed    int `json:"failed"`
}

// Syncer chạy một vòng đồng bộ best-effort
type Syncer struct {
	products ProductStore
	provider Provider
}

// NewSyncer tạo Syncer
func NewSyncer(products ProductStore, provider Provider) *Syncer {
	return &Syncer{products: products, provider: provider}
}

// Run lấy quote và ghi cho từng sản phẩm ngoài. Chỉ lỗi khi không đọc được danh sách;
// lỗi từng sản phẩm được log và tính vào Failed. Ctx bị huỷ thì dừng ở sản phẩm kế tiếp.
func (s *Syncer) Run(ctx context.Context) (Result, error) {
	log := logger.WithModule("sync")

	products, err := s.products.ListExternal(ctx)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, p := range products {
		if ctx.Err() != nil {
			break
		}
		res.Processed++

		quote, err := s.provider.Fetch(ctx, ExternalRef{
			Source:        p.ExternalSource,
			ExternalID:    p.ExternalID,
			Price:         p.Price,
			StockQuantity: p.StockQuantity,
		})
		if err != nil {
			res.Failed++
			metrics.SyncProducts.WithLabelValues(metrics.OutcomeFailed).Inc()
			log.WithError(err).WithField("product_id", p.ID.Hex()).Warn("Fetch quote failed")
			continue
		}
		if _, err := s.products.ApplyQuote(ctx, p.ID, quote.Price, quote.StockQuantity); err != nil {
			res.Failed++
			metrics.SyncProducts.WithLabelValues(metrics.OutcomeFailed).Inc()
			log.WithError(err).WithField("product_id", p.ID.Hex()).Warn("Apply quote failed")
			continue
		}
		res.Updated++
		metrics.SyncProducts.WithLabelValues(metrics.OutcomeUpdated).Inc()
	}

	log.WithFields(map[string]interface{}{
		"processed": res.Processed,
		"updated":   res.Updated,
		"failed":    res.Failed,
	}).Info("External sync finished")
	return res, nil
}
