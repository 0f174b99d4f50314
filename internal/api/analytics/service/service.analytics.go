// Package analyticssvc - ghi sự kiện analytics và đọc thống kê cho admin.
package analyticssvc

import (
	"context"
	"fmt"
	"strings"

	models "jammshop/internal/api/analytics/models"
	authmodels "jammshop/internal/api/auth/models"
	basequery "jammshop/internal/api/base/query"
	basesvc "jammshop/internal/api/base/service"
	catalogmodels "jammshop/internal/api/catalog/models"
	ordermodels "jammshop/internal/api/order/models"
	"jammshop/internal/common"
	"jammshop/internal/global"
	"jammshop/internal/metrics"
	"jammshop/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultTopDays = 7
	MaxTopDays     = 90
	TopLimit       = 10
	dayMillis      = int64(24 * 60 * 60 * 1000)
)

// AnalyticsService ghi sự kiện và tổng hợp số liệu từ các collection khác
type AnalyticsService struct {
	events   basesvc.Repository[models.Event]
	products basesvc.Repository[catalogmodels.Product]
	orders   basesvc.Repository[ordermodels.Order]
	profiles basesvc.Repository[authmodels.Profile]
	now      func() int64
}

// NewAnalyticsService tạo mới AnalyticsService
func NewAnalyticsService() (*AnalyticsService, error) {
	eventCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.AnalyticsEvents)
	if !exist {
		return nil, fmt.Errorf("failed to get analytics_events collection: %v", common.ErrNotFound)
	}
	productCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Products)
	if !exist {
		return nil, fmt.Errorf("failed to get products collection: %v", common.ErrNotFound)
	}
	orderCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Orders)
	if !exist {
		return nil, fmt.Errorf("failed to get orders collection: %v", common.ErrNotFound)
	}
	profileCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Profiles)
	if !exist {
		return nil, fmt.Errorf("failed to get profiles collection: %v", common.ErrNotFound)
	}
	return NewAnalyticsServiceWith(
		basesvc.NewBaseServiceMongo[models.Event](eventCollection),
		basesvc.NewBaseServiceMongo[catalogmodels.Product](productCollection),
		basesvc.NewBaseServiceMongo[ordermodels.Order](orderCollection),
		basesvc.NewBaseServiceMongo[authmodels.Profile](profileCollection),
	), nil
}

// NewAnalyticsServiceWith tạo AnalyticsService trên các repository có sẵn
func NewAnalyticsServiceWith(
	events basesvc.Repository[models.Event],
	products basesvc.Repository[catalogmodels.Product],
	orders basesvc.Repository[ordermodels.Order],
	profiles basesvc.Repository[authmodels.Profile],
) *AnalyticsService {
	return &AnalyticsService{
		events:   events,
		products: products,
		orders:   orders,
		profiles: profiles,
		now:      utility.CurrentTimeInMilli,
	}
}

// Record ghi một sự kiện; tên rỗng -> ErrNameRequired và không ghi gì
func (s *AnalyticsService) Record(ctx context.Context, event models.Event) error {
	event.Name = strings.TrimSpace(event.Name)
	if event.Name == "" {
		return common.ErrNameRequired
	}
	event.CreatedAt = 0
	if _, err := s.events.InsertOne(ctx, event); err != nil {
		return err
	}
	metrics.AnalyticsEvents.Inc()
	return nil
}

// ListEvents liệt kê sự kiện mới nhất, lọc theo tên nếu có
func (s *AnalyticsService) ListEvents(ctx context.Context, name string, page basequery.PageSpec) (*basequery.Envelope[models.Event], error) {
	filter := basequery.NewFilter().Eq("name", name).Bson()
	return s.events.FindWithPagination(ctx, filter, page, basequery.SortSpec{Field: "created_at", Desc: true})
}

// TopPipeline đếm sự kiện theo tên trong khoảng [since, hiện tại]
func TopPipeline(since int64, limit int) bson.A {
	return bson.A{
		bson.M{"$match": bson.M{"created_at": bson.M{"$gte": since}}},
		bson.M{"$group": bson.M{"_id": "$name", "count": bson.M{"$sum": 1}}},
		bson.M{"$sort": bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}},
		bson.M{"$limit": limit},
	}
}

// Top trả về các tên sự kiện xuất hiện nhiều nhất trong days ngày gần đây
func (s *AnalyticsService) Top(ctx context.Context, days int) ([]models.TopEvent, error) {
	if days <= 0 {
		days = DefaultTopDays
	}
	if days > MaxTopDays {
		days = MaxTopDays
	}
	since := s.now() - int64(days)*dayMillis
	rows := []models.TopEvent{}
	if err := s.events.Aggregate(ctx, TopPipeline(since, TopLimit), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// RevenuePipeline cộng total của các đơn đã thanh toán
func RevenuePipeline() bson.A {
	return bson.A{
		bson.M{"$match": bson.M{"payment_status": ordermodels.PaymentPaid}},
		bson.M{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$total"}}},
	}
}

type revenueRow struct {
	Total float64 `bson:"total"`
}

// Stats đọc song song các số đếm và doanh thu; một truy vấn lỗi thì cả request lỗi
func (s *AnalyticsService) Stats(ctx context.Context) (models.Stats, error) {
	var stats models.Stats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.products.CountDocuments(gctx, bson.M{})
		stats.Products = n
		return err
	})
	g.Go(func() error {
		n, err := s.orders.CountDocuments(gctx, bson.M{})
		stats.Orders = n
		return err
	})
	g.Go(func() error {
		n, err := s.profiles.CountDocuments(gctx, bson.M{})
		stats.Users = n
		return err
	})
	g.Go(func() error {
		n, err := s.events.CountDocuments(gctx, bson.M{})
		stats.Events = n
		return err
	})
	g.Go(func() error {
		rows := []revenueRow{}
		if err := s.orders.Aggregate(gctx, RevenuePipeline(), &rows); err != nil {
			return err
		}
		if len(rows) > 0 {
			stats.Revenue = rows[0].Total
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.Stats{}, err
	}
	return stats, nil
}
