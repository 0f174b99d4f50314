// Package dealsvc - service deal: đọc bảng xếp hạng rồi ghép với sản phẩm theo đúng thứ tự.
package dealsvc

import (
	"context"
	"fmt"

	basequery "jammshop/internal/api/base/query"
	basesvc "jammshop/internal/api/base/service"
	catalogmodels "jammshop/internal/api/catalog/models"
	models "jammshop/internal/api/deal/models"
	"jammshop/internal/common"
	"jammshop/internal/global"
	"jammshop/internal/logger"
	"jammshop/internal/metrics"
	"jammshop/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RankSort là thứ tự của bảng xếp hạng
var RankSort = basequery.SortSpec{Field: "discount_pct", Desc: true, Then: "product_id"}

// DealService đọc deal_rankings và products
type DealService struct {
	rankings        basesvc.Repository[models.DealRanking]
	products        basesvc.Repository[catalogmodels.Product]
	rankingsColName string
}

// NewDealService tạo mới DealService
func NewDealService() (*DealService, error) {
	rankingCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.DealRankings)
	if !exist {
		return nil, fmt.Errorf("failed to get deal_rankings collection: %v", common.ErrNotFound)
	}
	productCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Products)
	if !exist {
		return nil, fmt.Errorf("failed to get products collection: %v", common.ErrNotFound)
	}
	return NewDealServiceWith(
		basesvc.NewBaseServiceMongo[models.DealRanking](rankingCollection),
		basesvc.NewBaseServiceMongo[catalogmodels.Product](productCollection),
		global.MongoDB_ColNames.DealRankings,
	), nil
}

// NewDealServiceWith tạo DealService trên các repository có sẵn
func NewDealServiceWith(rankings basesvc.Repository[models.DealRanking], products basesvc.Repository[catalogmodels.Product], rankingsColName string) *DealService {
	if rankingsColName == "" {
		rankingsColName = "deal_rankings"
	}
	return &DealService{rankings: rankings, products: products, rankingsColName: rankingsColName}
}

// List đọc một trang deal.
// Lượt 1 đọc trang xếp hạng, lượt 2 đọc sản phẩm theo đúng tập id đó, rồi khôi phục thứ tự xếp hạng.
// Sản phẩm đã bị xoá/ẩn giữa hai lượt bị bỏ qua, total vẫn là số dòng xếp hạng.
func (s *DealService) List(ctx context.Context, page basequery.PageSpec, minDiscount string) (*basequery.Envelope[models.DealItem], error) {
	rankFilter := basequery.NewFilter().NumberRange("discount_pct", minDiscount, "")
	ranked, err := s.rankings.FindWithPagination(ctx, rankFilter.Bson(), page, RankSort)
	if err != nil {
		return nil, err
	}
	if len(ranked.Data) == 0 {
		return basequery.NewEnvelope[models.DealItem](nil, page, ranked.Total), nil
	}

	ids := make([]primitive.ObjectID, 0, len(ranked.Data))
	for _, r := range ranked.Data {
		ids = append(ids, r.ProductID)
	}
	products, err := s.products.Find(ctx, bson.M{"_id": bson.M{"$in": ids}, "is_active": true}, nil)
	if err != nil {
		return nil, err
	}

	items := basequery.OrderedJoinWith(
		ranked.Data,
		func(r models.DealRanking) primitive.ObjectID { return r.ProductID },
		products,
		func(p catalogmodels.Product) primitive.ObjectID { return p.ID },
		func(r models.DealRanking, p catalogmodels.Product) models.DealItem {
			return models.DealItem{Product: p, DiscountPct: r.DiscountPct}
		},
	)
	return basequery.NewEnvelope(items, page, ranked.Total), nil
}

// RefreshPipeline tính lại bảng xếp hạng từ sản phẩm đang bán có compare_at_price > price,
// discount_pct = round((compare_at_price - price) / compare_at_price * 100), ghi đè bằng $out
func RefreshPipeline(outCollection string, refreshedAt int64) bson.A {
	return bson.A{
		bson.M{"$match": bson.M{
			"is_active":        true,
			"compare_at_price": bson.M{"$gt": 0},
			"$expr":            bson.M{"$gt": bson.A{"$compare_at_price", "$price"}},
		}},
		bson.M{"$project": bson.M{
			"_id":        0,
			"product_id": "$_id",
			"discount_pct": bson.M{"$round": bson.A{
				bson.M{"$multiply": bson.A{
					bson.M{"$divide": bson.A{
						bson.M{"$subtract": bson.A{"$compare_at_price", "$price"}},
						"$compare_at_price",
					}},
					100,
				}},
				0,
			}},
			"refreshed_at": refreshedAt,
		}},
		bson.M{"$match": bson.M{"discount_pct": bson.M{"$gt": 0}}},
		bson.M{"$out": outCollection},
	}
}

// RefreshResult là kết quả một lần tính lại
type RefreshResult struct {
	Ranked      int64 `json:"ranked"`
	RefreshedAt int64 `json:"refreshed_at"`
}

// Refresh tính lại deal_rankings
func (s *DealService) Refresh(ctx context.Context) (RefreshResult, error) {
	now := utility.CurrentTimeInMilli()
	if err := s.products.Aggregate(ctx, RefreshPipeline(s.rankingsColName, now), nil); err != nil {
		metrics.DealsRefreshes.WithLabelValues(metrics.OutcomeFailed).Inc()
		return RefreshResult{}, err
	}
	count, err := s.rankings.CountDocuments(ctx, bson.M{})
	if err != nil {
		metrics.DealsRefreshes.WithLabelValues(metrics.OutcomeFailed).Inc()
		return RefreshResult{}, err
	}
	metrics.DealsRefreshes.WithLabelValues(metrics.OutcomeOK).Inc()
	logger.WithModule("deal").WithField("ranked", count).Info("Deal rankings refreshed")
	return RefreshResult{Ranked: count, RefreshedAt: now}, nil
}
