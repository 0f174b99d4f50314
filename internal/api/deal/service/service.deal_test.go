package dealsvc

import (
	"context"
	"errors"
	"testing"

	basequery "jammshop/internal/api/base/query"
	"jammshop/internal/api/base/service/basesvctest"
	catalogmodels "jammshop/internal/api/catalog/models"
	models "jammshop/internal/api/deal/models"
	"jammshop/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func rankingRepo(rows []models.DealRanking, total int64) *basesvctest.FakeRepo[models.DealRanking] {
	return &basesvctest.FakeRepo[models.DealRanking]{
		FindWithPaginationFn: func(context.Context, interface{}, basequery.PageSpec, basequery.SortSpec) ([]models.DealRanking, int64, error) {
			return rows, total, nil
		},
	}
}

func TestDealService_List_PreservesRankOrder(t *testing.T) {
	p1 := catalogmodels.Product{ID: primitive.NewObjectID(), Name: "P1"}
	p2 := catalogmodels.Product{ID: primitive.NewObjectID(), Name: "P2"}

	rankings := rankingRepo([]models.DealRanking{
		{ProductID: p2.ID, DiscountPct: 50},
		{ProductID: p1.ID, DiscountPct: 30},
	}, 2)
	products := &basesvctest.FakeRepo[catalogmodels.Product]{
		FindFn: func(context.Context, interface{}, *options.FindOptions) ([]catalogmodels.Product, error) {
			return []catalogmodels.Product{p1, p2}, nil
		},
	}
	svc := NewDealServiceWith(rankings, products, "")

	env, err := svc.List(context.Background(), basequery.ParsePage("", "", 20, 50), "")
	require.NoError(t, err)
	require.Len(t, env.Data, 2)
	assert.Equal(t, "P2", env.Data[0].Name)
	assert.Equal(t, 50.0, env.Data[0].DiscountPct)
	assert.Equal(t, "P1", env.Data[1].Name)
	assert.Equal(t, int64(2), env.Total)

	assert.Equal(t, RankSort, rankings.LastSort)
	assert.Equal(t, bson.M{"_id": bson.M{"$in": []primitive.ObjectID{p2.ID, p1.ID}}, "is_active": true}, products.LastFilter)
}

func TestDealService_List_DropsMissingProducts(t *testing.T) {
	p2 := catalogmodels.Product{ID: primitive.NewObjectID(), Name: "P2"}
	rankings := rankingRepo([]models.DealRanking{
		{ProductID: p2.ID, DiscountPct: 50},
		{ProductID: primitive.NewObjectID(), DiscountPct: 30},
	}, 2)
	products := &basesvctest.FakeRepo[catalogmodels.Product]{
		FindFn: func(context.Context, interface{}, *options.FindOptions) ([]catalogmodels.Product, error) {
			return []catalogmodels.Product{p2}, nil
		},
	}

	env, err := NewDealServiceWith(rankings, products, "").List(context.Background(), basequery.ParsePage("", "", 20, 50), "")
	require.NoError(t, err)
	require.Len(t, env.Data, 1)
	assert.Equal(t, "P2", env.Data[0].Name)
	assert.Equal(t, int64(2), env.Total)
}

func TestDealService_List_EmptyRankPageSkipsProducts(t *testing.T) {
	rankings := rankingRepo(nil, 7)
	products := &basesvctest.FakeRepo[catalogmodels.Product]{}

	env, err := NewDealServiceWith(rankings, products, "").List(context.Background(), basequery.ParsePage("99", "5", 20, 50), "10")
	require.NoError(t, err)
	assert.Empty(t, env.Data)
	assert.NotNil(t, env.Data)
	assert.Equal(t, int64(7), env.Total)
	assert.Equal(t, int64(2), env.TotalPages)
	assert.Empty(t, products.Calls())
	assert.Equal(t, bson.M{"discount_pct": bson.M{"$gte": 10.0}}, rankings.LastFilter)
}

func TestDealService_List_RankError(t *testing.T) {
	rankings := &basesvctest.FakeRepo[models.DealRanking]{
		FindWithPaginationFn: func(context.Context, interface{}, basequery.PageSpec, basequery.SortSpec) ([]models.DealRanking, int64, error) {
			return nil, 0, common.StoreError(errors.New("relation does not exist"))
		},
	}
	products := &basesvctest.FakeRepo[catalogmodels.Product]{}
	_, err := NewDealServiceWith(rankings, products, "").List(context.Background(), basequery.ParsePage("", "", 20, 50), "")
	assert.EqualError(t, err, "relation does not exist")
	assert.Equal(t, common.StatusInternalServerError, common.StatusOf(err))
	assert.Empty(t, products.Calls())
}

func TestDealService_Refresh(t *testing.T) {
	rankings := &basesvctest.FakeRepo[models.DealRanking]{
		CountDocumentsFn: func(context.Context, interface{}) (int64, error) { return 12, nil },
	}
	products := &basesvctest.FakeRepo[catalogmodels.Product]{}

	result, err := NewDealServiceWith(rankings, products, "deal_rankings").Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), result.Ranked)
	assert.Positive(t, result.RefreshedAt)

	pipeline := products.LastPipeline.(bson.A)
	last := pipeline[len(pipeline)-1].(bson.M)
	assert.Equal(t, "deal_rankings", last["$out"])
}
