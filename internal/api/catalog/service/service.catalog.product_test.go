package catalogsvc

import (
	"context"
	"errors"
	"testing"

	basequery "jammshop/internal/api/base/query"
	"jammshop/internal/api/base/service/basesvctest"
	catalogdto "jammshop/internal/api/catalog/dto"
	models "jammshop/internal/api/catalog/models"
	"jammshop/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPublicFilter(t *testing.T) {
	category := primitive.NewObjectID()
	filter := PublicFilter(PublicListParams{
		Search:   "shoe",
		Category: category.Hex(),
		Brand:    "all",
		MinPrice: "10",
		InStock:  "true",
		Featured: "all",
	})

	and, ok := filter["$and"].(bson.A)
	require.True(t, ok)
	assert.Contains(t, and, bson.M{"is_active": true})
	assert.Contains(t, and, bson.M{"category_id": category})
	assert.Contains(t, and, bson.M{"price": bson.M{"$gte": 10.0}})
	assert.Contains(t, and, bson.M{"stock_quantity": bson.M{"$gt": 0}})
	assert.Len(t, and, 5)
}

func TestAdminFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, AdminFilter(AdminListParams{Status: "all", Stock: "all"}))
	assert.Equal(t, bson.M{"is_active": false}, AdminFilter(AdminListParams{Status: "inactive"}))
	assert.Equal(t,
		bson.M{"stock_quantity": bson.M{"$gt": 0, "$lte": LowStockThreshold}},
		AdminFilter(AdminListParams{Stock: "low"}))
}

func TestProductService_Search(t *testing.T) {
	repo := &basesvctest.FakeRepo[models.Product]{}
	svc := NewProductServiceWith(repo)
	page := basequery.ParsePage("", "", 10, 20)

	env, err := svc.Search(context.Background(), "   ", page)
	require.NoError(t, err)
	assert.Empty(t, env.Data)
	assert.Empty(t, repo.Calls())

	_, err = svc.Search(context.Background(), "a.b", page)
	require.NoError(t, err)
	assert.Equal(t, "name", repo.LastSort.Field)
	assert.Equal(t, int64(10), repo.LastPage.PageSize)
}

func TestProductService_Create(t *testing.T) {
	repo := &basesvctest.FakeRepo[models.Product]{}
	svc := NewProductServiceWith(repo)

	price := 49.9
	_, err := svc.Create(context.Background(), catalogdto.ProductCreateInput{
		Name:          "Men's Shoes!",
		Price:         &price,
		StockQuantity: -3,
		CategoryID:    "not-hex",
	})
	require.NoError(t, err)
	assert.Equal(t, "mens-shoes", repo.LastInsert.Slug)
	assert.Equal(t, int64(0), repo.LastInsert.StockQuantity)
	assert.True(t, repo.LastInsert.IsActive)
	assert.Nil(t, repo.LastInsert.CategoryID)

	_, err = svc.Create(context.Background(), catalogdto.ProductCreateInput{Name: " ", Price: &price})
	assert.ErrorIs(t, err, common.ErrNameRequired)
	_, err = svc.Create(context.Background(), catalogdto.ProductCreateInput{Name: "Hat"})
	assert.Equal(t, common.StatusBadRequest, common.StatusOf(err))
	assert.Equal(t, 1, repo.Called("InsertOne"))
}

func TestProductService_Update(t *testing.T) {
	id := primitive.NewObjectID()

	t.Run("clamps stock and coerces numbers", func(t *testing.T) {
		repo := &basesvctest.FakeRepo[models.Product]{}
		_, err := NewProductServiceWith(repo).Update(context.Background(), id, map[string]interface{}{
			"stock_quantity": -5,
			"price":          "19.5",
			"views":          100,
		})
		require.NoError(t, err)
		assert.Equal(t, bson.M{"stock_quantity": int64(0), "price": 19.5}, repo.LastSet)
		assert.Equal(t, id, repo.LastID)
	})

	t.Run("no whitelisted field rejects before store", func(t *testing.T) {
		repo := &basesvctest.FakeRepo[models.Product]{}
		_, err := NewProductServiceWith(repo).Update(context.Background(), id, map[string]interface{}{"views": 1})
		assert.ErrorIs(t, err, common.ErrNoUpdatableFields)
		assert.Empty(t, repo.Calls())
	})

	t.Run("NaN price fails", func(t *testing.T) {
		repo := &basesvctest.FakeRepo[models.Product]{}
		_, err := NewProductServiceWith(repo).Update(context.Background(), id, map[string]interface{}{"price": "abc"})
		assert.Equal(t, common.StatusBadRequest, common.StatusOf(err))
		assert.Empty(t, repo.Calls())
	})

	t.Run("store error passes through as 500", func(t *testing.T) {
		repo := &basesvctest.FakeRepo[models.Product]{
			UpdateByIdFn: func(context.Context, interface{}, bson.M) (models.Product, error) {
				return models.Product{}, common.StoreError(errors.New("write conflict"))
			},
		}
		_, err := NewProductServiceWith(repo).Update(context.Background(), id, map[string]interface{}{"name": "x"})
		assert.Equal(t, common.StatusInternalServerError, common.StatusOf(err))
		assert.Equal(t, "write conflict", err.Error())
	})
}
