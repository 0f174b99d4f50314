package brandsvc

import (
	"context"
	"errors"
	"testing"

	"jammshop/internal/api/base/service/basesvctest"
	branddto "jammshop/internal/api/brand/dto"
	models "jammshop/internal/api/brand/models"
	catalogmodels "jammshop/internal/api/catalog/models"
	"jammshop/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestListFilter(t *testing.T) {
	assert.Equal(t, bson.M{"is_active": true}, ListFilter(ListParams{DefaultActive: "true"}))
	assert.Equal(t, bson.M{}, ListFilter(ListParams{Active: "all", DefaultActive: "true"}))
	assert.Equal(t, bson.M{"is_active": false}, ListFilter(ListParams{Active: "false", DefaultActive: "true"}))
	assert.Equal(t, bson.M{}, ListFilter(ListParams{Type: "all", DefaultActive: "all"}))
	assert.Equal(t, bson.M{"type": "jumia"}, ListFilter(ListParams{Type: "jumia", DefaultActive: "all"}))
}

func TestBrandService_Create(t *testing.T) {
	brands := &basesvctest.FakeRepo[models.Brand]{}
	svc := NewBrandServiceWith(brands, &basesvctest.FakeRepo[catalogmodels.Product]{})

	b, err := svc.Create(context.Background(), branddto.BrandCreateInput{Name: "Acme Co."})
	require.NoError(t, err)
	assert.Equal(t, "acme-co", b.Slug)
	assert.Equal(t, models.BrandTypeOther, b.Type)
	assert.True(t, b.IsActive)
}

func TestBrandService_UpdateRejectsUnknownType(t *testing.T) {
	brands := &basesvctest.FakeRepo[models.Brand]{}
	svc := NewBrandServiceWith(brands, &basesvctest.FakeRepo[catalogmodels.Product]{})

	_, err := svc.Update(context.Background(), primitive.NewObjectID(), map[string]interface{}{"type": "amazon"})
	assert.Equal(t, common.StatusBadRequest, common.StatusOf(err))
	assert.Empty(t, brands.Calls())

	_, err = svc.Update(context.Background(), primitive.NewObjectID(), map[string]interface{}{"product_count": 99})
	assert.ErrorIs(t, err, common.ErrNoUpdatableFields)
}

func TestBrandService_RefreshProductCounts(t *testing.T) {
	a := models.Brand{ID: primitive.NewObjectID(), ProductCount: 1}
	b := models.Brand{ID: primitive.NewObjectID(), ProductCount: 3}
	c := models.Brand{ID: primitive.NewObjectID(), ProductCount: 2}
	failing := c.ID

	products := &basesvctest.FakeRepo[catalogmodels.Product]{
		AggregateFn: func(_ context.Context, _ interface{}, results interface{}) error {
			*(results.(*[]brandCount)) = []brandCount{{ID: a.ID, Count: 1}, {ID: b.ID, Count: 5}}
			return nil
		},
	}
	updated := map[primitive.ObjectID]int64{}
	brands := &basesvctest.FakeRepo[models.Brand]{
		FindFn: func(context.Context, interface{}, *options.FindOptions) ([]models.Brand, error) {
			return []models.Brand{a, b, c}, nil
		},
		UpdateByIdFn: func(_ context.Context, id interface{}, set bson.M) (models.Brand, error) {
			oid := id.(primitive.ObjectID)
			if oid == failing {
				return models.Brand{}, errors.New("write failed")
			}
			updated[oid] = set["product_count"].(int64)
			return models.Brand{}, nil
		},
	}

	result, err := NewBrandServiceWith(brands, products).RefreshProductCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RefreshResult{Brands: 3, Updated: 1, Failed: 1}, result)
	assert.Equal(t, map[primitive.ObjectID]int64{b.ID: 5}, updated)
	assert.Equal(t, 2, brands.Called("UpdateById"))
}

func TestBrandService_RefreshProductCounts_AggregateError(t *testing.T) {
	products := &basesvctest.FakeRepo[catalogmodels.Product]{
		AggregateFn: func(context.Context, interface{}, interface{}) error {
			return common.StoreError(errors.New("pipeline failed"))
		},
	}
	brands := &basesvctest.FakeRepo[models.Brand]{}
	_, err := NewBrandServiceWith(brands, products).RefreshProductCounts(context.Background())
	assert.EqualError(t, err, "pipeline failed")
	assert.Empty(t, brands.Calls())
}
