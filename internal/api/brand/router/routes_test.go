package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"jammshop/config"
	basequery "jammshop/internal/api/base/query"
	"jammshop/internal/api/base/service/basesvctest"
	brandhdl "jammshop/internal/api/brand/handler"
	models "jammshop/internal/api/brand/models"
	brandsvc "jammshop/internal/api/brand/service"
	catalogmodels "jammshop/internal/api/catalog/models"
	catalogsvc "jammshop/internal/api/catalog/service"
	apirouter "jammshop/internal/api/router"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestApp(t *testing.T, brands *basesvctest.FakeRepo[models.Brand], products *basesvctest.FakeRepo[catalogmodels.Product]) *fiber.App {
	t.Helper()
	app := fiber.New()
	r := apirouter.NewRouter(app, &config.Configuration{})
	handler := brandhdl.NewBrandHandlerWith(
		brandsvc.NewBrandServiceWith(brands, products),
		catalogsvc.NewProductServiceWith(products),
	)
	require.NoError(t, apirouter.SetupRoutes(app, r, nil, func(api fiber.Router, r *apirouter.Router) error {
		RegisterWith(api, r, handler)
		return nil
	}))
	return app
}

func get(t *testing.T, app *fiber.App, path string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestBrandBySlug_NotFound(t *testing.T) {
	app := newTestApp(t, &basesvctest.FakeRepo[models.Brand]{}, &basesvctest.FakeRepo[catalogmodels.Product]{})

	status, _ := get(t, app, "/api/brands/ghost")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = get(t, app, "/api/brands/ghost/products")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBrandProducts(t *testing.T) {
	brandID := primitive.NewObjectID()
	brands := &basesvctest.FakeRepo[models.Brand]{
		FindOneFn: func(context.Context, interface{}) (models.Brand, error) {
			return models.Brand{ID: brandID, Slug: "acme", IsActive: true}, nil
		},
	}
	products := &basesvctest.FakeRepo[catalogmodels.Product]{
		FindWithPaginationFn: func(context.Context, interface{}, basequery.PageSpec, basequery.SortSpec) ([]catalogmodels.Product, int64, error) {
			return []catalogmodels.Product{{Name: "Anvil"}}, 1, nil
		},
	}
	app := newTestApp(t, brands, products)

	status, body := get(t, app, "/api/brands/acme/products?pageSize=80")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(50), body["pageSize"])
	assert.Len(t, body["data"], 1)

	filter := products.LastFilter.(bson.M)["$and"].(bson.A)
	assert.Contains(t, filter, bson.M{"brand_id": brandID})
	assert.Contains(t, filter, bson.M{"is_active": true})
}

func TestPublicBrands_DefaultsToActive(t *testing.T) {
	brands := &basesvctest.FakeRepo[models.Brand]{}
	app := newTestApp(t, brands, &basesvctest.FakeRepo[catalogmodels.Product]{})

	status, _ := get(t, app, "/api/brands?sort=product_count")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, bson.M{"is_active": true}, brands.LastFilter)
	assert.Equal(t, "product_count", brands.LastSort.Field)
}

func TestAdminBrands_RequireSession(t *testing.T) {
	app := newTestApp(t, &basesvctest.FakeRepo[models.Brand]{}, &basesvctest.FakeRepo[catalogmodels.Product]{})
	status, body := get(t, app, "/api/admin/brands")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Unauthorized", body["error"])
}
