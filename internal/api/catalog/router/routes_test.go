package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jammshop/config"
	authmodels "jammshop/internal/api/auth/models"
	basequery "jammshop/internal/api/base/query"
	"jammshop/internal/api/base/service/basesvctest"
	cataloghdl "jammshop/internal/api/catalog/handler"
	models "jammshop/internal/api/catalog/models"
	catalogsvc "jammshop/internal/api/catalog/service"
	"jammshop/internal/api/middleware"
	apirouter "jammshop/internal/api/router"
	"jammshop/internal/common"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type roleResolver struct{}

func (roleResolver) Resolve(_ context.Context, token string) (*authmodels.Actor, error) {
	role := authmodels.Role(token)
	if !role.Valid() {
		return nil, common.ErrUnauthorized
	}
	return &authmodels.Actor{ID: "actor-" + token, Role: role}, nil
}

func newTestApp(t *testing.T, repo *basesvctest.FakeRepo[models.Product]) *fiber.App {
	t.Helper()
	app := fiber.New()
	r := apirouter.NewRouter(app, &config.Configuration{})
	handler := cataloghdl.NewProductHandlerWith(catalogsvc.NewProductServiceWith(repo))
	require.NoError(t, apirouter.SetupRoutes(app, r, middleware.Session(roleResolver{}, "session"),
		func(api fiber.Router, r *apirouter.Router) error {
			RegisterWith(api, r, handler)
			return nil
		}))
	return app
}

func do(t *testing.T, app *fiber.App, method, path, token, body string) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestPublicProducts(t *testing.T) {
	repo := &basesvctest.FakeRepo[models.Product]{
		FindWithPaginationFn: func(context.Context, interface{}, basequery.PageSpec, basequery.SortSpec) ([]models.Product, int64, error) {
			return []models.Product{{Name: "Hat", IsActive: true}}, 51, nil
		},
	}
	app := newTestApp(t, repo)

	status, body := do(t, app, http.MethodGet, "/api/products?pageSize=999&page=-4&sort=price&order=ASC", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(50), body["pageSize"])
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(51), body["total"])
	assert.Equal(t, float64(2), body["totalPages"])
	assert.Len(t, body["data"], 1)
	assert.Equal(t, "price", repo.LastSort.Field)
	assert.False(t, repo.LastSort.Desc)
}

func TestPublicProduct_NotFound(t *testing.T) {
	app := newTestApp(t, &basesvctest.FakeRepo[models.Product]{})

	status, body := do(t, app, http.MethodGet, "/api/products/"+primitive.NewObjectID().Hex(), "", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "error", body["status"])

	status, _ = do(t, app, http.MethodGet, "/api/products/not-an-id", "", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAdminProducts_Create(t *testing.T) {
	repo := &basesvctest.FakeRepo[models.Product]{}
	app := newTestApp(t, repo)

	status, _ := do(t, app, http.MethodPost, "/api/admin/products", "", `{"name":"Hat","price":5}`)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := do(t, app, http.MethodPost, "/api/admin/products", "admin", `{"price":5}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Name is required", body["error"])

	status, _ = do(t, app, http.MethodPost, "/api/admin/products", "admin", `{"name":"Hat"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodPost, "/api/admin/products", "admin", `{not json`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 0, repo.Called("InsertOne"))

	status, body = do(t, app, http.MethodPost, "/api/admin/products", "admin", `{"name":"Straw Hat","price":5,"stock_quantity":2}`)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, body["ok"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "straw-hat", data["slug"])
}

func TestAdminProducts_Update(t *testing.T) {
	repo := &basesvctest.FakeRepo[models.Product]{
		UpdateByIdFn: func(_ context.Context, _ interface{}, set bson.M) (models.Product, error) {
			return models.Product{StockQuantity: set["stock_quantity"].(int64)}, nil
		},
	}
	app := newTestApp(t, repo)
	path := "/api/admin/products/" + primitive.NewObjectID().Hex()

	status, _ := do(t, app, http.MethodPatch, path, "admin", `{"unknown":1}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 0, repo.Called("UpdateById"))

	status, body := do(t, app, http.MethodPatch, path, "admin", `{"stock_quantity":-5}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["data"].(map[string]interface{})["stock_quantity"])

	status, _ = do(t, app, http.MethodPatch, "/api/admin/products/xyz", "admin", `{"name":"x"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAdminProducts_Delete(t *testing.T) {
	repo := &basesvctest.FakeRepo[models.Product]{}
	app := newTestApp(t, repo)

	status, body := do(t, app, http.MethodDelete, "/api/admin/products/"+primitive.NewObjectID().Hex(), "admin", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, 1, repo.Called("DeleteById"))
}
