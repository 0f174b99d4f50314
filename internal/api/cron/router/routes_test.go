package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"jammshop/config"
	brandsvc "jammshop/internal/api/brand/service"
	cronhdl "jammshop/internal/api/cron/handler"
	dealsvc "jammshop/internal/api/deal/service"
	apirouter "jammshop/internal/api/router"
	extsync "jammshop/internal/sync"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jobs struct {
	dealRuns int
	dealErr  error
}

func (j *jobs) Refresh(context.Context) (dealsvc.RefreshResult, error) {
	j.dealRuns++
	return dealsvc.RefreshResult{Ranked: 4, RefreshedAt: 1700000000000}, j.dealErr
}

func (j *jobs) RefreshProductCounts(context.Context) (brandsvc.RefreshResult, error) {
	return brandsvc.RefreshResult{Brands: 3, Updated: 2}, nil
}

func (j *jobs) Run(context.Context) (extsync.Result, error) {
	return extsync.Result{Processed: 5, Updated: 4, Failed: 1}, nil
}

func newTestApp(t *testing.T, secret string, j *jobs) *fiber.App {
	t.Helper()
	app := fiber.New()
	r := apirouter.NewRouter(app, &config.Configuration{CronSecret: secret})
	handler := cronhdl.NewCronHandlerWith(j, j, j)
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

func TestCron_SecretGate(t *testing.T) {
	j := &jobs{}
	app := newTestApp(t, "s3cret", j)

	for _, path := range []string{
		"/api/cron/refresh-deals",
		"/api/cron/refresh-deals?secret=wrong",
		"/api/cron/sync-external?secret=",
	} {
		status, body := get(t, app, path)
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.Equal(t, "Unauthorized", body["error"], path)
	}
	assert.Zero(t, j.dealRuns)
}

func TestCron_NoSecretConfigured(t *testing.T) {
	j := &jobs{}
	app := newTestApp(t, "", j)

	status, _ := get(t, app, "/api/cron/refresh-deals?secret=")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Zero(t, j.dealRuns)
}

func TestCron_Jobs(t *testing.T) {
	j := &jobs{}
	app := newTestApp(t, "s3cret", j)

	status, body := get(t, app, "/api/cron/refresh-deals?secret=s3cret")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, float64(4), body["ranked"])
	assert.Equal(t, 1, j.dealRuns)

	status, body = get(t, app, "/api/cron/refresh-brands?secret=s3cret")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["updated"])

	status, body = get(t, app, "/api/cron/sync-external?secret=s3cret")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]interface{}{"ok": true, "processed": float64(5), "updated": float64(4), "failed": float64(1)}, body)
}

func TestCron_StoreErrorPassesThrough(t *testing.T) {
	j := &jobs{dealErr: errors.New("aggregate failed")}
	app := newTestApp(t, "s3cret", j)

	status, body := get(t, app, "/api/cron/refresh-deals?secret=s3cret")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "aggregate failed", body["error"])
}
