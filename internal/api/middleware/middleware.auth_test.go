package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	authmodels "jammshop/internal/api/auth/models"
	"jammshop/internal/common"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	actors map[string]*authmodels.Actor
	err    error
	seen   []string
}

func (s *stubResolver) Resolve(_ context.Context, token string) (*authmodels.Actor, error) {
	s.seen = append(s.seen, token)
	if s.err != nil {
		return nil, s.err
	}
	if a, ok := s.actors[token]; ok {
		return a, nil
	}
	return nil, common.ErrUnauthorized
}

func newGateApp(resolver SessionResolver, min authmodels.Role, reached *bool) *fiber.App {
	app := fiber.New()
	app.Use(Session(resolver, "session"))
	app.Use("/admin", RequireRole(min))
	app.Get("/admin/ping", func(c fiber.Ctx) error {
		*reached = true
		return c.JSON(fiber.Map{"id": ActorFrom(c).ID})
	})
	app.Get("/public", func(c fiber.Ctx) error {
		if a := ActorFrom(c); a != nil {
			return c.SendString(a.ID)
		}
		return c.SendString("anonymous")
	})
	return app
}

func readBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestRequireRole_NoSession(t *testing.T) {
	reached := false
	app := newGateApp(&stubResolver{}, authmodels.RoleAdmin, &reached)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized", readBody(t, resp)["error"])
	assert.False(t, reached)
}

func TestRequireRole_InsufficientRole(t *testing.T) {
	reached := false
	resolver := &stubResolver{actors: map[string]*authmodels.Actor{
		"tok-user": {ID: "u1", Role: authmodels.RoleUser},
	}}
	app := newGateApp(resolver, authmodels.RoleAdmin, &reached)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer tok-user")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized", readBody(t, resp)["error"])
	assert.False(t, reached)
}

func TestRequireRole_AdminViaCookie(t *testing.T) {
	reached := false
	resolver := &stubResolver{actors: map[string]*authmodels.Actor{
		"tok-admin": {ID: "a1", Role: authmodels.RoleAdmin},
	}}
	app := newGateApp(resolver, authmodels.RoleAdmin, &reached)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "tok-admin"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "a1", readBody(t, resp)["id"])
	assert.True(t, reached)
	assert.Equal(t, []string{"tok-admin"}, resolver.seen)
}

func TestSession_NeverRejects(t *testing.T) {
	reached := false
	app := newGateApp(&stubResolver{err: common.StoreError(errors.New("profiles unavailable"))}, authmodels.RoleAdmin, &reached)

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "anonymous", string(raw))
}

func TestRequireRole_StoreErrorSurfaces(t *testing.T) {
	reached := false
	app := newGateApp(&stubResolver{err: common.StoreError(errors.New("connection reset"))}, authmodels.RoleAdmin, &reached)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer tok-admin")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "connection reset", readBody(t, resp)["error"])
	assert.False(t, reached)

	// Token bị từ chối vẫn là 401
	app = newGateApp(&stubResolver{err: common.ErrUnauthorized}, authmodels.RoleAdmin, &reached)
	req = httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer expired")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, reached)
}

func TestCronSecret(t *testing.T) {
	app := fiber.New()
	app.Use("/cron", CronSecret("s3cret"))
	app.Get("/cron/job", func(c fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/cron/job?secret=nope", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/cron/job", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/cron/job?secret=s3cret", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCronSecret_EmptyConfigRejects(t *testing.T) {
	app := fiber.New()
	app.Use("/cron", CronSecret(""))
	app.Get("/cron/job", func(c fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/cron/job?secret=", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
