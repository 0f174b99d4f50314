package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsByRoutePattern(t *testing.T) {
	Init()
	Init()

	app := fiber.New()
	app.Use(Middleware())
	app.Get("/items/:id", func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/metrics", Handler())

	before := testutil.ToFloat64(HTTPRequests.WithLabelValues(http.MethodGet, "/items/:id", "204"))
	for _, p := range []string{"/items/1", "/items/2"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, p, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	}
	after := testutil.ToFloat64(HTTPRequests.WithLabelValues(http.MethodGet, "/items/:id", "204"))
	assert.Equal(t, before+2, after)

	AnalyticsEvents.Inc()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "jammshop_http_requests_total")
	assert.Contains(t, string(raw), "jammshop_analytics_events_total")
}
