package basehdl

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jammshop/internal/common"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorBody(t *testing.T) {
	status, body := ErrorBody(common.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Not found", body["error"])
	assert.Equal(t, "error", body["status"])
	assert.NotContains(t, body, "details")

	status, body = ErrorBody(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "boom", body["error"])
	assert.Equal(t, common.ErrCodeInternalServer.Code, body["code"])
}

func call(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestSafeHandler_RecoversPanic(t *testing.T) {
	app := fiber.New()
	app.Get("/boom", func(c fiber.Ctx) error {
		return SafeHandler(c, func() error { panic("kaboom") })
	})

	status, body := call(t, app, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, body["error"], "kaboom")
}

func TestParseBodyMap(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c fiber.Ctx) error {
		m, err := ParseBodyMap(c)
		if err != nil {
			return HandleError(c, err)
		}
		return HandleOK(c, fiber.Map{"n": len(m)})
	})

	status, body := call(t, app, http.MethodPost, "/", `{"a":1,"b":2}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, float64(2), body["n"])

	for _, bad := range []string{"", "{", "null"} {
		status, body = call(t, app, http.MethodPost, "/", bad)
		assert.Equal(t, http.StatusBadRequest, status, bad)
		assert.Equal(t, common.MsgInvalidBody, body["error"], bad)
	}
}

func TestParseObjectIDParam(t *testing.T) {
	app := fiber.New()
	app.Get("/:id", func(c fiber.Ctx) error {
		id, err := ParseObjectIDParam(c, "id")
		if err != nil {
			return HandleError(c, err)
		}
		return HandleData(c, id.Hex())
	})

	status, _ := call(t, app, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := call(t, app, http.MethodGet, "/65a1b2c3d4e5f60718293a4b", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "65a1b2c3d4e5f60718293a4b", body["data"])
}
