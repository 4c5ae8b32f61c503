package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"saathi/internal/config"
	"saathi/internal/models"
	"saathi/internal/repository/repotest"
	"saathi/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type testEnv struct {
	server      *Server
	app         *fiber.App
	users       *repotest.Users
	communities *repotest.Communities
}

func newTestEnv(t *testing.T, deps Dependencies) *testEnv {
	t.Helper()
	if deps.Store == nil {
		deps.Store = stubPinger{}
	}
	if deps.Users == nil {
		deps.Users = repotest.NewUsers()
	}
	if deps.Communities == nil {
		deps.Communities = repotest.NewCommunities()
	}
	deps.Clock = service.FixedClock(time.Date(2025, 4, 3, 18, 33, 0, 0, time.UTC), time.UTC)

	s, err := NewServer(&config.Config{Env: "test", FeatureFlags: "search_sort_before_limit=false"}, deps)
	require.NoError(t, err)

	env := &testEnv{server: s, app: s.App()}
	env.users, _ = deps.Users.(*repotest.Users)
	env.communities, _ = deps.Communities.(*repotest.Communities)
	return env
}

// do sends a request and decodes the JSON response body.
func (e *testEnv) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return resp.StatusCode, out
}

func TestRoot(t *testing.T) {
	env := newTestEnv(t, Dependencies{})

	status, body := env.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Server is live!", body["message"])
}

func TestHealthChecks(t *testing.T) {
	t.Run("liveness", func(t *testing.T) {
		env := newTestEnv(t, Dependencies{})
		status, body := env.do(t, http.MethodGet, "/health/live", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "up", body["status"])
	})

	t.Run("ready without redis", func(t *testing.T) {
		env := newTestEnv(t, Dependencies{})
		status, body := env.do(t, http.MethodGet, "/health/ready", nil)
		assert.Equal(t, http.StatusOK, status)
		checks := body["checks"].(map[string]any)
		assert.Equal(t, "healthy", checks["database"])
		assert.Equal(t, "disabled", checks["redis"])
	})

	t.Run("ready with redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })

		env := newTestEnv(t, Dependencies{Redis: rdb})
		status, body := env.do(t, http.MethodGet, "/health/ready", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "healthy", body["checks"].(map[string]any)["redis"])
	})

	t.Run("database down", func(t *testing.T) {
		env := newTestEnv(t, Dependencies{Store: stubPinger{err: errors.New("no primary")}})
		status, body := env.do(t, http.MethodGet, "/health/ready", nil)
		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.Equal(t, "unhealthy", body["status"])
		assert.Equal(t, "unhealthy", body["checks"].(map[string]any)["database"])
	})

	t.Run("redis down", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })
		mr.Close()

		env := newTestEnv(t, Dependencies{Redis: rdb})
		status, _ := env.do(t, http.MethodGet, "/health/ready", nil)
		assert.Equal(t, http.StatusServiceUnavailable, status)
	})
}

func TestErrorHandler(t *testing.T) {
	env := newTestEnv(t, Dependencies{})
	env.app.Get("/boom", func(c *fiber.Ctx) error {
		panic("boom")
	})
	env.app.Get("/plain", func(c *fiber.Ctx) error {
		return errors.New("something odd")
	})
	env.app.Get("/typed", func(c *fiber.Ctx) error {
		return models.NewConflictError("Already there")
	})

	t.Run("unknown route keeps its status", func(t *testing.T) {
		status, body := env.do(t, http.MethodGet, "/nope", nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Contains(t, body["detail"], "/nope")
	})

	t.Run("panic is a bad request", func(t *testing.T) {
		status, body := env.do(t, http.MethodGet, "/boom", nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "boom", body["detail"])
	})

	t.Run("unclassified error is a bad request", func(t *testing.T) {
		status, body := env.do(t, http.MethodGet, "/plain", nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "something odd", body["detail"])
	})

	t.Run("app error is mapped", func(t *testing.T) {
		status, body := env.do(t, http.MethodGet, "/typed", nil)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, models.CodeConflict, body["code"])
	})
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		kind string
		want int
	}{
		{models.CodeNotFound, http.StatusNotFound},
		{models.CodeConflict, http.StatusConflict},
		{models.CodeValidation, http.StatusBadRequest},
		{models.CodeUnauthorized, http.StatusUnauthorized},
		{models.CodeStorageUnavailable, http.StatusServiceUnavailable},
		{models.CodeInternal, http.StatusInternalServerError},
		{"", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.kind))
		})
	}
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t, Dependencies{})

	req := httptest.NewRequest(http.MethodOptions, "/user/signup", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
}

func TestRequestHeaders(t *testing.T) {
	env := newTestEnv(t, Dependencies{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Correlation-ID", "corr-1")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, "corr-1", resp.Header.Get("X-Correlation-ID"))
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}
