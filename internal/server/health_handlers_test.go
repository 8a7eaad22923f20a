package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type healthBody struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
}

func getHealth(t *testing.T, app *fiber.App, path string) (int, healthBody) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var body healthBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	status, body := getHealth(t, ts.app, "/api/health")
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, body.Success)
	assert.Equal(t, "CraveConnect API is running", body.Message)
	assert.Equal(t, map[string]string{"database": "healthy", "redis": "healthy"}, body.Checks)

	status, body = getHealth(t, ts.app, "/health/ready")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "healthy", body.Status)
}

func TestHealthCheck_RedisDown(t *testing.T) {
	ts := newTestServer(t)
	ts.mr.Close()

	// Redis is optional for the API but required for readiness.
	status, body := getHealth(t, ts.app, "/api/health")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "unhealthy", body.Checks["redis"])

	status, body = getHealth(t, ts.app, "/health/ready")
	require.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "unhealthy", body.Status)
}

func TestHealthCheck_WithoutRedis(t *testing.T) {
	ts := newTestServer(t)
	srv, err := NewServerWithDeps(testConfig(), ts.db, nil)
	require.NoError(t, err)
	app := srv.App()

	status, body := getHealth(t, app, "/api/health")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "unavailable", body.Checks["redis"])

	status, _ = getHealth(t, app, "/health/ready")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
}

func TestHealthCheck_DatabaseDown(t *testing.T) {
	ts := newTestServer(t)
	sqlDB, err := ts.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	status, body := getHealth(t, ts.app, "/api/health")
	require.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.False(t, body.Success)
	assert.Equal(t, "unhealthy", body.Checks["database"])
}

func TestLivenessCheck(t *testing.T) {
	ts := newTestServer(t)

	status, body := getHealth(t, ts.app, "/health/live")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "up", body.Status)
}
