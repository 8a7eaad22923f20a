package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"craveconnect/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frontendOrigin = "http://localhost:5173"

// middlewareApp builds a bare app with only the global middleware chain and one route.
func middlewareApp(origins string) *fiber.App {
	srv := &Server{config: &config.Config{AllowedOrigins: origins}}
	app := fiber.New()
	srv.SetupMiddleware(app)
	app.Post("/api/recipes", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})
	return app
}

func sendFromOrigin(t *testing.T, app *fiber.App, method, origin string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, "/api/recipes", nil)
	req.Header.Set("Origin", origin)
	if method == http.MethodOptions {
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "authorization,content-type")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestSetupMiddleware_CORSOrigins(t *testing.T) {
	app := middlewareApp(frontendOrigin)

	allowed := sendFromOrigin(t, app, http.MethodPost, frontendOrigin)
	assert.Equal(t, fiber.StatusCreated, allowed.StatusCode)
	assert.Equal(t, frontendOrigin, allowed.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", allowed.Header.Get("Access-Control-Allow-Credentials"))

	foreign := sendFromOrigin(t, app, http.MethodPost, "https://evil.example")
	assert.Empty(t, foreign.Header.Get("Access-Control-Allow-Origin"))
}

func TestSetupMiddleware_SecurityHeaders(t *testing.T) {
	resp := sendFromOrigin(t, middlewareApp(frontendOrigin), http.MethodPost, frontendOrigin)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.NotEmpty(t, resp.Header.Get("X-Frame-Options"))
}

func TestSetupMiddleware_LimiterKeepsCORSAndEnvelope(t *testing.T) {
	app := middlewareApp(frontendOrigin)

	for i := 0; i < 100; i++ {
		resp := sendFromOrigin(t, app, http.MethodPost, frontendOrigin)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode, "request %d", i)
	}

	limited := sendFromOrigin(t, app, http.MethodPost, frontendOrigin)
	require.Equal(t, fiber.StatusTooManyRequests, limited.StatusCode)
	assert.Equal(t, frontendOrigin, limited.Header.Get("Access-Control-Allow-Origin"))

	var body envelope
	require.NoError(t, json.NewDecoder(limited.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "RATE_LIMITED", body.Code)

	// Preflights skip the limiter.
	preflight := sendFromOrigin(t, app, http.MethodOptions, frontendOrigin)
	assert.Equal(t, fiber.StatusNoContent, preflight.StatusCode)
	assert.Equal(t, frontendOrigin, preflight.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, preflight.Header.Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestSetupMiddleware_DefaultOriginsIncludeDevServers(t *testing.T) {
	app := middlewareApp("")
	for _, origin := range []string{"http://localhost:3000", frontendOrigin} {
		resp := sendFromOrigin(t, app, http.MethodPost, origin)
		assert.Equal(t, origin, resp.Header.Get("Access-Control-Allow-Origin"))
	}
}
