package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"craveconnect/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- humanizeParam (pure function, no HTTP) ---

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param    string
		expected string
	}{
		{"id", "ID"},
		{"userId", "user ID"},
		{"recipeId", "recipe ID"},
		{"commentId", "comment ID"},
		{"cookOffId", "cook off ID"},
		{"something", "something"},
	}
	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			assert.Equal(t, tt.expected, humanizeParam(tt.param))
		})
	}
}

// --- parsePagination ---

func paginationApp() *fiber.App {
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		p := parsePagination(c, 12)
		return c.JSON(fiber.Map{"page": p.Page, "limit": p.Limit, "offset": p.Offset})
	})
	return app
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query  string
		page   float64
		limit  float64
		offset float64
	}{
		{"", 1, 12, 0},
		{"?page=3&limit=10", 3, 10, 20},
		{"?page=0&limit=-5", 1, 12, 0},
		{"?limit=500", 1, 100, 0},
		{"?page=abc", 1, 12, 0},
	}

	app := paginationApp()
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items"+tt.query, nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			var body map[string]float64
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.page, body["page"])
			assert.Equal(t, tt.limit, body["limit"])
			assert.Equal(t, tt.offset, body["offset"])
		})
	}
}

func TestPaginationMeta(t *testing.T) {
	p := Pagination{Page: 2, Limit: 10, Offset: 10}

	assert.Equal(t, &PageMeta{Page: 2, Limit: 10, Total: 25, Pages: 3}, p.Meta(25))
	assert.Equal(t, int64(2), p.Meta(20).Pages)
	assert.Equal(t, int64(0), p.Meta(0).Pages)
}

// --- parseID ---

func idApp() *fiber.App {
	app := fiber.New()
	app.Get("/items/:recipeId", func(c *fiber.Ctx) error {
		id, err := parseID(c, "recipeId")
		if err != nil {
			return nil
		}
		return c.JSON(fiber.Map{"id": id})
	})
	return app
}

func TestParseID(t *testing.T) {
	app := idApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items/42", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	for _, raw := range []string{"abc", "0", "-3"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items/"+raw, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, raw)

		var body models.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		_ = resp.Body.Close()
		assert.Equal(t, "Invalid recipe ID", body.Message)
		assert.Equal(t, models.CodeValidation, body.Code)
	}
}

// --- respondError ---

func TestRespondError_MapsCategories(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{models.NewValidationError("Bad input"), http.StatusBadRequest, "Bad input"},
		{models.NewForbiddenError("Nope"), http.StatusForbidden, "Nope"},
		{models.NewNotFoundError("Recipe", 9), http.StatusNotFound, "Recipe with ID 9 not found"},
		{models.NewConflictError("Taken"), http.StatusConflict, "Taken"},
		{models.NewInternalError(errors.New("pq: relation missing")), http.StatusInternalServerError, "Internal server error"},
		{errors.New("raw driver failure"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return respondError(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.status, resp.StatusCode)
			var body models.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}
