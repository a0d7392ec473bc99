package models

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"Not Found", NewNotFoundError("Post", uint(1)), http.StatusNotFound},
		{"Gorm Record Not Found", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"Validation", NewValidationError("Title is required"), http.StatusBadRequest},
		{"Unauthorized", NewUnauthorizedError("Invalid credentials"), http.StatusUnauthorized},
		{"Forbidden", NewForbiddenError("You do not own this post"), http.StatusForbidden},
		{"Internal", NewInternalError(errors.New("boom")), http.StatusInternalServerError},
		{"Plain Error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, StatusForError(tt.err))
		})
	}
}

func TestRespondWithAppError(t *testing.T) {
	handler := func(err error) func(*fiber.Ctx) error {
		return func(c *fiber.Ctx) error {
			return RespondWithAppError(c, err)
		}
	}

	t.Run("Not Found Carries Code", func(t *testing.T) {
		app := fiber.New()
		app.Get("/", handler(NewNotFoundError("Post", uint(7))))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var body ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, CodeNotFound, body.Code)
		assert.Equal(t, "Post with ID 7 not found", body.Error)
	})

	t.Run("Internal Error Hides Cause", func(t *testing.T) {
		cause := errors.New(`pq: duplicate key value violates unique constraint "idx_username_post"`)
		app := fiber.New()
		app.Get("/", handler(NewInternalError(cause)))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "pq:")
		assert.NotContains(t, string(raw), "idx_username_post")

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, CodeInternal, body.Code)
		assert.Equal(t, "Internal server error", body.Error)
	})
}
