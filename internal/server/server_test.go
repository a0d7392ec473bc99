package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newIntegrationServer spins up the full route surface over an in-memory
// SQLite database and no Redis. Each call gets a fresh schema.
func newIntegrationServer(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	cfg := &config.Config{
		Env:       "test",
		Port:      "8460",
		JWTSecret: "integration-test-secret-32-chars!!",
	}
	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return models.RespondWithAppError(c, err)
		},
	})
	s.SetupRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, url, token string, body any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var result map[string]json.RawMessage
	_ = json.NewDecoder(resp.Body).Decode(&result)
	return resp, result
}

func signupAndLogin(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	resp, result := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "Password123!abc",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var token string
	require.NoError(t, json.Unmarshal(result["token"], &token))
	require.NotEmpty(t, token)
	return token
}

func TestIntegration_PostLifecycle(t *testing.T) {
	app := newIntegrationServer(t)
	alice := signupAndLogin(t, app, "alice")
	bob := signupAndLogin(t, app, "bob")

	// Alice publishes a post
	resp, result := doJSON(t, app, http.MethodPost, "/api/posts", alice, map[string]any{
		"title":   "Hello World",
		"content": "My first post",
		"tags":    []string{"intro"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// The creation response is the post object itself
	var created models.Post
	respBody, _ := json.Marshal(result)
	require.NoError(t, json.Unmarshal(respBody, &created))
	require.NotZero(t, created.ID)
	assert.Equal(t, "alice", created.Author)

	postURL := fmt.Sprintf("/api/posts/%d", created.ID)

	// Anyone can read it, logged in or not
	resp, _ = doJSON(t, app, http.MethodGet, postURL, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Bob cannot touch it
	resp, _ = doJSON(t, app, http.MethodPut, postURL, bob, map[string]string{"title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodDelete, postURL, bob, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Alice updates only the title; content survives
	resp, result = doJSON(t, app, http.MethodPut, postURL, alice, map[string]string{"title": "Hello Again"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Post
	respBody, _ = json.Marshal(result)
	require.NoError(t, json.Unmarshal(respBody, &updated))
	assert.Equal(t, "Hello Again", updated.Title)
	assert.Equal(t, "My first post", updated.Content)
	assert.Equal(t, "alice", updated.Author)

	// Anonymous writes are rejected before any store is touched
	resp, _ = doJSON(t, app, http.MethodPost, "/api/posts", "", map[string]string{
		"title": "Nope", "content": "Nope",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Alice deletes her post; it stops resolving
	resp, _ = doJSON(t, app, http.MethodDelete, postURL, alice, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodGet, postURL, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIntegration_CommentsFlow(t *testing.T) {
	app := newIntegrationServer(t)
	alice := signupAndLogin(t, app, "alice")
	bob := signupAndLogin(t, app, "bob")

	resp, result := doJSON(t, app, http.MethodPost, "/api/posts", alice, map[string]string{
		"title": "Discuss", "content": "Thoughts?",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var post models.Post
	respBody, _ := json.Marshal(result)
	require.NoError(t, json.Unmarshal(respBody, &post))

	commentsURL := fmt.Sprintf("/api/posts/%d/comments", post.ID)

	// Empty thread reads as an empty array
	req := httptest.NewRequest(http.MethodGet, commentsURL, nil)
	resp2, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp2.Body.Close() }()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp2.Body)
	assert.JSONEq(t, "[]", buf.String())

	// Bob comments on Alice's post
	resp, _ = doJSON(t, app, http.MethodPost, commentsURL, bob, map[string]string{"content": "Interesting"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Commenting on a missing post is rejected and nothing is stored
	resp, _ = doJSON(t, app, http.MethodPost, "/api/posts/9999/comments", bob, map[string]string{"content": "Void"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The post's comment count reflects the stored comment
	resp, result = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%d", post.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched models.Post
	respBody, _ = json.Marshal(result)
	require.NoError(t, json.Unmarshal(respBody, &fetched))
	assert.Equal(t, 1, fetched.CommentsCount)
}

func TestIntegration_BookmarkOscillation(t *testing.T) {
	app := newIntegrationServer(t)
	alice := signupAndLogin(t, app, "alice")
	reader := signupAndLogin(t, app, "reader")

	resp, result := doJSON(t, app, http.MethodPost, "/api/posts", alice, map[string]string{
		"title": "Keeper", "content": "Worth saving",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var post models.Post
	respBody, _ := json.Marshal(result)
	require.NoError(t, json.Unmarshal(respBody, &post))

	listIDs := func(token string) []uint {
		resp, result := doJSON(t, app, http.MethodGet, "/api/bookmarks/ids", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var ids []uint
		require.NoError(t, json.Unmarshal(result["post_ids"], &ids))
		return ids
	}

	payload := map[string]uint{"post_id": post.ID}

	// add, add, remove, remove, add converges to {post}
	resp, _ = doJSON(t, app, http.MethodPost, "/api/bookmarks/add", reader, payload)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []uint{post.ID}, listIDs(reader))

	resp, _ = doJSON(t, app, http.MethodPost, "/api/bookmarks/add", reader, payload)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []uint{post.ID}, listIDs(reader))

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/bookmarks/remove", reader, payload)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, listIDs(reader))

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/bookmarks/remove", reader, payload)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, listIDs(reader))

	resp, _ = doJSON(t, app, http.MethodPost, "/api/bookmarks/add", reader, payload)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []uint{post.ID}, listIDs(reader))

	// Bookmark sets are per user; alice's is untouched
	assert.Empty(t, listIDs(alice))

	// Deleting the post leaves a dangling reference that resolve skips
	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/posts/%d", post.ID), alice, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/bookmarks/posts", nil)
	req.Header.Set("Authorization", "Bearer "+reader)
	resp3, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp3.Body.Close() }()
	require.Equal(t, http.StatusOK, resp3.StatusCode)
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp3.Body)
	assert.JSONEq(t, "[]", buf.String())

	// The id set still contains the dangling reference until removed
	assert.Equal(t, []uint{post.ID}, listIDs(reader))
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/bookmarks/remove", reader, payload)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, listIDs(reader))
}

func TestIntegration_Me(t *testing.T) {
	app := newIntegrationServer(t)
	token := signupAndLogin(t, app, "alice")

	resp, result := doJSON(t, app, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var username string
	require.NoError(t, json.Unmarshal(result["username"], &username))
	assert.Equal(t, "alice", username)
	// Password hash must never leak in responses
	assert.NotContains(t, result, "password")

	resp, result = doJSON(t, app, http.MethodPut, "/api/me", token,
		map[string]string{"bio": "gardener and essayist"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, result = doJSON(t, app, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var bio string
	require.NoError(t, json.Unmarshal(result["bio"], &bio))
	assert.Equal(t, "gardener and essayist", bio)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
