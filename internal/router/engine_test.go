package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyb-mobile-app/hyb-api/config"
	"github.com/hyb-mobile-app/hyb-api/internal/container"
	"github.com/hyb-mobile-app/hyb-api/pkg/helpers"
)

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		CurrentPage int  `json:"currentPage"`
		TotalPages  int  `json:"totalPages"`
		TotalUsers  int  `json:"totalUsers"`
		HasNextPage bool `json:"hasNextPage"`
		HasPrevPage bool `json:"hasPrevPage"`
	} `json:"pagination"`
	Errors []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
	Error string `json:"error"`
	User  *struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
	Token string `json:"token"`
}

type postBody struct {
	ID        string   `json:"id"`
	Content   string   `json:"content"`
	Likes     []string `json:"likes"`
	LikeCount int      `json:"likeCount"`
	LikedByMe bool     `json:"likedByMe"`
	Comments  []struct {
		ID      string `json:"id"`
		Content string `json:"content"`
	} `json:"comments"`
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		AppName:            "hyb-api",
		Env:                "test",
		StoreDriver:        "memory",
		JWTSecret:          "test-secret",
		JWTTTL:             time.Hour,
		CORSAllowedOrigins: "*",
		AvatarMaxBytes:     1 << 20,
	}
	c := container.NewMemory(cfg, helpers.NewLogger(cfg.AppName, cfg.Env))
	return NewEngine(c)
}

func do(t *testing.T, r http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func register(t *testing.T, r http.Handler, name, email string) (id, token string) {
	t.Helper()
	w, env := do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{"name": name, "email": email, "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, env.User)
	return env.User.ID, env.Token
}

func TestHealth(t *testing.T) {
	r := newTestEngine(t)
	w, env := do(t, r, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Server is running", env.Message)
}

func TestUnknownRoute(t *testing.T) {
	r := newTestEngine(t)
	w, env := do(t, r, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Route not found", env.Message)
}

func TestRegisterThenLogin(t *testing.T) {
	r := newTestEngine(t)

	w, env := do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{"name": "Ann", "email": "A@X.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, env.Success)
	assert.Equal(t, "Registration successful", env.Message)
	require.NotNil(t, env.User)
	assert.Equal(t, "a@x.com", env.User.Email)
	assert.NotEmpty(t, env.Token)
	assert.NotContains(t, w.Body.String(), "password")

	w, env = do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{"name": "Ann", "email": "a@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "User with this email already exists", env.Message)

	w, env = do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Login successful", env.Message)
	token := env.Token
	require.NotEmpty(t, token)

	w, env = do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "a@x.com", "password": "wrong-one"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", env.Message)

	w, env = do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "nobody@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", env.Message)

	w, env = do(t, r, http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Profile retrieved successfully", env.Message)
	require.NotNil(t, env.User)
	assert.Equal(t, "a@x.com", env.User.Email)
	assert.Empty(t, env.Data)
	assert.Empty(t, env.Token)

	w, env = do(t, r, http.MethodPut, "/api/auth/profile", token, gin.H{"name": "Annie"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Profile updated successfully", env.Message)
	require.NotNil(t, env.User)
	assert.Equal(t, "Annie", env.User.Name)
	assert.Equal(t, "a@x.com", env.User.Email)
}

func TestRegisterValidation(t *testing.T) {
	r := newTestEngine(t)

	w, env := do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{"name": "A", "email": "not-an-email", "password": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	fields := map[string]bool{}
	for _, e := range env.Errors {
		fields[e.Field] = true
	}
	assert.True(t, fields["name"])
	assert.True(t, fields["email"])
	assert.True(t, fields["password"])

	w, _ = do(t, r, http.MethodPost, "/api/auth/register", "", "{broken")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRoutesRejectBadTokens(t *testing.T) {
	r := newTestEngine(t)

	w, env := do(t, r, http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Access token is required", env.Message)

	w, env = do(t, r, http.MethodGet, "/api/auth/profile", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", env.Message)

	w, _ = do(t, r, http.MethodPost, "/api/status", "", gin.H{"content": "hi"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUsersCreateListGet(t *testing.T) {
	r := newTestEngine(t)

	for i := 0; i < 12; i++ {
		w, _ := do(t, r, http.MethodPost, "/api/users/create", "", gin.H{
			"name": fmt.Sprintf("User %02d", i), "email": fmt.Sprintf("u%02d@x.com", i), "password": "secret1",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w, env := do(t, r, http.MethodPost, "/api/users/create", "", gin.H{"name": "Dup", "email": "u00@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "DUPLICATE_EMAIL", env.Error)

	w, env = do(t, r, http.MethodGet, "/api/users/list?page=2&limit=5", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var users []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &users))
	assert.Len(t, users, 5)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 2, env.Pagination.CurrentPage)
	assert.Equal(t, 3, env.Pagination.TotalPages)
	assert.Equal(t, 12, env.Pagination.TotalUsers)
	assert.True(t, env.Pagination.HasNextPage)
	assert.True(t, env.Pagination.HasPrevPage)

	// defaults and clamping
	w, env = do(t, r, http.MethodGet, "/api/users/list?page=0&limit=-3", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, env.Pagination.CurrentPage)
	assert.Equal(t, 2, env.Pagination.TotalPages)

	id, ok := users[0]["id"].(string)
	require.True(t, ok)
	w, env = do(t, r, http.MethodGet, "/api/users/"+id, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User retrieved successfully", env.Message)

	w, env = do(t, r, http.MethodGet, "/api/users/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid user ID format", env.Message)

	w, env = do(t, r, http.MethodGet, "/api/users/7f1d6c9e-8d5b-4c36-9f2e-0a3b9b8f1a11", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", env.Message)
}

func TestUsersSearchWithoutIndex(t *testing.T) {
	r := newTestEngine(t)
	w, env := do(t, r, http.MethodGet, "/api/users/search?q=ann", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "Service unavailable", env.Message)
}

func TestFeedFlow(t *testing.T) {
	r := newTestEngine(t)
	_, ann := register(t, r, "Ann", "ann@x.com")
	_, bob := register(t, r, "Bob", "bob@x.com")

	w, env := do(t, r, http.MethodPost, "/api/status", ann, gin.H{"content": "hello"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var post postBody
	require.NoError(t, json.Unmarshal(env.Data, &post))
	assert.Equal(t, "hello", post.Content)
	assert.Empty(t, post.Likes)

	w, _ = do(t, r, http.MethodPost, "/api/status", ann, gin.H{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// liking twice leaves one like
	for i := 0; i < 2; i++ {
		w, env = do(t, r, http.MethodPost, "/api/like", bob, gin.H{"statusId": post.ID})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Status liked", env.Message)
	}
	require.NoError(t, json.Unmarshal(env.Data, &post))
	assert.Equal(t, 1, post.LikeCount)
	assert.True(t, post.LikedByMe)

	w, env = do(t, r, http.MethodGet, "/api/status/"+post.ID, ann, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &post))
	assert.False(t, post.LikedByMe)

	w, env = do(t, r, http.MethodDelete, "/api/like", bob, gin.H{"statusId": post.ID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Status unliked", env.Message)
	require.NoError(t, json.Unmarshal(env.Data, &post))
	assert.Equal(t, 0, post.LikeCount)

	w, env = do(t, r, http.MethodPost, "/api/comment", bob, gin.H{"statusId": post.ID, "content": "nice"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Comment added successfully", env.Message)
	require.NoError(t, json.Unmarshal(env.Data, &post))
	require.Len(t, post.Comments, 1)
	commentID := post.Comments[0].ID

	w, env = do(t, r, http.MethodDelete, "/api/comment/"+commentID, ann, gin.H{"statusId": post.ID})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = do(t, r, http.MethodDelete, "/api/comment/"+commentID, bob, gin.H{"statusId": post.ID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Comment deleted successfully", env.Message)

	w, env = do(t, r, http.MethodGet, "/api/status", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var feed []postBody
	require.NoError(t, json.Unmarshal(env.Data, &feed))
	require.Len(t, feed, 1)
	assert.Empty(t, feed[0].Comments)

	w, _ = do(t, r, http.MethodDelete, "/api/status/"+post.ID, ann, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, r, http.MethodGet, "/api/status/"+post.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Status not found", env.Message)

	w, env = do(t, r, http.MethodPost, "/api/like", bob, gin.H{"statusId": post.ID})
	assert.Equal(t, http.StatusNotFound, w.Code)

}
