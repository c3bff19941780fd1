package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"marketplace_backend/internal/auth"
	"marketplace_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(tokens *auth.TokenManager, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(tokens)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		role, _ := GetRole(c)
		c.JSON(http.StatusOK, gin.H{"userId": GetUserID(c), "role": role})
	})
	r.GET("/me", handlers...)
	return r
}

func doGet(r http.Handler, target, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	r := newAuthRouter(tokens)

	token, err := tokens.GenerateToken("user-1", models.UserRoleBrand)
	require.NoError(t, err)

	t.Run("bearer header", func(t *testing.T) {
		w := doGet(r, "/me", token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"userId":"user-1"`)
		assert.Contains(t, w.Body.String(), `"role":"brand"`)
	})

	t.Run("query parameter", func(t *testing.T) {
		w := doGet(r, "/me?token="+token, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing", func(t *testing.T) {
		w := doGet(r, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "No token provided")
	})

	t.Run("tampered", func(t *testing.T) {
		admin, err := tokens.GenerateToken("user-1", models.UserRoleAdmin)
		require.NoError(t, err)
		// Admin claims under the brand token's signature.
		parts, forged := strings.Split(token, "."), strings.Split(admin, ".")
		w := doGet(r, "/me", parts[0]+"."+forged[1]+"."+parts[2])
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
	})

	t.Run("other secret", func(t *testing.T) {
		foreign, err := auth.NewTokenManager("other", time.Hour).GenerateToken("user-1", models.UserRoleAdmin)
		require.NoError(t, err)
		w := doGet(r, "/me", foreign)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired", func(t *testing.T) {
		expired, err := auth.NewTokenManager("secret", -time.Minute).GenerateToken("user-1", models.UserRoleBrand)
		require.NoError(t, err)
		w := doGet(r, "/me", expired)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
	})
}

func TestRequireRoles(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	r := newAuthRouter(tokens, RequireRoles(models.UserRoleBrand, models.UserRoleAdmin))

	brand, err := tokens.GenerateToken("b", models.UserRoleBrand)
	require.NoError(t, err)
	influencer, err := tokens.GenerateToken("i", models.UserRoleInfluencer)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, doGet(r, "/me", brand).Code)

	w := doGet(r, "/me", influencer)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid user role for this operation")
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := doGet(r, "/", "")
	assert.Len(t, w.Header().Get(requestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, strings.Repeat("x", 65))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, strings.Repeat("x", 65), w.Header().Get(requestIDHeader))
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.example.com"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
