package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken(42, "manager")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		staffID, ok := StaffIDFromContext(c)
		require.True(t, ok)
		c.JSON(200, gin.H{"staffId": staffID, "role": c.GetString("role")})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"staffId":42`)
	assert.Contains(t, w.Body.String(), `"role":"manager"`)
}

func TestAuthMiddlewareRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		c.Status(200)
	})

	// No header
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Malformed token
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(role string) int {
		r := gin.New()
		r.GET("/gated",
			func(c *gin.Context) { c.Set("role", role) },
			RequireRoles("manager", "admin"),
			func(c *gin.Context) { c.Status(200) })
		req := httptest.NewRequest(http.MethodGet, "/gated", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, serve("manager"))
	assert.Equal(t, http.StatusOK, serve("admin"))
	assert.Equal(t, http.StatusForbidden, serve("server"))
	assert.Equal(t, http.StatusForbidden, serve(""))
}
