package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ml_billing/internal/registry"
	"ml_billing/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func newRouter(users RoleChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", JWTAuthMiddleware(secret), func(c *gin.Context) {
		id, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	r.GET("/admin", JWTAuthMiddleware(secret), AdminOnlyMiddleware(users), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := newRouter(registry.New(8))

	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", "garbage").Code)

	token, err := utils.GenerateJWT(5, "user", secret)
	require.NoError(t, err)
	w := do(r, "/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":5}`, w.Body.String())
}

func TestAdminOnlyMiddleware(t *testing.T) {
	users := registry.New(8)
	plain, err := users.Create("user@b.io", "password123")
	require.NoError(t, err)
	admin, err := users.Create("admin@b.io", "password123")
	require.NoError(t, err)
	require.NoError(t, users.Promote(admin.ID))
	r := newRouter(users)

	plainToken, err := utils.GenerateJWT(plain.ID, plain.Role, secret)
	require.NoError(t, err)
	// the role claim is ignored; the registry is the source of truth
	forgedToken, err := utils.GenerateJWT(plain.ID, "admin", secret)
	require.NoError(t, err)
	adminToken, err := utils.GenerateJWT(admin.ID, "user", secret)
	require.NoError(t, err)
	ghostToken, err := utils.GenerateJWT(99, "admin", secret)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, do(r, "/admin", plainToken).Code)
	assert.Equal(t, http.StatusForbidden, do(r, "/admin", forgedToken).Code)
	assert.Equal(t, http.StatusForbidden, do(r, "/admin", ghostToken).Code)
	assert.Equal(t, http.StatusNoContent, do(r, "/admin", adminToken).Code)
}
