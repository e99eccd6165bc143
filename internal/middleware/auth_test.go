package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eduboost_backend/internal/config"
	"eduboost_backend/internal/model"
	"eduboost_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-test-secret"

func tokenFor(t *testing.T, role model.UserRole) string {
	t.Helper()
	u := &model.User{Role: role, Email: string(role) + "@example.com"}
	u.ID = "user-" + string(role)
	tok, err := util.GenerateJWT(u, secret, time.Hour)
	require.NoError(t, err)
	return tok
}

func educatorRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWT: config.JWTConfig{Secret: secret}}
	r := gin.New()
	g := r.Group("/api", AuthMiddleware(cfg))
	g.GET("/me", func(c *gin.Context) { util.Success(c, util.GetUserFromContext(c).UserID) })
	g.GET("/staff", RoleMiddleware(model.Educator), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func get(r http.Handler, path, token string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestAuthMiddleware(t *testing.T) {
	r := educatorRouter()

	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/me", ""))
	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/me", "garbage"))
	assert.Equal(t, http.StatusOK, get(r, "/api/me", tokenFor(t, model.Student)))
	assert.Equal(t, http.StatusOK, get(r, "/api/me?token="+tokenFor(t, model.Student), ""))
}

func TestRoleMiddleware(t *testing.T) {
	r := educatorRouter()

	assert.Equal(t, http.StatusForbidden, get(r, "/api/staff", tokenFor(t, model.Student)))
	assert.Equal(t, http.StatusOK, get(r, "/api/staff", tokenFor(t, model.Educator)))
	assert.Equal(t, http.StatusOK, get(r, "/api/staff", tokenFor(t, model.Admin)))
}

type seenRecorder struct{ ids chan string }

func (s *seenRecorder) UpdateLastSeen(userID string) error {
	s.ids <- userID
	return nil
}

func TestActivityMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := &seenRecorder{ids: make(chan string, 1)}
	cfg := &config.Config{JWT: config.JWTConfig{Secret: secret}}
	r := gin.New()
	r.GET("/ping", AuthMiddleware(cfg), ActivityMiddleware(rec), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, get(r, "/ping", tokenFor(t, model.Student)))
	select {
	case id := <-rec.ids:
		assert.Equal(t, "user-student", id)
	case <-time.After(time.Second):
		t.Fatal("last seen not updated")
	}
}
