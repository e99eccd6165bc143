package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/api/modules", ok)
	r.GET("/api/health", ok)
	return r
}

func do(r http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORSAllowsListedOrigin(t *testing.T) {
	r := newRouter(CORS([]string{"http://localhost:3000/"}))

	w := do(r, http.MethodGet, "/api/modules", map[string]string{"Origin": "http://localhost:3000"})
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, http.MethodGet, "/api/modules", map[string]string{"Origin": "http://evil.example"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSWildcardAndPreflight(t *testing.T) {
	r := newRouter(CORS([]string{"*"}))
	r.OPTIONS("/api/modules", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, http.MethodOptions, "/api/modules", map[string]string{"Origin": "http://any.example"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://any.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSecureHeaders(t *testing.T) {
	w := do(newRouter(Secure()), http.MethodGet, "/api/modules", nil)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestRateLimiterBlocksBurst(t *testing.T) {
	r := newRouter(RateLimiter(2, time.Hour))

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/modules", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/modules", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodGet, "/api/modules", nil).Code)

	// 健康检查不受限流影响
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/health", nil).Code)
}
