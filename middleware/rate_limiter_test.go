package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tawatchai-03/clinic-frontend/config"
)

func rateLimitedRouter(t *testing.T, perMin int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	prev := config.AppConfig.MaxRequestsPerMin
	config.AppConfig.MaxRequestsPerMin = perMin
	t.Cleanup(func() { config.AppConfig.MaxRequestsPerMin = prev })

	r := gin.New()
	r.Use(RateLimitMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func hitFrom(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":40000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitKeyedPerClient(t *testing.T) {
	r := rateLimitedRouter(t, 2)

	// Burst is the per-minute budget. The third hit from one address trips it.
	require.Equal(t, http.StatusOK, hitFrom(r, "198.51.100.10").Code)
	require.Equal(t, http.StatusOK, hitFrom(r, "198.51.100.10").Code)
	w := hitFrom(r, "198.51.100.10")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")

	// A different client keeps its own budget.
	assert.Equal(t, http.StatusOK, hitFrom(r, "198.51.100.11").Code)
}
