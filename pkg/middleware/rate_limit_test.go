package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// limiters are cached per client IP across the whole process, so every test
// must use its own RemoteAddr or it inherits a bucket configured (and drained)
// by an earlier test.
func limitedRequest(path, addr string) *http.Request {
	req := httptest.NewRequest("GET", path, nil)
	req.RemoteAddr = addr
	return req
}

func TestRateLimitMiddleware_AllowsUnderLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(10, 2)) // generous rate
	r.GET("/ok", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// two quick requests should pass
	w := httptest.NewRecorder()
	r.ServeHTTP(w, limitedRequest("/ok", "10.1.0.1:1111"))
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, limitedRequest("/ok", "10.1.0.1:1111"))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, http.StatusOK, w2.Code)
}

func TestRateLimitMiddleware_BlocksWhenExceeded(t *testing.T) {
	r := gin.New()
	// very low rate to force rejections
	r.Use(RateLimitMiddleware(0.5, 1))
	r.GET("/limited", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// first request -> allowed
	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, limitedRequest("/limited", "10.1.0.2:2222"))
	require.Equal(t, http.StatusOK, w1.Code)

	// immediate second request -> should be rate-limited
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, limitedRequest("/limited", "10.1.0.2:2222"))
	require.Equal(t, http.StatusTooManyRequests, w2.Code)

	// wait for half a second (0.5s) to replenish one token and it should be allowed
	time.Sleep(600 * time.Millisecond)
	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, limitedRequest("/limited", "10.1.0.2:2222"))
	require.Equal(t, http.StatusOK, w3.Code)
}

func TestRateLimitMiddleware_KeysByClientIP(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(0.5, 1))
	r.GET("/per-ip", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// drain the bucket for one address
	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, limitedRequest("/per-ip", "10.1.0.4:4444"))
	require.Equal(t, http.StatusOK, w1.Code)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, limitedRequest("/per-ip", "10.1.0.4:4444"))
	require.Equal(t, http.StatusTooManyRequests, w2.Code)

	// a different address still has its own full bucket
	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, limitedRequest("/per-ip", "10.1.0.5:5555"))
	require.Equal(t, http.StatusOK, w3.Code)
}
