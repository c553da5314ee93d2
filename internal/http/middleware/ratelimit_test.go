package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestKeyByUserOrIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = net.JoinHostPort("203.0.113.9", "12345")
	c.Request = req

	if got := KeyByUserOrIP()(c); got != "ip:203.0.113.9" {
		t.Fatalf("ip key = %q", got)
	}
	c.Set(userIDKey, "u123")
	if got := KeyByUserOrIP()(c); got != "user:u123" {
		t.Fatalf("user key = %q", got)
	}
}

func TestRateLimiter_LimitsPerKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(0.001, 2, KeyByUserOrIP())
	r := gin.New()
	r.Use(RequestID(), Identity(), rl.Handler())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	hit := func(user string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(HeaderUserID, user)
		r.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 2; i++ {
		if w := hit("a"); w.Code != http.StatusNoContent {
			t.Fatalf("request %d within burst = %d", i, w.Code)
		}
	}
	w := hit("a")
	if w.Code != http.StatusTooManyRequests || w.Header().Get("Retry-After") == "" {
		t.Fatalf("over burst = %d retry-after=%q", w.Code, w.Header().Get("Retry-After"))
	}
	if w := hit("b"); w.Code != http.StatusNoContent {
		t.Fatalf("other user must have its own bucket, got %d", w.Code)
	}
}

func TestRateLimiter_BypassAndDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(0.001, 0, KeyByUserOrIP())
	if rl.burst != 1 {
		t.Fatalf("burst coercion failed: %d", rl.burst)
	}
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(ctxKeyRateBypass, true); c.Next() }, rl.Handler())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		if w.Code != http.StatusNoContent {
			t.Fatalf("replays must bypass the limiter, got %d", w.Code)
		}
	}

	off := NewRateLimiter(0, 1, KeyByUserOrIP())
	r2 := gin.New()
	r2.Use(off.Handler())
	r2.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r2.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		if w.Code != http.StatusNoContent {
			t.Fatalf("rps=0 disables limiting, got %d", w.Code)
		}
	}
}

func TestRateLimiter_ReusesBucket(t *testing.T) {
	rl := NewRateLimiter(1, 1, KeyByUserOrIP())
	if rl.limiter("k") != rl.limiter("k") {
		t.Fatalf("expected the same bucket for one key")
	}
	if rl.limiter("k") == rl.limiter("other") {
		t.Fatalf("distinct keys must not share a bucket")
	}
}
