package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimitEvaluateGroupTighterThanDefault(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	groupFor := func(c *gin.Context) string {
		if c.Request.Method == http.MethodPost {
			return "EVALUATE"
		}
		return "DEFAULT"
	}

	r := gin.New()
	r.Use(RateLimit(RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor:     groupFor,
		Limiter:      limiter,
		Rules: map[string]RateLimitRule{
			"DEFAULT":  {Rate: 5, Burst: 10},
			"EVALUATE": {Rate: 1, Burst: 2},
		},
	}))

	r.GET("/api/v1/accounts/:id/lifecycle", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.POST("/api/v1/accounts/:id/lifecycle/evaluate", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/acct-1/lifecycle/evaluate", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("evaluate request %d expected 200, got %d", i+1, resp.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/acct-1/lifecycle/evaluate", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("evaluate request 3 expected 429, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header on 429")
	}

	// a different account id has its own bucket
	req = httptest.NewRequest(http.MethodPost, "/api/v1/accounts/acct-2/lifecycle/evaluate", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("other account expected 200, got %d", resp.Code)
	}

	// reads stay on the looser default rule
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/acct-1/lifecycle", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("read request %d expected 200, got %d", i+1, resp.Code)
		}
	}
}

func TestRateLimiterRefillsOverTime(t *testing.T) {
	current := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return current })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	allowed, _ := limiter.Allow("acct-1|EVALUATE", rule)
	if !allowed {
		t.Fatalf("first call should pass")
	}
	allowed, retry := limiter.Allow("acct-1|EVALUATE", rule)
	if allowed {
		t.Fatalf("second call should be limited")
	}
	if retry <= 0 {
		t.Fatalf("expected positive retry hint, got %s", retry)
	}

	current = current.Add(2 * time.Second)
	allowed, _ = limiter.Allow("acct-1|EVALUATE", rule)
	if !allowed {
		t.Fatalf("expected bucket to refill after waiting")
	}
}
