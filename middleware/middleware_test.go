package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": c.GetString("request_id")})
	})
	return r
}

func TestRateLimiterPerClient(t *testing.T) {
	l := NewRateLimiter(1, 2)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatalf("burst of two must be allowed")
	}
	if l.Allow("a") {
		t.Fatalf("third request in the same instant must be rejected")
	}
	if !l.Allow("b") {
		t.Fatalf("other clients have their own budget")
	}

	now = now.Add(time.Second)
	if !l.Allow("a") {
		t.Fatalf("a token must be refilled after one second")
	}

	now = now.Add(time.Hour)
	l.Allow("c")
	if _, ok := l.clients["a"]; ok {
		t.Fatalf("idle clients must be evicted")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newTestRouter(RateLimitMiddleware(0.001, 1))

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(second.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode 429 body: %v", err)
	}
	if body["success"] != false || body["error"] != "RATE_LIMITED" {
		t.Fatalf("unexpected 429 envelope: %v", body)
	}

	open := newTestRouter(RateLimitMiddleware(0, 0))
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		open.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("disabled limiter must pass every request, got %d", w.Code)
		}
	}
}

func TestCORSMiddleware(t *testing.T) {
	r := newTestRouter(CORSMiddleware([]string{"http://localhost:3000/"}))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("expected allowed origin echo, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow origin %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", w.Code)
	}

	wildcard := newTestRouter(CORSMiddleware([]string{"*"}))
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://anywhere.example")
	w = httptest.NewRecorder()
	wildcard.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://anywhere.example" {
		t.Fatalf("wildcard must allow any origin, got %q", got)
	}
}

func TestRequestID(t *testing.T) {
	r := newTestRouter(RequestID(), SecurityHeaders())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := w.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(generated); err != nil {
		t.Fatalf("expected generated uuid, got %q", generated)
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("security headers missing")
	}

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, id)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != id {
		t.Fatalf("expected echoed id %q, got %q", id, got)
	}

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got == "<script>" {
		t.Fatalf("invalid incoming ids must be replaced")
	}
}
