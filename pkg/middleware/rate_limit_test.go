package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"turnero/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   logger.ERROR,
		Format:  logger.JSON,
		Service: "test",
	})
}

func TestRateLimitRejectsOverLimit(t *testing.T) {
	limiter := NewClientRateLimiter(2, time.Minute, nil, testLogger())
	defer limiter.Stop()

	handler := RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/tenants/barberia-sur/availability", nil)
		req.RemoteAddr = "203.0.113.7:54321"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("expected the first two requests to pass, got %v", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("expected the third request rejected with 429, got %d", statuses[2])
	}
}

func TestRateLimitIsolatesClients(t *testing.T) {
	limiter := NewClientRateLimiter(1, time.Minute, nil, testLogger())
	defer limiter.Stop()

	handler := RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, addr := range []string{"203.0.113.7:1000", "203.0.113.8:1000"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("client %s: expected first request to pass, got %d", addr, rec.Code)
		}
	}
}

func TestClientIPKeyPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:9999"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	if got := ClientIPKey(req); got != "203.0.113.7" {
		t.Errorf("expected first forwarded hop, got %s", got)
	}

	req.Header.Del("X-Forwarded-For")
	if got := ClientIPKey(req); got != "10.0.0.1" {
		t.Errorf("expected remote addr host, got %s", got)
	}
}
