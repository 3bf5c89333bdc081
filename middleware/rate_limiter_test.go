package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRateLimitMiddlewareBlocksBursts(t *testing.T) {
	handler := RateLimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ok := 0
	limited := 0
	for i := 0; i < 60; i++ {
		r := httptest.NewRequest("GET", "/api/v1/user", nil)
		r.Header.Set("X-Forwarded-For", "203.0.113.50")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		switch w.Code {
		case http.StatusOK:
			ok++
		case http.StatusTooManyRequests:
			limited++
		default:
			t.Fatalf("unexpected status %d", w.Code)
		}
	}

	if ok == 0 {
		t.Error("expected some requests to pass")
	}
	if limited == 0 {
		t.Error("expected burst to be rate limited")
	}
}

func TestRateLimitMiddlewareBurstFromEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "1")
	t.Setenv("RATE_LIMIT_RPS", "1")

	handler := RateLimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Fresh IP so the env-configured limiter is the one created.
	first := httptest.NewRequest("GET", "/api/v1/user", nil)
	first.Header.Set("X-Forwarded-For", "203.0.113.70")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, first)
	if w.Code != http.StatusOK {
		t.Fatalf("first request should pass, got %d", w.Code)
	}

	second := httptest.NewRequest("GET", "/api/v1/user", nil)
	second.Header.Set("X-Forwarded-For", "203.0.113.70")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, second)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("burst of 1 should limit the second request, got %d", w.Code)
	}
}

func TestEnvLimitRejectsInvalidValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "not-a-number")
	if got := envLimit("RATE_LIMIT_RPS", defaultRequestsPerSecond); got != defaultRequestsPerSecond {
		t.Errorf("expected default %d, got %d", defaultRequestsPerSecond, got)
	}

	t.Setenv("RATE_LIMIT_RPS", "-3")
	if got := envLimit("RATE_LIMIT_RPS", defaultRequestsPerSecond); got != defaultRequestsPerSecond {
		t.Errorf("expected default %d for non-positive value, got %d", defaultRequestsPerSecond, got)
	}
}

func TestRateLimitMiddlewareSeparatesClients(t *testing.T) {
	handler := RateLimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Exhaust one client's burst.
	for i := 0; i < 40; i++ {
		r := httptest.NewRequest("GET", "/api/v1/user", nil)
		r.Header.Set("X-Forwarded-For", "203.0.113.60")
		handler.ServeHTTP(httptest.NewRecorder(), r)
	}

	// A different client is unaffected.
	r := httptest.NewRequest("GET", "/api/v1/user", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.61")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("fresh client should not be limited, got %d", w.Code)
	}
}
