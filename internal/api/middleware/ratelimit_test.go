package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type stubLimiter struct {
	allowed bool
	err     error
	lastKey string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	s.lastKey = key
	return s.allowed, s.err
}

func invokeRateLimit(t *testing.T, limiter Limiter) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/links", nil)
	req.RemoteAddr = "203.0.113.7:51234"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return RateLimit(limiter, zerolog.Nop())(next)(c)
}

func TestRateLimit_Allowed(t *testing.T) {
	limiter := &stubLimiter{allowed: true}
	if err := invokeRateLimit(t, limiter); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limiter.lastKey != "203.0.113.7" {
		t.Errorf("limiter keyed on %q, want client IP", limiter.lastKey)
	}
}

func TestRateLimit_Rejected(t *testing.T) {
	err := invokeRateLimit(t, &stubLimiter{allowed: false})

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", he.Code)
	}
}

func TestRateLimit_FailsOpenOnLimiterError(t *testing.T) {
	limiter := &stubLimiter{allowed: true, err: errors.New("redis: connection refused")}
	if err := invokeRateLimit(t, limiter); err != nil {
		t.Errorf("limiter errors must fail open, got %v", err)
	}
}
