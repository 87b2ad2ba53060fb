package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func rateLimitedHandler(rps, burst int) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return RateLimit(rps, burst)(next)
}

func newRateLimitRequest(remoteAddr string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/s-1/vouchers", nil)
	req.RemoteAddr = remoteAddr

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(req.Context(), LoggerKey, logger)

	return req.WithContext(ctx)
}

func TestRateLimit(t *testing.T) {
	t.Run("Allows Up To Burst", func(t *testing.T) {
		// Arrange
		handler := rateLimitedHandler(1, 3)

		// Act & Assert
		for range 3 {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, newRateLimitRequest("10.0.0.1:1234"))
			assert.Equal(t, http.StatusOK, rec.Code)
		}

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRateLimitRequest("10.0.0.1:1234"))
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Contains(t, rec.Body.String(), "TOO_MANY_REQUESTS")
	})

	t.Run("Limits Are Per IP", func(t *testing.T) {
		// Arrange
		handler := rateLimitedHandler(1, 1)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRateLimitRequest("10.0.0.1:1234"))
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, newRateLimitRequest("10.0.0.1:1234"))
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)

		// Act - a different client is unaffected
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, newRateLimitRequest("10.0.0.2:1234"))

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Prefers Forwarded Header", func(t *testing.T) {
		// Arrange
		handler := rateLimitedHandler(1, 1)

		req := newRateLimitRequest("10.0.0.1:1234")
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		// Act - same forwarded client from a different socket
		req = newRateLimitRequest("10.0.0.99:5678")
		req.Header.Set("X-Forwarded-For", "203.0.113.7")

		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})
}

func TestVisitorStoreCleanup(t *testing.T) {
	// Arrange
	s := newVisitorStore(1, 1, time.Minute)

	now := time.Now()
	s.nowFunc = func() time.Time { return now }

	s.getVisitor("10.0.0.1")
	s.getVisitor("10.0.0.2")

	// Act - only one visitor comes back before the TTL elapses
	now = now.Add(30 * time.Second)
	s.getVisitor("10.0.0.2")

	now = now.Add(45 * time.Second)
	s.cleanup()

	// Assert
	s.mu.Lock()
	defer s.mu.Unlock()
	assert.NotContains(t, s.visitors, "10.0.0.1")
	assert.Contains(t, s.visitors, "10.0.0.2")
}
