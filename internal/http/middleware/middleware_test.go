package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ledgerlane/crm-api/internal/config"
	"github.com/ledgerlane/crm-api/internal/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRecovery_ReturnsProblemResponse(t *testing.T) {
	h := middleware.Recovery(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"internal_error"`)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestLogging_GeneratesRequestID(t *testing.T) {
	var seen string
	h := middleware.Logging(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(middleware.RequestIDHeader))
}

func TestLogging_KeepsIncomingRequestID(t *testing.T) {
	h := middleware.Logging(zap.NewNop())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(middleware.RequestIDHeader))
}

func TestSecurityHeaders(t *testing.T) {
	cfg := &config.SecurityConfig{
		EnableHSTS:            true,
		HSTSMaxAge:            31536000,
		HSTSIncludeSubdomains: true,
		FrameOptions:          "DENY",
		ContentTypeNosniff:    true,
	}
	h := middleware.SecurityHeaders(cfg)(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "max-age=31536000; includeSubDomains", rec.Header().Get("Strict-Transport-Security"))
	_, hasCSP := rec.Header()["Content-Security-Policy"]
	assert.False(t, hasCSP)
}

func TestCORS_ExplicitOrigins(t *testing.T) {
	cfg := &config.CORSConfig{
		AllowedOrigins: []string{"https://app.example.com"},
		AllowedMethods: []string{"GET", "POST"},
	}
	h := middleware.CORS(cfg, "production", zap.NewNop())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_ProductionWithoutOriginsDeniesAll(t *testing.T) {
	h := middleware.CORS(&config.CORSConfig{}, "production", zap.NewNop())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiter_LimitsByIP(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 2,
		WhitelistPaths:    []string{"/health/*"},
	}, zap.NewNop())
	h := rl.LimitByIP(okHandler())

	send := func(path, ip string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = ip + ":5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("/api/v1/sales/forecast", "10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("/api/v1/sales/forecast", "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("/api/v1/sales/forecast", "10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("/api/v1/sales/forecast", "10.0.0.2"))
	assert.Equal(t, http.StatusOK, send("/health/ready", "10.0.0.1"))
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{RequestsPerMinute: 1}, zap.NewNop())
	h := rl.LimitByIP(okHandler())

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
