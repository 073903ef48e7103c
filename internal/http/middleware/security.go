package middleware

import (
	"fmt"
	"net/http"

	"github.com/ledgerlane/crm-api/internal/config"
)

// securityHeaders flattens the config into the header set written on every response
func securityHeaders(cfg *config.SecurityConfig) map[string]string {
	headers := map[string]string{
		"X-Frame-Options":         cfg.FrameOptions,
		"X-XSS-Protection":        cfg.XSSProtection,
		"Content-Security-Policy": cfg.ContentSecurityPolicy,
		"Referrer-Policy":         cfg.ReferrerPolicy,
		"Permissions-Policy":      cfg.PermissionsPolicy,
	}
	if cfg.ContentTypeNosniff {
		headers["X-Content-Type-Options"] = "nosniff"
	}
	if cfg.EnableHSTS {
		hsts := fmt.Sprintf("max-age=%d", cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubdomains {
			hsts += "; includeSubDomains"
		}
		if cfg.HSTSPreload {
			hsts += "; preload"
		}
		headers["Strict-Transport-Security"] = hsts
	}
	for k, v := range headers {
		if v == "" {
			delete(headers, k)
		}
	}
	return headers
}

// SecurityHeaders returns a middleware that adds security headers to responses
func SecurityHeaders(cfg *config.SecurityConfig) func(http.Handler) http.Handler {
	headers := securityHeaders(cfg)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for k, v := range headers {
				h.Set(k, v)
			}
			h.Del("X-Powered-By")
			h.Del("Server")

			next.ServeHTTP(w, r)
		})
	}
}
