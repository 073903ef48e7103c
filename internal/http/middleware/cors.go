package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/ledgerlane/crm-api/internal/config"
	"go.uber.org/zap"
)

func isDevelopment(environment string) bool {
	switch environment {
	case "", "development", "local", "test":
		return true
	}
	return false
}

func allowAnyOrigin(_ *http.Request, origin string) bool {
	return origin != ""
}

// CORS returns a CORS middleware configured from the application config.
// A "*" origin, or an empty list in development, allows every origin.
// An empty list anywhere else denies all cross-origin requests.
func CORS(cfg *config.CORSConfig, environment string, logger *zap.Logger) func(http.Handler) http.Handler {
	options := cors.Options{
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	wildcard := false
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			wildcard = true
			break
		}
	}

	switch {
	case wildcard:
		if !isDevelopment(environment) {
			logger.Warn("CORS configured with wildcard origin in non-development environment",
				zap.String("environment", environment))
		}
		options.AllowOriginFunc = allowAnyOrigin
	case len(cfg.AllowedOrigins) > 0:
		options.AllowedOrigins = cfg.AllowedOrigins
		logger.Info("CORS configured with explicit origins", zap.Strings("origins", cfg.AllowedOrigins))
	case isDevelopment(environment):
		options.AllowOriginFunc = allowAnyOrigin
		logger.Info("CORS allows all origins in development mode")
	default:
		// an empty AllowedOrigins would mean "*" to go-chi/cors
		options.AllowOriginFunc = func(*http.Request, string) bool { return false }
		logger.Warn("CORS configured with no allowed origins, cross-origin requests will be denied",
			zap.String("environment", environment))
	}

	return cors.Handler(options)
}
