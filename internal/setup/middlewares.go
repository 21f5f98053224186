package setup

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bornholm/mdstore/internal/config"
	"github.com/bornholm/mdstore/internal/http/middleware/ratelimit"
	"github.com/rs/cors"
	sloghttp "github.com/samber/slog-http"
)

func getMiddlewaresFromConfig(ctx context.Context, conf *config.Config) ([]func(http.Handler) http.Handler, error) {
	middlewares := []func(http.Handler) http.Handler{
		sloghttp.Recovery,
		sloghttp.NewWithConfig(slog.Default(), sloghttp.Config{
			DefaultLevel:     slog.LevelInfo,
			ClientErrorLevel: slog.LevelWarn,
			ServerErrorLevel: slog.LevelError,
			WithRequestID:    true,
		}),
		cors.New(cors.Options{
			AllowedOrigins:   conf.HTTP.CORS.AllowedOrigins,
			AllowCredentials: conf.HTTP.CORS.AllowCredentials,
			AllowedMethods: []string{
				http.MethodGet,
				http.MethodPut,
				http.MethodDelete,
				http.MethodOptions,
			},
			AllowedHeaders: []string{"*"},
		}).Handler,
	}

	if conf.HTTP.RateLimit.Enabled {
		middlewares = append(middlewares, ratelimit.Middleware(
			ratelimit.WithTrustHeaders(conf.HTTP.RateLimit.TrustHeaders),
			ratelimit.WithLimit(conf.HTTP.RateLimit.Interval, conf.HTTP.RateLimit.MaxBurst),
			ratelimit.WithCache(conf.HTTP.RateLimit.CacheSize, conf.HTTP.RateLimit.CacheTTL),
		))
	}

	return middlewares, nil
}
