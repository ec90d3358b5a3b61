// Command sample demonstrates the github.com/bjaus/endpoints library with a
// small users service: container-registered endpoint classes, announced
// discovery, a bearer-protected route group, and the stock middleware.
//
// Run:
//
//	go run ./cmd/sample
//	go run ./cmd/sample -config sample.yaml
//
// Then explore:
//
//	GET    http://localhost:8080/health              — health check (announced)
//	GET    http://localhost:8080/routes              — route manifest (JSON or ?format=yaml)
//	GET    http://localhost:8080/metrics             — Prometheus metrics
//	GET    http://localhost:8080/api/v1/users        — list users (Bearer secret)
//	POST   http://localhost:8080/api/v1/users        — create user
//	GET    http://localhost:8080/api/v1/users/{id}   — get user (?includedetails=true)
//	DELETE http://localhost:8080/api/v1/users/{id}   — delete user
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bjaus/endpoints"
)

func main() {
	configFlag := flag.String("config", "", "Path to a YAML config file")
	flag.Parse()

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	r, err := newRouter(cfg, logger)
	if err != nil {
		slog.Error("endpoint mapping failed", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("starting server", "addr", cfg.Addr, "routes", len(r.Routes()))

	if err := r.ListenAndServe(ctx, cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "err", err)
	}

	slog.Info("server stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func newRouter(cfg *Config, logger *slog.Logger) (*endpoints.Router, error) {
	c := endpoints.NewContainer()
	if err := c.Provide(func() *Config { return cfg }, endpoints.Singleton); err != nil {
		return nil, err
	}
	if err := c.Provide(newUserStore, endpoints.Singleton); err != nil {
		return nil, err
	}

	// Health is announced by its package; users register explicitly.
	if err := endpoints.RegisterDiscovered(c, endpoints.Singleton, "system"); err != nil {
		return nil, err
	}
	if err := endpoints.RegisterEndpoints(c, endpoints.Singleton,
		newListUsersEndpoint,
		newGetUserEndpoint,
		newCreateUserEndpoint,
		newDeleteUserEndpoint,
	); err != nil {
		return nil, err
	}

	r := endpoints.New()
	r.Use(endpoints.Recovery())
	r.Use(endpoints.RequestID())
	r.Use(endpoints.Logger(logger))
	r.Use(endpoints.Metrics(endpoints.MetricsConfig{Namespace: "sample"}))
	r.Use(endpoints.RateLimit(endpoints.RateLimitConfig{
		Rate:    cfg.RateLimit,
		Burst:   cfg.RateBurst,
		MaxIdle: cfg.IdleTTL,
	}))

	if _, err := endpoints.MapEndpoints(r, c); err != nil {
		return nil, err
	}

	r.ServeManifest("/routes")
	r.Handle(http.MethodGet, "/metrics", promhttp.Handler())

	return r, nil
}
