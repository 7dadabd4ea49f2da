package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/aluro/storegate/pkg/config"
	"github.com/aluro/storegate/pkg/gateway"
	"github.com/aluro/storegate/pkg/httpserver"
	"github.com/aluro/storegate/pkg/logger"
	"github.com/aluro/storegate/pkg/pg"
	"github.com/aluro/storegate/pkg/redis"
	"github.com/aluro/storegate/pkg/requestid"
	"github.com/aluro/storegate/pkg/session"
	"github.com/aluro/storegate/pkg/tenant"
)

type appConfig struct {
	Logger  logger.Config
	PG      pg.Config
	Redis   redis.Config
	HTTP    httpserver.Config
	Session session.Config
	Gateway gateway.Config

	SharedTenantCache bool   `env:"GATE_SHARED_TENANT_CACHE" envDefault:"false"` // share the tenant cache between replicas via Redis
	UpstreamURL       string `env:"UPSTREAM_URL"`                                // storefront application to proxy admitted requests to
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.NewFromConfig(cfg.Logger,
		logger.WithAttr(slog.String("service", "storegate")),
		logger.WithContextExtractors(requestid.LoggerExtractor(), tenant.LoggerExtractor()),
	)

	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.PG, log); err != nil {
		return err
	}

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	store := tenant.NewPGStore(pool)
	sessions := session.NewStoreProvider(session.NewRedisStore(redisClient, "session:"), cfg.Session)

	var cache tenant.Cache
	if cfg.SharedTenantCache {
		cache = tenant.NewRedisCache(redisClient, "tenant:")
	} else {
		cache = tenant.NewMemoryCache(time.Minute)
	}
	defer func() { _ = cache.Close() }()

	g, err := gateway.New(cfg.Gateway, store, sessions,
		gateway.WithLogger(log),
		gateway.WithTenantCache(cache),
	)
	if err != nil {
		return err
	}

	upstream, err := upstreamHandler(cfg.UpstreamURL)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(requestid.Middleware)
	r.Use(chimiddleware.Recoverer)
	r.Get("/healthz", httpserver.HealthCheckHandler(log))
	r.Get("/readyz", httpserver.HealthCheckHandler(log,
		pg.Healthcheck(pool),
		redis.Healthcheck(redisClient),
	))
	r.Group(func(r chi.Router) {
		r.Use(g.Middleware)
		r.Handle("/*", upstream)
	})

	return httpserver.New(cfg.HTTP, log).Run(ctx, r)
}

// upstreamHandler proxies admitted requests to the storefront application.
// Without an upstream configured it answers with a minimal acknowledgment,
// which is enough for smoke testing the gateway in isolation.
func upstreamHandler(rawURL string) (http.Handler, error) {
	if rawURL == "" {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if t, ok := tenant.FromContext(r.Context()); ok {
				fmt.Fprintf(w, "ok: %s\n", t.Subdomain)
				return
			}
			fmt.Fprintln(w, "ok")
		}), nil
	}

	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream url %q: %w", rawURL, err)
	}
	return httputil.NewSingleHostReverseProxy(target), nil
}
