package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/aluro/storegate/pkg/routing"
	"github.com/aluro/storegate/pkg/session"
	"github.com/aluro/storegate/pkg/tenant"
)

// Gateway is the request-admission middleware: it classifies the host,
// resolves the tenant, gates the route class, and annotates the response
// with the resolved context before the request reaches application
// handlers.
type Gateway struct {
	cfg        Config
	classifier routing.Classifier
	resolver   *tenant.Resolver
	store      tenant.Store
	sessions   session.Provider
	cache      tenant.Cache
	log        *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets the structured logger for gate transitions.
func WithLogger(log *slog.Logger) Option {
	return func(g *Gateway) {
		if log != nil {
			g.log = log
		}
	}
}

// WithTenantCache puts a cache in front of tenant resolution, with the TTL
// taken from Config.TenantCacheTTL.
func WithTenantCache(cache tenant.Cache) Option {
	return func(g *Gateway) {
		g.cache = cache
	}
}

// New creates a gateway over the given tenant store and auth provider.
// The optional skip-paths file is loaded here; missing required
// configuration fails construction.
func New(cfg Config, store tenant.Store, sessions session.Provider, opts ...Option) (*Gateway, error) {
	cfg, err := cfg.LoadSkipPathsFile()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Gateway{
		cfg:      cfg,
		store:    store,
		sessions: sessions,
		log:      slog.New(slog.DiscardHandler),
		classifier: routing.Classifier{
			ProductionDomain: cfg.ProductionDomain,
			PreviewSuffix:    cfg.PreviewSuffix,
			DevHost:          cfg.DevHost,
		},
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.cache != nil {
		g.resolver = tenant.NewResolver(store, tenant.WithCache(g.cache, cfg.TenantCacheTTL))
	} else {
		g.resolver = tenant.NewResolver(store)
	}

	return g, nil
}

// Middleware returns the http middleware implementing the admission flow.
func (g *Gateway) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if g.skip(path) {
			next.ServeHTTP(w, r)
			return
		}

		// Misconfiguration must surface before any tenant-specific work.
		if err := g.cfg.Validate(); err != nil {
			http.Error(w, "configuration error", http.StatusInternalServerError)
			return
		}

		if routing.IsSelfReferral(r.Host, path, r.Header.Get("Referer")) {
			g.log.WarnContext(r.Context(), "self-referral detected, passing request through",
				slog.String("host", r.Host), slog.String("path", path))
			next.ServeHTTP(w, r)
			return
		}

		if target, ok := routing.RewriteLegacyCategoryPath(path); ok {
			http.Redirect(w, r, target, http.StatusTemporaryRedirect)
			return
		}

		cls := g.classifier.Classify(r.Host)
		g.log.DebugContext(r.Context(), "host classified",
			slog.String("host", cls.Host),
			slog.String("kind", cls.Kind.String()),
			slog.String("subdomain", cls.Subdomain))

		sctx := session.NewContext(g.sessions, r)
		w = sctx.Wrap(w)
		defer session.Finalize(w)

		if cls.IsTenant() {
			g.serveTenant(w, r, sctx, cls, next)
			return
		}
		g.serveMain(w, r, sctx, next)
	})
}

// serveMain handles the main domain (and preview roots): only platform
// routes are gated, everything else passes through untouched.
func (g *Gateway) serveMain(w http.ResponseWriter, r *http.Request, sctx *session.Context, next http.Handler) {
	if !strings.HasPrefix(r.URL.Path, g.cfg.PlatformPathPrefix) {
		next.ServeHTTP(w, r)
		return
	}

	d := g.gatePlatform(r.Context(), sctx)
	g.logDecision(r, "platform", d)
	g.finish(w, r, d, next)
}

// serveTenant runs the resolution chain and the per-route-class gate for
// tenant hosts.
func (g *Gateway) serveTenant(w http.ResponseWriter, r *http.Request, sctx *session.Context, cls routing.Classification, next http.Handler) {
	ctx := r.Context()

	res, err := g.resolver.Resolve(ctx, cls)
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			attempted := cls.Subdomain
			if attempted == "" {
				attempted = cls.Host
			}
			target := "https://" + g.cfg.ProductionDomain + g.cfg.TenantNotFoundPath +
				"?subdomain=" + url.QueryEscape(attempted)
			g.log.InfoContext(ctx, "tenant not found",
				slog.String("host", cls.Host), slog.String("attempted", attempted))
			http.Redirect(w, r, target, http.StatusTemporaryRedirect)
			return
		}

		g.log.ErrorContext(ctx, "tenant resolution failed",
			slog.String("host", cls.Host), slog.Any("error", err))
		g.finish(w, r, fail(http.StatusInternalServerError, "resolution_failure", err), next)
		return
	}

	t := res.Tenant
	g.log.DebugContext(ctx, "tenant resolved",
		slog.String("tenant_id", t.ID.String()),
		slog.String("access_method", string(res.Method)))

	locale := ResolveLocale(t, r.URL.Path, g.cfg.AdminPathPrefix)
	writeRequestContext(w.Header(), t, res.Method, locale)

	var d decision
	if strings.HasPrefix(r.URL.Path, g.cfg.AdminPathPrefix) {
		d = g.gateAdmin(ctx, sctx, t)
		g.logDecision(r, "tenant_admin", d)
	} else {
		d = g.gateStorefront(ctx, sctx, r.URL.Path)
		g.logDecision(r, "storefront", d)
	}

	r = r.WithContext(tenant.WithTenant(ctx, t))
	g.finish(w, r, d, next)
}

// gatePlatform admits only the configured platform operator.
func (g *Gateway) gatePlatform(ctx context.Context, sctx *session.Context) decision {
	user, err := sctx.User(ctx)
	if err != nil || user == nil {
		return redirectTo(g.cfg.LoginPath, "unauthenticated")
	}
	if !strings.EqualFold(user.Email, g.cfg.PlatformAdminEmail) {
		return redirectTo(g.cfg.UnauthorizedPath, "not_platform_operator")
	}
	return allow()
}

// gateAdmin admits the tenant owner unconditionally, then members with an
// active membership row. Owner bypass comes first so owners are never
// locked out by a missing row, and the lookup is saved entirely.
// Membership lookup failures deny, never 500: admission defaults to deny
// on ambiguity.
func (g *Gateway) gateAdmin(ctx context.Context, sctx *session.Context, t *tenant.Tenant) decision {
	user, err := sctx.User(ctx)
	if err != nil || user == nil {
		return redirectTo(g.cfg.LoginPath, "unauthenticated")
	}

	if user.ID == t.OwnerID {
		return allow()
	}

	if _, err := g.store.GetMembership(ctx, t.ID, user.ID); err != nil {
		if !errors.Is(err, tenant.ErrMembershipNotFound) {
			g.log.ErrorContext(ctx, "membership lookup failed, denying",
				slog.String("tenant_id", t.ID.String()),
				slog.String("user_id", user.ID.String()),
				slog.Any("error", err))
		}
		return redirectTo(g.cfg.AdminUnauthorizedPath, "no_membership")
	}

	return allow()
}

// gateStorefront protects only the configured customer-account paths; every
// other storefront path is public regardless of authentication.
func (g *Gateway) gateStorefront(ctx context.Context, sctx *session.Context, path string) decision {
	if !g.protectedPath(path) || path == g.cfg.LoginPath {
		return allow()
	}

	user, err := sctx.User(ctx)
	if err != nil || user == nil {
		return redirectTo(g.cfg.LoginPath, "unauthenticated")
	}
	return allow()
}

func (g *Gateway) protectedPath(path string) bool {
	for _, p := range g.cfg.ProtectedPaths {
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func (g *Gateway) skip(path string) bool {
	for _, p := range g.cfg.SkipPaths {
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}
	for _, ext := range g.cfg.SkipExtensions {
		if ext != "" && strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// finish applies a terminal gate decision. All writes go through the
// session-wrapped writer, so the cookie jar lands on every branch.
func (g *Gateway) finish(w http.ResponseWriter, r *http.Request, d decision, next http.Handler) {
	switch d.kind {
	case decisionAllow:
		next.ServeHTTP(w, r)
	case decisionRedirect:
		http.Redirect(w, r, d.location, http.StatusTemporaryRedirect)
	case decisionFail:
		body := "internal server error"
		if g.cfg.ExposeErrorDetail && d.detail != nil {
			body += ": " + d.detail.Error()
		}
		http.Error(w, body, d.status)
	}
}

func (g *Gateway) logDecision(r *http.Request, routeClass string, d decision) {
	g.log.DebugContext(r.Context(), "gate decision",
		slog.String("route_class", routeClass),
		slog.String("decision", d.kind.String()),
		slog.String("reason", d.reason),
		slog.String("path", r.URL.Path))
}
