// Package session threads the platform's auth session from request cookies
// to the outbound response.
//
// The core type is Context, a request-scoped wrapper that owns the cookie
// jar for a single request. An auth Provider reads the session cookie, may
// refresh it, and hands every cookie it wants persisted to the Context. The
// gateway wraps the ResponseWriter via Context.Wrap so the jar is copied
// onto the response headers before the first write, on every exit path:
// happy path, redirect, or error page. Dropping refreshed cookies on any
// branch breaks session persistence for the whole platform, which is why
// the guarantee lives in exactly one place.
//
// StoreProvider is the default Provider: it resolves an opaque token cookie
// against a TokenStore (RedisStore in production) and slides the session
// lifetime on every authenticated request.
//
// # Usage
//
//	sctx := session.NewContext(provider, r)
//	w = sctx.Wrap(w)
//	user, err := sctx.User(r.Context())
//	switch {
//	case errors.Is(err, session.ErrNoSession):
//		http.Redirect(w, r, "/login", http.StatusFound) // jar still applied
//	case err != nil:
//		// treat as unauthenticated, fail closed
//	}
package session
