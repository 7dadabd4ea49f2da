package session

import (
	"context"
	"net/http"
	"sync"
)

// Context threads auth cookies from the incoming request through to whatever
// response terminates it. It is the single place the cookie-propagation
// guarantee lives: the provider runs at most once per request, every cookie
// it sets lands in the jar, and the jar is flushed onto the response headers
// before the first byte or status is written, regardless of which branch
// (happy path, redirect, error page) produced the response.
//
// A Context is request-scoped and must not be shared across requests.
type Context struct {
	provider Provider
	req      *http.Request

	// once serializes provider resolution; mu guards the fields below and is
	// never held across the provider call, so providers can SetCookie freely.
	once     sync.Once
	mu       sync.Mutex
	jar      []*http.Cookie
	user     *User
	authErr  error
	resolved bool
}

// NewContext creates a request-scoped session context.
func NewContext(provider Provider, r *http.Request) *Context {
	return &Context{provider: provider, req: r}
}

// SetCookie records a cookie to be mirrored onto the final response.
// Implements CookieWriter for the auth provider.
func (c *Context) SetCookie(ck *http.Cookie) {
	if ck == nil {
		return
	}
	c.mu.Lock()
	c.jar = append(c.jar, ck)
	c.mu.Unlock()
}

// User resolves the authenticated user, calling the provider at most once.
// Subsequent calls return the memoized result. A nil user with a nil error
// never occurs: an unauthenticated request yields ErrNoSession.
func (c *Context) User(ctx context.Context) (*User, error) {
	c.once.Do(func() {
		user, err := c.authenticate(ctx)
		c.mu.Lock()
		c.user, c.authErr, c.resolved = user, err, true
		c.mu.Unlock()
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user, c.authErr
}

// authenticate runs outside c.mu: the provider writes refreshed cookies back
// through SetCookie, which takes the same mutex.
func (c *Context) authenticate(ctx context.Context) (*User, error) {
	if c.provider == nil {
		return nil, ErrNoProvider
	}
	user, err := c.provider.Authenticate(ctx, c.req, (*jarWriter)(c))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNoSession
	}
	return user, nil
}

// Authenticated reports whether a user has been resolved, without triggering
// provider calls.
func (c *Context) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolved && c.user != nil
}

// Apply copies the pending cookie jar onto the given response headers.
// Calling it more than once is harmless only if the headers differ; the
// gateway uses Wrap instead, which applies exactly once.
func (c *Context) Apply(h http.Header) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ck := range c.jar {
		if v := ck.String(); v != "" {
			h.Add("Set-Cookie", v)
		}
	}
}

// Cookies returns a snapshot of the pending jar. Intended for tests and
// diagnostics.
func (c *Context) Cookies() []*http.Cookie {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*http.Cookie, len(c.jar))
	copy(out, c.jar)
	return out
}

// jarWriter hides Context's full API from providers; they only get SetCookie.
type jarWriter Context

func (w *jarWriter) SetCookie(ck *http.Cookie) { (*Context)(w).SetCookie(ck) }

// Wrap returns a ResponseWriter that flushes the cookie jar onto the
// response immediately before the first write. Every terminal branch of the
// request must write through the wrapped writer so refreshed cookies are
// never dropped. Callers must invoke Finalize after the handler chain
// returns: a handler may legally finish without writing anything, leaving the
// implicit 200 to the server, and the jar still has to land on its headers.
func (c *Context) Wrap(w http.ResponseWriter) http.ResponseWriter {
	return &cookieFlushWriter{ResponseWriter: w, sctx: c}
}

// Finalize flushes the pending jar on a writer produced by Wrap if nothing
// has been written through it yet. Writers from other sources are ignored.
func Finalize(w http.ResponseWriter) {
	if fw, ok := w.(*cookieFlushWriter); ok {
		fw.flush()
	}
}

type cookieFlushWriter struct {
	http.ResponseWriter
	sctx  *Context
	wrote bool
}

func (w *cookieFlushWriter) WriteHeader(status int) {
	w.flush()
	w.ResponseWriter.WriteHeader(status)
}

func (w *cookieFlushWriter) Write(b []byte) (int, error) {
	w.flush()
	return w.ResponseWriter.Write(b)
}

func (w *cookieFlushWriter) flush() {
	if w.wrote {
		return
	}
	w.wrote = true
	w.sctx.Apply(w.Header())
}

// Unwrap supports http.ResponseController.
func (w *cookieFlushWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

var _ http.ResponseWriter = (*cookieFlushWriter)(nil)
