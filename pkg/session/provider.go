package session

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// TokenStore persists session records keyed by opaque token.
type TokenStore interface {
	// Get resolves the user owning the token. Returns ErrNoSession when the
	// token is unknown or expired.
	Get(ctx context.Context, token string) (*User, error)

	// Touch extends the token's lifetime. Missing tokens are not an error.
	Touch(ctx context.Context, token string, ttl time.Duration) error
}

// StoreProvider authenticates requests from a session token cookie backed by
// a TokenStore. Every successful lookup slides the session: the store TTL is
// extended and a refreshed cookie is handed to the CookieWriter, which is how
// session persistence survives across requests.
type StoreProvider struct {
	store TokenStore
	cfg   Config
}

// NewStoreProvider creates a provider over the given token store. Unset
// config fields are defaulted individually; explicitly set ones are kept.
func NewStoreProvider(store TokenStore, cfg Config) *StoreProvider {
	def := DefaultConfig()
	if cfg.CookieName == "" {
		cfg.CookieName = def.CookieName
	}
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.CookiePath == "" {
		cfg.CookiePath = def.CookiePath
	}
	return &StoreProvider{store: store, cfg: cfg}
}

// Authenticate implements Provider.
func (p *StoreProvider) Authenticate(ctx context.Context, r *http.Request, w CookieWriter) (*User, error) {
	ck, err := r.Cookie(p.cfg.CookieName)
	if err != nil || ck.Value == "" {
		return nil, ErrNoSession
	}

	user, err := p.store.Get(ctx, ck.Value)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			// Stale cookie pointing at an expired session: clear it so the
			// client stops presenting it.
			w.SetCookie(p.cookie("", -1))
			return nil, ErrNoSession
		}
		return nil, errors.Join(ErrStoreFailure, err)
	}

	// Sliding expiry; a failed touch is not fatal for this request.
	_ = p.store.Touch(ctx, ck.Value, p.cfg.TTL)
	w.SetCookie(p.cookie(ck.Value, int(p.cfg.TTL.Seconds())))

	return user, nil
}

func (p *StoreProvider) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     p.cfg.CookieName,
		Value:    value,
		Path:     p.cfg.CookiePath,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   p.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
