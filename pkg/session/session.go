package session

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// User is the authenticated principal resolved from request cookies.
type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// CookieWriter receives cookies an auth provider wants persisted on the
// outbound response. Context implements it; providers must never write to
// the http.ResponseWriter directly, otherwise refreshed cookies are lost on
// early-return paths.
type CookieWriter interface {
	SetCookie(c *http.Cookie)
}

// Provider authenticates a request from its cookies. Implementations may
// refresh tokens as a side effect; every cookie they need persisted must go
// through the CookieWriter. Returns ErrNoSession when the request carries
// no usable session.
type Provider interface {
	Authenticate(ctx context.Context, r *http.Request, w CookieWriter) (*User, error)
}

// ProviderFunc adapts a plain function to the Provider interface.
type ProviderFunc func(ctx context.Context, r *http.Request, w CookieWriter) (*User, error)

func (f ProviderFunc) Authenticate(ctx context.Context, r *http.Request, w CookieWriter) (*User, error) {
	return f(ctx, r, w)
}
