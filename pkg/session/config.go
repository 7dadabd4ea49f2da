package session

import "time"

type Config struct {
	CookieName    string        `env:"SESSION_COOKIE_NAME" envDefault:"aluro_session"` // CookieName is the name of the session token cookie.
	TTL           time.Duration `env:"SESSION_TTL" envDefault:"168h"`                  // TTL is the sliding session lifetime, refreshed on every authenticated request.
	CookiePath    string        `env:"SESSION_COOKIE_PATH" envDefault:"/"`             // CookiePath is the path attribute of the session cookie.
	SecureCookies bool          `env:"SESSION_SECURE_COOKIES" envDefault:"true"`       // SecureCookies controls the Secure attribute; disable for plain-HTTP development only.
}

// DefaultConfig returns the configuration used when no environment overrides
// are present.
func DefaultConfig() Config {
	return Config{
		CookieName:    "aluro_session",
		TTL:           168 * time.Hour,
		CookiePath:    "/",
		SecureCookies: true,
	}
}
