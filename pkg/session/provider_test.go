package session_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aluro/storegate/pkg/session"
)

type fakeTokenStore struct {
	users   map[string]*session.User
	touched map[string]time.Duration
	err     error
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{
		users:   make(map[string]*session.User),
		touched: make(map[string]time.Duration),
	}
}

func (s *fakeTokenStore) Get(_ context.Context, token string) (*session.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.users[token]
	if !ok {
		return nil, session.ErrNoSession
	}
	return user, nil
}

func (s *fakeTokenStore) Touch(_ context.Context, token string, ttl time.Duration) error {
	s.touched[token] = ttl
	return nil
}

type cookieJar struct{ cookies []*http.Cookie }

func (j *cookieJar) SetCookie(c *http.Cookie) { j.cookies = append(j.cookies, c) }

func TestStoreProvider(t *testing.T) {
	t.Parallel()

	cfg := session.Config{CookieName: "aluro_session", TTL: time.Hour, CookiePath: "/"}

	t.Run("authenticates and slides the session", func(t *testing.T) {
		t.Parallel()

		store := newFakeTokenStore()
		want := &session.User{ID: uuid.New(), Email: "user@example.com"}
		store.users["tok-1"] = want

		provider := session.NewStoreProvider(store, cfg)
		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: "aluro_session", Value: "tok-1"})
		jar := &cookieJar{}

		user, err := provider.Authenticate(context.Background(), req, jar)
		require.NoError(t, err)
		assert.Equal(t, want, user)
		assert.Equal(t, time.Hour, store.touched["tok-1"])

		require.Len(t, jar.cookies, 1)
		assert.Equal(t, "tok-1", jar.cookies[0].Value)
		assert.Equal(t, int(time.Hour.Seconds()), jar.cookies[0].MaxAge)
		assert.True(t, jar.cookies[0].HttpOnly)
	})

	t.Run("no cookie means no session", func(t *testing.T) {
		t.Parallel()

		provider := session.NewStoreProvider(newFakeTokenStore(), cfg)
		jar := &cookieJar{}

		_, err := provider.Authenticate(context.Background(), httptest.NewRequest("GET", "/", nil), jar)
		assert.ErrorIs(t, err, session.ErrNoSession)
		assert.Empty(t, jar.cookies)
	})

	t.Run("stale cookie is cleared", func(t *testing.T) {
		t.Parallel()

		provider := session.NewStoreProvider(newFakeTokenStore(), cfg)
		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: "aluro_session", Value: "expired"})
		jar := &cookieJar{}

		_, err := provider.Authenticate(context.Background(), req, jar)
		assert.ErrorIs(t, err, session.ErrNoSession)

		require.Len(t, jar.cookies, 1)
		assert.Equal(t, "", jar.cookies[0].Value)
		assert.Equal(t, -1, jar.cookies[0].MaxAge)
	})

	t.Run("partial config keeps explicit fields", func(t *testing.T) {
		t.Parallel()

		store := newFakeTokenStore()
		store.users["tok-1"] = &session.User{ID: uuid.New(), Email: "user@example.com"}

		// TTL set, cookie name left to the default. The explicit TTL must
		// survive defaulting.
		provider := session.NewStoreProvider(store, session.Config{TTL: 30 * time.Minute})
		def := session.DefaultConfig()

		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: def.CookieName, Value: "tok-1"})
		jar := &cookieJar{}

		_, err := provider.Authenticate(context.Background(), req, jar)
		require.NoError(t, err)
		assert.Equal(t, 30*time.Minute, store.touched["tok-1"])

		require.Len(t, jar.cookies, 1)
		assert.Equal(t, def.CookieName, jar.cookies[0].Name)
		assert.Equal(t, def.CookiePath, jar.cookies[0].Path)
		assert.Equal(t, int((30 * time.Minute).Seconds()), jar.cookies[0].MaxAge)
	})

	t.Run("store failure surfaces wrapped", func(t *testing.T) {
		t.Parallel()

		store := newFakeTokenStore()
		store.err = errors.New("connection refused")

		provider := session.NewStoreProvider(store, cfg)
		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: "aluro_session", Value: "tok-1"})

		_, err := provider.Authenticate(context.Background(), req, &cookieJar{})
		assert.ErrorIs(t, err, session.ErrStoreFailure)
	})
}
