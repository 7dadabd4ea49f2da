package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a TokenStore backed by Redis. Records are stored as JSON
// under "<prefix><token>" with the TTL managed by Redis itself.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore creates a store over an established Redis client.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "session:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

type sessionRecord struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Get implements TokenStore.
func (s *RedisStore) Get(ctx context.Context, token string) (*User, error) {
	raw, err := s.client.Get(ctx, s.prefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}
		return nil, errors.Join(ErrStoreFailure, err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	var user User
	if err := user.ID.UnmarshalText([]byte(rec.UserID)); err != nil {
		return nil, errors.Join(ErrStoreFailure, fmt.Errorf("malformed user id %q: %w", rec.UserID, err))
	}
	user.Email = rec.Email

	return &user, nil
}

// Touch implements TokenStore.
func (s *RedisStore) Touch(ctx context.Context, token string, ttl time.Duration) error {
	return s.client.Expire(ctx, s.prefix+token, ttl).Err()
}

// Put stores a session record. Used by the auth service that issues tokens;
// the gateway itself only reads.
func (s *RedisStore) Put(ctx context.Context, token string, user User, ttl time.Duration) error {
	raw, err := json.Marshal(sessionRecord{UserID: user.ID.String(), Email: user.Email})
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return s.client.Set(ctx, s.prefix+token, raw, ttl).Err()
}

// Delete removes a session record, e.g. on logout.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.prefix+token).Err()
}
