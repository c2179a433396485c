package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/pkozlowski/bookstore/pkg/errors"
)

// SessionStore keeps staff login sessions and a token blacklist in redis.
// Keys: session:{staff_id}, blacklist:{token}.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates the session store.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// SaveSession records a staff login. TTL should match the refresh token
// lifetime so the session dies with the last valid token.
func (s *SessionStore) SaveSession(ctx context.Context, staffID uint, sessionData map[string]interface{}, ttl time.Duration) error {
	key := fmt.Sprintf("session:%d", staffID)

	if err := s.client.HMSet(ctx, key, sessionData).Err(); err != nil {
		return apperrors.Wrap(err, "saving session failed")
	}
	if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
		return apperrors.Wrap(err, "setting session expiry failed")
	}
	return nil
}

// GetSession returns the stored session fields, or ErrUnauthorized when the
// session has expired or never existed.
func (s *SessionStore) GetSession(ctx context.Context, staffID uint) (map[string]string, error) {
	key := fmt.Sprintf("session:%d", staffID)

	result, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, "reading session failed")
	}
	if len(result) == 0 {
		return nil, apperrors.ErrUnauthorized
	}
	return result, nil
}

// DeleteSession removes a staff session (logout).
func (s *SessionStore) DeleteSession(ctx context.Context, staffID uint) error {
	key := fmt.Sprintf("session:%d", staffID)

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return apperrors.Wrap(err, "deleting session failed")
	}
	return nil
}

// AddToBlacklist invalidates a token before its natural expiry. TTL should
// match the remaining access token lifetime.
func (s *SessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	key := fmt.Sprintf("blacklist:%s", token)

	if err := s.client.Set(ctx, key, "revoked", ttl).Err(); err != nil {
		return apperrors.Wrap(err, "blacklisting token failed")
	}
	return nil
}

// IsInBlacklist reports whether a token has been revoked.
func (s *SessionStore) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	key := fmt.Sprintf("blacklist:%s", token)

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, apperrors.Wrap(err, "checking token blacklist failed")
	}
	return exists > 0, nil
}
