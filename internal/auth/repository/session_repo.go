package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yash200611/launchmate/internal/apperrors"
)

const revokedKeyPrefix = "launchmate:session:revoked:" // launchmate:session:revoked:{jti}

// SessionRepository keeps the denylist of logged-out token ids in redis.
// Entries expire together with the token they revoke.
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

// Revoke marks jti as logged out for ttl. A non-positive ttl means the token
// has already expired and nothing is stored.
func (r *SessionRepository) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err(); err != nil {
		return apperrors.Storage("revoke session", err)
	}
	return nil
}

func (r *SessionRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	err := r.client.Get(ctx, revokedKeyPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.Storage("check session", err)
	}
	return true, nil
}
