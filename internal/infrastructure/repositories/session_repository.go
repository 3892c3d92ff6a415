package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/draftly/domain"
)

// SessionRepositoryImpl implements domain.SessionRepository using Redis.
// Each session lives under session:<id> with a TTL; a per-user set under
// user_sessions:<userID> indexes the IDs so revoking every session for a
// user is a bounded, synchronous operation.
type SessionRepositoryImpl struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(client *redis.Client, ttl time.Duration) domain.SessionRepository {
	return &SessionRepositoryImpl{
		client: client,
		prefix: "session:",
		ttl:    ttl,
	}
}

func (r *SessionRepositoryImpl) userSetKey(userID uint) string {
	return fmt.Sprintf("user_sessions:%d", userID)
}

// Create implements domain.SessionRepository
func (r *SessionRepositoryImpl) Create(ctx context.Context, session *domain.Session) error {
	key := r.prefix + session.ID
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return err
	}

	if err := r.client.SAdd(ctx, r.userSetKey(session.UserID), session.ID).Err(); err != nil {
		return err
	}
	return r.client.Expire(ctx, r.userSetKey(session.UserID), r.ttl).Err()
}

// FindByID implements domain.SessionRepository
func (r *SessionRepositoryImpl) FindByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	key := r.prefix + sessionID
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	// Check if expired
	if session.ExpiresAt.Before(time.Now()) {
		r.client.Del(ctx, key)
		r.client.SRem(ctx, r.userSetKey(session.UserID), sessionID)
		return nil, domain.ErrSessionExpired
	}

	return &session, nil
}

// Delete implements domain.SessionRepository
func (r *SessionRepositoryImpl) Delete(ctx context.Context, sessionID string) error {
	key := r.prefix + sessionID

	// Look the session up first so the user index stays consistent
	data, err := r.client.Get(ctx, key).Result()
	if err == nil {
		var session domain.Session
		if json.Unmarshal([]byte(data), &session) == nil {
			r.client.SRem(ctx, r.userSetKey(session.UserID), sessionID)
		}
	}

	return r.client.Del(ctx, key).Err()
}

// DeleteByUser implements domain.SessionRepository. This is the mass
// revocation path used by password reset; it completes before the caller
// returns, so a refresh with a pre-reset token cannot race past it.
func (r *SessionRepositoryImpl) DeleteByUser(ctx context.Context, userID uint) error {
	setKey := r.userSetKey(userID)

	sessionIDs, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil && err != redis.Nil {
		return err
	}

	keys := make([]string, 0, len(sessionIDs)+1)
	for _, id := range sessionIDs {
		keys = append(keys, r.prefix+id)
	}
	keys = append(keys, setKey)

	return r.client.Del(ctx, keys...).Err()
}

// DeleteExpired implements domain.SessionRepository
func (r *SessionRepositoryImpl) DeleteExpired(ctx context.Context) error {
	// Redis expires session keys via TTL; nothing to scan here.
	return nil
}
