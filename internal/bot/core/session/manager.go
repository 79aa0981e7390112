package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/disgoorg/snowflake/v2"
	"github.com/redis/rueidis"
	"go.uber.org/zap"

	"github.com/arthurlockman/FixMediaBot/internal/redis"
)

// SessionPrefix is prepended to all session keys in Redis to namespace them
// and avoid conflicts with other data stored in the same Redis instance.
const SessionPrefix = "session:"

var (
	ErrFailedToGetSession   = errors.New("failed to get session data")
	ErrFailedToParseSession = errors.New("failed to parse session data")
)

// Manager manages the session lifecycle using Redis as the backing store.
// Sessions are prefixed and stored with automatic expiration.
type Manager struct {
	redis  rueidis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewManager creates a new session manager that uses Redis as the backing store.
func NewManager(redisManager *redis.Manager, ttl time.Duration, logger *zap.Logger) (*Manager, error) {
	redisClient, err := redisManager.GetClient(redis.SessionDBIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to get Redis client: %w", err)
	}

	return &Manager{
		redis:  redisClient,
		ttl:    ttl,
		logger: logger.Named("session_manager"),
	}, nil
}

// GetOrCreateSession retrieves the session for the given user, creating an
// empty one if none exists or the stored one expired.
func (m *Manager) GetOrCreateSession(ctx context.Context, userID snowflake.ID) (*Session, error) {
	key := fmt.Sprintf("%s%d", SessionPrefix, userID)

	result := m.redis.Do(ctx, m.redis.B().Get().Key(key).Build())
	if result.Error() != nil {
		if rueidis.IsRedisNil(result.Error()) {
			return NewSession(m.redis, key, m.ttl, make(map[string]any), m.logger), nil
		}
		return nil, fmt.Errorf("%w: %w", ErrFailedToGetSession, result.Error())
	}

	data, err := result.AsBytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToGetSession, err)
	}

	var sessionData map[string]any
	if err := sonic.Unmarshal(data, &sessionData); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToParseSession, err)
	}

	return NewSession(m.redis, key, m.ttl, sessionData, m.logger), nil
}

// CloseSession removes a user's session from Redis immediately rather than
// waiting for expiration.
func (m *Manager) CloseSession(ctx context.Context, userID snowflake.ID) {
	key := fmt.Sprintf("%s%d", SessionPrefix, userID)
	if err := m.redis.Do(ctx, m.redis.B().Del().Key(key).Build()).Error(); err != nil {
		m.logger.Error("Failed to delete session",
			zap.Error(err),
			zap.String("key", key))
	}
}
