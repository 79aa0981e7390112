package session

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// Session maintains user state through a Redis-backed key-value store where
// values are serialized as JSON. The session automatically expires after the
// configured timeout unless touched.
type Session struct {
	redis  rueidis.Client
	logger *zap.Logger
	key    string
	ttl    time.Duration
	data   map[string]any
	mu     sync.RWMutex
}

// NewSession creates a session around existing data.
func NewSession(redis rueidis.Client, key string, ttl time.Duration, data map[string]any, logger *zap.Logger) *Session {
	return &Session{
		redis:  redis,
		logger: logger.Named("session"),
		key:    key,
		ttl:    ttl,
		data:   data,
	}
}

// Touch serializes the session data to JSON and refreshes the TTL in Redis.
// Serialization or storage failures are logged but don't interrupt handling.
func (s *Session) Touch(ctx context.Context) {
	s.mu.RLock()
	data, err := sonic.MarshalString(s.data)
	s.mu.RUnlock()

	if err != nil {
		s.logger.Error("Failed to marshal session data", zap.Error(err))
		return
	}

	err = s.redis.Do(ctx,
		s.redis.B().Set().Key(s.key).Value(data).Ex(s.ttl).Build(),
	).Error()
	if err != nil {
		s.logger.Error("Failed to update session in Redis", zap.Error(err))
	}
}

// Get returns the raw value for the given key, or nil if unset.
func (s *Session) Get(key string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.data[key]
}

// Set sets the value for the given key.
func (s *Session) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
}

// Delete removes a key from the session data.
func (s *Session) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
}

// GetString returns the string value for the given key.
func (s *Session) GetString(key string) string {
	if value, ok := s.Get(key).(string); ok {
		return value
	}
	return ""
}

// GetUint64 returns the uint64 value for the given key. Values are stored as
// decimal strings to survive the JSON round trip without losing precision.
func (s *Session) GetUint64(key string) uint64 {
	value, ok := s.Get(key).(string)
	if !ok {
		return 0
	}

	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		s.logger.Error("Failed to parse uint64 from session",
			zap.Error(err),
			zap.String("key", key),
			zap.String("value", value))
		return 0
	}

	return parsed
}

// SetUint64 stores a uint64 value as a decimal string.
func (s *Session) SetUint64(key string, value uint64) {
	s.Set(key, strconv.FormatUint(value, 10))
}
