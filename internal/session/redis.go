package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisConfig represents Redis session store configuration
type redisConfig struct {
	Addr     string // Redis address (e.g., localhost:6379 or redis://localhost:6379)
	Password string // Optional password
	DB       int    // Database number (default: 0)
	Prefix   string // Key prefix (default: "pulsedash")
	TTL      time.Duration
}

// RedisStore implements Store using Redis string keys with TTL.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// newRedisStore creates a new Redis store instance
func newRedisStore(cfg redisConfig) (*RedisStore, error) {
	// Parse URL or use defaults
	opts, err := redis.ParseURL(cfg.Addr)
	if err != nil {
		// Fallback to simple options
		opts = &redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if cfg.Prefix == "" {
		cfg.Prefix = "pulsedash"
	}

	return &RedisStore{
		client: client,
		prefix: cfg.Prefix,
		ttl:    cfg.TTL,
	}, nil
}

// languageKey converts a session ID to a Redis key
func (s *RedisStore) languageKey(sessionID string) string {
	return fmt.Sprintf("%s:session:%s:language", s.prefix, sessionID)
}

// GetLanguage returns the stored language for a session
func (s *RedisStore) GetLanguage(ctx context.Context, sessionID string) (string, error) {
	value, err := s.client.Get(ctx, s.languageKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session language: %w", err)
	}
	return value, nil
}

// SetLanguage stores the language for a session and refreshes its TTL
func (s *RedisStore) SetLanguage(ctx context.Context, sessionID, language string) error {
	if err := s.client.Set(ctx, s.languageKey(sessionID), language, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session language: %w", err)
	}
	return nil
}

// DeleteSession removes a session
func (s *RedisStore) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.languageKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Close releases the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
