// Package session persists per-session dashboard preferences behind a small
// Store interface with in-memory and Redis backends.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pulsedash/pulsedash/internal/config"
)

// ErrNotFound is returned when a session has no stored value.
var ErrNotFound = errors.New("session not found")

// Store persists per-session preferences
type Store interface {
	// GetLanguage returns the stored language for a session, or ErrNotFound.
	GetLanguage(ctx context.Context, sessionID string) (string, error)

	// SetLanguage stores the language for a session and refreshes its TTL.
	SetLanguage(ctx context.Context, sessionID, language string) error

	// DeleteSession removes a session and its preferences.
	DeleteSession(ctx context.Context, sessionID string) error

	// Close releases backend resources.
	Close() error
}

// NewStore creates a Store instance based on configuration.
// Default is the in-memory backend if type is not specified.
func NewStore(cfg config.SessionConfig) (Store, error) {
	backend := strings.ToLower(cfg.Backend)
	if backend == "" {
		backend = "memory"
	}

	switch backend {
	case "memory":
		return newMemoryStore(cfg.TTL), nil

	case "redis":
		return newRedisStore(redisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
			TTL:      cfg.TTL,
		})

	default:
		return nil, fmt.Errorf("unsupported session backend: %s (supported: memory, redis)", backend)
	}
}
