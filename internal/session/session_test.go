package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsedash/pulsedash/internal/config"
)

func TestNewStore_Memory(t *testing.T) {
	store, err := NewStore(config.SessionConfig{Backend: "memory", TTL: time.Hour})
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, ok := store.(*MemoryStore)
	assert.True(t, ok, "expected a MemoryStore")
}

func TestNewStore_DefaultsToMemory(t *testing.T) {
	store, err := NewStore(config.SessionConfig{TTL: time.Hour})
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, ok := store.(*MemoryStore)
	assert.True(t, ok, "expected a MemoryStore")
}

func TestNewStore_UnsupportedBackend(t *testing.T) {
	_, err := NewStore(config.SessionConfig{Backend: "memcached", TTL: time.Hour})
	assert.Error(t, err)
}

func TestMemoryStore_SetGet(t *testing.T) {
	store := newMemoryStore(time.Hour)
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	_, err := store.GetLanguage(ctx, "sess-1")
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, store.SetLanguage(ctx, "sess-1", "ja"))

	lang, err := store.GetLanguage(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "ja", lang)

	// Overwrite replaces the previous value.
	require.NoError(t, store.SetLanguage(ctx, "sess-1", "en"))
	lang, err = store.GetLanguage(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "en", lang)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := newMemoryStore(20 * time.Millisecond)
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	require.NoError(t, store.SetLanguage(ctx, "sess-1", "de"))

	lang, err := store.GetLanguage(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "de", lang)

	time.Sleep(40 * time.Millisecond)

	_, err = store.GetLanguage(ctx, "sess-1")
	assert.True(t, errors.Is(err, ErrNotFound), "expired session should be gone")
}

func TestMemoryStore_Delete(t *testing.T) {
	store := newMemoryStore(time.Hour)
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	require.NoError(t, store.SetLanguage(ctx, "sess-1", "ja"))
	require.NoError(t, store.DeleteSession(ctx, "sess-1"))

	_, err := store.GetLanguage(ctx, "sess-1")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_IsolatedSessions(t *testing.T) {
	store := newMemoryStore(time.Hour)
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	require.NoError(t, store.SetLanguage(ctx, "sess-1", "ja"))
	require.NoError(t, store.SetLanguage(ctx, "sess-2", "en"))

	lang, err := store.GetLanguage(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "ja", lang)

	lang, err = store.GetLanguage(ctx, "sess-2")
	require.NoError(t, err)
	assert.Equal(t, "en", lang)
}
