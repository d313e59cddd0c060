package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileContentKeyIsStableAndNamespaced(t *testing.T) {
	k1 := FileContentKey("github.com/acme/widgets", "src/app/main.py")
	k2 := FileContentKey("github.com/acme/widgets", "src/app/main.py")
	require.Equal(t, k1, k2, "same inputs must yield same key")

	k3 := FileContentKey("github.com/acme/widgets", "src/app/other.py")
	require.NotEqual(t, k1, k3)

	require.Contains(t, k1, ContentKeyPrefix+":")
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", []byte("hello"), time.Hour))
	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("hello"), v)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "k", []byte("v"), -1*time.Second))
	// ttl <= 0 stores a never-expiring entry, so force an expired one directly.
	s.mu.Lock()
	s.entries["k"] = memEntry{value: []byte("v"), expireAt: time.Now().Add(-time.Minute)}
	s.mu.Unlock()
	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSQLiteStoreRoundTripAndTTL(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(ctx, "a", []byte("1"), time.Hour))
	v, ok, err := store.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("1"), v)

	// Overwrite via upsert.
	require.NoError(t, store.Set(ctx, "a", []byte("2"), time.Hour))
	v, ok, err = store.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("2"), v)

	// Already-expired entry is invisible and purgeable.
	require.NoError(t, store.Set(ctx, "b", []byte("x"), time.Nanosecond))
	time.Sleep(2 * time.Millisecond)
	_, ok, err = store.Get(ctx, "b")
	require.NoError(t, err)
	require.False(t, ok)
}
