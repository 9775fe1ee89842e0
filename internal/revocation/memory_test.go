package revocation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(now *time.Time) *MemoryStore {
	store := NewMemoryStore()
	store.now = func() time.Time { return *now }
	return store
}

func TestMemoryStoreRevokeAndQuery(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore(&now)
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "token-a", now.Add(time.Hour)))

	revoked, err := store.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = store.IsRevoked(ctx, "token-b")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemoryStoreRevokeIsIdempotent(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore(&now)
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "token-a", now.Add(time.Hour)))
	require.NoError(t, store.Revoke(ctx, "token-a", now.Add(time.Hour)))
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStoreForgetsEntriesAfterExpiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore(&now)
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "short", now.Add(time.Minute)))
	require.NoError(t, store.Revoke(ctx, "long", now.Add(time.Hour)))

	now = now.Add(2 * time.Minute)

	revoked, err := store.IsRevoked(ctx, "short")
	require.NoError(t, err)
	assert.False(t, revoked)

	removed, err := store.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.Equal(t, 1, store.Len())

	revoked, err = store.IsRevoked(ctx, "long")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemoryStoreIgnoresAlreadyExpiredTokens(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore(&now)

	require.NoError(t, store.Revoke(context.Background(), "stale", now.Add(-time.Second)))
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()
	expiresAt := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Revoke(ctx, "shared", expiresAt)
		}()
		go func() {
			defer wg.Done()
			_, _ = store.IsRevoked(ctx, "shared")
		}()
	}
	wg.Wait()

	revoked, err := store.IsRevoked(ctx, "shared")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRunSweeperStopsOnCancel(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		RunSweeper(ctx, store, 10*time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestKeyIsStableAndHidesToken(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Key("abc"), Key("abc"))
	assert.NotEqual(t, Key("abc"), Key("abd"))
	assert.Len(t, Key("abc"), 64)
	assert.NotContains(t, redisKey("secret-token"), "secret-token")
}
