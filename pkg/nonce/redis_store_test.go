package nonce

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAddress = "0xAbC0000000000000000000000000000000000001"

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStoreWithTTL(client, time.Minute, zap.NewNop()), mr
}

func TestIssue_PersistsNormalizedRecord(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	rec, err := store.Issue(ctx, testAddress)
	require.NoError(t, err)

	_, err = uuid.Parse(rec.Nonce)
	require.NoError(t, err)
	assert.Equal(t, "0xabc0000000000000000000000000000000000001", rec.WalletAddress)
	assert.Equal(t, time.Minute, rec.ExpiresAt.Sub(rec.CreatedAt))
	assert.Equal(t, rec.CreatedAt, rec.CreatedAt.Truncate(time.Millisecond))

	key := buildKey(rec.WalletAddress, rec.Nonce)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))
}

func TestConsume_SingleUse(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	rec, err := store.Issue(ctx, testAddress)
	require.NoError(t, err)

	got, err := store.Consume(ctx, rec.Nonce, "0xABC0000000000000000000000000000000000001")
	require.NoError(t, err)
	assert.Equal(t, rec.Nonce, got.Nonce)
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))

	_, err = store.Consume(ctx, rec.Nonce, testAddress)
	assert.ErrorIs(t, err, ErrNonceNotFound)
	_, err = store.Lookup(ctx, rec.Nonce, testAddress)
	assert.ErrorIs(t, err, ErrNonceNotFound)
}

func TestLookup_DoesNotConsume(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	rec, err := store.Issue(ctx, testAddress)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		got, err := store.Lookup(ctx, rec.Nonce, testAddress)
		require.NoError(t, err)
		assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))
	}

	_, err = store.Consume(ctx, rec.Nonce, testAddress)
	assert.NoError(t, err)
}

func TestNotFoundCasesAreIndistinguishable(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	rec, err := store.Issue(ctx, testAddress)
	require.NoError(t, err)

	t.Run("never existed", func(t *testing.T) {
		_, err := store.Consume(ctx, uuid.NewString(), testAddress)
		assert.ErrorIs(t, err, ErrNonceNotFound)
	})

	t.Run("wrong address", func(t *testing.T) {
		_, err := store.Consume(ctx, rec.Nonce, "0xabc0000000000000000000000000000000000002")
		assert.ErrorIs(t, err, ErrNonceNotFound)
		_, err = store.Lookup(ctx, rec.Nonce, testAddress)
		assert.NoError(t, err, "wrong address must not consume the nonce")
	})

	t.Run("not a uuid", func(t *testing.T) {
		for _, n := range []string{"", "abc", "*", rec.Nonce + ":x", "{" + rec.Nonce + "}"} {
			_, err := store.Consume(ctx, n, testAddress)
			assert.ErrorIs(t, err, ErrNonceNotFound, n)
		}
	})

	t.Run("expired in redis", func(t *testing.T) {
		mr.FastForward(time.Minute + time.Second)
		_, err := store.Consume(ctx, rec.Nonce, testAddress)
		assert.ErrorIs(t, err, ErrNonceNotFound)
	})
}

func TestLazyExpiryCheck(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	base := time.Now()
	store.now = func() time.Time { return base }
	rec, err := store.Issue(ctx, testAddress)
	require.NoError(t, err)

	// Redis still holds the key, but the API clock is past expires_at.
	store.now = func() time.Time { return rec.ExpiresAt }
	_, err = store.Lookup(ctx, rec.Nonce, testAddress)
	assert.ErrorIs(t, err, ErrNonceNotFound)
	_, err = store.Consume(ctx, rec.Nonce, testAddress)
	assert.ErrorIs(t, err, ErrNonceNotFound)
}

func TestMultipleOutstandingNonces(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first, err := store.Issue(ctx, testAddress)
	require.NoError(t, err)
	second, err := store.Issue(ctx, testAddress)
	require.NoError(t, err)
	require.NotEqual(t, first.Nonce, second.Nonce)

	_, err = store.Consume(ctx, second.Nonce, testAddress)
	require.NoError(t, err)
	_, err = store.Consume(ctx, first.Nonce, testAddress)
	require.NoError(t, err)
}

func TestConsume_ConcurrentAtMostOne(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	rec, err := store.Issue(ctx, testAddress)
	require.NoError(t, err)

	const workers = 32
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		start     = make(chan struct{})
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := store.Consume(ctx, rec.Nonce, testAddress)
			switch {
			case err == nil:
				successes.Add(1)
			case !errors.Is(err, ErrNonceNotFound):
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
}

func TestRedisUnavailable(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	rec, err := store.Issue(ctx, testAddress)
	require.NoError(t, err)
	mr.Close()

	_, err = store.Issue(ctx, testAddress)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNonceNotFound)

	_, err = store.Lookup(ctx, rec.Nonce, testAddress)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNonceNotFound)

	_, err = store.Consume(ctx, rec.Nonce, testAddress)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNonceNotFound)
}
