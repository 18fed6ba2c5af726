package redis

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*QuotaStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewQuotaStore(client), mr
}

func TestQuotaStore_GetAbsent(t *testing.T) {
	store, _ := setupStore(t)

	remaining, ok, err := store.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, remaining)
}

func TestQuotaStore_SetThenGet(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "u1", 10))

	remaining, ok, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 10, remaining)
}

func TestQuotaStore_SetRejectsNegative(t *testing.T) {
	store, _ := setupStore(t)

	assert.Error(t, store.Set(context.Background(), "u1", -1))
}

func TestQuotaStore_ConsumeSuccess(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "u1", 3))

	ok, err := store.ConsumeIfAvailable(ctx, "u1", 1)
	require.NoError(t, err)
	assert.True(t, ok)

	val, err := mr.Get("quota:user:u1")
	require.NoError(t, err)
	assert.Equal(t, "2", val)
}

func TestQuotaStore_ConsumeInsufficient(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "u1", 1))

	ok, err := store.ConsumeIfAvailable(ctx, "u1", 2)
	require.NoError(t, err)
	assert.False(t, ok)

	// rejected consume must not touch the balance
	val, err := mr.Get("quota:user:u1")
	require.NoError(t, err)
	assert.Equal(t, "1", val)
}

func TestQuotaStore_ConsumeMissingKey(t *testing.T) {
	store, _ := setupStore(t)

	ok, err := store.ConsumeIfAvailable(context.Background(), "nobody", 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestQuotaStore_ConsumeDownToZero(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "u1", 2))

	for i := 0; i < 2; i++ {
		ok, err := store.ConsumeIfAvailable(ctx, "u1", 1)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := store.ConsumeIfAvailable(ctx, "u1", 1)
	require.NoError(t, err)
	assert.False(t, ok)

	remaining, present, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, 0, remaining)
}

func TestQuotaStore_ConcurrentConsume(t *testing.T) {
	const credits = 5
	const goroutines = 20

	store, mr := setupStore(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "u1", credits))

	var wg sync.WaitGroup
	results := make(chan bool, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.ConsumeIfAvailable(ctx, "u1", 1)
			assert.NoError(t, err)
			results <- ok
		}()
	}
	wg.Wait()
	close(results)

	granted := 0
	for ok := range results {
		if ok {
			granted++
		}
	}
	assert.Equal(t, credits, granted)

	val, err := mr.Get("quota:user:u1")
	require.NoError(t, err)
	n, err := strconv.Atoi(val)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
