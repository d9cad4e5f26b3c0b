package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCache is an in-process cache.Cache for tests.
type memoryCache struct {
	mu    sync.Mutex
	data  map[string]string
	setNX func(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	get   func(ctx context.Context, key string) (string, bool, error)
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string]string{}}
}

func (m *memoryCache) Get(ctx context.Context, key string) (string, bool, error) {
	if m.get != nil {
		return m.get(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	return val, ok, nil
}

func (m *memoryCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryCache) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if m.setNX != nil {
		return m.setNX(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.data[key]; exists {
		return false, nil
	}
	m.data[key] = value
	return true, nil
}

func (m *memoryCache) Del(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memoryCache) Expire(ctx context.Context, key string, ttl time.Duration) error { return nil }
func (m *memoryCache) Ping(ctx context.Context) error                                  { return nil }
func (m *memoryCache) Close() error                                                    { return nil }

func TestLockKeyString(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")

	rotation := RotationLockKey(id)
	assert.Equal(t, "lock:rotation:11111111-2222-3333-4444-555555555555", rotation.String())

	start := time.Date(2026, 3, 2, 14, 30, 0, 0, time.FixedZone("ICT", 7*3600))
	slot := SlotLockKey(id, start)
	assert.Equal(t, "lock:slot:11111111-2222-3333-4444-555555555555:2026-03-02T07:30:00Z", slot.String(),
		"qualifier is the slot start normalized to UTC")
}

func TestBookingLock_SecondAcquireFails(t *testing.T) {
	t.Parallel()

	lock := NewBookingLock(newMemoryCache(), time.Minute)
	key := RotationLockKey(uuid.New())
	ctx := context.Background()

	token, acquired, err := lock.Acquire(ctx, key)
	require.NoError(t, err)
	require.True(t, acquired)
	require.NotEmpty(t, token)

	_, acquired, err = lock.Acquire(ctx, key)
	require.NoError(t, err)
	assert.False(t, acquired)
}

func TestBookingLock_ReleaseAllowsReacquire(t *testing.T) {
	t.Parallel()

	lock := NewBookingLock(newMemoryCache(), time.Minute)
	key := SlotLockKey(uuid.New(), time.Now())
	ctx := context.Background()

	token, acquired, err := lock.Acquire(ctx, key)
	require.NoError(t, err)
	require.True(t, acquired)

	require.NoError(t, lock.Release(ctx, key, token))

	_, acquired, err = lock.Acquire(ctx, key)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestBookingLock_ReleaseWithWrongTokenKeepsLock(t *testing.T) {
	t.Parallel()

	lock := NewBookingLock(newMemoryCache(), time.Minute)
	key := RotationLockKey(uuid.New())
	ctx := context.Background()

	_, acquired, err := lock.Acquire(ctx, key)
	require.NoError(t, err)
	require.True(t, acquired)

	// Releasing with a stale token must not free someone else's lock.
	require.NoError(t, lock.Release(ctx, key, "not-the-owner"))

	_, acquired, err = lock.Acquire(ctx, key)
	require.NoError(t, err)
	assert.False(t, acquired)
}

func TestBookingLock_ConfirmMismatchDeniesAcquire(t *testing.T) {
	t.Parallel()

	c := newMemoryCache()
	// The key reads back a different owner after the write, as when the TTL
	// fires between SetNX and the confirm read.
	c.get = func(ctx context.Context, key string) (string, bool, error) {
		return "someone-else", true, nil
	}

	lock := NewBookingLock(c, time.Minute)
	_, acquired, err := lock.Acquire(context.Background(), RotationLockKey(uuid.New()))
	require.NoError(t, err)
	assert.False(t, acquired)
}
