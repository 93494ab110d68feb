package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseMutualExclusion 并发进入同一个 key 的临界区，不允许重叠
func exerciseMutualExclusion(t *testing.T, l Locker) {
	t.Helper()
	var inside, maxInside, total atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), ItemKey(1))
			if !assert.NoError(t, err) {
				return
			}
			n := inside.Add(1)
			if n > maxInside.Load() {
				maxInside.Store(n)
			}
			time.Sleep(time.Millisecond)
			total.Add(1)
			inside.Add(-1)
			unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxInside.Load())
	assert.Equal(t, int32(20), total.Load())
}

func TestKeyedMutex(t *testing.T) {
	m := NewKeyedMutex()
	exerciseMutualExclusion(t, m)
	assert.Equal(t, 0, m.Len())
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	m := NewKeyedMutex()
	u1, err := m.Lock(context.Background(), ItemKey(1))
	require.NoError(t, err)
	u2, err := m.Lock(context.Background(), ItemKey(2))
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())
	u1()
	u2()
	// 重复调用 unlock 无副作用
	u1()
	assert.Equal(t, 0, m.Len())
}

func TestKeyedMutexContextCancel(t *testing.T) {
	m := NewKeyedMutex()
	unlock, err := m.Lock(context.Background(), "k")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = m.Lock(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, m.Len())
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisLocker(t *testing.T) {
	_, client := newRedis(t)
	exerciseMutualExclusion(t, NewRedisLocker(client, time.Second))
}

func TestRedisLockerReleaseOnlyOwnToken(t *testing.T) {
	mr, client := newRedis(t)
	l := NewRedisLocker(client, time.Second)

	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, mr.Exists("engage:lock:k"))

	// 锁过期后被别人拿走，旧持有者解锁不能删掉新锁
	mr.FastForward(2 * time.Second)
	require.NoError(t, mr.Set("engage:lock:k", "someone-else"))
	unlock()
	v, err := mr.Get("engage:lock:k")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", v)
}

func TestRedisLockerContextCancel(t *testing.T) {
	_, client := newRedis(t)
	l := NewRedisLocker(client, time.Second)

	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
