package telegram

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// PendingStore 记录"点了发表评论、还没发出内容"的用户，到期自动失效
type PendingStore interface {
	Put(ctx context.Context, userID, itemID int64) error
	// Take 取出并清除；没有或已过期时 ok 为 false
	Take(ctx context.Context, userID int64) (itemID int64, ok bool, err error)
	Delete(ctx context.Context, userID int64) error
}

type pendingEntry struct {
	itemID  int64
	expires time.Time
}

// MemoryPending 单进程使用
type MemoryPending struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[int64]pendingEntry
}

func NewMemoryPending(ttl time.Duration) *MemoryPending {
	return &MemoryPending{ttl: ttl, now: time.Now, entries: make(map[int64]pendingEntry)}
}

func (p *MemoryPending) Put(_ context.Context, userID, itemID int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.now()
	// 顺手清理过期项
	for uid, e := range p.entries {
		if now.After(e.expires) {
			delete(p.entries, uid)
		}
	}
	p.entries[userID] = pendingEntry{itemID: itemID, expires: now.Add(p.ttl)}
	return nil
}

func (p *MemoryPending) Take(_ context.Context, userID int64) (int64, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.entries[userID]
	if !ok {
		return 0, false, nil
	}
	delete(p.entries, userID)
	if p.now().After(e.expires) {
		return 0, false, nil
	}
	return e.itemID, true, nil
}

func (p *MemoryPending) Delete(_ context.Context, userID int64) error {
	p.mu.Lock()
	delete(p.entries, userID)
	p.mu.Unlock()
	return nil
}

// RedisPending 多个进程共享会话状态
type RedisPending struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPending(client *redis.Client, ttl time.Duration) *RedisPending {
	return &RedisPending{client: client, ttl: ttl}
}

func pendingKey(userID int64) string { return fmt.Sprintf("engage:pending:%d", userID) }

func (p *RedisPending) Put(ctx context.Context, userID, itemID int64) error {
	return p.client.Set(ctx, pendingKey(userID), itemID, p.ttl).Err()
}

func (p *RedisPending) Take(ctx context.Context, userID int64) (int64, bool, error) {
	itemID, err := p.client.GetDel(ctx, pendingKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return itemID, true, nil
}

func (p *RedisPending) Delete(ctx context.Context, userID int64) error {
	return p.client.Del(ctx, pendingKey(userID)).Err()
}
