package service

import (
	"context"
	"math/rand"
	"testing"

	"github.com/d60-Lab/channel-engage/internal/model"
)

func BenchmarkReactionToggle(b *testing.B) {
	h := newHarness(b, 1<<40)
	h.seed(b)
	ctx := context.Background()

	// 预置一批已有表态，模拟热门帖子
	for u := int64(1); u <= 1000; u++ {
		if err := h.store.Reactions.Create(ctx, testItem, 10_000+u, model.Like); err != nil {
			b.Fatalf("seed reactions: %v", err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ev := like(int64(rand.Intn(500) + 1))
		if i%3 == 0 {
			ev.Polarity = model.Dislike
		}
		if _, err := h.engine.HandleEvent(ctx, ev); err != nil {
			b.Fatalf("handle: %v", err)
		}
	}
}

func BenchmarkCounts(b *testing.B) {
	h := newHarness(b, 100)
	h.seed(b)
	ctx := context.Background()
	for u := int64(1); u <= 1000; u++ {
		if err := h.store.Reactions.Create(ctx, testItem, u, model.Polarity(1-2*(u%2))); err != nil {
			b.Fatalf("seed reactions: %v", err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := h.engine.Counts(ctx, testItem); err != nil {
			b.Fatalf("counts: %v", err)
		}
	}
}
