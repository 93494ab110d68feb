package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/d60-Lab/channel-engage/internal/repository"
)

// PromotionResult 一次点赞后的置顶判定
type PromotionResult int

const (
	PromotionNotEvaluated PromotionResult = iota
	PromotionBelowThreshold
	PromotionAlreadyPinned
	PromotionNewlyPinned
)

func (r PromotionResult) String() string {
	switch r {
	case PromotionBelowThreshold:
		return "below_threshold"
	case PromotionAlreadyPinned:
		return "already_pinned"
	case PromotionNewlyPinned:
		return "newly_pinned"
	}
	return "not_evaluated"
}

// PromotionPolicy 点赞数首次达到阈值时置顶，只触发一次
type PromotionPolicy struct {
	threshold int64
}

func NewPromotionPolicy(threshold int64) *PromotionPolicy {
	if threshold <= 0 {
		threshold = 100
	}
	return &PromotionPolicy{threshold: threshold}
}

func (p *PromotionPolicy) Threshold() int64 { return p.threshold }

// MaybePromote 必须在写入点赞的同一事务里调用。
// pins.item_id 唯一，并发越过阈值的请求只有一个能写入。
func (p *PromotionPolicy) MaybePromote(ctx context.Context, tx *repository.Store, itemID, likes int64) (PromotionResult, error) {
	if likes < p.threshold {
		return PromotionBelowThreshold, nil
	}
	inserted, err := tx.Pins.CreateOnce(ctx, itemID, likes)
	if err != nil {
		return PromotionNotEvaluated, fmt.Errorf("record pin: %w", err)
	}
	if !inserted {
		return PromotionAlreadyPinned, nil
	}
	if err := tx.Submissions.MarkPromoted(ctx, itemID); err != nil {
		return PromotionNotEvaluated, fmt.Errorf("mark promoted: %w", err)
	}
	return PromotionNewlyPinned, nil
}

// PromotionStatus 帖子的置顶状态
type PromotionStatus struct {
	ItemID    int64      `json:"item_id"`
	Threshold int64      `json:"threshold"`
	Likes     int64      `json:"likes"`
	Pinned    bool       `json:"pinned"`
	PinLikes  int64      `json:"pin_likes,omitempty"`
	PinnedAt  *time.Time `json:"pinned_at,omitempty"`
}

// Promotion 查询置顶状态；PinLikes 是触发置顶那一刻的点赞数
func (e *Engine) Promotion(ctx context.Context, itemID int64) (*PromotionStatus, error) {
	if _, err := e.store.Submissions.Get(ctx, itemID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	counts, err := e.store.Counts(ctx, itemID)
	if err != nil {
		return nil, err
	}
	st := &PromotionStatus{ItemID: itemID, Threshold: e.promotion.Threshold(), Likes: counts.Likes}
	pin, err := e.store.Pins.Get(ctx, itemID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("load pin: %w", err)
	default:
		st.Pinned = true
		st.PinLikes = pin.LikeCount
		st.PinnedAt = &pin.CreatedAt
	}
	return st, nil
}
