package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/d60-Lab/channel-engage/internal/model"
	"github.com/d60-Lab/channel-engage/internal/render"
	"github.com/d60-Lab/channel-engage/internal/repository"
	"github.com/d60-Lab/channel-engage/pkg/logger"
)

// Publish 审核通过的投稿已经发到频道后登记到台账，并挂上初始键盘。
// 重复发布同一条消息时沿用已有记录。
func (e *Engine) Publish(ctx context.Context, s *model.Submission) (*render.Card, error) {
	if s == nil || s.ID <= 0 || s.AuthorID == 0 || strings.TrimSpace(s.Content) == "" {
		return nil, fmt.Errorf("%w: incomplete submission", ErrInvalidEvent)
	}

	item := s
	err := e.store.Transaction(ctx, func(tx *repository.Store) error {
		err := tx.Submissions.Create(ctx, s)
		if errors.Is(err, repository.ErrDuplicate) {
			existing, gerr := tx.Submissions.Get(ctx, s.ID)
			if gerr != nil {
				return gerr
			}
			item = existing
			return nil
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("publish item %d: %w", s.ID, err)
	}

	counts, err := e.store.Counts(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	card := render.Card{
		Text:      render.Visible(e.renderer.Body(item)),
		Keyboard:  e.renderer.CollapsedKeyboard(item.ID, counts),
		Captioned: item.Captioned,
	}

	if e.gateway != nil {
		if err := e.gateway.Apply(ctx, item.ID, card); err != nil && !errors.Is(err, ErrNotModified) {
			logger.Warn("attach initial card failed", zap.Int64("item_id", item.ID), zap.Error(err))
		}
	}
	logger.Info("item published", zap.Int64("item_id", item.ID), zap.Int64("author_id", item.AuthorID))
	return &card, nil
}
