package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/d60-Lab/channel-engage/internal/model"
	"github.com/d60-Lab/channel-engage/internal/repository"
)

// CommentListing 用户在某个帖子下可以管理的评论
type CommentListing struct {
	ItemID   int64            `json:"item_id"`
	IsAuthor bool             `json:"is_author"`
	Mine     []*model.Comment `json:"mine"`
	Others   []*model.Comment `json:"others"`
}

// ManageableComments 自己的评论，以及作者身份下其他人的评论
func (e *Engine) ManageableComments(ctx context.Context, itemID, userID int64) (*CommentListing, error) {
	item, err := e.store.Submissions.Get(ctx, itemID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load item %d: %w", itemID, err)
	}

	out := &CommentListing{ItemID: itemID, IsAuthor: item.AuthorID == userID}
	if out.Mine, err = e.store.Comments.ListByUser(ctx, itemID, userID); err != nil {
		return nil, err
	}
	if out.IsAuthor {
		if out.Others, err = e.store.Comments.ListExcludingUser(ctx, itemID, userID); err != nil {
			return nil, err
		}
	}
	return out, nil
}
