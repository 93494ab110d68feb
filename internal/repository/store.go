package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/d60-Lab/channel-engage/internal/model"
)

// Store 互动台账：聚合各张表的仓储，提供事务边界与计数
type Store struct {
	db *gorm.DB

	Submissions   SubmissionRepository
	Reactions     ReactionRepository
	Collections   CollectionRepository
	Comments      CommentRepository
	Notifications NotificationRepository
	Pins          PinRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Submissions:   NewSubmissionRepository(db),
		Reactions:     NewReactionRepository(db),
		Collections:   NewCollectionRepository(db),
		Comments:      NewCommentRepository(db),
		Notifications: NewNotificationRepository(db),
		Pins:          NewPinRepository(db),
	}
}

// Transaction 在一个事务内执行 fn；fn 只能使用传入的 tx，不能回头用外层 Store
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// Counts 从台账实时计算聚合数
func (s *Store) Counts(ctx context.Context, itemID int64) (model.Counts, error) {
	var c model.Counts
	var err error
	if c.Likes, c.Dislikes, err = s.Reactions.CountByPolarity(ctx, itemID); err != nil {
		return c, fmt.Errorf("count reactions: %w", err)
	}
	if c.Collections, err = s.Collections.Count(ctx, itemID); err != nil {
		return c, fmt.Errorf("count collections: %w", err)
	}
	if c.Comments, err = s.Comments.Count(ctx, itemID); err != nil {
		return c, fmt.Errorf("count comments: %w", err)
	}
	return c, nil
}

// Ping 检查存储可用
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
