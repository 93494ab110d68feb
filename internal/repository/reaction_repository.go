package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/channel-engage/internal/model"
)

type ReactionRepository interface {
	// Get 在事务内带行锁读取用户当前的投票
	Get(ctx context.Context, itemID, userID int64) (*model.Reaction, error)
	Create(ctx context.Context, itemID, userID int64, p model.Polarity) error
	UpdatePolarity(ctx context.Context, itemID, userID int64, p model.Polarity) error
	Delete(ctx context.Context, itemID, userID int64) error
	CountByPolarity(ctx context.Context, itemID int64) (likes, dislikes int64, err error)
}

type reactionRepository struct{ db *gorm.DB }

func NewReactionRepository(db *gorm.DB) ReactionRepository { return &reactionRepository{db: db} }

func (r *reactionRepository) Get(ctx context.Context, itemID, userID int64) (*model.Reaction, error) {
	var rec model.Reaction
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("item_id = ? AND user_id = ?", itemID, userID).
		First(&rec).Error
	if err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

// Create 插入投票；唯一键冲突时返回 ErrDuplicate 而不是覆盖
func (r *reactionRepository) Create(ctx context.Context, itemID, userID int64, p model.Polarity) error {
	rec := &model.Reaction{ID: uuid.New().String(), ItemID: itemID, UserID: userID, Polarity: p}
	return insertedOrDuplicate(r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(rec))
}

func (r *reactionRepository) UpdatePolarity(ctx context.Context, itemID, userID int64, p model.Polarity) error {
	res := r.db.WithContext(ctx).
		Model(&model.Reaction{}).
		Where("item_id = ? AND user_id = ?", itemID, userID).
		Update("polarity", p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reactionRepository) Delete(ctx context.Context, itemID, userID int64) error {
	return r.db.WithContext(ctx).
		Where("item_id = ? AND user_id = ?", itemID, userID).
		Delete(&model.Reaction{}).Error
}

func (r *reactionRepository) CountByPolarity(ctx context.Context, itemID int64) (int64, int64, error) {
	type row struct {
		Polarity model.Polarity
		N        int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.Reaction{}).
		Select("polarity, COUNT(*) AS n").
		Where("item_id = ?", itemID).
		Group("polarity").
		Scan(&rows).Error
	if err != nil {
		return 0, 0, err
	}
	var likes, dislikes int64
	for _, row := range rows {
		switch row.Polarity {
		case model.Like:
			likes = row.N
		case model.Dislike:
			dislikes = row.N
		}
	}
	return likes, dislikes, nil
}
