package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/channel-engage/internal/model"
)

type CommentRepository interface {
	Create(ctx context.Context, c *model.Comment) error
	Get(ctx context.Context, id uint) (*model.Comment, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context, itemID int64) (int64, error)
	// ListFirst 按时间升序取最早的 limit 条
	ListFirst(ctx context.Context, itemID int64, limit int) ([]*model.Comment, error)
	// ListByUser 某用户在该帖下的评论，新的在前
	ListByUser(ctx context.Context, itemID, userID int64) ([]*model.Comment, error)
	// ListExcludingUser 该帖下除某用户外的评论，新的在前
	ListExcludingUser(ctx context.Context, itemID, userID int64) ([]*model.Comment, error)
}

type commentRepository struct{ db *gorm.DB }

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepository{db: db} }

func (r *commentRepository) Create(ctx context.Context, c *model.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *commentRepository) Get(ctx context.Context, id uint) (*model.Comment, error) {
	var c model.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *commentRepository) Count(ctx context.Context, itemID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("item_id = ?", itemID).Count(&cnt).Error
	return cnt, err
}

func (r *commentRepository) ListFirst(ctx context.Context, itemID int64, limit int) ([]*model.Comment, error) {
	var res []*model.Comment
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *commentRepository) ListByUser(ctx context.Context, itemID, userID int64) ([]*model.Comment, error) {
	var res []*model.Comment
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND user_id = ?", itemID, userID).
		Order("created_at DESC, id DESC").
		Find(&res).Error
	return res, err
}

func (r *commentRepository) ListExcludingUser(ctx context.Context, itemID, userID int64) ([]*model.Comment, error) {
	var res []*model.Comment
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND user_id <> ?", itemID, userID).
		Order("created_at DESC, id DESC").
		Find(&res).Error
	return res, err
}
