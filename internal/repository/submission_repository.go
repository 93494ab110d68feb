package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/channel-engage/internal/model"
)

type SubmissionRepository interface {
	Create(ctx context.Context, s *model.Submission) error
	Get(ctx context.Context, itemID int64) (*model.Submission, error)
	MarkPromoted(ctx context.Context, itemID int64) error
	SetExpanded(ctx context.Context, itemID int64, expanded bool) error
}

type submissionRepository struct{ db *gorm.DB }

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

// Create 审核通过后写入；同一条频道消息重复发布返回 ErrDuplicate
func (r *submissionRepository) Create(ctx context.Context, s *model.Submission) error {
	return insertedOrDuplicate(r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(s))
}

func (r *submissionRepository) Get(ctx context.Context, itemID int64) (*model.Submission, error) {
	var s model.Submission
	if err := r.db.WithContext(ctx).Where("id = ?", itemID).First(&s).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *submissionRepository) MarkPromoted(ctx context.Context, itemID int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Submission{}).
		Where("id = ?", itemID).
		Update("promoted", true).Error
}

// SetExpanded 记录卡片的评论区展示状态
func (r *submissionRepository) SetExpanded(ctx context.Context, itemID int64, expanded bool) error {
	return r.db.WithContext(ctx).
		Model(&model.Submission{}).
		Where("id = ?", itemID).
		Update("expanded", expanded).Error
}
