package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/channel-engage/internal/model"
)

type PinRepository interface {
	// CreateOnce 由 item_id 唯一键保证只成功一次；已置顶返回 false
	CreateOnce(ctx context.Context, itemID, likeCount int64) (bool, error)
	Get(ctx context.Context, itemID int64) (*model.Pin, error)
	Count(ctx context.Context) (int64, error)
}

type pinRepository struct{ db *gorm.DB }

func NewPinRepository(db *gorm.DB) PinRepository { return &pinRepository{db: db} }

func (r *pinRepository) CreateOnce(ctx context.Context, itemID, likeCount int64) (bool, error) {
	rec := &model.Pin{ID: uuid.New().String(), ItemID: itemID, LikeCount: likeCount}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(rec)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *pinRepository) Get(ctx context.Context, itemID int64) (*model.Pin, error) {
	var p model.Pin
	if err := r.db.WithContext(ctx).Where("item_id = ?", itemID).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *pinRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Pin{}).Count(&cnt).Error
	return cnt, err
}
