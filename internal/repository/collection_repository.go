package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/channel-engage/internal/model"
)

type CollectionRepository interface {
	Exists(ctx context.Context, itemID, userID int64) (bool, error)
	Create(ctx context.Context, itemID, userID int64) error
	Delete(ctx context.Context, itemID, userID int64) error
	Count(ctx context.Context, itemID int64) (int64, error)
	ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*model.Collection, error)
}

type collectionRepository struct{ db *gorm.DB }

func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) Exists(ctx context.Context, itemID, userID int64) (bool, error) {
	var recs []model.Collection
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("item_id = ? AND user_id = ?", itemID, userID).
		Limit(1).
		Find(&recs).Error
	if err != nil {
		return false, err
	}
	return len(recs) > 0, nil
}

func (r *collectionRepository) Create(ctx context.Context, itemID, userID int64) error {
	rec := &model.Collection{ID: uuid.New().String(), ItemID: itemID, UserID: userID}
	return insertedOrDuplicate(r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(rec))
}

func (r *collectionRepository) Delete(ctx context.Context, itemID, userID int64) error {
	return r.db.WithContext(ctx).
		Where("item_id = ? AND user_id = ?", itemID, userID).
		Delete(&model.Collection{}).Error
}

func (r *collectionRepository) Count(ctx context.Context, itemID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Collection{}).Where("item_id = ?", itemID).Count(&cnt).Error
	return cnt, err
}

// ListByUser 我的收藏，新的在前
func (r *collectionRepository) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*model.Collection, error) {
	var res []*model.Collection
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}
