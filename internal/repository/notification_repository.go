package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/channel-engage/internal/model"
)

type NotificationRepository interface {
	// MarkOnce 写入去重记录；已存在返回 false
	MarkOnce(ctx context.Context, itemID, recipientID int64, kind model.NotificationKind) (bool, error)
}

type notificationRepository struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) MarkOnce(ctx context.Context, itemID, recipientID int64, kind model.NotificationKind) (bool, error) {
	rec := &model.Notification{ID: uuid.New().String(), ItemID: itemID, RecipientID: recipientID, Kind: kind}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(rec)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
