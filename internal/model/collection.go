package model

import "time"

// Collection 收藏记录（存在即已收藏）
type Collection struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	ItemID    int64  `gorm:"not null;uniqueIndex:ux_collection_item_user"`
	UserID    int64  `gorm:"not null;uniqueIndex:ux_collection_item_user;index:idx_collection_user"`
	CreatedAt time.Time
}

func (Collection) TableName() string { return "collections" }
