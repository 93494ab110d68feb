package model

import "time"

// Pin 一次性置顶标记；存在即说明推荐已经触发过
type Pin struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	ItemID    int64  `gorm:"not null;uniqueIndex"`
	LikeCount int64  `gorm:"not null"`
	CreatedAt time.Time
}

func (Pin) TableName() string { return "pins" }
