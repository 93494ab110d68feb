package model

import "time"

// NotificationKind 通知类型
type NotificationKind string

const (
	NotifyLike    NotificationKind = "like"
	NotifyCollect NotificationKind = "collect"
	NotifyComment NotificationKind = "comment"
)

// Notification 通知去重记录，(item, recipient, kind) 唯一。
// 评论通知每条都发，不落这张表。
type Notification struct {
	ID          string           `gorm:"primaryKey;type:varchar(36)"`
	ItemID      int64            `gorm:"not null;uniqueIndex:ux_notification_item_recipient_kind"`
	RecipientID int64            `gorm:"not null;uniqueIndex:ux_notification_item_recipient_kind"`
	Kind        NotificationKind `gorm:"type:varchar(16);not null;uniqueIndex:ux_notification_item_recipient_kind"`
	CreatedAt   time.Time
}

func (Notification) TableName() string { return "notifications" }
