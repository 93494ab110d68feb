package model

import "time"

// Comment 评论，只追加；仅评论者本人或帖子作者可删除
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	ItemID    int64     `json:"item_id" gorm:"not null;index:idx_comment_item_created"`
	UserID    int64     `json:"user_id" gorm:"not null;index:idx_comment_user"`
	UserName  string    `json:"user_name" gorm:"type:varchar(255);not null"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_comment_item_created"`
}

func (Comment) TableName() string { return "comments" }
