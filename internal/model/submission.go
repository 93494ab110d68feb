package model

import "time"

// Submission 已发布到频道的投稿（ContentItem）。
// ID 即频道消息 ID；发布后只有 Promoted 与 Expanded 会变。
type Submission struct {
	ID         int64  `gorm:"primaryKey;autoIncrement:false"`
	AuthorID   int64  `gorm:"index:idx_submission_author;not null"`
	AuthorName string `gorm:"type:varchar(255)"`
	Content    string `gorm:"type:text"`
	// Captioned 频道消息是带 caption 的媒体消息，而不是纯文本
	Captioned bool `gorm:"not null;default:false"`
	Promoted  bool `gorm:"not null;default:false"`
	// Expanded 频道卡片当前是否展开了评论区
	Expanded  bool `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Submission) TableName() string { return "submissions" }
