package model

import "time"

// Polarity 赞 / 踩
type Polarity int8

const (
	Like    Polarity = 1
	Dislike Polarity = -1
)

func (p Polarity) Valid() bool { return p == Like || p == Dislike }

func (p Polarity) String() string {
	switch p {
	case Like:
		return "like"
	case Dislike:
		return "dislike"
	default:
		return "unknown"
	}
}

// Reaction 用户对帖子的当前态度，每个 (item, user) 只有一个槽位
type Reaction struct {
	ID     string `gorm:"primaryKey;type:varchar(36)"`
	ItemID int64  `gorm:"not null;uniqueIndex:ux_reaction_item_user;index:idx_reaction_item_polarity"`
	UserID int64  `gorm:"not null;uniqueIndex:ux_reaction_item_user"`
	// 复合唯一键 ux_reaction_item_user = (item_id, user_id)，并发重复插入由它拦下
	Polarity  Polarity `gorm:"not null;index:idx_reaction_item_polarity"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Reaction) TableName() string { return "reactions" }
