package service

import (
	"context"

	"github.com/d60-Lab/channel-engage/internal/render"
)

// RenderGateway 把卡片写到频道消息上。外部消息未变化时返回 ErrNotModified。
type RenderGateway interface {
	Apply(ctx context.Context, itemID int64, card render.Card) error
}

// Messenger 给用户发私信（HTML）
type Messenger interface {
	SendDirectMessage(ctx context.Context, userID int64, text string) error
}

// Pinner 在频道里置顶帖子
type Pinner interface {
	Pin(ctx context.Context, itemID int64) error
}

// RenderCommand 需要下发给网关的渲染
type RenderCommand struct {
	ItemID   int64
	Card     render.Card
	Previous *render.Card
}
