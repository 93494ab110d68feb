package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/d60-Lab/channel-engage/internal/metrics"
	"github.com/d60-Lab/channel-engage/internal/model"
	"github.com/d60-Lab/channel-engage/internal/render"
	"github.com/d60-Lab/channel-engage/internal/repository"
	"github.com/d60-Lab/channel-engage/pkg/logger"
)

// DispatchResult 通知投递结果
type DispatchResult int

const (
	DispatchNone DispatchResult = iota
	DispatchSent
	DispatchSkippedSelf
	DispatchSkippedDuplicate
	DispatchFailed
)

func (r DispatchResult) String() string {
	switch r {
	case DispatchSent:
		return "sent"
	case DispatchSkippedSelf:
		return "skipped_self"
	case DispatchSkippedDuplicate:
		return "skipped_duplicate"
	case DispatchFailed:
		return "failed"
	}
	return "none"
}

// Notice 需要告知作者的一次互动
type Notice struct {
	ItemID      int64
	AuthorID    int64
	ActorID     int64
	ActorName   string
	Kind        model.NotificationKind
	Content     string
	CommentText string
}

// Notifier 给作者发私信。赞和收藏每个 (帖子, 作者, 类型) 只发一次，评论每条都发。
type Notifier struct {
	notifications repository.NotificationRepository
	messenger     Messenger
	renderer      *render.Renderer
	previewLength int
}

func NewNotifier(notifications repository.NotificationRepository, messenger Messenger, renderer *render.Renderer, previewLength int) *Notifier {
	if previewLength <= 0 {
		previewLength = 30
	}
	return &Notifier{
		notifications: notifications,
		messenger:     messenger,
		renderer:      renderer,
		previewLength: previewLength,
	}
}

// Dispatch 只有台账写入失败才返回 error；私信发送失败记日志，结果为 DispatchFailed
func (n *Notifier) Dispatch(ctx context.Context, notice Notice) (DispatchResult, error) {
	if notice.ActorID == notice.AuthorID {
		return n.observe(notice, DispatchSkippedSelf), nil
	}

	if notice.Kind != model.NotifyComment {
		inserted, err := n.notifications.MarkOnce(ctx, notice.ItemID, notice.AuthorID, notice.Kind)
		if err != nil {
			return DispatchNone, fmt.Errorf("mark notification: %w", err)
		}
		if !inserted {
			return n.observe(notice, DispatchSkippedDuplicate), nil
		}
	}

	if err := n.messenger.SendDirectMessage(ctx, notice.AuthorID, n.compose(notice)); err != nil {
		logger.Warn("send notification failed",
			zap.Int64("item_id", notice.ItemID),
			zap.Int64("author_id", notice.AuthorID),
			zap.String("kind", string(notice.Kind)),
			zap.Error(err))
		return n.observe(notice, DispatchFailed), nil
	}
	return n.observe(notice, DispatchSent), nil
}

// Congratulate 帖子首次被置顶时通知作者
func (n *Notifier) Congratulate(ctx context.Context, item *model.Submission, likes int64) DispatchResult {
	text := fmt.Sprintf("🔥 恭喜！你的帖子获得了 %d 个赞，已被置顶推荐\n\n%s", likes, n.reference(item.ID, item.Content))
	if err := n.messenger.SendDirectMessage(ctx, item.AuthorID, text); err != nil {
		logger.Warn("send promotion notice failed", zap.Int64("item_id", item.ID), zap.Error(err))
		return DispatchFailed
	}
	return DispatchSent
}

func (n *Notifier) compose(notice Notice) string {
	actor := render.Escape(notice.ActorName)
	if actor == "" {
		actor = "有人"
	}
	ref := n.reference(notice.ItemID, notice.Content)
	switch notice.Kind {
	case model.NotifyLike:
		return fmt.Sprintf("👍 %s 赞了你的帖子\n\n%s", actor, ref)
	case model.NotifyCollect:
		return fmt.Sprintf("⭐ %s 收藏了你的帖子\n\n%s", actor, ref)
	default:
		return fmt.Sprintf("💬 %s 评论了你的帖子\n\n%s\n\n%s", actor, ref, render.Escape(notice.CommentText))
	}
}

// reference 帖子摘要，能生成链接时带上链接
func (n *Notifier) reference(itemID int64, content string) string {
	preview := render.Escape(render.Truncate(content, n.previewLength))
	if link := n.renderer.ItemLink(itemID); link != "" {
		return fmt.Sprintf(`📝 <a href="%s">%s</a>`, link, preview)
	}
	return "📝 " + preview
}

func (n *Notifier) observe(notice Notice, r DispatchResult) DispatchResult {
	metrics.NotificationsTotal.WithLabelValues(string(notice.Kind), r.String()).Inc()
	return r
}
