package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/d60-Lab/channel-engage/internal/metrics"
	"github.com/d60-Lab/channel-engage/internal/render"
	"github.com/d60-Lab/channel-engage/internal/service"
	"github.com/d60-Lab/channel-engage/pkg/logger"
)

// updatesAPI 长轮询需要的部分
type updatesAPI interface {
	botAPI
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// EventHandler 由 service.Engine 实现
type EventHandler interface {
	HandleEvent(ctx context.Context, ev service.Event) (*service.Outcome, error)
}

type BotOptions struct {
	ChannelID      int64
	Workers        int
	QueueSize      int
	PollTimeout    int
	HandleTimeout  time.Duration
	CommentTimeout time.Duration
}

// Bot 把 Telegram 更新转成引擎事件：频道按钮回调，以及私聊里的评论会话。
// 更新进入有界队列，由固定数量的 worker 处理，队列满时丢弃并记录。
type Bot struct {
	api      updatesAPI
	handler  EventHandler
	library  service.Library
	renderer *render.Renderer
	pending  PendingStore
	opts     BotOptions
	ch       chan tgbotapi.Update
}

func NewBot(api updatesAPI, handler EventHandler, library service.Library, renderer *render.Renderer, pending PendingStore, opts BotOptions) *Bot {
	if opts.Workers <= 0 {
		opts.Workers = 8
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 1024
	}
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = 60
	}
	if opts.HandleTimeout <= 0 {
		opts.HandleTimeout = 30 * time.Second
	}
	if opts.CommentTimeout <= 0 {
		opts.CommentTimeout = 5 * time.Minute
	}
	return &Bot{
		api:      api,
		handler:  handler,
		library:  library,
		renderer: renderer,
		pending:  pending,
		opts:     opts,
		ch:       make(chan tgbotapi.Update, opts.QueueSize),
	}
}

// Run 拉取更新直到 ctx 结束
func (b *Bot) Run(ctx context.Context) error {
	stop := b.Start(ctx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.opts.PollTimeout
	u.AllowedUpdates = []string{"message", "callback_query"}
	updates := b.api.GetUpdatesChan(u)

	logger.Info("telegram bot polling", zap.Int("workers", b.opts.Workers))
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return stop(shutdownCtx)
		case upd, ok := <-updates:
			if !ok {
				return stop(context.Background())
			}
			b.Enqueue(upd)
		}
	}
}

// Start 启动 worker，返回停止函数。停止时等待队列排空或 ctx 到期。
func (b *Bot) Start(ctx context.Context) func(context.Context) error {
	stopCh := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < b.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case upd := <-b.ch:
					metrics.QueueDepth.Set(float64(len(b.ch)))
					hctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.opts.HandleTimeout)
					b.handle(hctx, upd)
					cancel()
				case <-stopCh:
					return
				}
			}
		}()
	}
	return func(ctx context.Context) error {
		for len(b.ch) > 0 {
			select {
			case <-ctx.Done():
				close(stopCh)
				return ctx.Err()
			case <-time.After(50 * time.Millisecond):
			}
		}
		close(stopCh)
		wg.Wait()
		return nil
	}
}

// Enqueue 非阻塞入队
func (b *Bot) Enqueue(upd tgbotapi.Update) bool {
	select {
	case b.ch <- upd:
		metrics.QueueDepth.Set(float64(len(b.ch)))
		return true
	default:
		logger.Warn("update queue full, drop update", zap.Int("update_id", upd.UpdateID))
		return false
	}
}

func (b *Bot) handle(ctx context.Context, upd tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic while handling update", zap.Int("update_id", upd.UpdateID), zap.Any("panic", r))
		}
	}()
	switch {
	case upd.CallbackQuery != nil:
		b.onCallback(ctx, upd.CallbackQuery)
	case upd.Message != nil && upd.Message.Chat != nil && upd.Message.Chat.IsPrivate():
		b.onPrivateMessage(ctx, upd.Message)
	}
}

func (b *Bot) onCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	// 先应答，客户端按钮不再转圈
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		logger.Debug("answer callback failed", zap.Error(err))
	}

	ev, err := service.ParseCallbackData(cq.Data)
	if err != nil {
		logger.Debug("ignore callback", zap.String("data", cq.Data), zap.Error(err))
		return
	}
	if cq.Message != nil {
		if b.opts.ChannelID != 0 && cq.Message.Chat != nil && cq.Message.Chat.ID != b.opts.ChannelID {
			logger.Debug("ignore callback from foreign chat", zap.Int64("chat_id", cq.Message.Chat.ID))
			return
		}
		ev.Observed = ObservedCard(cq.Message)
	}
	if cq.From != nil {
		ev.UserID = cq.From.ID
		ev.UserName = displayName(cq.From)
	}

	if _, err := b.handler.HandleEvent(ctx, ev); err != nil {
		logger.Error("handle callback", zap.String("data", cq.Data), zap.Error(err))
	}
}

func (b *Bot) onPrivateMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	uid := msg.From.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.onStart(ctx, msg.Chat.ID, msg.From, msg.CommandArguments())
		case "cancel":
			if err := b.pending.Delete(ctx, uid); err != nil {
				logger.Warn("clear pending comment", zap.Int64("user_id", uid), zap.Error(err))
			}
			b.reply(msg.Chat.ID, "已取消评论")
		}
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}
	itemID, ok, err := b.pending.Take(ctx, uid)
	if err != nil {
		logger.Warn("load pending comment", zap.Int64("user_id", uid), zap.Error(err))
		b.reply(msg.Chat.ID, "❌ 评论失败，请稍后再试")
		return
	}
	if !ok {
		b.reply(msg.Chat.ID, "请先在频道帖子下点击「💬 评论」→「✍️ 发表评论」")
		return
	}

	out, err := b.handler.HandleEvent(ctx, service.Event{
		Action:   service.ActionPostComment,
		ItemID:   itemID,
		UserID:   uid,
		UserName: displayName(msg.From),
		Text:     text,
	})
	if err != nil || out.Ignored {
		logger.Warn("post comment", zap.Int64("item_id", itemID), zap.Int64("user_id", uid), zap.Error(err))
		b.reply(msg.Chat.ID, "❌ 评论失败，请稍后再试")
		return
	}
	b.reply(msg.Chat.ID, "✅ 评论已发布")
}

func (b *Bot) onStart(ctx context.Context, chatID int64, from *tgbotapi.User, args string) {
	switch {
	case strings.HasPrefix(args, "comment_"):
		itemID, err := strconv.ParseInt(strings.TrimPrefix(args, "comment_"), 10, 64)
		if err != nil || itemID <= 0 {
			b.reply(chatID, "链接无效")
			return
		}
		if err := b.pending.Put(ctx, from.ID, itemID); err != nil {
			logger.Warn("save pending comment", zap.Int64("user_id", from.ID), zap.Error(err))
			b.reply(chatID, "❌ 暂时无法评论，请稍后再试")
			return
		}
		b.reply(chatID, fmt.Sprintf("✍️ 请发送你的评论内容（%d 分钟内有效）\n发送 /cancel 取消", int(b.opts.CommentTimeout.Minutes())))
	case args == "main":
		b.sendLibrary(ctx, chatID, from.ID)
	default:
		b.reply(chatID, fmt.Sprintf("👋 你好，%s！\n在频道帖子下点赞、收藏、评论都会经由我来完成。", render.Escape(displayName(from))))
	}
}

func (b *Bot) sendLibrary(ctx context.Context, chatID, userID int64) {
	ids, err := b.library.ListCollections(ctx, userID, 1, 10)
	if err != nil {
		logger.Warn("list collections", zap.Int64("user_id", userID), zap.Error(err))
		b.reply(chatID, "❌ 暂时无法获取收藏，请稍后再试")
		return
	}
	if len(ids) == 0 {
		b.reply(chatID, "⭐ 你还没有收藏任何帖子")
		return
	}
	var sb strings.Builder
	sb.WriteString("⭐ 我的收藏\n")
	for i, id := range ids {
		if link := b.renderer.ItemLink(id); link != "" {
			fmt.Fprintf(&sb, "\n%d. <a href=\"%s\">#%d</a>", i+1, link, id)
			continue
		}
		fmt.Fprintf(&sb, "\n%d. #%d", i+1, id)
	}
	b.reply(chatID, sb.String())
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := b.api.Send(msg); err != nil {
		logger.Warn("reply failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func displayName(u *tgbotapi.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.UserName
	}
	if name == "" {
		name = fmt.Sprintf("用户%d", u.ID)
	}
	return name
}
