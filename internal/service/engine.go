package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/d60-Lab/channel-engage/internal/lock"
	"github.com/d60-Lab/channel-engage/internal/metrics"
	"github.com/d60-Lab/channel-engage/internal/model"
	"github.com/d60-Lab/channel-engage/internal/render"
	"github.com/d60-Lab/channel-engage/internal/repository"
	"github.com/d60-Lab/channel-engage/pkg/logger"
)

// Mutation 事件对台账造成的变化
type Mutation int

const (
	MutationNone Mutation = iota
	MutationCreated
	MutationRemoved
	MutationFlipped
)

func (m Mutation) String() string {
	switch m {
	case MutationCreated:
		return "created"
	case MutationRemoved:
		return "removed"
	case MutationFlipped:
		return "flipped"
	}
	return "none"
}

// RenderStatus 渲染差异的处理结果
type RenderStatus int

const (
	// RenderNone 既没有台账记录也没有外部观察，无从渲染
	RenderNone RenderStatus = iota
	RenderSkipped
	RenderApplied
	RenderFailed
)

func (s RenderStatus) String() string {
	switch s {
	case RenderSkipped:
		return "skipped"
	case RenderApplied:
		return "applied"
	case RenderFailed:
		return "failed"
	}
	return "none"
}

// Outcome 一次事件处理的全部结果
type Outcome struct {
	Event        Event
	Ignored      bool
	ItemFound    bool
	Mutation     Mutation
	Counts       model.Counts
	Command      *RenderCommand
	Render       RenderStatus
	Notification DispatchResult
	Promotion    PromotionResult
}

// Deps 引擎的外部依赖
type Deps struct {
	Store     *repository.Store
	Locker    lock.Locker
	Renderer  *render.Renderer
	Gateway   RenderGateway
	Messenger Messenger
	Pinner    Pinner
}

type Options struct {
	PromoteThreshold int64
	PreviewLength    int
}

// Engine 互动事件的对账引擎：同一帖子的事件串行处理，台账写入在一个事务内完成，
// 渲染、通知、置顶都在提交之后执行，失败不回滚台账。
type Engine struct {
	store     *repository.Store
	locker    lock.Locker
	renderer  *render.Renderer
	gateway   RenderGateway
	pinner    Pinner
	notifier  *Notifier
	promotion *PromotionPolicy
	tracer    trace.Tracer
}

func NewEngine(deps Deps, opts Options) *Engine {
	locker := deps.Locker
	if locker == nil {
		locker = lock.NewKeyedMutex()
	}
	return &Engine{
		store:     deps.Store,
		locker:    locker,
		renderer:  deps.Renderer,
		gateway:   deps.Gateway,
		pinner:    deps.Pinner,
		notifier:  NewNotifier(deps.Store.Notifications, deps.Messenger, deps.Renderer, opts.PreviewLength),
		promotion: NewPromotionPolicy(opts.PromoteThreshold),
		tracer:    otel.Tracer("github.com/d60-Lab/channel-engage/internal/service"),
	}
}

// ledgerState 事务内读到的数据
type ledgerState struct {
	item     *model.Submission
	mutation Mutation
	notify   model.NotificationKind
	counts   model.Counts
	comments []*model.Comment
	promo    PromotionResult
	expanded bool
}

// HandleEvent 处理一次互动事件。不合法的事件返回 Ignored 的 Outcome 而不是 error，
// 调用方照常确认即可。返回 error 表示台账不可用或删除评论的权限校验失败。
func (e *Engine) HandleEvent(ctx context.Context, ev Event) (*Outcome, error) {
	ctx, span := e.tracer.Start(ctx, "engine.HandleEvent", trace.WithAttributes(
		attribute.String("action", string(ev.Action)),
		attribute.Int64("item_id", ev.ItemID),
		attribute.Int64("user_id", ev.UserID),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		metrics.EventDuration.WithLabelValues(string(ev.Action)).Observe(time.Since(start).Seconds())
	}()

	out := &Outcome{Event: ev}
	if err := ev.Validate(); err != nil {
		logger.Debug("ignore invalid event", zap.Error(err))
		metrics.EventsTotal.WithLabelValues(string(ev.Action), "ignored").Inc()
		out.Ignored = true
		return out, nil
	}

	unlock, err := e.locker.Lock(ctx, lock.ItemKey(ev.ItemID))
	if err != nil {
		return nil, e.fail(span, ev, fmt.Errorf("lock item %d: %w", ev.ItemID, err))
	}
	defer unlock()

	var st ledgerState
	err = e.store.Transaction(ctx, func(tx *repository.Store) error {
		return e.reconcile(ctx, tx, ev, &st)
	})
	if err != nil {
		return nil, e.fail(span, ev, err)
	}

	out.ItemFound = st.item != nil
	out.Mutation = st.mutation
	out.Counts = st.counts
	out.Promotion = st.promo

	if card, ok := e.candidate(ev, &st); ok {
		out.Command, out.Render = e.render(ctx, ev, card)
	}
	metrics.RendersTotal.WithLabelValues(out.Render.String()).Inc()

	if st.item != nil && st.notify != "" {
		out.Notification, err = e.notifier.Dispatch(ctx, Notice{
			ItemID:      ev.ItemID,
			AuthorID:    st.item.AuthorID,
			ActorID:     ev.UserID,
			ActorName:   ev.UserName,
			Kind:        st.notify,
			Content:     st.item.Content,
			CommentText: strings.TrimSpace(ev.Text),
		})
		if err != nil {
			// 台账已经提交，通知失败只记录
			logger.Error("dispatch notification", zap.Int64("item_id", ev.ItemID), zap.Error(err))
			sentry.CaptureException(err)
		}
	}

	if st.promo == PromotionNewlyPinned {
		e.afterPromotion(ctx, st.item, st.counts.Likes)
	}

	span.SetAttributes(
		attribute.String("mutation", out.Mutation.String()),
		attribute.String("render", out.Render.String()),
	)
	metrics.EventsTotal.WithLabelValues(string(ev.Action), "ok").Inc()
	logger.Debug("event handled",
		zap.String("action", string(ev.Action)),
		zap.Int64("item_id", ev.ItemID),
		zap.Int64("user_id", ev.UserID),
		zap.String("mutation", out.Mutation.String()),
		zap.String("render", out.Render.String()),
		zap.String("notification", out.Notification.String()),
		zap.String("promotion", out.Promotion.String()))
	return out, nil
}

func (e *Engine) fail(span trace.Span, ev Event, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	metrics.EventsTotal.WithLabelValues(string(ev.Action), "error").Inc()
	if !errors.Is(err, ErrForbidden) && !errors.Is(err, ErrCommentNotFound) && !errors.Is(err, ErrItemNotFound) {
		sentry.CaptureException(err)
	}
	return err
}

// reconcile 事务内：写台账，重新计数，判定置顶，读评论窗口
func (e *Engine) reconcile(ctx context.Context, tx *repository.Store, ev Event, st *ledgerState) error {
	item, err := tx.Submissions.Get(ctx, ev.ItemID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		logger.Warn("item not in ledger, falling back to observed card", zap.Int64("item_id", ev.ItemID))
	case err != nil:
		return fmt.Errorf("load item %d: %w", ev.ItemID, err)
	default:
		st.item = item
	}

	promote := false
	switch ev.Action {
	case ActionReact:
		promote, err = e.applyReaction(ctx, tx, ev, st)
	case ActionCollect:
		err = e.applyCollection(ctx, tx, ev, st)
	case ActionPostComment:
		err = e.applyComment(ctx, tx, ev, st)
	case ActionDeleteComment:
		err = e.applyDeleteComment(ctx, tx, ev, st)
	}
	if err != nil {
		return err
	}

	if st.counts, err = tx.Counts(ctx, ev.ItemID); err != nil {
		return err
	}

	if promote && st.item != nil {
		if st.promo, err = e.promotion.MaybePromote(ctx, tx, ev.ItemID, st.counts.Likes); err != nil {
			return err
		}
		if st.promo == PromotionNewlyPinned {
			st.item.Promoted = true
		}
	}

	if err := e.syncMode(ctx, tx, ev, st); err != nil {
		return err
	}
	if st.expanded {
		if st.comments, err = tx.Comments.ListFirst(ctx, ev.ItemID, e.renderer.CommentWindow()); err != nil {
			return fmt.Errorf("list comments: %w", err)
		}
	}
	return nil
}

// syncMode 确定渲染用的展示状态：按钮事件决定状态并记下，评论增删沿用记录的状态
func (e *Engine) syncMode(ctx context.Context, tx *repository.Store, ev Event, st *ledgerState) error {
	if ev.Action.keepsMode() {
		st.expanded = st.item != nil && st.item.Expanded
		return nil
	}
	st.expanded = ev.Action.expanded()
	if st.item == nil || st.item.Expanded == st.expanded {
		return nil
	}
	if err := tx.Submissions.SetExpanded(ctx, ev.ItemID, st.expanded); err != nil {
		return fmt.Errorf("save display mode: %w", err)
	}
	st.item.Expanded = st.expanded
	return nil
}

// applyReaction 每个用户对每个帖子只有一个表态：无则新建，同向取消，反向翻转。
// 返回是否需要判定置顶。
func (e *Engine) applyReaction(ctx context.Context, tx *repository.Store, ev Event, st *ledgerState) (bool, error) {
	cur, err := tx.Reactions.Get(ctx, ev.ItemID, ev.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		err = tx.Reactions.Create(ctx, ev.ItemID, ev.UserID, ev.Polarity)
		if err == nil {
			st.mutation = MutationCreated
			return e.likeEligible(ev, st), nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return false, fmt.Errorf("create reaction: %w", err)
		}
		// 并发请求抢先写入：重新读取，在它写入后的状态上继续
		cur, err = tx.Reactions.Get(ctx, ev.ItemID, ev.UserID)
	}
	switch {
	case err != nil:
		return false, fmt.Errorf("load reaction: %w", err)
	case cur.Polarity == ev.Polarity:
		if err := tx.Reactions.Delete(ctx, ev.ItemID, ev.UserID); err != nil {
			return false, fmt.Errorf("delete reaction: %w", err)
		}
		st.mutation = MutationRemoved
		return false, nil
	default:
		if err := tx.Reactions.UpdatePolarity(ctx, ev.ItemID, ev.UserID, ev.Polarity); err != nil {
			return false, fmt.Errorf("flip reaction: %w", err)
		}
		st.mutation = MutationFlipped
	}
	return e.likeEligible(ev, st), nil
}

// likeEligible 新增或翻转成赞时需要通知作者并判定置顶
func (e *Engine) likeEligible(ev Event, st *ledgerState) bool {
	if ev.Polarity != model.Like {
		return false
	}
	st.notify = model.NotifyLike
	return true
}

func (e *Engine) applyCollection(ctx context.Context, tx *repository.Store, ev Event, st *ledgerState) error {
	exists, err := tx.Collections.Exists(ctx, ev.ItemID, ev.UserID)
	if err != nil {
		return fmt.Errorf("load collection: %w", err)
	}
	if !exists {
		err = tx.Collections.Create(ctx, ev.ItemID, ev.UserID)
		if err == nil {
			st.mutation = MutationCreated
			st.notify = model.NotifyCollect
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return fmt.Errorf("create collection: %w", err)
		}
		// 并发请求抢先收藏：按已收藏处理，本次即取消
	}
	if err := tx.Collections.Delete(ctx, ev.ItemID, ev.UserID); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	st.mutation = MutationRemoved
	return nil
}

func (e *Engine) applyComment(ctx context.Context, tx *repository.Store, ev Event, st *ledgerState) error {
	c := &model.Comment{
		ItemID:   ev.ItemID,
		UserID:   ev.UserID,
		UserName: ev.UserName,
		Text:     strings.TrimSpace(ev.Text),
	}
	if err := tx.Comments.Create(ctx, c); err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	st.mutation = MutationCreated
	st.notify = model.NotifyComment
	return nil
}

// applyDeleteComment 评论者本人或帖子作者可以删除
func (e *Engine) applyDeleteComment(ctx context.Context, tx *repository.Store, ev Event, st *ledgerState) error {
	if st.item == nil {
		return ErrItemNotFound
	}
	c, err := tx.Comments.Get(ctx, ev.CommentID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && c.ItemID != ev.ItemID) {
		return ErrCommentNotFound
	}
	if err != nil {
		return fmt.Errorf("load comment: %w", err)
	}
	if ev.UserID != c.UserID && ev.UserID != st.item.AuthorID {
		return ErrForbidden
	}
	if err := tx.Comments.Delete(ctx, ev.CommentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("delete comment: %w", err)
	}
	st.mutation = MutationRemoved
	return nil
}

// candidate 根据台账生成候选卡片。帖子不在台账时用观察到的正文（去掉评论区）兜底。
func (e *Engine) candidate(ev Event, st *ledgerState) (render.Card, bool) {
	var body string
	var captioned bool
	switch {
	case st.item != nil:
		body = e.renderer.Body(st.item)
		captioned = st.item.Captioned
	case ev.Observed != nil:
		body = render.StripComments(ev.Observed.Text)
		captioned = ev.Observed.Captioned
	default:
		return render.Card{}, false
	}

	if st.expanded {
		return render.Card{
			Text:      render.Visible(body + e.renderer.CommentFragment(st.comments, st.counts.Comments)),
			Keyboard:  e.renderer.ExpandedKeyboard(ev.ItemID),
			Captioned: captioned,
		}, true
	}
	return render.Card{
		Text:      render.Visible(body),
		Keyboard:  e.renderer.CollapsedKeyboard(ev.ItemID, st.counts),
		Captioned: captioned,
	}, true
}

// render 候选与观察一致时不下发；网关失败只记录，不影响台账
func (e *Engine) render(ctx context.Context, ev Event, card render.Card) (*RenderCommand, RenderStatus) {
	if ev.Observed != nil && card.Equal(*ev.Observed) {
		return nil, RenderSkipped
	}
	cmd := &RenderCommand{ItemID: ev.ItemID, Card: card, Previous: ev.Observed}
	if e.gateway == nil {
		return cmd, RenderFailed
	}

	err := e.gateway.Apply(ctx, ev.ItemID, card)
	switch {
	case err == nil:
		return cmd, RenderApplied
	case errors.Is(err, ErrNotModified):
		return cmd, RenderSkipped
	default:
		logger.Warn("apply render failed", zap.Int64("item_id", ev.ItemID), zap.Error(err))
		return cmd, RenderFailed
	}
}

// afterPromotion 置顶和祝贺都是尽力而为，置顶记录已经落库
func (e *Engine) afterPromotion(ctx context.Context, item *model.Submission, likes int64) {
	metrics.PromotionsTotal.Inc()
	logger.Info("item promoted", zap.Int64("item_id", item.ID), zap.Int64("likes", likes))
	if e.pinner != nil {
		if err := e.pinner.Pin(ctx, item.ID); err != nil {
			logger.Warn("pin item failed", zap.Int64("item_id", item.ID), zap.Error(err))
		}
	}
	e.notifier.Congratulate(ctx, item, likes)
}

// Counts 当前聚合数
func (e *Engine) Counts(ctx context.Context, itemID int64) (model.Counts, error) {
	return e.store.Counts(ctx, itemID)
}

// DeleteComment 删除评论并以展开状态重新渲染
func (e *Engine) DeleteComment(ctx context.Context, itemID int64, commentID uint, requesterID int64) (*Outcome, error) {
	return e.HandleEvent(ctx, Event{
		Action:    ActionDeleteComment,
		ItemID:    itemID,
		UserID:    requesterID,
		CommentID: commentID,
	})
}
