package render

import (
	"fmt"
	"strings"

	"github.com/d60-Lab/channel-engage/internal/model"
)

const (
	// CommentHeader 评论区起始标记，用于从已渲染文本中剥离评论区
	CommentHeader = "\n\n--- 评论区"

	footerRule    = "\n\n━━━━━━━━━━━━━━\n"
	emptyComments = CommentHeader + " ---\n✨ 暂无评论，快来抢沙发吧！"
	defaultMarker = "🔥 热门推荐"
	defaultWindow = 5
)

type Options struct {
	BotUsername     string
	ChannelUsername string
	TrendingMarker  string
	CommentWindow   int
}

// Renderer 从台账数据确定性地生成频道卡片，同样的输入永远得到同样的输出
type Renderer struct {
	opts Options
}

func New(opts Options) *Renderer {
	if opts.TrendingMarker == "" {
		opts.TrendingMarker = defaultMarker
	}
	if opts.CommentWindow <= 0 {
		opts.CommentWindow = defaultWindow
	}
	return &Renderer{opts: opts}
}

func (r *Renderer) CommentWindow() int { return r.opts.CommentWindow }

// Body 规范正文：[热门标记] + 原文 + 作者页脚，与评论区展开状态无关
func (r *Renderer) Body(s *model.Submission) string {
	var b strings.Builder
	if s.Promoted {
		b.WriteString(r.opts.TrendingMarker)
		b.WriteString("\n\n")
	}
	b.WriteString(Escape(s.Content))
	b.WriteString(footerRule)
	fmt.Fprintf(&b, `👤 作者: <a href="tg://user?id=%d">%s</a>`, s.AuthorID, Escape(s.AuthorName))
	if r.opts.BotUsername != "" {
		fmt.Fprintf(&b, `  |  <a href="https://t.me/%s?start=main">📱 我的</a>`, r.opts.BotUsername)
	}
	return b.String()
}

// StripComments 台账里没有该帖时，以外部观察到的正文（去掉评论区）为准
func StripComments(observed string) string {
	if i := strings.Index(observed, CommentHeader); i >= 0 {
		return observed[:i]
	}
	return observed
}

// CommentFragment 评论区片段。comments 为按时间升序的前 N 条，total 为总数。
func (r *Renderer) CommentFragment(comments []*model.Comment, total int64) string {
	if total == 0 || len(comments) == 0 {
		return emptyComments
	}
	lines := []string{fmt.Sprintf("%s (%d条) ---", CommentHeader, total)}
	for i, c := range comments {
		if i >= r.opts.CommentWindow {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. <a href=\"tg://user?id=%d\">%s</a>: %s", i+1, c.UserID, Escape(c.UserName), Escape(c.Text)))
	}
	if total > int64(r.opts.CommentWindow) {
		lines = append(lines, "...")
	}
	// 行间用换行分隔，末尾不留空白：Telegram 保存时会去掉首尾空白
	return strings.Join(lines, "\n")
}

// CollapsedKeyboard 主按钮栏，计数写在按钮文字里
func (r *Renderer) CollapsedKeyboard(itemID int64, c model.Counts) Keyboard {
	return Keyboard{
		{
			{Text: fmt.Sprintf("👍 赞 %d", c.Likes), CallbackData: ReactData(itemID, model.Like)},
			{Text: fmt.Sprintf("👎 踩 %d", c.Dislikes), CallbackData: ReactData(itemID, model.Dislike)},
			{Text: fmt.Sprintf("⭐ 收藏 %d", c.Collections), CallbackData: CollectData(itemID)},
		},
		{
			{Text: fmt.Sprintf("💬 评论 %d", c.Comments), CallbackData: fmt.Sprintf("comment:show:%d", itemID)},
		},
	}
}

// ExpandedKeyboard 评论区展开时的按钮：去评论 / 刷新 / 收起
func (r *Renderer) ExpandedKeyboard(itemID int64) Keyboard {
	row := make([]Button, 0, 3)
	if r.opts.BotUsername != "" {
		row = append(row, Button{Text: "✍️ 发表评论", URL: r.CommentDeepLink(itemID)})
	}
	row = append(row,
		Button{Text: "🔄 刷新", CallbackData: fmt.Sprintf("comment:refresh:%d", itemID)},
		Button{Text: "⬆️ 收起", CallbackData: fmt.Sprintf("comment:hide:%d", itemID)},
	)
	return Keyboard{row}
}

// CommentDeepLink 跳转到机器人私聊发表评论
func (r *Renderer) CommentDeepLink(itemID int64) string {
	return fmt.Sprintf("https://t.me/%s?start=comment_%d", r.opts.BotUsername, itemID)
}

// ItemLink 频道帖子的直达链接；未配置频道用户名时为空
func (r *Renderer) ItemLink(itemID int64) string {
	if r.opts.ChannelUsername == "" {
		return ""
	}
	return fmt.Sprintf("https://t.me/%s/%d", strings.TrimPrefix(r.opts.ChannelUsername, "@"), itemID)
}

func ReactData(itemID int64, p model.Polarity) string {
	return fmt.Sprintf("react:%s:%d", p, itemID)
}

func CollectData(itemID int64) string {
	return fmt.Sprintf("collect:%d", itemID)
}
