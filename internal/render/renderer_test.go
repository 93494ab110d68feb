package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/d60-Lab/channel-engage/internal/model"
)

func newTestRenderer() *Renderer {
	return New(Options{BotUsername: "engage_bot", ChannelUsername: "@daily"})
}

func TestBody(t *testing.T) {
	r := newTestRenderer()
	s := &model.Submission{ID: 10, AuthorID: 7, AuthorName: "A<b>", Content: "1 < 2 & 3 > 2"}

	body := r.Body(s)
	assert.True(t, strings.HasPrefix(body, "1 &lt; 2 &amp; 3 &gt; 2\n\n━━━━━━━━━━━━━━\n"))
	assert.Contains(t, body, `<a href="tg://user?id=7">A&lt;b&gt;</a>`)
	assert.Contains(t, body, `<a href="https://t.me/engage_bot?start=main">📱 我的</a>`)

	s.Promoted = true
	promoted := r.Body(s)
	assert.Equal(t, "🔥 热门推荐\n\n"+body, promoted)
}

func TestBodyWithoutBotUsername(t *testing.T) {
	r := New(Options{})
	body := r.Body(&model.Submission{AuthorID: 1, AuthorName: "a", Content: "x"})
	assert.NotContains(t, body, "📱")
}

func TestStripComments(t *testing.T) {
	r := newTestRenderer()
	body := "hello\n\nfooter"
	assert.Equal(t, body, StripComments(body+r.CommentFragment(nil, 0)))
	frag := r.CommentFragment([]*model.Comment{{UserID: 1, UserName: "u", Text: "t"}}, 1)
	assert.Equal(t, body, StripComments(body+frag))
	assert.Equal(t, body, StripComments(body))
}

func TestCommentFragmentEmpty(t *testing.T) {
	r := newTestRenderer()
	assert.Equal(t, "\n\n--- 评论区 ---\n✨ 暂无评论，快来抢沙发吧！", r.CommentFragment(nil, 0))
}

func TestCommentFragmentWindow(t *testing.T) {
	r := newTestRenderer()
	var comments []*model.Comment
	for i := 1; i <= 5; i++ {
		comments = append(comments, &model.Comment{UserID: int64(i), UserName: fmt.Sprintf("u%d", i), Text: fmt.Sprintf("c%d", i)})
	}

	frag := r.CommentFragment(comments, 5)
	assert.True(t, strings.HasPrefix(frag, "\n\n--- 评论区 (5条) ---\n"))
	assert.Contains(t, frag, "1. <a href=\"tg://user?id=1\">u1</a>: c1\n")
	assert.True(t, strings.HasSuffix(frag, "5. <a href=\"tg://user?id=5\">u5</a>: c5"))
	assert.NotContains(t, frag, "...")

	frag = r.CommentFragment(comments, 8)
	assert.Contains(t, frag, "(8条)")
	assert.True(t, strings.HasSuffix(frag, "c5\n..."))
	assert.Equal(t, "x"+frag, Visible("x"+frag+"\n"))
}

func TestCommentFragmentEscapes(t *testing.T) {
	r := newTestRenderer()
	frag := r.CommentFragment([]*model.Comment{{UserID: 1, UserName: "<i>x</i>", Text: "a & <b>"}}, 1)
	assert.Contains(t, frag, "&lt;i&gt;x&lt;/i&gt;: a &amp; &lt;b&gt;")
}

func TestKeyboards(t *testing.T) {
	r := newTestRenderer()
	kb := r.CollapsedKeyboard(3, model.Counts{Likes: 2, Dislikes: 1, Collections: 4, Comments: 5})
	assert.Equal(t, Keyboard{
		{
			{Text: "👍 赞 2", CallbackData: "react:like:3"},
			{Text: "👎 踩 1", CallbackData: "react:dislike:3"},
			{Text: "⭐ 收藏 4", CallbackData: "collect:3"},
		},
		{{Text: "💬 评论 5", CallbackData: "comment:show:3"}},
	}, kb)

	ex := r.ExpandedKeyboard(3)
	assert.Equal(t, Keyboard{{
		{Text: "✍️ 发表评论", URL: "https://t.me/engage_bot?start=comment_3"},
		{Text: "🔄 刷新", CallbackData: "comment:refresh:3"},
		{Text: "⬆️ 收起", CallbackData: "comment:hide:3"},
	}}, ex)
}

func TestCardEqual(t *testing.T) {
	r := newTestRenderer()
	a := Card{Text: "x", Keyboard: r.CollapsedKeyboard(1, model.Counts{})}
	b := Card{Text: "x", Keyboard: r.CollapsedKeyboard(1, model.Counts{}), Captioned: true}
	assert.True(t, a.Equal(b))

	b.Keyboard = r.CollapsedKeyboard(1, model.Counts{Likes: 1})
	assert.False(t, a.Equal(b))

	b = Card{Text: "y", Keyboard: a.Keyboard}
	assert.False(t, a.Equal(b))
	assert.False(t, a.Keyboard.Equal(r.ExpandedKeyboard(1)))
}

func TestItemLinkAndTruncate(t *testing.T) {
	r := newTestRenderer()
	assert.Equal(t, "https://t.me/daily/9", r.ItemLink(9))
	assert.Equal(t, "", New(Options{}).ItemLink(9))

	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "ab...", Truncate("abc", 2))
	assert.Equal(t, "你好...", Truncate("你好世界", 2))
	assert.Equal(t, "", Truncate("abc", 0))
}
