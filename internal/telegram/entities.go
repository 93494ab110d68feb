package telegram

import (
	"fmt"
	"sort"
	"unicode/utf16"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/d60-Lab/channel-engage/internal/render"
)

// ObservedCard 把频道消息还原成卡片，用于和候选渲染做比较。
// Telegram 回传的是纯文本加 entities，这里重新拼成 HTML。
func ObservedCard(msg *tgbotapi.Message) *render.Card {
	if msg == nil {
		return nil
	}
	card := &render.Card{Keyboard: fromMarkup(msg.ReplyMarkup)}
	if msg.Text == "" {
		card.Captioned = true
		card.Text = EntitiesToHTML(msg.Caption, msg.CaptionEntities)
		return card
	}
	card.Text = EntitiesToHTML(msg.Text, msg.Entities)
	return card
}

// EntitiesToHTML entity 的 offset/length 以 UTF-16 code unit 计
func EntitiesToHTML(text string, entities []tgbotapi.MessageEntity) string {
	if len(entities) == 0 {
		return render.Escape(text)
	}
	units := utf16.Encode([]rune(text))

	sorted := make([]tgbotapi.MessageEntity, 0, len(entities))
	for _, e := range entities {
		if openTag(e) == "" || e.Length <= 0 || e.Offset < 0 || e.Offset+e.Length > len(units) {
			continue
		}
		sorted = append(sorted, e)
	}
	// 同一位置开始的，长的在外层
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Offset != sorted[j].Offset {
			return sorted[i].Offset < sorted[j].Offset
		}
		return sorted[i].Length > sorted[j].Length
	})

	var out []byte
	var stack []tgbotapi.MessageEntity
	next, pos := 0, 0
	for pos <= len(units) {
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			if top.Offset+top.Length > pos {
				break
			}
			out = append(out, closeTag(top)...)
			stack = stack[:len(stack)-1]
		}
		for next < len(sorted) && sorted[next].Offset == pos {
			out = append(out, openTag(sorted[next])...)
			stack = append(stack, sorted[next])
			next++
		}
		if pos == len(units) {
			break
		}

		end := len(units)
		if next < len(sorted) && sorted[next].Offset < end {
			end = sorted[next].Offset
		}
		if len(stack) > 0 {
			if top := stack[len(stack)-1]; top.Offset+top.Length < end {
				end = top.Offset + top.Length
			}
		}
		out = append(out, render.Escape(string(utf16.Decode(units[pos:end])))...)
		pos = end
	}
	// 不规范嵌套时补齐未闭合的标签
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, closeTag(stack[i])...)
	}
	return string(out)
}

func openTag(e tgbotapi.MessageEntity) string {
	switch e.Type {
	case "bold":
		return "<b>"
	case "italic":
		return "<i>"
	case "underline":
		return "<u>"
	case "strikethrough":
		return "<s>"
	case "spoiler":
		return "<tg-spoiler>"
	case "code":
		return "<code>"
	case "pre":
		if e.Language != "" {
			return fmt.Sprintf(`<pre><code class="language-%s">`, render.Escape(e.Language))
		}
		return "<pre>"
	case "blockquote":
		return "<blockquote>"
	case "text_link":
		return fmt.Sprintf(`<a href="%s">`, render.Escape(e.URL))
	case "text_mention":
		if e.User != nil {
			return fmt.Sprintf(`<a href="tg://user?id=%d">`, e.User.ID)
		}
	}
	return ""
}

func closeTag(e tgbotapi.MessageEntity) string {
	switch e.Type {
	case "bold":
		return "</b>"
	case "italic":
		return "</i>"
	case "underline":
		return "</u>"
	case "strikethrough":
		return "</s>"
	case "spoiler":
		return "</tg-spoiler>"
	case "code":
		return "</code>"
	case "pre":
		if e.Language != "" {
			return "</code></pre>"
		}
		return "</pre>"
	case "blockquote":
		return "</blockquote>"
	case "text_link", "text_mention":
		return "</a>"
	}
	return ""
}
