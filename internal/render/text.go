package render

import "strings"

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Escape 转义 Telegram HTML 模式下有意义的字符
func Escape(s string) string { return htmlEscaper.Replace(s) }

// Truncate 按字符截断，超长时追加 "..."
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// Visible Telegram 保存正文时去掉首尾空白，候选卡片按同样规则规整后再比较
func Visible(s string) string { return strings.TrimSpace(s) }
