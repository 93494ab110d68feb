package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/d60-Lab/channel-engage/internal/render"
)

// toMarkup render.Keyboard -> Telegram inline keyboard
func toMarkup(kb render.Keyboard) *tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb))
	for _, row := range kb {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			if b.URL != "" {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL(b.Text, b.URL))
				continue
			}
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.CallbackData))
		}
		rows = append(rows, buttons)
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}

// fromMarkup 从消息上读出当前键盘
func fromMarkup(m *tgbotapi.InlineKeyboardMarkup) render.Keyboard {
	if m == nil {
		return nil
	}
	kb := make(render.Keyboard, 0, len(m.InlineKeyboard))
	for _, row := range m.InlineKeyboard {
		buttons := make([]render.Button, 0, len(row))
		for _, b := range row {
			btn := render.Button{Text: b.Text}
			if b.CallbackData != nil {
				btn.CallbackData = *b.CallbackData
			}
			if b.URL != nil {
				btn.URL = *b.URL
			}
			buttons = append(buttons, btn)
		}
		kb = append(kb, buttons)
	}
	return kb
}
