package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/d60-Lab/channel-engage/internal/render"
	"github.com/d60-Lab/channel-engage/internal/service"
)

// botAPI tgbotapi.BotAPI 中用到的部分，测试里用假实现替换
type botAPI interface {
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Gateway 把引擎的渲染、置顶、私信落到 Telegram 上
type Gateway struct {
	api       botAPI
	channelID int64
}

func NewGateway(api botAPI, channelID int64) *Gateway {
	return &Gateway{api: api, channelID: channelID}
}

var (
	_ service.RenderGateway = (*Gateway)(nil)
	_ service.Messenger     = (*Gateway)(nil)
	_ service.Pinner        = (*Gateway)(nil)
)

// Apply 图片消息改 caption，文字消息改 text，键盘一起更新
func (g *Gateway) Apply(_ context.Context, itemID int64, card render.Card) error {
	var c tgbotapi.Chattable
	if card.Captioned {
		edit := tgbotapi.NewEditMessageCaption(g.channelID, int(itemID), card.Text)
		edit.ParseMode = tgbotapi.ModeHTML
		edit.ReplyMarkup = toMarkup(card.Keyboard)
		c = edit
	} else {
		edit := tgbotapi.NewEditMessageText(g.channelID, int(itemID), card.Text)
		edit.ParseMode = tgbotapi.ModeHTML
		edit.DisableWebPagePreview = true
		edit.ReplyMarkup = toMarkup(card.Keyboard)
		c = edit
	}
	if _, err := g.api.Request(c); err != nil {
		return classify(err, fmt.Sprintf("edit message %d", itemID))
	}
	return nil
}

func (g *Gateway) Pin(_ context.Context, itemID int64) error {
	_, err := g.api.Request(tgbotapi.PinChatMessageConfig{
		ChatID:    g.channelID,
		MessageID: int(itemID),
	})
	if err != nil {
		return classify(err, fmt.Sprintf("pin message %d", itemID))
	}
	return nil
}

func (g *Gateway) SendDirectMessage(_ context.Context, userID int64, text string) error {
	msg := tgbotapi.NewMessage(userID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := g.api.Send(msg); err != nil {
		return fmt.Errorf("send to %d: %w", userID, err)
	}
	return nil
}

// classify Telegram 对内容未变化的编辑返回 400 "message is not modified"
func classify(err error, op string) error {
	if strings.Contains(err.Error(), "message is not modified") {
		return fmt.Errorf("%s: %w", op, service.ErrNotModified)
	}
	return fmt.Errorf("%s: %w", op, err)
}
