// File: internal/infra/adapters/notify/telegram.go
package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"image-gateway/internal/domain/ports/adapter"
)

// Compile-time assurance this notifier satisfies the port
var _ adapter.OperatorNotifier = (*TelegramNotifier)(nil)

// TelegramNotifier pushes operator alerts to a Telegram chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	if token == "" || chatID == 0 {
		return nil, fmt.Errorf("telegram notifier requires token and chat id")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (t *TelegramNotifier) Alert(ctx context.Context, message string) error {
	msg := tgbotapi.NewMessage(t.chatID, "[image-gateway] "+message)
	_, err := t.bot.Send(msg)
	return err
}
