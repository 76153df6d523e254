package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/juriqh/masar-notes-buddy/config"
	"github.com/juriqh/masar-notes-buddy/internal/dto"
	"github.com/juriqh/masar-notes-buddy/internal/service"
)

// Telegram delivers the daily reminders as plain-text messages to one chat.
// It satisfies notifier.Sender.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

// NewTelegram authenticates against the Bot API.
func NewTelegram(cfg *config.TelegramConfig, logger *zap.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	logger.Info("telegram bot authorized", zap.String("username", api.Self.UserName))

	return &Telegram{api: api, chatID: cfg.ChatID, logger: logger}, nil
}

func (t *Telegram) SendMorning(_ context.Context, upcoming []dto.ClassBlock) error {
	return t.send(service.FormatMorningText(upcoming))
}

func (t *Telegram) SendEvening(_ context.Context, tomorrow []dto.ClassBlock, completed []dto.CompletedClass) error {
	return t.send(service.FormatEveningText(tomorrow, completed))
}

func (t *Telegram) send(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}
