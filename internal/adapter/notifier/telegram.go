package notifier

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/semmidev/argos/internal/config"
	"github.com/semmidev/argos/internal/domain"
)

// TelegramNotifier mirrors the mail notifications into a Telegram chat.
type TelegramNotifier struct {
	bot     *tgbotapi.BotAPI
	chatID  int64
	appName string
}

func NewTelegram(cfg *config.TelegramConfig, appName string) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	var chatID int64
	fmt.Sscanf(cfg.ChatID, "%d", &chatID)

	return &TelegramNotifier{
		bot:     bot,
		chatID:  chatID,
		appName: appName,
	}, nil
}

func (t *TelegramNotifier) NotifySuccess(ctx context.Context, run domain.Run, replicated bool) error {
	message := fmt.Sprintf(
		"✅ [%s] Backup succeeded\n\n%s",
		t.appName,
		successBody(run, replicated),
	)
	return t.send(message)
}

func (t *TelegramNotifier) NotifyFailure(ctx context.Context, run domain.Run, step string, cause error) error {
	message := fmt.Sprintf(
		"❌ [%s] Backup failed\n\n%s",
		t.appName,
		failureBody(run, step, cause),
	)
	return t.send(message)
}

func (t *TelegramNotifier) send(message string) error {
	msg := tgbotapi.NewMessage(t.chatID, message)
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram notification: %w", err)
	}
	return nil
}
