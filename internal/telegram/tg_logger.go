package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"

	"github.com/degorov/couplebot/internal/config"
)

// TelegramLogger mirrors notable events to an operator chat. A zero chat
// ID disables it.
type TelegramLogger struct {
	bot *bot.Bot
	cfg *config.Config
}

func NewTelegramLogger(b *bot.Bot, cfg *config.Config) *TelegramLogger {
	return &TelegramLogger{bot: b, cfg: cfg}
}

func (l *TelegramLogger) log(message string) {
	if l.cfg.LogTelegramChatID == 0 {
		return
	}

	if len([]rune(message)) > config.MaxTelegramMessageLen {
		message = string([]rune(message)[:config.MaxTelegramMessageLen-20]) + "\n\n... (truncated)"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := l.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: l.cfg.LogTelegramChatID,
		Text:   message,
	})
	if err != nil {
		slog.Error("failed to send telegram log", "error", err)
	}
}

func (l *TelegramLogger) LogError(err error, context string) {
	l.log(fmt.Sprintf("❌ Error\n\nContext: %s\nError: %s\nTime: %s",
		context, err.Error(), time.Now().Format("2006-01-02 15:04:05")))
}

func (l *TelegramLogger) LogCoupleCreated(coupleID, createdBy int64) {
	l.log(fmt.Sprintf("💞 New couple\n\nCouple: %d\nCreated by: %d", coupleID, createdBy))
}
