package handler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/degorov/couplebot/internal/domain"
	tg "github.com/degorov/couplebot/internal/telegram"
)

func (h *Handler) handleViewStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	tg.AnswerCallback(ctx, b, update.CallbackQuery.ID)

	chatID, messageID, ok := callbackOrigin(update)
	if !ok {
		return
	}
	userID := update.CallbackQuery.From.ID

	stats, err := h.messaging.Stats(ctx, userID)
	if err != nil {
		slog.Error("message stats", "error", err, "user_id", userID)
		tg.Edit(ctx, b, chatID, messageID, "❌ Не удалось получить статистику.", h.mainMenuKeyboard())
		return
	}

	tg.Edit(ctx, b, chatID, messageID,
		fmt.Sprintf("Статистика полученных сообщений:\nВсего: %d\nПозитивных: %d\nНегативных: %d\n\nИспользуйте /start для возврата в главное меню.",
			stats.Total, stats.Positive, stats.Negative),
		nil)
}

func (h *Handler) handleGetRandom(ctx context.Context, b *bot.Bot, update *models.Update) {
	tg.AnswerCallback(ctx, b, update.CallbackQuery.ID)

	chatID, messageID, ok := callbackOrigin(update)
	if !ok {
		return
	}
	userID := update.CallbackQuery.From.ID

	msg, err := h.messaging.Random(ctx, userID)
	if err != nil {
		slog.Error("random message", "error", err, "user_id", userID)
		tg.Edit(ctx, b, chatID, messageID, "❌ Не удалось получить сообщение.", h.mainMenuKeyboard())
		return
	}

	if msg == nil {
		tg.Edit(ctx, b, chatID, messageID,
			"У вас пока нет сообщений для прочтения.\n\nИспользуйте /start для возврата в главное меню.",
			nil)
		return
	}

	emoji := "🙂"
	if msg.Type == domain.MessageTypeNegative {
		emoji = "😞"
	}
	tg.Edit(ctx, b, chatID, messageID,
		fmt.Sprintf("%s Случайное сообщение (%s):\n\n%s\n\nИспользуйте /start для возврата в главное меню.",
			emoji, msg.Type, msg.Text),
		nil)
}
