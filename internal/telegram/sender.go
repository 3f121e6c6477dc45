package telegram

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Send sends a text message with an optional inline keyboard. Failures
// are logged, not propagated.
func Send(ctx context.Context, b *bot.Bot, chatID int64, text string, keyboard *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}
	if _, err := b.SendMessage(ctx, params); err != nil {
		slog.Error("send message", "error", err, "chat_id", chatID)
	}
}

// Edit replaces the text and keyboard of an existing message. Used for
// callback-triggered replies so menus update in place.
func Edit(ctx context.Context, b *bot.Bot, chatID int64, messageID int, text string, keyboard *models.InlineKeyboardMarkup) {
	params := &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}
	if _, err := b.EditMessageText(ctx, params); err != nil {
		slog.Error("edit message", "error", err, "chat_id", chatID, "message_id", messageID)
	}
}

// AnswerCallback acknowledges a callback query so the client stops
// showing the loading spinner.
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
	})
}
