package middleware

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Recover returns middleware that recovers from panics. The log carries
// who triggered the update so the crash can be traced to a chat.
func Recover() bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			defer func() {
				if r := recover(); r != nil {
					var userID, chatID int64
					if update.Message != nil {
						chatID = update.Message.Chat.ID
						if update.Message.From != nil {
							userID = update.Message.From.ID
						}
					} else if update.CallbackQuery != nil {
						userID = update.CallbackQuery.From.ID
						if update.CallbackQuery.Message.Message != nil {
							chatID = update.CallbackQuery.Message.Message.Chat.ID
						}
					}
					slog.Error("panic recovered in handler",
						"panic", r,
						"user_id", userID,
						"chat_id", chatID,
						"stack", string(debug.Stack()),
					)
				}
			}()
			next(ctx, b, update)
		}
	}
}
