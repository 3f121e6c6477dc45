package handler

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/degorov/couplebot/internal/flow"
)

// HandleTextPrivate routes non-command private text into the conversation
// machine. Text arriving outside any flow produces no reply.
func (h *Handler) HandleTextPrivate(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" || update.Message.From == nil {
		return
	}
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	reply := h.machine.Handle(ctx, update.Message.From.ID, flow.FreeText{Text: update.Message.Text})
	h.sendReply(ctx, update.Message.Chat.ID, reply)
}
