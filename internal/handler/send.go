package handler

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/degorov/couplebot/internal/domain"
	"github.com/degorov/couplebot/internal/flow"
	tg "github.com/degorov/couplebot/internal/telegram"
)

func (h *Handler) handleSendMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	tg.AnswerCallback(ctx, b, update.CallbackQuery.ID)

	chatID, messageID, ok := callbackOrigin(update)
	if !ok {
		return
	}

	coupleID, partnerID, ok := parseCouplePayload(update.CallbackQuery.Data, "send_message_")
	if !ok {
		return
	}

	reply := h.machine.Handle(ctx, update.CallbackQuery.From.ID, flow.BeginSend{
		CoupleID:  coupleID,
		PartnerID: partnerID,
	})
	h.editReply(ctx, chatID, messageID, reply)
}

func (h *Handler) handleMessageType(ctx context.Context, b *bot.Bot, update *models.Update) {
	tg.AnswerCallback(ctx, b, update.CallbackQuery.ID)

	chatID, messageID, ok := callbackOrigin(update)
	if !ok {
		return
	}

	mtype := domain.MessageType(strings.TrimPrefix(update.CallbackQuery.Data, "message_type_"))
	reply := h.machine.Handle(ctx, update.CallbackQuery.From.ID, flow.ChooseType{Type: mtype})
	h.editReply(ctx, chatID, messageID, reply)
}
