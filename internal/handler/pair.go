package handler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/degorov/couplebot/internal/flow"
	tg "github.com/degorov/couplebot/internal/telegram"
)

func (h *Handler) handleCreateCouple(ctx context.Context, b *bot.Bot, update *models.Update) {
	tg.AnswerCallback(ctx, b, update.CallbackQuery.ID)

	chatID, messageID, ok := callbackOrigin(update)
	if !ok {
		return
	}

	reply := h.machine.Handle(ctx, update.CallbackQuery.From.ID, flow.BeginPairing{})
	h.editReply(ctx, chatID, messageID, reply)
}

func (h *Handler) handleInviteLink(ctx context.Context, b *bot.Bot, update *models.Update) {
	tg.AnswerCallback(ctx, b, update.CallbackQuery.ID)

	chatID, messageID, ok := callbackOrigin(update)
	if !ok {
		return
	}
	userID := update.CallbackQuery.From.ID

	code, err := h.pairing.CreateInvite(ctx, userID)
	if err != nil {
		slog.Error("create invite", "error", err, "user_id", userID)
		h.tgLogger.LogError(err, "create invite")
		tg.Edit(ctx, b, chatID, messageID, "❌ Не удалось создать приглашение.", h.mainMenuKeyboard())
		return
	}

	link := fmt.Sprintf("https://t.me/%s?start=%s%s", h.botUsername, inviteDeepLinkPrefix, code)
	tg.Edit(ctx, b, chatID, messageID,
		"Отправьте эту ссылку тому, с кем хотите создать пару:\n\n"+link+
			"\n\nСсылка действует 24 часа и работает один раз.",
		tg.InlineKeyboard(tg.ButtonRow(tg.InlineButton("Назад", "back_to_main"))))
}

func (h *Handler) handleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	reply := h.machine.Handle(ctx, update.Message.From.ID, flow.Cancel{})
	h.sendReply(ctx, update.Message.Chat.ID, reply)
	tg.Send(ctx, b, update.Message.Chat.ID, "Главное меню:", h.mainMenuKeyboard())
}

func (h *Handler) handleCancelAction(ctx context.Context, b *bot.Bot, update *models.Update) {
	tg.AnswerCallback(ctx, b, update.CallbackQuery.ID)

	chatID, messageID, ok := callbackOrigin(update)
	if !ok {
		return
	}

	reply := h.machine.Handle(ctx, update.CallbackQuery.From.ID, flow.Cancel{})
	h.editReply(ctx, chatID, messageID, reply)
}
