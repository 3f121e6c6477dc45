package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/degorov/couplebot/internal/domain"
	"github.com/degorov/couplebot/internal/service"
	tg "github.com/degorov/couplebot/internal/telegram"
)

const inviteDeepLinkPrefix = "inv_"

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" || update.Message.From == nil {
		return
	}

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	// Deep link payload: /start inv_<code>
	parts := strings.SplitN(update.Message.Text, " ", 2)
	if len(parts) > 1 && strings.HasPrefix(parts[1], inviteDeepLinkPrefix) {
		h.acceptInvite(ctx, b, chatID, userID, strings.TrimPrefix(parts[1], inviteDeepLinkPrefix))
		return
	}

	tg.Send(ctx, b, chatID,
		"Добро пожаловать! Этот бот позволяет создавать пары и обмениваться сообщениями.",
		h.mainMenuKeyboard())
}

func (h *Handler) mainMenuKeyboard() *models.InlineKeyboardMarkup {
	return tg.InlineKeyboard(
		tg.ButtonRow(tg.InlineButton("Создать пару", "create_couple")),
		tg.ButtonRow(tg.InlineButton("Пригласить по ссылке", "invite_link")),
		tg.ButtonRow(tg.InlineButton("Мои пары", "my_couples")),
		tg.ButtonRow(tg.InlineButton("Узнать свой ID", "get_my_id")),
	)
}

func (h *Handler) acceptInvite(ctx context.Context, b *bot.Bot, chatID, userID int64, code string) {
	result, err := h.pairing.AcceptInvite(ctx, code, userID)
	if err != nil {
		var text string
		switch {
		case errors.Is(err, domain.ErrInviteNotFound):
			text = "❌ Ссылка-приглашение недействительна."
		case errors.Is(err, domain.ErrInviteUsed):
			text = "❌ Это приглашение уже использовано."
		case errors.Is(err, domain.ErrInviteExpired):
			text = "❌ Срок действия приглашения истёк."
		default:
			text = "❌ Не удалось принять приглашение."
			slog.Error("accept invite", "error", err, "user_id", userID)
		}
		tg.Send(ctx, b, chatID, text, h.mainMenuKeyboard())
		return
	}

	var text string
	switch result.Outcome {
	case service.PairingSelfRejected:
		text = "Вы не можете создать пару с самим собой."
	case service.PairingAlreadyPaired:
		text = fmt.Sprintf("У вас уже есть пара с этим пользователем (ID пары: %d).", result.CoupleID)
	default:
		text = fmt.Sprintf("Пара успешно создана! ID пары: %d", result.CoupleID)
		h.tgLogger.LogCoupleCreated(result.CoupleID, userID)
	}
	tg.Send(ctx, b, chatID, text, h.mainMenuKeyboard())
}

func (h *Handler) handleID(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	tg.Send(ctx, b, update.Message.Chat.ID,
		fmt.Sprintf("Ваш ID: %d", update.Message.From.ID), nil)
}

func (h *Handler) handleGetMyID(ctx context.Context, b *bot.Bot, update *models.Update) {
	tg.AnswerCallback(ctx, b, update.CallbackQuery.ID)

	chatID, messageID, ok := callbackOrigin(update)
	if !ok {
		return
	}
	tg.Edit(ctx, b, chatID, messageID,
		fmt.Sprintf("Ваш ID: %d", update.CallbackQuery.From.ID),
		tg.InlineKeyboard(tg.ButtonRow(tg.InlineButton("Назад", "back_to_main"))))
}

func (h *Handler) handleBackToMain(ctx context.Context, b *bot.Bot, update *models.Update) {
	tg.AnswerCallback(ctx, b, update.CallbackQuery.ID)

	chatID, messageID, ok := callbackOrigin(update)
	if !ok {
		return
	}
	tg.Edit(ctx, b, chatID, messageID, "Главное меню:", h.mainMenuKeyboard())
}
