package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	tg "github.com/degorov/couplebot/internal/telegram"
)

func (h *Handler) handleMyCouples(ctx context.Context, b *bot.Bot, update *models.Update) {
	tg.AnswerCallback(ctx, b, update.CallbackQuery.ID)

	chatID, messageID, ok := callbackOrigin(update)
	if !ok {
		return
	}
	userID := update.CallbackQuery.From.ID

	couples, err := h.pairing.Couples(ctx, userID)
	if err != nil {
		slog.Error("list couples", "error", err, "user_id", userID)
		tg.Edit(ctx, b, chatID, messageID, "❌ Не удалось загрузить список пар.", h.mainMenuKeyboard())
		return
	}

	if len(couples) == 0 {
		tg.Edit(ctx, b, chatID, messageID, "У вас пока нет созданных пар.",
			tg.InlineKeyboard(tg.ButtonRow(tg.InlineButton("Назад", "back_to_main"))))
		return
	}

	var rows [][]models.InlineKeyboardButton
	for _, c := range couples {
		rows = append(rows, tg.ButtonRow(tg.InlineButton(
			fmt.Sprintf("Пара с ID: %d", c.PartnerID),
			fmt.Sprintf("select_couple_%d_%d", c.CoupleID, c.PartnerID),
		)))
	}
	rows = append(rows, tg.ButtonRow(tg.InlineButton("Назад", "back_to_main")))

	tg.Edit(ctx, b, chatID, messageID, "Ваши пары:", tg.InlineKeyboard(rows...))
}

func (h *Handler) handleSelectCouple(ctx context.Context, b *bot.Bot, update *models.Update) {
	tg.AnswerCallback(ctx, b, update.CallbackQuery.ID)

	chatID, messageID, ok := callbackOrigin(update)
	if !ok {
		return
	}

	coupleID, partnerID, ok := parseCouplePayload(update.CallbackQuery.Data, "select_couple_")
	if !ok {
		return
	}

	keyboard := tg.InlineKeyboard(
		tg.ButtonRow(tg.InlineButton("Отправить сообщение", fmt.Sprintf("send_message_%d_%d", coupleID, partnerID))),
		tg.ButtonRow(tg.InlineButton("Посмотреть статистику", fmt.Sprintf("view_stats_%d_%d", coupleID, partnerID))),
		tg.ButtonRow(tg.InlineButton("Получить случайное сообщение", fmt.Sprintf("get_random_%d_%d", coupleID, partnerID))),
		tg.ButtonRow(tg.InlineButton("Назад к парам", "my_couples")),
	)

	tg.Edit(ctx, b, chatID, messageID,
		fmt.Sprintf("Пара с пользователем ID: %d\nВыберите действие:", partnerID),
		keyboard)
}

// parseCouplePayload extracts the couple and partner IDs from callback
// data of the form "<prefix><coupleID>_<partnerID>".
func parseCouplePayload(data, prefix string) (coupleID, partnerID int64, ok bool) {
	parts := strings.Split(strings.TrimPrefix(data, prefix), "_")
	if len(parts) != 2 {
		return 0, 0, false
	}
	coupleID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	partnerID, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return coupleID, partnerID, true
}
