package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/degorov/couplebot/internal/config"
	"github.com/degorov/couplebot/internal/flow"
	"github.com/degorov/couplebot/internal/service"
	tg "github.com/degorov/couplebot/internal/telegram"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot         *bot.Bot
	cfg         *config.Config
	pairing     *service.PairingService
	messaging   *service.MessagingService
	machine     *flow.Machine
	tgLogger    *tg.TelegramLogger
	botUsername string
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot         *bot.Bot
	Cfg         *config.Config
	Pairing     *service.PairingService
	Messaging   *service.MessagingService
	Machine     *flow.Machine
	TgLogger    *tg.TelegramLogger
	BotUsername string
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:         deps.Bot,
		cfg:         deps.Cfg,
		pairing:     deps.Pairing,
		messaging:   deps.Messaging,
		machine:     deps.Machine,
		tgLogger:    deps.TgLogger,
		botUsername: deps.BotUsername,
	}
}

// replyKeyboard converts a flow reply's choice rows into an inline keyboard.
func replyKeyboard(r flow.Reply) *models.InlineKeyboardMarkup {
	if len(r.Choices) == 0 {
		return nil
	}
	rows := make([][]models.InlineKeyboardButton, 0, len(r.Choices))
	for _, choices := range r.Choices {
		row := make([]models.InlineKeyboardButton, 0, len(choices))
		for _, c := range choices {
			row = append(row, tg.InlineButton(c.Label, c.Data))
		}
		rows = append(rows, row)
	}
	return tg.InlineKeyboard(rows...)
}

// sendReply renders a flow reply as a new message; editReply renders it
// in place of the message whose button triggered it.
func (h *Handler) sendReply(ctx context.Context, chatID int64, r flow.Reply) {
	if r.Empty() {
		return
	}
	tg.Send(ctx, h.bot, chatID, r.Text, replyKeyboard(r))
}

func (h *Handler) editReply(ctx context.Context, chatID int64, messageID int, r flow.Reply) {
	if r.Empty() {
		return
	}
	tg.Edit(ctx, h.bot, chatID, messageID, r.Text, replyKeyboard(r))
}

// callbackOrigin resolves the chat and message a callback query came from.
func callbackOrigin(update *models.Update) (chatID int64, messageID int, ok bool) {
	if update.CallbackQuery == nil || update.CallbackQuery.Message.Message == nil {
		return 0, 0, false
	}
	msg := update.CallbackQuery.Message.Message
	return msg.Chat.ID, msg.ID, true
}
