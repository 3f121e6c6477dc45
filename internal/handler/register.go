package handler

import (
	"github.com/go-telegram/bot"
)

// Register registers all command and callback handlers on the bot instance.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/id", bot.MatchTypePrefix, h.handleID)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypePrefix, h.handleCancel)

	// Main menu callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "create_couple", bot.MatchTypeExact, h.handleCreateCouple)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "invite_link", bot.MatchTypeExact, h.handleInviteLink)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "my_couples", bot.MatchTypeExact, h.handleMyCouples)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "get_my_id", bot.MatchTypeExact, h.handleGetMyID)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "back_to_main", bot.MatchTypeExact, h.handleBackToMain)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cancel_action", bot.MatchTypeExact, h.handleCancelAction)

	// Couple callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "select_couple_", bot.MatchTypePrefix, h.handleSelectCouple)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "send_message_", bot.MatchTypePrefix, h.handleSendMessage)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "message_type_", bot.MatchTypePrefix, h.handleMessageType)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "view_stats_", bot.MatchTypePrefix, h.handleViewStats)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "get_random_", bot.MatchTypePrefix, h.handleGetRandom)
}
