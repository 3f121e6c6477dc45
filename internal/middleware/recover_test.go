package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/require"
)

func TestRecoverLogsPanicWithUpdateContext(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	handler := Recover()(func(ctx context.Context, b *bot.Bot, update *models.Update) {
		panic("boom")
	})

	update := &models.Update{
		Message: &models.Message{
			Chat: models.Chat{ID: 55},
			From: &models.User{ID: 42},
		},
	}

	require.NotPanics(t, func() {
		handler(context.Background(), nil, update)
	})

	out := buf.String()
	require.Contains(t, out, "panic recovered in handler")
	require.Contains(t, out, `"user_id":42`)
	require.Contains(t, out, `"chat_id":55`)
}
