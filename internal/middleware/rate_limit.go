package middleware

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Limiter counts updates per user inside a fixed one-minute window.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	counts  map[int64]int
	resetAt time.Time
	now     func() time.Time
}

func NewLimiter(perMinute int) *Limiter {
	return &Limiter{
		limit:  perMinute,
		counts: make(map[int64]int),
		now:    time.Now,
	}
}

// Allow reports whether the user is still under the per-minute limit.
func (l *Limiter) Allow(userID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.After(l.resetAt) {
		l.counts = make(map[int64]int)
		l.resetAt = now.Add(time.Minute)
	}

	l.counts[userID]++
	return l.counts[userID] <= l.limit
}

// RateLimit returns middleware that drops message updates from users
// exceeding the per-minute limit. Callback taps are not limited.
func RateLimit(limiter *Limiter) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if update.Message == nil || update.Message.From == nil {
				next(ctx, b, update)
				return
			}

			userID := update.Message.From.ID
			if !limiter.Allow(userID) {
				slog.Debug("rate limited", "user_id", userID)
				b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: update.Message.Chat.ID,
					Text:   "⏳ Слишком много запросов. Подождите немного.",
				})
				return
			}

			next(ctx, b, update)
		}
	}
}
