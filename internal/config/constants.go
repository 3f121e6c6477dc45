package config

import "time"

const (
	// Abandoned conversation sessions are dropped after this long.
	SessionTTL = 30 * time.Minute

	// How often expired sessions are swept.
	SessionSweepInterval = time.Minute

	// Pairing invite links stop working after this long.
	InviteTTL = 24 * time.Hour

	// Per-user update limit per minute.
	RateLimitPerMinute = 20

	// Telegram limits
	MaxTelegramMessageLen = 4096
)
