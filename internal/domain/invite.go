package domain

import (
	"time"

	"github.com/google/uuid"
)

// PairInvite is a one-shot pairing invitation carried in a /start deep link.
type PairInvite struct {
	Code      uuid.UUID
	InviterID int64
	CreatedAt time.Time
	UsedAt    *time.Time
}

// Used reports whether the invite has already been accepted.
func (i *PairInvite) Used() bool {
	return i.UsedAt != nil
}

// Expired reports whether the invite is older than ttl at the given moment.
func (i *PairInvite) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(i.CreatedAt) > ttl
}
