package domain

import "time"

// MessageType is the sentiment tag attached to every message.
type MessageType string

const (
	MessageTypePositive MessageType = "positive"
	MessageTypeNegative MessageType = "negative"
)

// Valid reports whether t is one of the two recognized tags.
func (t MessageType) Valid() bool {
	return t == MessageTypePositive || t == MessageTypeNegative
}

// Message is a typed message exchanged inside a couple.
type Message struct {
	ID         int64
	CoupleID   int64
	SenderID   int64
	ReceiverID int64
	Text       string
	Type       MessageType
	SentAt     time.Time
}

// MessageStats aggregates messages addressed to one user, broken down by type.
type MessageStats struct {
	Total    int64
	Positive int64
	Negative int64
}
