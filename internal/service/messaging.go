package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/degorov/couplebot/internal/domain"
)

// MessageStore is the persistence surface the messaging engine needs.
type MessageStore interface {
	Insert(ctx context.Context, msg *domain.Message) (int64, error)
	StatsForReceiver(ctx context.Context, receiverID int64) (domain.MessageStats, error)
	RandomForReceiver(ctx context.Context, receiverID int64) (*domain.Message, error)
}

type MessagingService struct {
	messages MessageStore
	couples  CoupleStore
}

func NewMessagingService(messages MessageStore, couples CoupleStore) *MessagingService {
	return &MessagingService{messages: messages, couples: couples}
}

// Send validates and persists one message inside a couple. Both sender and
// receiver must be members of the couple and must differ; the payload they
// arrive in is front-end state and can be stale or tampered.
func (s *MessagingService) Send(ctx context.Context, coupleID, senderID, receiverID int64, text string, mtype domain.MessageType) (int64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, domain.ErrEmptyMessage
	}
	if !mtype.Valid() {
		return 0, domain.ErrInvalidMessageType
	}

	couple, err := s.couples.GetByID(ctx, coupleID)
	if err != nil {
		return 0, fmt.Errorf("get couple: %w", err)
	}
	if couple == nil {
		return 0, domain.ErrCoupleNotFound
	}
	if senderID == receiverID || !couple.Member(senderID) || !couple.Member(receiverID) {
		return 0, domain.ErrNotCoupleMember
	}

	msg := &domain.Message{
		CoupleID:   coupleID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		Type:       mtype,
	}
	return s.messages.Insert(ctx, msg)
}

// Stats returns counts of messages addressed to the user.
func (s *MessagingService) Stats(ctx context.Context, userID int64) (domain.MessageStats, error) {
	return s.messages.StatsForReceiver(ctx, userID)
}

// Random returns one uniformly chosen message addressed to the user, or nil.
func (s *MessagingService) Random(ctx context.Context, userID int64) (*domain.Message, error) {
	return s.messages.RandomForReceiver(ctx, userID)
}
