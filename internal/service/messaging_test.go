package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/degorov/couplebot/internal/domain"
)

func newMessagingFixture(t *testing.T) (*MessagingService, *memMessageStore, int64) {
	t.Helper()
	couples := newMemCoupleStore()
	coupleID, err := couples.Create(context.Background(), 100, 200)
	require.NoError(t, err)

	messages := newMemMessageStore()
	return NewMessagingService(messages, couples), messages, coupleID
}

func TestSendPersistsMessage(t *testing.T) {
	svc, messages, coupleID := newMessagingFixture(t)

	id, err := svc.Send(context.Background(), coupleID, 100, 200, "I appreciate you", domain.MessageTypePositive)
	require.NoError(t, err)
	require.NotZero(t, id)

	require.Len(t, messages.messages, 1)
	stored := messages.messages[0]
	require.Equal(t, int64(100), stored.SenderID)
	require.Equal(t, int64(200), stored.ReceiverID)
	require.Equal(t, "I appreciate you", stored.Text)
	require.Equal(t, domain.MessageTypePositive, stored.Type)
}

func TestSendValidation(t *testing.T) {
	svc, _, coupleID := newMessagingFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		coupleID int64
		sender   int64
		receiver int64
		text     string
		mtype    domain.MessageType
		wantErr  error
	}{
		{"empty text", coupleID, 100, 200, "  ", domain.MessageTypePositive, domain.ErrEmptyMessage},
		{"bad type", coupleID, 100, 200, "hi", domain.MessageType("neutral"), domain.ErrInvalidMessageType},
		{"unknown couple", coupleID + 99, 100, 200, "hi", domain.MessageTypePositive, domain.ErrCoupleNotFound},
		{"sender outside couple", coupleID, 300, 200, "hi", domain.MessageTypePositive, domain.ErrNotCoupleMember},
		{"receiver outside couple", coupleID, 100, 300, "hi", domain.MessageTypeNegative, domain.ErrNotCoupleMember},
		{"sender equals receiver", coupleID, 100, 100, "hi", domain.MessageTypePositive, domain.ErrNotCoupleMember},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Send(ctx, tc.coupleID, tc.sender, tc.receiver, tc.text, tc.mtype)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestStatsCountsByType(t *testing.T) {
	svc, _, coupleID := newMessagingFixture(t)
	ctx := context.Background()

	before, err := svc.Stats(ctx, 200)
	require.NoError(t, err)
	require.Equal(t, domain.MessageStats{}, before)

	_, err = svc.Send(ctx, coupleID, 100, 200, "good", domain.MessageTypePositive)
	require.NoError(t, err)

	after, err := svc.Stats(ctx, 200)
	require.NoError(t, err)
	require.Equal(t, before.Positive+1, after.Positive)
	require.Equal(t, before.Total+1, after.Total)
	require.Equal(t, before.Negative, after.Negative)

	// The sender's own stats are untouched.
	sender, err := svc.Stats(ctx, 100)
	require.NoError(t, err)
	require.Equal(t, domain.MessageStats{}, sender)
}

func TestRandomReturnsNilWhenEmptyAndTheOnlyMessageOtherwise(t *testing.T) {
	svc, _, coupleID := newMessagingFixture(t)
	ctx := context.Background()

	msg, err := svc.Random(ctx, 200)
	require.NoError(t, err)
	require.Nil(t, msg)

	_, err = svc.Send(ctx, coupleID, 100, 200, "the only one", domain.MessageTypeNegative)
	require.NoError(t, err)

	msg, err = svc.Random(ctx, 200)
	require.NoError(t, err)
	require.NotNil(t, msg)
	require.Equal(t, "the only one", msg.Text)
	require.Equal(t, domain.MessageTypeNegative, msg.Type)
	require.Equal(t, int64(100), msg.SenderID)
}
