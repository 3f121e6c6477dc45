package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/degorov/couplebot/internal/domain"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) Insert(ctx context.Context, msg *domain.Message) (int64, error) {
	query := `
		INSERT INTO messages (couple_id, sender_id, receiver_id, message_text, message_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, sent_at`
	err := r.pool.QueryRow(ctx, query,
		msg.CoupleID, msg.SenderID, msg.ReceiverID, msg.Text, string(msg.Type),
	).Scan(&msg.ID, &msg.SentAt)
	if err != nil {
		return 0, fmt.Errorf("insert message: %w", err)
	}
	return msg.ID, nil
}

// StatsForReceiver counts messages addressed to the user, total and per type.
func (r *MessageRepo) StatsForReceiver(ctx context.Context, receiverID int64) (domain.MessageStats, error) {
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE message_type = 'positive'),
			COUNT(*) FILTER (WHERE message_type = 'negative')
		FROM messages
		WHERE receiver_id = $1`
	var stats domain.MessageStats
	err := r.pool.QueryRow(ctx, query, receiverID).Scan(
		&stats.Total, &stats.Positive, &stats.Negative,
	)
	if err != nil {
		return domain.MessageStats{}, fmt.Errorf("message stats: %w", err)
	}
	return stats, nil
}

// RandomForReceiver picks one message addressed to the user uniformly at
// random, or nil when there are none.
func (r *MessageRepo) RandomForReceiver(ctx context.Context, receiverID int64) (*domain.Message, error) {
	query := `
		SELECT id, couple_id, sender_id, receiver_id, message_text, message_type, sent_at
		FROM messages
		WHERE receiver_id = $1
		ORDER BY random()
		LIMIT 1`
	var m domain.Message
	err := r.pool.QueryRow(ctx, query, receiverID).Scan(
		&m.ID, &m.CoupleID, &m.SenderID, &m.ReceiverID, &m.Text, &m.Type, &m.SentAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("random message: %w", err)
	}
	return &m, nil
}
