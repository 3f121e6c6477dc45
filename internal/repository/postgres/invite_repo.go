package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/degorov/couplebot/internal/domain"
)

type InviteRepo struct {
	pool *pgxpool.Pool
}

func NewInviteRepo(pool *pgxpool.Pool) *InviteRepo {
	return &InviteRepo{pool: pool}
}

func (r *InviteRepo) Create(ctx context.Context, inv *domain.PairInvite) error {
	query := `
		INSERT INTO pair_invites (code, inviter_id)
		VALUES ($1, $2)
		RETURNING created_at`
	err := r.pool.QueryRow(ctx, query, inv.Code, inv.InviterID).Scan(&inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert invite: %w", err)
	}
	return nil
}

func (r *InviteRepo) GetByCode(ctx context.Context, code uuid.UUID) (*domain.PairInvite, error) {
	query := `
		SELECT code, inviter_id, created_at, used_at
		FROM pair_invites
		WHERE code = $1`
	var inv domain.PairInvite
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&inv.Code, &inv.InviterID, &inv.CreatedAt, &inv.UsedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get invite: %w", err)
	}
	return &inv, nil
}

// MarkUsed claims the invite. The used_at guard makes the claim
// first-wins: a second caller gets domain.ErrInviteUsed.
func (r *InviteRepo) MarkUsed(ctx context.Context, code uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE pair_invites SET used_at = now() WHERE code = $1 AND used_at IS NULL`, code)
	if err != nil {
		return fmt.Errorf("mark invite used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInviteUsed
	}
	return nil
}
