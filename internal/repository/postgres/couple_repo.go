package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/degorov/couplebot/internal/domain"
)

type CoupleRepo struct {
	pool *pgxpool.Pool
}

func NewCoupleRepo(pool *pgxpool.Pool) *CoupleRepo {
	return &CoupleRepo{pool: pool}
}

// FindByUsers returns the couple for the unordered pair (userA, userB),
// or nil when none exists.
func (r *CoupleRepo) FindByUsers(ctx context.Context, userA, userB int64) (*domain.Couple, error) {
	query := `
		SELECT id, user1_id, user2_id, created_at
		FROM couples
		WHERE (user1_id = $1 AND user2_id = $2) OR (user1_id = $2 AND user2_id = $1)`
	var c domain.Couple
	err := r.pool.QueryRow(ctx, query, userA, userB).Scan(
		&c.ID, &c.User1ID, &c.User2ID, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find couple: %w", err)
	}
	return &c, nil
}

// Create inserts a new couple and returns its ID. A duplicate unordered
// pair is reported as domain.ErrCoupleExists; the unique index is the
// authoritative guard against two users pairing simultaneously.
func (r *CoupleRepo) Create(ctx context.Context, userA, userB int64) (int64, error) {
	query := `
		INSERT INTO couples (user1_id, user2_id)
		VALUES ($1, $2)
		RETURNING id`
	var id int64
	err := r.pool.QueryRow(ctx, query, userA, userB).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, domain.ErrCoupleExists
		}
		return 0, fmt.Errorf("insert couple: %w", err)
	}
	return id, nil
}

func (r *CoupleRepo) GetByID(ctx context.Context, id int64) (*domain.Couple, error) {
	query := `
		SELECT id, user1_id, user2_id, created_at
		FROM couples
		WHERE id = $1`
	var c domain.Couple
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.User1ID, &c.User2ID, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get couple: %w", err)
	}
	return &c, nil
}

// ListForUser returns every couple the user belongs to, with the partner
// resolved to whichever member is not the user.
func (r *CoupleRepo) ListForUser(ctx context.Context, userID int64) ([]domain.CouplePartner, error) {
	query := `
		SELECT id,
			CASE WHEN user1_id = $1 THEN user2_id ELSE user1_id END AS partner_id
		FROM couples
		WHERE user1_id = $1 OR user2_id = $1
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list couples: %w", err)
	}
	defer rows.Close()

	var list []domain.CouplePartner
	for rows.Next() {
		var cp domain.CouplePartner
		if err := rows.Scan(&cp.CoupleID, &cp.PartnerID); err != nil {
			return nil, err
		}
		list = append(list, cp)
	}
	return list, rows.Err()
}
