package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/degorov/couplebot/internal/config"
	"github.com/degorov/couplebot/internal/domain"
)

// CoupleStore is the persistence surface the pairing engine needs.
type CoupleStore interface {
	FindByUsers(ctx context.Context, userA, userB int64) (*domain.Couple, error)
	Create(ctx context.Context, userA, userB int64) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Couple, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.CouplePartner, error)
}

type InviteStore interface {
	Create(ctx context.Context, inv *domain.PairInvite) error
	GetByCode(ctx context.Context, code uuid.UUID) (*domain.PairInvite, error)
	MarkUsed(ctx context.Context, code uuid.UUID) error
}

type PairingOutcome int

const (
	PairingCreated PairingOutcome = iota
	PairingAlreadyPaired
	PairingSelfRejected
)

// PairingResult reports what a pairing request did. CoupleID is set for
// Created and AlreadyPaired.
type PairingResult struct {
	Outcome  PairingOutcome
	CoupleID int64
}

type PairingService struct {
	couples CoupleStore
	invites InviteStore
	now     func() time.Time
}

func NewPairingService(couples CoupleStore, invites InviteStore) *PairingService {
	return &PairingService{
		couples: couples,
		invites: invites,
		now:     time.Now,
	}
}

// RequestPairing pairs requester with partner. The existence check and the
// insert are not atomic together; when two users race to create the same
// pair, the unique index rejects the loser and the result downgrades to
// AlreadyPaired.
func (s *PairingService) RequestPairing(ctx context.Context, requesterID, partnerID int64) (PairingResult, error) {
	if requesterID == partnerID {
		return PairingResult{Outcome: PairingSelfRejected}, nil
	}

	existing, err := s.couples.FindByUsers(ctx, requesterID, partnerID)
	if err != nil {
		return PairingResult{}, fmt.Errorf("find couple: %w", err)
	}
	if existing != nil {
		return PairingResult{Outcome: PairingAlreadyPaired, CoupleID: existing.ID}, nil
	}

	id, err := s.couples.Create(ctx, requesterID, partnerID)
	if err != nil {
		if errors.Is(err, domain.ErrCoupleExists) {
			existing, ferr := s.couples.FindByUsers(ctx, requesterID, partnerID)
			if ferr != nil {
				return PairingResult{}, fmt.Errorf("refetch couple after duplicate insert: %w", ferr)
			}
			if existing == nil {
				return PairingResult{}, errors.New("couple vanished after duplicate insert")
			}
			return PairingResult{Outcome: PairingAlreadyPaired, CoupleID: existing.ID}, nil
		}
		return PairingResult{}, fmt.Errorf("create couple: %w", err)
	}

	return PairingResult{Outcome: PairingCreated, CoupleID: id}, nil
}

// Couples lists the user's couples with resolved partner IDs.
func (s *PairingService) Couples(ctx context.Context, userID int64) ([]domain.CouplePartner, error) {
	return s.couples.ListForUser(ctx, userID)
}

// CreateInvite issues a one-shot invite code the user can share as a deep link.
func (s *PairingService) CreateInvite(ctx context.Context, inviterID int64) (uuid.UUID, error) {
	inv := &domain.PairInvite{
		Code:      uuid.New(),
		InviterID: inviterID,
	}
	if err := s.invites.Create(ctx, inv); err != nil {
		return uuid.Nil, err
	}
	return inv.Code, nil
}

// AcceptInvite pairs the accepting user with the inviter. The code must
// exist, be unused and not older than config.InviteTTL. The invite is
// claimed before pairing: the conditional update in the store lets only
// one of two racing acceptors through.
func (s *PairingService) AcceptInvite(ctx context.Context, code string, userID int64) (PairingResult, error) {
	parsed, err := uuid.Parse(code)
	if err != nil {
		return PairingResult{}, domain.ErrInviteNotFound
	}

	inv, err := s.invites.GetByCode(ctx, parsed)
	if err != nil {
		return PairingResult{}, err
	}
	if inv == nil {
		return PairingResult{}, domain.ErrInviteNotFound
	}
	if inv.Used() {
		return PairingResult{}, domain.ErrInviteUsed
	}
	if inv.Expired(s.now(), config.InviteTTL) {
		return PairingResult{}, domain.ErrInviteExpired
	}
	if userID == inv.InviterID {
		// Rejected without consuming the invite; the link stays shareable.
		return PairingResult{Outcome: PairingSelfRejected}, nil
	}

	if err := s.invites.MarkUsed(ctx, inv.Code); err != nil {
		return PairingResult{}, err
	}

	return s.RequestPairing(ctx, userID, inv.InviterID)
}
