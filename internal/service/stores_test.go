package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/degorov/couplebot/internal/domain"
)

// memCoupleStore keeps couples in memory and enforces the unordered-pair
// uniqueness the real schema guarantees with its unique index.
type memCoupleStore struct {
	couples  []*domain.Couple
	nextID   int64
	createFn func(userA, userB int64) (int64, error) // optional override
}

func newMemCoupleStore() *memCoupleStore {
	return &memCoupleStore{nextID: 1}
}

func (s *memCoupleStore) FindByUsers(_ context.Context, userA, userB int64) (*domain.Couple, error) {
	for _, c := range s.couples {
		if (c.User1ID == userA && c.User2ID == userB) || (c.User1ID == userB && c.User2ID == userA) {
			return c, nil
		}
	}
	return nil, nil
}

func (s *memCoupleStore) Create(_ context.Context, userA, userB int64) (int64, error) {
	if s.createFn != nil {
		return s.createFn(userA, userB)
	}
	for _, c := range s.couples {
		if (c.User1ID == userA && c.User2ID == userB) || (c.User1ID == userB && c.User2ID == userA) {
			return 0, domain.ErrCoupleExists
		}
	}
	c := &domain.Couple{
		ID:        s.nextID,
		User1ID:   userA,
		User2ID:   userB,
		CreatedAt: time.Now(),
	}
	s.nextID++
	s.couples = append(s.couples, c)
	return c.ID, nil
}

func (s *memCoupleStore) GetByID(_ context.Context, id int64) (*domain.Couple, error) {
	for _, c := range s.couples {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (s *memCoupleStore) ListForUser(_ context.Context, userID int64) ([]domain.CouplePartner, error) {
	var list []domain.CouplePartner
	for _, c := range s.couples {
		if c.Member(userID) {
			list = append(list, domain.CouplePartner{CoupleID: c.ID, PartnerID: c.PartnerOf(userID)})
		}
	}
	return list, nil
}

type memMessageStore struct {
	messages []*domain.Message
	nextID   int64
}

func newMemMessageStore() *memMessageStore {
	return &memMessageStore{nextID: 1}
}

func (s *memMessageStore) Insert(_ context.Context, msg *domain.Message) (int64, error) {
	stored := *msg
	stored.ID = s.nextID
	stored.SentAt = time.Now()
	s.nextID++
	s.messages = append(s.messages, &stored)
	msg.ID = stored.ID
	msg.SentAt = stored.SentAt
	return stored.ID, nil
}

func (s *memMessageStore) StatsForReceiver(_ context.Context, receiverID int64) (domain.MessageStats, error) {
	var stats domain.MessageStats
	for _, m := range s.messages {
		if m.ReceiverID != receiverID {
			continue
		}
		stats.Total++
		switch m.Type {
		case domain.MessageTypePositive:
			stats.Positive++
		case domain.MessageTypeNegative:
			stats.Negative++
		}
	}
	return stats, nil
}

func (s *memMessageStore) RandomForReceiver(_ context.Context, receiverID int64) (*domain.Message, error) {
	for _, m := range s.messages {
		if m.ReceiverID == receiverID {
			return m, nil
		}
	}
	return nil, nil
}

type memInviteStore struct {
	invites map[uuid.UUID]*domain.PairInvite
}

func newMemInviteStore() *memInviteStore {
	return &memInviteStore{invites: make(map[uuid.UUID]*domain.PairInvite)}
}

func (s *memInviteStore) Create(_ context.Context, inv *domain.PairInvite) error {
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now()
	}
	stored := *inv
	s.invites[inv.Code] = &stored
	return nil
}

func (s *memInviteStore) GetByCode(_ context.Context, code uuid.UUID) (*domain.PairInvite, error) {
	inv, ok := s.invites[code]
	if !ok {
		return nil, nil
	}
	copied := *inv
	return &copied, nil
}

// MarkUsed mirrors the conditional update of the real store: claiming an
// already-claimed (or missing) invite fails.
func (s *memInviteStore) MarkUsed(_ context.Context, code uuid.UUID) error {
	inv, ok := s.invites[code]
	if !ok || inv.UsedAt != nil {
		return domain.ErrInviteUsed
	}
	now := time.Now()
	inv.UsedAt = &now
	return nil
}
