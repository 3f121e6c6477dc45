package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/degorov/couplebot/internal/domain"
)

func TestRequestPairingCreatesCouple(t *testing.T) {
	couples := newMemCoupleStore()
	svc := NewPairingService(couples, newMemInviteStore())

	res, err := svc.RequestPairing(context.Background(), 100, 200)
	require.NoError(t, err)
	require.Equal(t, PairingCreated, res.Outcome)
	require.NotZero(t, res.CoupleID)

	stored, err := couples.GetByID(context.Background(), res.CoupleID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.True(t, stored.Member(100))
	require.True(t, stored.Member(200))
}

func TestRequestPairingRejectsSelf(t *testing.T) {
	couples := newMemCoupleStore()
	svc := NewPairingService(couples, newMemInviteStore())

	res, err := svc.RequestPairing(context.Background(), 100, 100)
	require.NoError(t, err)
	require.Equal(t, PairingSelfRejected, res.Outcome)
	require.Empty(t, couples.couples)
}

func TestRequestPairingIsIdempotentAcrossOrderings(t *testing.T) {
	couples := newMemCoupleStore()
	svc := NewPairingService(couples, newMemInviteStore())
	ctx := context.Background()

	first, err := svc.RequestPairing(ctx, 100, 200)
	require.NoError(t, err)
	require.Equal(t, PairingCreated, first.Outcome)

	second, err := svc.RequestPairing(ctx, 200, 100)
	require.NoError(t, err)
	require.Equal(t, PairingAlreadyPaired, second.Outcome)
	require.Equal(t, first.CoupleID, second.CoupleID)
	require.Len(t, couples.couples, 1)
}

func TestRequestPairingDowngradesRaceToAlreadyPaired(t *testing.T) {
	// Simulate the check-then-act race: the existence check misses, but by
	// insert time the other user has created the couple and the unique
	// index rejects ours.
	couples := newMemCoupleStore()
	svc := NewPairingService(couples, newMemInviteStore())
	ctx := context.Background()

	couples.createFn = func(userA, userB int64) (int64, error) {
		couples.createFn = nil
		_, err := couples.Create(ctx, userB, userA) // the other side wins
		require.NoError(t, err)
		return 0, domain.ErrCoupleExists
	}

	res, err := svc.RequestPairing(ctx, 100, 200)
	require.NoError(t, err)
	require.Equal(t, PairingAlreadyPaired, res.Outcome)
	require.NotZero(t, res.CoupleID)
	require.Len(t, couples.couples, 1)
}

func TestRequestPairingErrorsWhenDuplicateVanishes(t *testing.T) {
	// Insert hits the unique index but the re-read finds nothing, as when
	// the winning couple is removed in between. That is a real failure,
	// not AlreadyPaired.
	couples := newMemCoupleStore()
	svc := NewPairingService(couples, newMemInviteStore())
	ctx := context.Background()

	couples.createFn = func(userA, userB int64) (int64, error) {
		return 0, domain.ErrCoupleExists
	}

	_, err := svc.RequestPairing(ctx, 100, 200)
	require.Error(t, err)
	require.Contains(t, err.Error(), "vanished after duplicate insert")
	require.NotContains(t, err.Error(), "%!w")
}

func TestCouplesListsPartners(t *testing.T) {
	couples := newMemCoupleStore()
	svc := NewPairingService(couples, newMemInviteStore())
	ctx := context.Background()

	_, err := svc.RequestPairing(ctx, 100, 200)
	require.NoError(t, err)
	_, err = svc.RequestPairing(ctx, 300, 100)
	require.NoError(t, err)

	list, err := svc.Couples(ctx, 100)
	require.NoError(t, err)
	require.Len(t, list, 2)

	partners := []int64{list[0].PartnerID, list[1].PartnerID}
	require.ElementsMatch(t, []int64{200, 300}, partners)
}

func TestAcceptInvitePairsWithInviter(t *testing.T) {
	couples := newMemCoupleStore()
	invites := newMemInviteStore()
	svc := NewPairingService(couples, invites)
	ctx := context.Background()

	code, err := svc.CreateInvite(ctx, 100)
	require.NoError(t, err)

	res, err := svc.AcceptInvite(ctx, code.String(), 200)
	require.NoError(t, err)
	require.Equal(t, PairingCreated, res.Outcome)

	// Invite is one-shot.
	_, err = svc.AcceptInvite(ctx, code.String(), 300)
	require.ErrorIs(t, err, domain.ErrInviteUsed)
}

func TestAcceptInviteRejectsUnknownAndMalformedCodes(t *testing.T) {
	svc := NewPairingService(newMemCoupleStore(), newMemInviteStore())
	ctx := context.Background()

	_, err := svc.AcceptInvite(ctx, "not-a-uuid", 200)
	require.ErrorIs(t, err, domain.ErrInviteNotFound)

	_, err = svc.AcceptInvite(ctx, "9f2c8a14-0000-4000-8000-000000000000", 200)
	require.ErrorIs(t, err, domain.ErrInviteNotFound)
}

func TestAcceptInviteRejectsExpired(t *testing.T) {
	couples := newMemCoupleStore()
	invites := newMemInviteStore()
	svc := NewPairingService(couples, invites)
	ctx := context.Background()

	code, err := svc.CreateInvite(ctx, 100)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(48 * time.Hour) }

	_, err = svc.AcceptInvite(ctx, code.String(), 200)
	require.ErrorIs(t, err, domain.ErrInviteExpired)
	require.Empty(t, couples.couples)
}

func TestAcceptInviteSelfIsRejectedOutcome(t *testing.T) {
	svc := NewPairingService(newMemCoupleStore(), newMemInviteStore())
	ctx := context.Background()

	code, err := svc.CreateInvite(ctx, 100)
	require.NoError(t, err)

	res, err := svc.AcceptInvite(ctx, code.String(), 100)
	require.NoError(t, err)
	require.Equal(t, PairingSelfRejected, res.Outcome)

	// A rejected acceptance does not consume the invite.
	res, err = svc.AcceptInvite(ctx, code.String(), 200)
	require.NoError(t, err)
	require.Equal(t, PairingCreated, res.Outcome)
}

func TestAcceptInviteClaimIsFirstWins(t *testing.T) {
	// Both acceptors read the invite while it is still unclaimed; the
	// conditional claim decides who wins, and only one couple appears.
	couples := newMemCoupleStore()
	invites := &stickyInviteStore{}
	svc := NewPairingService(couples, invites)
	ctx := context.Background()

	code, err := svc.CreateInvite(ctx, 100)
	require.NoError(t, err)

	res, err := svc.AcceptInvite(ctx, code.String(), 200)
	require.NoError(t, err)
	require.Equal(t, PairingCreated, res.Outcome)

	_, err = svc.AcceptInvite(ctx, code.String(), 300)
	require.ErrorIs(t, err, domain.ErrInviteUsed)
	require.Len(t, couples.couples, 1)
}

// stickyInviteStore reports the invite unused on every read, as a racing
// acceptor would see before the other's claim lands. Claims are first-wins.
type stickyInviteStore struct {
	inv     domain.PairInvite
	claimed bool
}

func (s *stickyInviteStore) Create(_ context.Context, inv *domain.PairInvite) error {
	inv.CreatedAt = time.Now()
	s.inv = *inv
	return nil
}

func (s *stickyInviteStore) GetByCode(_ context.Context, code uuid.UUID) (*domain.PairInvite, error) {
	if code != s.inv.Code {
		return nil, nil
	}
	copied := s.inv
	copied.UsedAt = nil
	return &copied, nil
}

func (s *stickyInviteStore) MarkUsed(_ context.Context, _ uuid.UUID) error {
	if s.claimed {
		return domain.ErrInviteUsed
	}
	s.claimed = true
	return nil
}
