package domain

import "time"

// Couple is a durable unordered pairing of two telegram users. The pair
// (A, B) and (B, A) refer to the same couple.
type Couple struct {
	ID        int64
	User1ID   int64
	User2ID   int64
	CreatedAt time.Time
}

// Member reports whether userID is one of the two members.
func (c *Couple) Member(userID int64) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// PartnerOf returns the other member of the couple.
func (c *Couple) PartnerOf(userID int64) int64 {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// CouplePartner is one row of a user's couple list: the couple plus
// whichever member is not the listing user.
type CouplePartner struct {
	CoupleID  int64
	PartnerID int64
}
