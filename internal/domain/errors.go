package domain

import "errors"

var (
	ErrCoupleExists       = errors.New("couple already exists")
	ErrCoupleNotFound     = errors.New("couple not found")
	ErrNotCoupleMember    = errors.New("user is not a member of the couple")
	ErrEmptyMessage       = errors.New("message text is empty")
	ErrInvalidMessageType = errors.New("unknown message type")
	ErrInviteNotFound     = errors.New("invite not found")
	ErrInviteExpired      = errors.New("invite expired")
	ErrInviteUsed         = errors.New("invite already used")
)
