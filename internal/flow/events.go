package flow

import "github.com/degorov/couplebot/internal/domain"

// Event is one inbound front-end event targeting a user's session. The
// concrete variants carry structured payloads; the transport layer decodes
// its own wire format (commands, callback data, free text) into these
// before calling the machine.
type Event interface {
	isEvent()
}

// BeginPairing starts the pair-creation flow.
type BeginPairing struct{}

// BeginSend starts the message-composition flow for a chosen couple.
type BeginSend struct {
	CoupleID  int64
	PartnerID int64
}

// FreeText is an arbitrary non-command text reply.
type FreeText struct {
	Text string
}

// ChooseType is the sentiment selection completing a send flow.
type ChooseType struct {
	Type domain.MessageType
}

// Cancel aborts whatever flow is in progress.
type Cancel struct{}

func (BeginPairing) isEvent() {}
func (BeginSend) isEvent()    {}
func (FreeText) isEvent()     {}
func (ChooseType) isEvent()   {}
func (Cancel) isEvent()       {}
