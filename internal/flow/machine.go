package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/degorov/couplebot/internal/config"
	"github.com/degorov/couplebot/internal/domain"
	"github.com/degorov/couplebot/internal/service"
)

type sessionState int

const (
	stateIdle sessionState = iota
	stateAwaitingPartnerID
	stateAwaitingMessageText
	stateAwaitingMessageType
)

// session is one user's transient progress through a multi-step flow.
// Idle users have no session record at all.
type session struct {
	state     sessionState
	coupleID  int64
	partnerID int64
	draft     string
	touchedAt time.Time
}

// Machine drives per-user conversation flows. Sessions are keyed by
// telegram user ID and never shared across users; the durable stores are
// the only state sessions have in common.
type Machine struct {
	mu       sync.Mutex
	sessions map[int64]*session

	pairing   *service.PairingService
	messaging *service.MessagingService

	ttl time.Duration
	now func() time.Time
}

func NewMachine(pairing *service.PairingService, messaging *service.MessagingService) *Machine {
	return &Machine{
		sessions:  make(map[int64]*session),
		pairing:   pairing,
		messaging: messaging,
		ttl:       config.SessionTTL,
		now:       time.Now,
	}
}

// Handle applies one event to the user's session and returns the render
// instruction for the front end. Engine failures reset the session to idle
// rather than leaving it stuck mid-flow.
//
// The session map lock only covers session reads and writes, never the
// pairing/messaging calls: one user waiting on the store must not stall
// other users' events.
func (m *Machine) Handle(ctx context.Context, userID int64, ev Event) Reply {
	switch ev := ev.(type) {
	case BeginPairing:
		m.put(userID, &session{state: stateAwaitingPartnerID})
		return Reply{
			Text:    "Пожалуйста, введите ID пользователя, с которым хотите создать пару:",
			Choices: [][]Choice{{{Label: "Отмена", Data: DataCancel}}},
		}

	case BeginSend:
		m.put(userID, &session{
			state:     stateAwaitingMessageText,
			coupleID:  ev.CoupleID,
			partnerID: ev.PartnerID,
		})
		return Reply{
			Text:    "Введите текст сообщения:",
			Choices: [][]Choice{{{Label: "Отмена", Data: DataCancel}}},
		}

	case FreeText:
		return m.handleText(ctx, userID, ev.Text)

	case ChooseType:
		return m.handleType(ctx, userID, ev.Type)

	case Cancel:
		m.clear(userID)
		return Reply{Text: "Действие отменено."}
	}

	return Reply{}
}

func (m *Machine) handleText(ctx context.Context, userID int64, text string) Reply {
	m.mu.Lock()
	sess := m.sessions[userID]
	if sess == nil {
		m.mu.Unlock()
		// No flow in progress; not ours to answer.
		return Reply{}
	}

	switch sess.state {
	case stateAwaitingPartnerID:
		partnerID, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			sess.touchedAt = m.now()
			m.mu.Unlock()
			return Reply{Text: "Пожалуйста, введите корректный ID пользователя (целое число)."}
		}
		delete(m.sessions, userID)
		m.mu.Unlock()

		result, err := m.pairing.RequestPairing(ctx, userID, partnerID)
		if err != nil {
			slog.Error("request pairing", "error", err, "user_id", userID)
			return replyFailure()
		}
		return replyPairingResult(result)

	case stateAwaitingMessageText:
		sess.draft = text
		sess.state = stateAwaitingMessageType
		sess.touchedAt = m.now()
		m.mu.Unlock()
		return Reply{
			Text: "Выберите тип сообщения:",
			Choices: [][]Choice{{
				{Label: "Позитивное", Data: DataTypePositive},
				{Label: "Негативное", Data: DataTypeNegative},
			}},
		}
	}

	m.mu.Unlock()
	return Reply{}
}

func (m *Machine) handleType(ctx context.Context, userID int64, mtype domain.MessageType) Reply {
	m.mu.Lock()
	sess := m.sessions[userID]
	if sess == nil || sess.state != stateAwaitingMessageType {
		m.mu.Unlock()
		return Reply{Text: "Нет черновика сообщения. Используйте /start, чтобы начать заново."}
	}
	delete(m.sessions, userID)
	coupleID, partnerID, draft := sess.coupleID, sess.partnerID, sess.draft
	m.mu.Unlock()

	_, err := m.messaging.Send(ctx, coupleID, userID, partnerID, draft, mtype)
	if err != nil {
		slog.Error("send message", "error", err, "user_id", userID, "couple_id", coupleID)
		return replyFailure()
	}
	return Reply{
		Text: fmt.Sprintf("Сообщение успешно отправлено пользователю с ID: %d!", partnerID),
		Choices: [][]Choice{
			{{Label: "Мои пары", Data: DataMyCouples}},
			{{Label: "Главное меню", Data: DataMainMenu}},
		},
	}
}

// put replaces whatever session the user had; starting a new flow always
// discards the previous stash.
func (m *Machine) put(userID int64, sess *session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess.touchedAt = m.now()
	m.sessions[userID] = sess
}

func (m *Machine) clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// SweepExpired drops sessions idle longer than the TTL and returns how
// many were removed. An expired user simply finds themselves back at idle.
func (m *Machine) SweepExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.ttl)
	removed := 0
	for userID, sess := range m.sessions {
		if sess.touchedAt.Before(cutoff) {
			delete(m.sessions, userID)
			removed++
		}
	}
	return removed
}

func replyPairingResult(result service.PairingResult) Reply {
	menu := [][]Choice{
		{{Label: "Создать пару", Data: DataCreateCouple}},
		{{Label: "Мои пары", Data: DataMyCouples}},
	}
	switch result.Outcome {
	case service.PairingSelfRejected:
		return Reply{Text: "Вы не можете создать пару с самим собой."}
	case service.PairingAlreadyPaired:
		return Reply{
			Text:    fmt.Sprintf("У вас уже есть пара с этим пользователем (ID пары: %d).", result.CoupleID),
			Choices: menu,
		}
	default:
		return Reply{
			Text:    fmt.Sprintf("Пара успешно создана! ID пары: %d", result.CoupleID),
			Choices: menu,
		}
	}
}

func replyFailure() Reply {
	return Reply{Text: "❌ Что-то пошло не так. Попробуйте ещё раз."}
}
