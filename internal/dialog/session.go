package dialog

import "sync"

// Field names a slot in the per-session accumulator.
type Field string

const (
	FieldTicker     Field = "ticker"
	FieldOutcome    Field = "win_loss"
	FieldSide       Field = "side"
	FieldStrategy   Field = "strategy"
	FieldDate       Field = "date"
	FieldTime       Field = "time"
	FieldRR         Field = "rr"
	FieldPnL        Field = "pnl"
	FieldPicture    Field = "picture"
	FieldTradeID    Field = "trade_id"
	FieldEditTarget Field = "edit_target"
	FieldPeriod     Field = "period"
)

// Session is the ephemeral per-chat working state: partially entered field
// values plus the current state tag. It is owned exclusively by the Engine;
// the store only ever sees the finished field set at commit time.
type Session struct {
	ChatID string
	State  State
	fields map[Field]string
}

func newSession(chatID string) *Session {
	return &Session{
		ChatID: chatID,
		State:  StateIdle,
		fields: make(map[Field]string),
	}
}

// Set stores one field value.
func (s *Session) Set(f Field, value string) {
	s.fields[f] = value
}

// Get returns a field value and whether it was set.
func (s *Session) Get(f Field) (string, bool) {
	v, ok := s.fields[f]
	return v, ok
}

// Unset drops one field, keeping the rest. Used by back-navigation to
// discard only what was entered after the branch point.
func (s *Session) Unset(fields ...Field) {
	for _, f := range fields {
		delete(s.fields, f)
	}
}

// Reset discards every field and returns the session to idle.
func (s *Session) Reset() {
	s.State = StateIdle
	s.fields = make(map[Field]string)
}

// Empty reports whether no field is set.
func (s *Session) Empty() bool {
	return len(s.fields) == 0
}

// SessionManager owns one session per chat. Sessions of different chats are
// fully isolated; events for one chat are serialized by the per-session lock
// held across HandleEvent.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*sessionSlot
}

type sessionSlot struct {
	mu      sync.Mutex
	session *Session
}

// NewSessionManager creates an empty SessionManager.
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*sessionSlot)}
}

// acquire returns the chat's session with its lock held. The caller must
// call the returned release function when the turn is fully handled.
func (m *SessionManager) acquire(chatID string) (*Session, func()) {
	m.mu.Lock()
	slot, ok := m.sessions[chatID]
	if !ok {
		slot = &sessionSlot{session: newSession(chatID)}
		m.sessions[chatID] = slot
	}
	m.mu.Unlock()

	slot.mu.Lock()
	return slot.session, slot.mu.Unlock
}

// Peek returns a snapshot of the chat's current state and whether its field
// accumulator is empty. Intended for tests and diagnostics.
func (m *SessionManager) Peek(chatID string) (State, bool) {
	m.mu.Lock()
	slot, ok := m.sessions[chatID]
	m.mu.Unlock()
	if !ok {
		return StateIdle, true
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()
	return slot.session.State, slot.session.Empty()
}
