package store

import "time"

// State values for the conversation lifecycle. A session starts at IDLE,
// moves through classification and slot filling, and ends at TERMINAL.
// TERMINAL sessions are reset to IDLE for the next operation.
const (
	StateIdle              = "IDLE"
	StateAwaitingIntent    = "AWAITING_INTENT"
	StateCollectingFields  = "COLLECTING_FIELDS"
	StateConfirmingCreate  = "CONFIRMING_CREATE"
	StateAwaitingQueryConf = "AWAITING_QUERY_CONFIRMATION"
	StateTerminal          = "TERMINAL"
)

// Operation kinds
const (
	OperationCreate = "CREATE"
	OperationRead   = "READ"
)

// Turn is a single (role, text) exchange kept in the session history.
type Turn struct {
	Role string `json:"role"` // "user" | "assistant"
	Text string `json:"text"`
}

// Session is the active conversation state. It is owned exclusively by the
// conversation state machine: one writer per session per turn.
type Session struct {
	ID             string    `json:"id"`
	ActorID        string    `json:"actor_id"`
	State          string    `json:"state"`
	CreatedAt      time.Time `json:"created_at"`
	LastActivityAt time.Time `json:"last_activity_at"`

	// Target operation being assembled across turns
	TargetCollection    string            `json:"target_collection,omitempty"`
	OperationKind       string            `json:"operation_kind,omitempty"`
	CollectedFields     map[string]string `json:"collected_fields,omitempty"`
	PendingNaturalQuery string            `json:"pending_natural_query,omitempty"`

	// Retry counters for the recoverable error paths
	ClarifyRounds int `json:"clarify_rounds"`
	ReQueryRounds int `json:"requery_rounds"`

	TurnHistory []Turn `json:"turn_history,omitempty"`
}

// NewSession returns a fresh IDLE session for an actor.
func NewSession(id, actorID string) *Session {
	now := time.Now()
	return &Session{
		ID:              id,
		ActorID:         actorID,
		State:           StateIdle,
		CreatedAt:       now,
		LastActivityAt:  now,
		CollectedFields: map[string]string{},
	}
}

// Reset returns the session to IDLE for a new operation, preserving the
// actor identity and turn history.
func (s *Session) Reset() {
	s.State = StateIdle
	s.TargetCollection = ""
	s.OperationKind = ""
	s.CollectedFields = map[string]string{}
	s.PendingNaturalQuery = ""
	s.ClarifyRounds = 0
	s.ReQueryRounds = 0
}

// Remember appends a turn to the history.
func (s *Session) Remember(role, text string) {
	s.TurnHistory = append(s.TurnHistory, Turn{Role: role, Text: text})
	s.LastActivityAt = time.Now()
}
