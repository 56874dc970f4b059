package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatTurn is one durable (role, text) exchange of a conversation. The live
// session keeps its own bounded history; this is the permanent journal.
type ChatTurn struct {
	Id        uuid.UUID
	SessionID string
	ActorID   string
	Role      string
	Text      string
	State     string
	CreatedAt time.Time
}
