package events

import "time"

// Event types emitted by the record desk.
const (
	TypeRecordCreated = "record.created"
	TypeRecordQueried = "record.queried"
	TypeAccessDenied  = "access.denied"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "record.created").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the standard implementation used across the system.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// RecordCreated builds the event published after a successful save.
func RecordCreated(actorID, collection, recordID string) Event {
	return BaseEvent{
		Type: TypeRecordCreated,
		Data: map[string]interface{}{
			"actor_id":   actorID,
			"collection": collection,
			"record_id":  recordID,
		},
		OccurredAt: time.Now(),
	}
}

// RecordQueried builds the event published after a read, with the match
// count but never the matched documents themselves.
func RecordQueried(actorID, collection string, matches int) Event {
	return BaseEvent{
		Type: TypeRecordQueried,
		Data: map[string]interface{}{
			"actor_id":   actorID,
			"collection": collection,
			"matches":    matches,
		},
		OccurredAt: time.Now(),
	}
}

// AccessDenied builds the event published when authorization refuses an
// operation.
func AccessDenied(actorID, collection, operation, reason string) Event {
	return BaseEvent{
		Type: TypeAccessDenied,
		Data: map[string]interface{}{
			"actor_id":   actorID,
			"collection": collection,
			"operation":  operation,
			"reason":     reason,
		},
		OccurredAt: time.Now(),
	}
}
