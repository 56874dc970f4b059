package dto

// AuditMessage is the payload published on the internal audit topic after
// every completed data operation. The consumer turns it into an
// audit_log_viewer record.
type AuditMessage struct {
	ActorID    string `json:"actor_id"`
	Collection string `json:"collection"`
	Operation  string `json:"operation"`
	RecordID   string `json:"record_id,omitempty"`
	Matches    int    `json:"matches,omitempty"`
	Outcome    string `json:"outcome"`
}
