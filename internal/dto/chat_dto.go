package dto

import (
	"time"

	"ai-recorddesk-be/pkg/store"
)

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" validate:"required"`
}

type ChatTurnDTO struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatResponse struct {
	SessionID string           `json:"session_id"`
	Reply     string           `json:"reply"`
	State     string           `json:"state"`
	RecordID  string           `json:"record_id,omitempty"`
	Documents []store.Document `json:"documents,omitempty"`
}
