package dto

import "ai-recorddesk-be/pkg/store"

type CreateRecordRequest struct {
	Collection string            `json:"collection" validate:"required"`
	Fields     map[string]string `json:"fields" validate:"required"`
}

type CreateRecordResponse struct {
	RecordID   string `json:"record_id"`
	Collection string `json:"collection"`
}

type QueryRecordRequest struct {
	Collection string            `json:"collection" validate:"required"`
	Filter     map[string]string `json:"filter"`
	Limit      int               `json:"limit"`
}

type QueryRecordResponse struct {
	Collection string           `json:"collection"`
	Matches    int              `json:"matches"`
	Documents  []store.Document `json:"documents"`
}
