package entity

import "time"

// Record is one stored document in a business collection. The document body
// is schemaless at the storage level; the schema registry validates shape
// before a record ever reaches the repository.
type Record struct {
	Id         string
	Collection string
	Document   map[string]string
	CreatedBy  string
	CreatedAt  time.Time
}
