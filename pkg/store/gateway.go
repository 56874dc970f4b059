package store

import (
	"context"
	"errors"
)

// ErrUnavailable is returned by a gateway when the backing store cannot be
// reached. Callers surface it as "operation unavailable", never as a
// validation failure.
var ErrUnavailable = errors.New("record store unavailable")

// Document is one stored record returned by a read.
type Document struct {
	ID         string            `json:"id"`
	Collection string            `json:"collection"`
	Fields     map[string]string `json:"fields"`
}

// Gateway executes structured operations against the collection store.
type Gateway interface {
	// Insert stores a document in a collection and returns its identifier.
	// Keys starting with "_" are envelope metadata for the gateway
	// ("_created_by" records the acting user) and are not document fields.
	Insert(ctx context.Context, collection string, fields map[string]string) (string, error)

	// Query runs a bounded structured query against a collection.
	Query(ctx context.Context, collection string, q *StructuredQuery) ([]Document, error)
}
