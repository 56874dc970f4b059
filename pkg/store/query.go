package store

// Filter operators understood by the gateway.
const (
	OpEquals = "eq"
)

// DefaultQueryLimit bounds every read that does not ask for less. There is
// deliberately no way to express "no limit".
const DefaultQueryLimit = 50

// Condition is a single field predicate.
type Condition struct {
	Op    string `json:"op"`
	Value string `json:"value"`
}

// Sort orders results by one field.
type Sort struct {
	Field string `json:"field"`
	Desc  bool   `json:"desc"`
}

// StructuredQuery is the only shape the data store gateway executes.
// Limit is always positive; an empty Filter is legal but must be produced
// consciously (bounded fallback listing), never by accident.
type StructuredQuery struct {
	Filter map[string]Condition `json:"filter"`
	Sort   *Sort                `json:"sort,omitempty"`
	Limit  int                  `json:"limit"`
}

// ByIdentifier builds the exact-match single-record query used whenever a
// record identifier token is present in the user's text.
func ByIdentifier(token string) *StructuredQuery {
	return &StructuredQuery{
		Filter: map[string]Condition{"_id": {Op: OpEquals, Value: token}},
		Limit:  1,
	}
}

// RecentListing is the explicit bounded fallback: most recent records first,
// capped at DefaultQueryLimit.
func RecentListing() *StructuredQuery {
	return &StructuredQuery{
		Filter: map[string]Condition{},
		Sort:   &Sort{Field: "created_at", Desc: true},
		Limit:  DefaultQueryLimit,
	}
}
