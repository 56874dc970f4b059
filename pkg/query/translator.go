package query

import (
	"errors"
	"regexp"
	"strings"

	"ai-recorddesk-be/pkg/schema"
	"ai-recorddesk-be/pkg/store"
)

// ErrAmbiguous means the text could not be turned into a confident
// structured query. Callers re-prompt or fall back to a bounded listing;
// they never pass free text to the store.
var ErrAmbiguous = errors.New("query is ambiguous")

var (
	pairPattern    = regexp.MustCompile(`([A-Za-z][A-Za-z_]+)\s*[:=]\s*([^,;\n]+)`)
	isPattern      = regexp.MustCompile(`(?i)\b([a-z_]+)\s+is\s+([^\s,;]+)`)
	emailValue     = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)
	dateValue      = regexp.MustCompile(`\b(\d{1,2}[-/]\d{1,2}[-/]\d{4}|\d{4}[-/]\d{1,2}[-/]\d{1,2})\b`)
	empIDValue     = regexp.MustCompile(`(?i)\bEMP\d+\b`)
	custIDValue    = regexp.MustCompile(`(?i)\bCUST\d+\b`)
	supIDValue     = regexp.MustCompile(`(?i)\bSUP\d+\b`)
	listingPattern = regexp.MustCompile(`(?i)\b(all|list|recent|latest|every|everything)\b`)
)

// Translate turns free text into the one structured query shape the data
// store gateway executes. The result is always bounded. A record identifier
// in the text short-circuits everything else into an exact lookup.
func Translate(s *schema.CollectionSchema, text string) (*store.StructuredQuery, error) {
	if tok, ok := IdentifierToken(text); ok {
		return store.ByIdentifier(tok), nil
	}

	filter := extractFilter(s, text)
	if len(filter) > 0 {
		return &store.StructuredQuery{
			Filter: filter,
			Sort:   &store.Sort{Field: "created_at", Desc: true},
			Limit:  store.DefaultQueryLimit,
		}, nil
	}

	// No usable predicate. An explicit listing request still translates;
	// anything else is ambiguous.
	if listingPattern.MatchString(text) {
		return store.RecentListing(), nil
	}

	return nil, ErrAmbiguous
}

// extractFilter binds schema fields to values found in the text. Explicit
// "field: value" and "field is value" forms win; shaped values (emails,
// dates, EMP/CUST/SUP ids) bind to the field whose name matches the shape.
func extractFilter(s *schema.CollectionSchema, text string) map[string]store.Condition {
	filter := make(map[string]store.Condition)

	bind := func(field, value string) {
		value = strings.TrimSpace(value)
		if value == "" || !s.HasField(field) {
			return
		}
		if _, taken := filter[field]; taken {
			return
		}
		filter[field] = store.Condition{Op: store.OpEquals, Value: value}
	}

	for _, m := range pairPattern.FindAllStringSubmatch(text, -1) {
		bind(strings.ToLower(m[1]), m[2])
	}
	for _, m := range isPattern.FindAllStringSubmatch(text, -1) {
		bind(strings.ToLower(m[1]), m[2])
	}

	if v := emailValue.FindString(text); v != "" {
		for _, f := range s.Fields() {
			if strings.Contains(f, "email") {
				bind(f, v)
				break
			}
		}
	}
	if v := empIDValue.FindString(text); v != "" {
		bind("employee_id", strings.ToUpper(v))
	}
	if v := custIDValue.FindString(text); v != "" {
		bind("customer_id", strings.ToUpper(v))
	}
	if v := supIDValue.FindString(text); v != "" {
		bind("supplier_id", strings.ToUpper(v))
	}

	// A bare date only binds when the schema has exactly one date field;
	// guessing between start_date and end_date would silently filter wrong.
	if v := dateValue.FindString(text); v != "" {
		var dateFields []string
		for _, f := range s.Fields() {
			if f == "date" || strings.HasSuffix(f, "_date") {
				dateFields = append(dateFields, f)
			}
		}
		if len(dateFields) == 1 {
			bind(dateFields[0], v)
		}
	}

	return filter
}
