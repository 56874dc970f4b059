package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError carries a corrective hint the conversation layer can show
// verbatim when re-prompting for the field.
type ValidationError struct {
	Field string
	Hint  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s", e.Field, e.Hint)
}

// FieldRule validates one field value. Rules are inferred from the field
// name, so every collection in the catalog gets consistent validation
// without per-collection tables.
type FieldRule struct {
	Name    string
	Hint    string
	Pattern *regexp.Regexp
}

// Validate checks the value, returning a *ValidationError on mismatch.
func (r FieldRule) Validate(field, value string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return &ValidationError{Field: field, Hint: "a value is required"}
	}
	if r.Pattern != nil && !r.Pattern.MatchString(v) {
		return &ValidationError{Field: field, Hint: r.Hint}
	}
	return nil
}

var (
	emailPattern  = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	phonePattern  = regexp.MustCompile(`^\+?[0-9()\-\s.]{7,20}$`)
	datePattern   = regexp.MustCompile(`^(\d{4}[-/]\d{1,2}[-/]\d{1,2}|\d{1,2}[-/]\d{1,2}[-/]\d{4})$`)
	amountPattern = regexp.MustCompile(`^\$?[\d,]+(\.\d{1,2})?$`)
	ratingPattern = regexp.MustCompile(`^[1-5](\.\d)?$`)

	ruleEmail  = FieldRule{Name: "email", Hint: "expected an email address like name@company.com", Pattern: emailPattern}
	rulePhone  = FieldRule{Name: "phone", Hint: "expected a phone number with 7-20 digits", Pattern: phonePattern}
	ruleDate   = FieldRule{Name: "date", Hint: "expected a date like 2025-06-01 or 01/06/2025", Pattern: datePattern}
	ruleAmount = FieldRule{Name: "amount", Hint: "expected a numeric amount like 1500 or 1,500.00", Pattern: amountPattern}
	ruleRating = FieldRule{Name: "rating", Hint: "expected a rating between 1 and 5", Pattern: ratingPattern}
	ruleText   = FieldRule{Name: "text", Hint: "a value is required"}
)

// RuleFor infers the validation rule for a field from its name.
func RuleFor(field string) FieldRule {
	f := strings.ToLower(field)
	switch {
	case strings.Contains(f, "email"):
		return ruleEmail
	case f == "mobile" || strings.Contains(f, "phone"):
		return rulePhone
	case f == "date" || strings.HasSuffix(f, "_date") || strings.HasSuffix(f, "_day") || f == "last_working_day":
		return ruleDate
	case f == "amount" || f == "price" || f == "salary" || f == "budget" || f == "quantity" || f == "capacity":
		return ruleAmount
	case f == "rating" || strings.HasSuffix(f, "_rating"):
		return ruleRating
	default:
		return ruleText
	}
}
