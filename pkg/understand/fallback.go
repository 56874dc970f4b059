package understand

import (
	"regexp"
	"sort"
	"strings"

	"ai-recorddesk-be/pkg/query"
	"ai-recorddesk-be/pkg/schema"
	"ai-recorddesk-be/pkg/store"
)

// Deterministic extraction patterns. These never change with model output,
// so the assistant stays usable when the provider is down.
var (
	emailExtractPattern  = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)
	phoneExtractPattern  = regexp.MustCompile(`\+?\(?[0-9]{3}\)?[-\s.]?[0-9]{3}[-\s.]?[0-9]{4,6}`)
	nameExtractPattern   = regexp.MustCompile(`(?i)(?:name is|i am|call me)\s+([A-Z][a-z]+)(?:\s+([A-Z][a-z]+))?`)
	empIDPattern         = regexp.MustCompile(`(?i)\bEMP\d+\b`)
	custIDPattern        = regexp.MustCompile(`(?i)\bCUST\d+\b`)
	supIDPattern         = regexp.MustCompile(`(?i)\bSUP\d+\b`)
	amountExtractPattern = regexp.MustCompile(`\$[\d,]+(?:\.\d{2})?`)
	dateExtractPattern   = regexp.MustCompile(`\b(\d{1,2}[-/]\d{1,2}[-/]\d{4}|\d{4}[-/]\d{1,2}[-/]\d{1,2})\b`)
	pairExtractPattern   = regexp.MustCompile(`([A-Za-z][A-Za-z_]+)\s*[:=]\s*([^,;\n]+)`)
)

var createVerbs = map[string]bool{
	"create": true, "add": true, "new": true, "register": true, "submit": true,
	"file": true, "raise": true, "book": true, "schedule": true, "record": true,
	"request": true, "apply": true, "onboard": true, "log": true, "report": true,
}

var readVerbs = map[string]bool{
	"show": true, "find": true, "get": true, "list": true, "search": true,
	"look": true, "fetch": true, "view": true, "check": true, "track": true,
	"query": true, "display": true, "status": true, "what": true, "who": true,
	"which": true, "where": true, "when": true, "how": true,
}

// aliases map domain words that do not appear in any collection name onto
// the collection they usually mean.
var aliases = map[string]string{
	"vacation":      "employee_leave_request",
	"leave":         "employee_leave_request",
	"ticket":        "customer_support_ticket",
	"complaint":     "grievance_management",
	"grievance":     "grievance_management",
	"invoice":       "invoice_management",
	"po":            "purchase_order",
	"payroll":       "payroll_management",
	"salary":        "payroll_management",
	"expense":       "expense_reimbursement",
	"reimbursement": "expense_reimbursement",
	"faq":           "faq_management",
	"announcement":  "announcements_notice_board",
	"notice":        "announcements_notice_board",
	"supplier":      "supplier_registration",
	"vendor":        "vendor_management",
	"candidate":     "recruitment_portal",
	"interview":     "interview_scheduling",
	"meeting":       "meeting_scheduler",
	"attendance":    "attendance_tracking",
	"shift":         "shift_scheduling",
	"backup":        "data_backup_and_restore",
	"campaign":      "marketing_campaign_management",
	"feedback":      "customer_feedback_management",
	"incident":      "health_and_safety_incident_reporting",
	"travel":        "travel_request",
	"trip":          "travel_request",
	"track":         "order_tracking",
	"payslip":       "payroll_management",
}

// words too generic to indicate a collection on their own
var genericNameParts = map[string]bool{
	"and": true, "of": true, "the": true, "kt": true,
}

// FallbackClassify is the deterministic classifier used when no provider is
// configured or the provider fails. It scores collections by name-word and
// alias overlap with the utterance and derives the operation from verbs.
func FallbackClassify(registry *schema.Registry, utterance string) *IntentResult {
	result := &IntentResult{Source: "fallback", Reasoning: "keyword classification"}

	ordered := tokenizeOrdered(utterance)
	tokens := make(map[string]bool, len(ordered))
	for _, t := range ordered {
		tokens[t] = true
	}

	// A record identifier in the text is always a lookup. Otherwise the
	// first verb in word order decides, defaulting to a read.
	result.Operation = store.OperationRead
	if _, ok := query.IdentifierToken(utterance); !ok {
		for _, t := range ordered {
			if createVerbs[t] {
				result.Operation = store.OperationCreate
				break
			}
			if readVerbs[t] {
				break
			}
		}
	}

	scored := scoreCollections(registry, tokens)
	switch {
	case len(scored) == 0 || scored[0].score == 0:
		result.Ambiguous = true
		result.Confidence = 0
	case len(scored) > 1 && scored[1].score == scored[0].score:
		// A tie is an ambiguity, not a coin flip.
		result.Ambiguous = true
		result.Confidence = 0.4
		for _, sc := range scored {
			if sc.score == scored[0].score {
				result.Candidates = append(result.Candidates, sc.name)
			}
		}
	default:
		result.Collection = scored[0].name
		result.Confidence = 0.7
	}

	if result.Ambiguous && len(result.Candidates) == 0 {
		for i, sc := range scored {
			if i == 3 || sc.score == 0 {
				break
			}
			result.Candidates = append(result.Candidates, sc.name)
		}
	}
	return result
}

// FallbackExtract is the deterministic field extractor. It applies the
// universal patterns, then explicit "field: value" pairs, keeping only
// fields the collection declares.
func FallbackExtract(s *schema.CollectionSchema, utterance string) map[string]string {
	fields := make(map[string]string)

	assign := func(field, value string) {
		value = strings.TrimSpace(value)
		if value != "" && s.HasField(field) {
			fields[field] = value
		}
	}

	if m := emailExtractPattern.FindString(utterance); m != "" {
		for _, f := range s.Fields() {
			if strings.Contains(f, "email") {
				assign(f, m)
				break
			}
		}
	}

	if m := nameExtractPattern.FindStringSubmatch(utterance); m != nil {
		assign("first_name", m[1])
		if m[2] != "" {
			assign("last_name", m[2])
		}
	}

	if m := empIDPattern.FindString(utterance); m != "" {
		assign("employee_id", strings.ToUpper(m))
	}
	if m := custIDPattern.FindString(utterance); m != "" {
		assign("customer_id", strings.ToUpper(m))
	}
	if m := supIDPattern.FindString(utterance); m != "" {
		assign("supplier_id", strings.ToUpper(m))
	}

	if m := amountExtractPattern.FindString(utterance); m != "" {
		for _, f := range s.Fields() {
			if f == "amount" || f == "price" || f == "salary" || f == "budget" {
				assign(f, m)
				break
			}
		}
	}

	if m := dateExtractPattern.FindString(utterance); m != "" {
		for _, f := range s.Fields() {
			if f == "date" || strings.HasSuffix(f, "_date") {
				assign(f, m)
				break
			}
		}
	}

	// Phone after explicit pairs would double-match amounts and dates, so
	// run it against the raw text and only bind to phone-like fields.
	if m := phoneExtractPattern.FindString(utterance); m != "" {
		for _, f := range s.Fields() {
			if f == "mobile" || strings.Contains(f, "phone") {
				assign(f, m)
				break
			}
		}
	}

	// Explicit "field: value" pairs win over pattern guesses. Keys are
	// normalized; values keep the user's casing.
	for _, m := range pairExtractPattern.FindAllStringSubmatch(utterance, -1) {
		assign(strings.ToLower(m[1]), m[2])
	}

	return fields
}

type scoredCollection struct {
	name  string
	score int
}

func scoreCollections(registry *schema.Registry, tokens map[string]bool) []scoredCollection {
	var scored []scoredCollection
	for _, name := range registry.Names() {
		score := 0
		for _, part := range strings.Split(name, "_") {
			if genericNameParts[part] {
				continue
			}
			switch {
			case tokens[part] || tokens[strings.TrimSuffix(part, "s")] || tokens[part+"s"]:
				score += 2
			case stemMatch(part, tokens):
				// Inflections share a long prefix with the name part, so
				// "register" still credits "registration". Worth less than
				// an exact hit.
				score++
			}
		}
		for tok := range tokens {
			if aliases[tok] == name {
				score += 3
			}
		}
		if score > 0 {
			scored = append(scored, scoredCollection{name: name, score: score})
		}
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].name < scored[j].name
	})
	return scored
}

// minStemLen is the shortest shared prefix that counts as a stem match.
// Shorter prefixes collide too often ("track" and "training" share "tra").
const minStemLen = 6

func stemMatch(part string, tokens map[string]bool) bool {
	if len(part) < minStemLen {
		return false
	}
	for tok := range tokens {
		if commonPrefixLen(part, tok) >= minStemLen {
			return true
		}
	}
	return false
}

func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// candidateCollections names the top keyword matches for an utterance the
// model could not classify confidently.
func candidateCollections(registry *schema.Registry, utterance string) []string {
	scored := scoreCollections(registry, tokenize(utterance))
	var out []string
	for i, sc := range scored {
		if i == 3 {
			break
		}
		out = append(out, sc.name)
	}
	return out
}

func tokenize(text string) map[string]bool {
	tokens := make(map[string]bool)
	for _, t := range tokenizeOrdered(text) {
		tokens[t] = true
	}
	return tokens
}

func tokenizeOrdered(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return ' '
		}
	}, text)
	return strings.Fields(cleaned)
}
