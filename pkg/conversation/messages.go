package conversation

import (
	"fmt"
	"sort"
	"strings"

	"ai-recorddesk-be/pkg/store"
)

// User-facing message templates. The state machine never emits raw errors;
// everything the user sees is built here.

const (
	msgGreeting       = "What would you like to do? I can create records or look them up for you."
	msgStartOver      = "Let's start over. Tell me what you would like to do."
	msgGaveUp         = "I still could not work out what you need. Let's start fresh whenever you are ready."
	msgCancelled      = "Okay, I have discarded that. What would you like to do next?"
	msgUnavailable    = "The record store is temporarily unavailable. Please try again in a moment."
	msgRephraseQuery  = "I could not turn that into a precise search. Could you rephrase it, for example with a field and value?"
	msgConfirmOrEdit  = "Please reply yes to save, no to cancel, or send a corrected value."
	msgNothingMatched = "No records matched."
)

func clarifyMessage(candidates []string) string {
	if len(candidates) == 0 {
		return "I did not catch what kind of record that is about. Could you name it, for example a leave request or a purchase order?"
	}
	return fmt.Sprintf("Did you mean one of these: %s?", strings.Join(candidates, ", "))
}

func deniedMessage(reason string) string {
	return fmt.Sprintf("I cannot do that: %s.", reason)
}

func askFieldMessage(collection, field string) string {
	return fmt.Sprintf("To file this %s I still need the %s. What is it?",
		humanize(collection), humanize(field))
}

func invalidFieldMessage(field, hint string) string {
	return fmt.Sprintf("That does not look right for %s: %s. Please try again.", humanize(field), hint)
}

func confirmMessage(collection string, fields map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here is the %s I am about to save:\n", humanize(collection))

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s: %s\n", humanize(k), fields[k])
	}
	b.WriteString("Shall I save it? (yes/no)")
	return b.String()
}

func savedMessage(collection, id string) string {
	return fmt.Sprintf("Done. Your %s is saved with id %s.", humanize(collection), id)
}

func resultsMessage(collection string, docs []store.Document) string {
	if len(docs) == 0 {
		return msgNothingMatched
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d %s record(s):\n", len(docs), humanize(collection))
	for i, d := range docs {
		fmt.Fprintf(&b, "%d. [%s]", i+1, d.ID)
		keys := make([]string, 0, len(d.Fields))
		for k := range d.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%s", k, d.Fields[k])
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func fallbackListingMessage(collection string) string {
	return fmt.Sprintf("I could not pin down the search, so here are the most recent %s records instead.", humanize(collection))
}

func humanize(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}
