package query

import "regexp"

// Record identifiers are 24 hex characters, the shape the document store
// assigns on insert.
var identifierPattern = regexp.MustCompile(`\b[0-9a-fA-F]{24}\b`)

// IdentifierToken returns the first record identifier embedded in the text,
// if any. Its presence always wins over free-text interpretation.
func IdentifierToken(text string) (string, bool) {
	tok := identifierPattern.FindString(text)
	return tok, tok != ""
}
