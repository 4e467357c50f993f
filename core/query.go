package core

import (
	"regexp"
	"strings"
)

// QueryPurpose names the operation a query string is evaluated for.
type QueryPurpose int

const (
	PurposeLogin QueryPurpose = iota
	PurposeSearch
	PurposeRawQuery
)

// QueryResult is the classifier's verdict on a raw input. The three flags
// are independent outputs, never mutually exclusive branches.
type QueryResult struct {
	MatchedAlwaysTrue bool `json:"matchedAlwaysTrue"`
	Destructive       bool `json:"destructive"`
	SyntaxError       bool `json:"syntaxError"`
}

// The recognized tautology shapes. The rules are enumerated here, and only
// here, so tests can target them directly. A pattern only counts when it
// appears after a quote character; capture groups on both sides of the
// equality must match for the clause to be always-true.
var tautologyPatterns = []*regexp.Regexp{
	// OR '1'='1'
	regexp.MustCompile(`(?i)\bor\b\s*'([^']*)'\s*=\s*'([^']*)'`),
	// OR 1=1
	regexp.MustCompile(`(?i)\bor\b\s*([0-9]+)\s*=\s*([0-9]+)`),
	// bare X=X clause, quoted or not
	regexp.MustCompile(`'([^']*)'\s*=\s*'([^']*)'`),
	regexp.MustCompile(`\b([0-9]+)\s*=\s*([0-9]+)\b`),
}

var destructiveKeywords = []string{"drop", "delete"}

// EvaluateQuery simulates one evaluation step of a SQL-like engine without
// parsing SQL. It is deterministic: the same input and profile always
// produce the same verdict.
//
// With SQLInjectionProtection enabled, quotes and statement separators are
// treated as literal data, so no tautology and no syntax error can ever be
// produced. With it disabled, a tautology after a quote marks the query
// always-true, and a stray quote or separator without a recognized tautology
// marks a syntax error. Destructive detection applies to RawQuery inputs
// regardless of the protection flag.
func EvaluateQuery(raw string, purpose QueryPurpose, profile *Profile) QueryResult {
	var res QueryResult

	if purpose == PurposeRawQuery {
		lower := strings.ToLower(raw)
		for _, kw := range destructiveKeywords {
			if strings.Contains(lower, kw) {
				res.Destructive = true
				break
			}
		}
	}

	if profile.SQLInjectionProtection {
		// Metacharacters degrade to literal data.
		return res
	}

	if containsTautology(raw) {
		// The injected clause parses; the condition is always true.
		res.MatchedAlwaysTrue = true
		return res
	}

	// Balanced quoting is syntactically safe; an odd quote count or a
	// statement separator is not.
	if strings.Count(raw, "'")%2 != 0 || strings.Contains(raw, ";") {
		res.SyntaxError = true
	}

	return res
}

// containsTautology reports whether an always-true clause appears after the
// first quote character in raw.
func containsTautology(raw string) bool {
	q := strings.IndexByte(raw, '\'')
	if q < 0 {
		return false
	}

	tail := raw[q:]
	for _, pattern := range tautologyPatterns {
		for _, m := range pattern.FindAllStringSubmatch(tail, -1) {
			if m[1] == m[2] {
				return true
			}
		}
	}
	return false
}
