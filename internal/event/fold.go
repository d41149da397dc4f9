package event

import "golang.org/x/text/cases"

// foldEqual compares two strings under Unicode case folding. Subject
// matching is case-insensitive everywhere in the engine, and simple
// ASCII lowering would miss non-ASCII subjects.
func foldEqual(a, b string) bool {
	c := cases.Fold()
	return c.String(a) == c.String(b)
}
