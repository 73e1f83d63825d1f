package ledger

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Locale is the language customer names are collated in.
var Locale = language.Turkish

// folder applies full Unicode case folding. Casers keep internal state, so
// every caller gets its own.
type folder struct{ c cases.Caser }

func newFolder() *folder { return &folder{c: cases.Fold()} }

func (f *folder) fold(s string) string { return f.c.String(s) }

// contains reports whether needle, already folded, occurs in s.
func (f *folder) contains(s, foldedNeedle string) bool {
	return s != "" && strings.Contains(f.fold(s), foldedNeedle)
}

func sameName(a, b string) bool {
	f := newFolder()
	return f.fold(a) == f.fold(b)
}

func newCollator() *collate.Collator {
	return collate.New(Locale)
}
