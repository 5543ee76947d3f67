// Package textnorm turns free-text item names into canonical list keys.
package textnorm

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/vbonduro/shoplist/internal/lexicon"
)

// maxPasses bounds the singularization fixpoint loop. Real inputs settle
// after one or two passes.
const maxPasses = 8

// Normalizer is safe for concurrent use.
type Normalizer struct {
	lex *lexicon.Lexicon
}

// New builds a Normalizer and checks that every canonical form named by the
// lexicon survives singularization unchanged, which keeps Normalize
// idempotent.
func New(lex *lexicon.Lexicon) (*Normalizer, error) {
	n := &Normalizer{lex: lex}
	for _, target := range lex.AliasTargets() {
		if got := n.Singularize(target); got != target {
			return nil, fmt.Errorf("alias target %q singularizes to %q", target, got)
		}
	}
	for _, s := range lex.IrregularSingulars() {
		if got := n.Singularize(s); got != s {
			return nil, fmt.Errorf("irregular singular %q singularizes to %q", s, got)
		}
	}
	return n, nil
}

// Normalize returns the canonical key for raw: cleaned, singularized and
// mapped through the alias table. Unknown names pass through.
func (n *Normalizer) Normalize(raw string) string {
	s := n.Singularize(raw)
	if target, ok := n.lex.Alias(s); ok {
		return target
	}
	return s
}

// Singularize cleans raw and singularizes its last word without resolving
// aliases.
func (n *Normalizer) Singularize(raw string) string {
	s := Clean(raw)
	if s == "" {
		return s
	}
	for i := 0; i < maxPasses; i++ {
		next := n.singularizeOnce(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

// Pluralize returns the plural of the last word of a cleaned name.
func (n *Normalizer) Pluralize(raw string) string {
	s := Clean(raw)
	if s == "" {
		return s
	}
	head, last := splitLast(s)
	if n.lex.IsInvariant(last) || !isLatin(last) {
		return s
	}
	if p, ok := n.lex.IrregularPlural(last); ok {
		return head + p
	}
	return head + inflection.Plural(last)
}

func (n *Normalizer) singularizeOnce(s string) string {
	head, last := splitLast(s)
	switch {
	case n.lex.IsInvariant(last), !isLatin(last):
		return s
	}
	if singular, ok := n.lex.Irregular(last); ok {
		return head + singular
	}
	if n.lex.HasSingularSuffix(last) {
		return s
	}
	singular := inflection.Singular(last)
	if singular == "" {
		return s
	}
	return head + singular
}

func splitLast(s string) (head, last string) {
	i := strings.LastIndexByte(s, ' ')
	if i < 0 {
		return "", s
	}
	return s[:i+1], s[i+1:]
}

// Clean applies NFC, lower-cases, collapses whitespace and strips accents
// from purely Latin-script text. Other scripts keep their combining marks.
func Clean(raw string) string {
	s := norm.NFC.String(raw)
	s = cases.Lower(language.Und).String(s)
	s = strings.Join(strings.Fields(s), " ")
	if s == "" || !isLatin(s) {
		return s
	}
	folded, _, err := transform.String(foldChain(), s)
	if err != nil {
		return s
	}
	return folded
}

// foldChain is built per call since chained transformers carry state.
func foldChain() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// isLatin reports whether every letter in s is Latin script.
func isLatin(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) && !unicode.Is(unicode.Latin, r) {
			return false
		}
	}
	return true
}
