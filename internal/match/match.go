// Package match binds a normalized query to one of a user's existing item
// names.
package match

import (
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/antzucaro/matchr"
)

// FuzzyCutoff is the lowest similarity the fuzzy step accepts.
const FuzzyCutoff = 0.7

// inflector supplies the plural and singular variants tried before fuzzy
// matching. *textnorm.Normalizer satisfies it.
type inflector interface {
	Singularize(raw string) string
	Pluralize(raw string) string
}

type Matcher struct {
	inflect inflector
}

func New(inflect inflector) *Matcher {
	return &Matcher{inflect: inflect}
}

// Scored is a candidate with its similarity to a query.
type Scored struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Resolve returns the candidate query should bind to. Strategies run in
// order and the first hit wins: exact, plural/singular variant, fuzzy, then
// substring. Candidates are deduplicated and sorted so ties break the same
// way on every call.
func (m *Matcher) Resolve(query string, candidates []string) (string, bool) {
	if query == "" {
		return "", false
	}
	names := prepare(candidates)
	if len(names) == 0 {
		return "", false
	}

	for _, step := range []func(string, []string) (string, bool){
		exact,
		m.variant,
		fuzzy,
		substring,
	} {
		if name, ok := step(query, names); ok {
			return name, true
		}
	}
	return "", false
}

// Rank scores every candidate against query, best first, and keeps at most
// limit entries. Candidates with no similarity are dropped.
func (m *Matcher) Rank(query string, candidates []string, limit int) []Scored {
	names := prepare(candidates)
	scored := make([]Scored, 0, len(names))
	for _, name := range names {
		if s := Similarity(query, name); s > 0 {
			scored = append(scored, Scored{Name: name, Score: s})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// Similarity is 1 - DamerauLevenshtein(a, b) / max(len(a), len(b)), measured
// in runes. Two empty strings are identical.
func Similarity(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(matchr.DamerauLevenshtein(a, b))/float64(longest)
}

func prepare(candidates []string) []string {
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c != "" {
			names = append(names, c)
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}

func exact(query string, names []string) (string, bool) {
	if _, ok := slices.BinarySearch(names, query); ok {
		return query, true
	}
	return "", false
}

func (m *Matcher) variant(query string, names []string) (string, bool) {
	for _, v := range []string{query, m.inflect.Pluralize(query), m.inflect.Singularize(query)} {
		if name, ok := exact(v, names); ok {
			return name, true
		}
	}
	return "", false
}

func fuzzy(query string, names []string) (string, bool) {
	best, bestScore := "", 0.0
	for _, name := range names {
		if s := Similarity(query, name); s > bestScore {
			best, bestScore = name, s
		}
	}
	if bestScore >= FuzzyCutoff {
		return best, true
	}
	return "", false
}

func substring(query string, names []string) (string, bool) {
	for _, name := range names {
		if strings.Contains(name, query) || strings.Contains(query, name) {
			return name, true
		}
	}
	return "", false
}
