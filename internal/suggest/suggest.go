// Package suggest ranks shopping suggestions from a user's add history.
package suggest

import (
	"cmp"
	"slices"

	"github.com/vbonduro/shoplist/internal/domain"
	"github.com/vbonduro/shoplist/internal/lexicon"
)

// MaxFrequent caps the frequent list.
const MaxFrequent = 5

type singularizer interface {
	Singularize(raw string) string
}

// Snapshot is the state a suggestion run reads. Adds holds the owner's add
// events in any order; Items is the owner's current list.
type Snapshot struct {
	Adds  []domain.HistoryEvent
	Items []*domain.Item
}

type Bundle struct {
	Frequent    []string `json:"frequent"`
	Seasonal    []string `json:"seasonal"`
	Substitutes []string `json:"substitutes"`
	Shortages   []string `json:"shortages"`
}

type Engine struct {
	lex   *lexicon.Lexicon
	names singularizer
}

func New(lex *lexicon.Lexicon, names singularizer) *Engine {
	return &Engine{lex: lex, names: names}
}

type tally struct {
	name  string
	count int
}

// Suggest does no I/O; callers load the snapshot.
func (e *Engine) Suggest(snap Snapshot) Bundle {
	adds := slices.Clone(snap.Adds)
	slices.SortStableFunc(adds, func(a, b domain.HistoryEvent) int {
		if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	counts := make(map[string]*tally)
	var order []*tally
	for _, ev := range adds {
		name := e.names.Singularize(ev.ItemName)
		if name == "" {
			continue
		}
		t, ok := counts[name]
		if !ok {
			t = &tally{name: name}
			counts[name] = t
			order = append(order, t)
		}
		t.count++
	}

	return Bundle{
		Frequent:    frequent(order),
		Seasonal:    e.lex.Seasonal(),
		Substitutes: e.substitutes(adds),
		Shortages:   e.shortages(order, snap.Items),
	}
}

func frequent(order []*tally) []string {
	ranked := slices.Clone(order)
	slices.SortStableFunc(ranked, func(a, b *tally) int {
		return cmp.Compare(b.count, a.count)
	})
	out := make([]string, 0, MaxFrequent)
	for _, t := range ranked {
		if len(out) == MaxFrequent {
			break
		}
		out = append(out, t.name)
	}
	return out
}

// shortages reports heavily used names that are gone or at zero. Items whose
// quantity is not a number are skipped rather than guessed at.
func (e *Engine) shortages(order []*tally, items []*domain.Item) []string {
	byName := make(map[string]*domain.Item, len(items))
	for _, it := range items {
		byName[it.Name] = it
	}

	out := []string{}
	for _, t := range order {
		if t.count < e.lex.ShortageThreshold() {
			continue
		}
		it, ok := byName[t.name]
		if !ok {
			out = append(out, t.name)
			continue
		}
		if n, ok := it.QuantityInt(); ok && n == 0 {
			out = append(out, t.name)
		}
	}
	return out
}

func (e *Engine) substitutes(sortedAdds []domain.HistoryEvent) []string {
	if len(sortedAdds) == 0 {
		return []string{}
	}
	latest := sortedAdds[len(sortedAdds)-1]
	subs := e.lex.Substitutes(e.names.Singularize(latest.ItemName))
	if subs == nil {
		return []string{}
	}
	return subs
}
