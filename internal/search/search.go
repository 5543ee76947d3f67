// Package search resolves a search term and filters a list snapshot.
package search

import (
	"fmt"
	"strings"

	"github.com/vbonduro/shoplist/internal/domain"
	"github.com/vbonduro/shoplist/internal/lexicon"
	"github.com/vbonduro/shoplist/internal/textnorm"
)

type singularizer interface {
	Singularize(raw string) string
}

// Criteria narrows a search. Nil price bounds are open.
type Criteria struct {
	Term     string
	Brand    string
	MinPrice *float64
	MaxPrice *float64
}

type Resolver struct {
	lex   *lexicon.Lexicon
	names singularizer
}

func New(lex *lexicon.Lexicon, names singularizer) *Resolver {
	return &Resolver{lex: lex, names: names}
}

// ResolveTerm turns a raw query into the term matched against names and
// categories. The synonym table is consulted for both the cleaned query and
// its singular form.
func (r *Resolver) ResolveTerm(query string) (string, error) {
	raw := textnorm.Clean(query)
	if raw == "" {
		return "", fmt.Errorf("empty search term: %w", domain.ErrInvalidQuery)
	}
	if syn, ok := r.lex.SearchSynonym(raw); ok {
		return syn, nil
	}
	singular := r.names.Singularize(raw)
	if syn, ok := r.lex.SearchSynonym(singular); ok {
		return syn, nil
	}
	if singular == "" {
		return "", fmt.Errorf("empty search term: %w", domain.ErrInvalidQuery)
	}
	return singular, nil
}

// Filter keeps items matching c, preserving input order. When a price bound
// is set, items without a price are dropped.
func Filter(items []*domain.Item, c Criteria) []*domain.Item {
	term := strings.ToLower(c.Term)
	brand := strings.ToLower(strings.TrimSpace(c.Brand))

	out := []*domain.Item{}
	for _, it := range items {
		if term != "" &&
			!strings.Contains(strings.ToLower(it.Name), term) &&
			!strings.Contains(string(it.Category), term) {
			continue
		}
		if brand != "" && !strings.Contains(strings.ToLower(it.Brand), brand) {
			continue
		}
		if c.MinPrice != nil || c.MaxPrice != nil {
			if it.Price == nil {
				continue
			}
			if c.MinPrice != nil && *it.Price < *c.MinPrice {
				continue
			}
			if c.MaxPrice != nil && *it.Price > *c.MaxPrice {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}
