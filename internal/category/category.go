// Package category infers an item's aisle from keyword tables.
package category

import (
	"strings"

	"github.com/vbonduro/shoplist/internal/domain"
	"github.com/vbonduro/shoplist/internal/lexicon"
)

type Categorizer struct {
	rules []lexicon.CategoryRule
}

func New(lex *lexicon.Lexicon) *Categorizer {
	return &Categorizer{rules: lex.Categories()}
}

// Infer returns the first category, in table order, with a keyword contained
// in name or brand. Earlier rows win on overlap.
func (c *Categorizer) Infer(name, brand string) domain.Category {
	name = strings.ToLower(name)
	brand = strings.ToLower(brand)
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(name, kw) || (brand != "" && strings.Contains(brand, kw)) {
				return rule.Category
			}
		}
	}
	return domain.CategoryOther
}

// Parse maps a user-supplied category label to a known category. Empty or
// unknown labels become CategoryOther.
func Parse(s string) domain.Category {
	c := domain.Category(strings.ToLower(strings.TrimSpace(s)))
	if c.Valid() {
		return c
	}
	return domain.CategoryOther
}
