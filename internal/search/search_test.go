package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/shoplist/internal/domain"
	"github.com/vbonduro/shoplist/internal/lexicon"
	"github.com/vbonduro/shoplist/internal/textnorm"
)

func newResolver(t *testing.T) *Resolver {
	t.Helper()
	lex, err := lexicon.Default()
	require.NoError(t, err)
	n, err := textnorm.New(lex)
	require.NoError(t, err)
	return New(lex, n)
}

func price(v float64) *float64 { return &v }

func TestResolveTerm(t *testing.T) {
	r := newResolver(t)

	tests := []struct {
		query string
		want  string
	}{
		{"mangoes", "mango"},
		{"Mangos", "mango"},
		{"  Apples ", "apple"},
		{"curd", "yogurt"},
		{"aubergines", "eggplant"},
		{"आम", "mango"},
		{"dairy", "dairy"},
	}
	for _, tt := range tests {
		got, err := r.ResolveTerm(tt.query)
		require.NoError(t, err, tt.query)
		assert.Equal(t, tt.want, got, tt.query)
	}
}

func TestResolveTermEmpty(t *testing.T) {
	r := newResolver(t)

	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := r.ResolveTerm(q)
		assert.ErrorIs(t, err, domain.ErrInvalidQuery, "%q", q)
	}
}

func TestFilter(t *testing.T) {
	items := []*domain.Item{
		{Name: "mango", Category: domain.CategoryFruits, Brand: "Alphonso", Price: price(3.5)},
		{Name: "milk", Category: domain.CategoryDairy, Brand: "Amul", Price: price(1.25)},
		{Name: "cheddar cheese", Category: domain.CategoryDairy, Brand: "Tillamook"},
		{Name: "apple", Category: domain.CategoryFruits, Price: price(0.99)},
	}

	names := func(in []*domain.Item) []string {
		out := make([]string, 0, len(in))
		for _, it := range in {
			out = append(out, it.Name)
		}
		return out
	}

	assert.Equal(t, []string{"mango"}, names(Filter(items, Criteria{Term: "mango"})))
	assert.Equal(t, []string{"milk", "cheddar cheese"}, names(Filter(items, Criteria{Term: "dairy"})))
	assert.Equal(t, []string{"milk"}, names(Filter(items, Criteria{Term: "dairy", Brand: "amul"})))
	assert.Equal(t, []string{"mango", "milk", "apple"}, names(Filter(items, Criteria{MinPrice: price(0.5)})))
	assert.Equal(t, []string{"milk", "apple"}, names(Filter(items, Criteria{MaxPrice: price(1.25)})))
	assert.Equal(t, []string{"milk"}, names(Filter(items, Criteria{MinPrice: price(1.25), MaxPrice: price(1.25)})))
	assert.Equal(t, []string{"mango", "milk", "cheddar cheese", "apple"}, names(Filter(items, Criteria{})))
	assert.Empty(t, Filter(items, Criteria{Term: "bread"}))
	assert.NotNil(t, Filter(nil, Criteria{Term: "bread"}))
}
