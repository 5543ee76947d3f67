package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/shoplist/internal/lexicon"
)

func newNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	lex, err := lexicon.Default()
	require.NoError(t, err)
	n, err := New(lex)
	require.NoError(t, err)
	return n
}

func TestNormalize(t *testing.T) {
	n := newNormalizer(t)

	tests := []struct {
		in   string
		want string
	}{
		{"Apples", "apple"},
		{"  Green   Apples ", "green apple"},
		{"tomatoes", "tomato"},
		{"Mangoes", "mango"},
		{"cherries", "cherry"},
		{"peaches", "peach"},
		{"glasses", "glass"},
		{"eggs", "egg"},
		{"rice", "rice"},
		{"leaves", "leaf"},
		{"olives", "olive"},
		{"pies", "pie"},
		{"hummus", "hummus"},
		{"pasta", "pasta"},
		{"cheddar cheese", "cheddar cheese"},
		{"Jalapeños", "jalapeno"},
		{"Crème Brûlée", "creme brulee"},
		{"Aubergines", "eggplant"},
		{"आम", "mango"},
		{"दूध", "milk"},
		{"doodh", "milk"},
		{"xyzzy", "xyzzy"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, n.Normalize(tt.in), tt.in)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	n := newNormalizer(t)

	inputs := []string{
		"Apples", "TOMATOES", "potatoes", "mangos", "berries", "loaves",
		"leaves", "knives", "halves", "boxes", "dishes", "buses", "gas",
		"oasis", "octopi", "mice", "people", "children", "men", "ramen",
		"news", "series", "analyses", "axes", "quizzes", "matrices",
		"databases", "moves", "cookies", "brownies", "veggies", "status",
		"asparagus", "couscous", "molasses", "feta", "ricotta", "pita",
		"aubergine", "aubergines", "courgettes", "kela", "सेब", "टमाटर",
		"केले", "Crème fraîche", "piñatas", "naïve", "Brussels Sprouts",
		"almond milk", "oat  milks", "whole wheat bread", "gluten-free breads",
		"2 apples", "x", "s", "ss", "ies", "ves", "es",
	}
	for _, in := range inputs {
		once := n.Normalize(in)
		assert.Equal(t, once, n.Normalize(once), in)
	}
}

func TestSingularizeSkipsAliases(t *testing.T) {
	n := newNormalizer(t)

	assert.Equal(t, "aubergine", n.Singularize("Aubergines"))
	assert.Equal(t, "आम", n.Singularize("आम"))
	assert.Equal(t, "mango", n.Singularize("mangoes"))
}

func TestPluralize(t *testing.T) {
	n := newNormalizer(t)

	tests := []struct {
		in   string
		want string
	}{
		{"apple", "apples"},
		{"tomato", "tomatoes"},
		{"cherry", "cherries"},
		{"box", "boxes"},
		{"leaf", "leaves"},
		{"green apple", "green apples"},
		{"hummus", "hummus"},
		{"दूध", "दूध"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, n.Pluralize(tt.in), tt.in)
	}
}

func TestClean(t *testing.T) {
	assert.Equal(t, "hello world", Clean("  Hello \t World  "))
	assert.Equal(t, "cafe", Clean("Café"))
	// Devanagari vowel signs are combining marks and must survive.
	assert.Equal(t, "केला", Clean(" केला "))
}

func TestNewRejectsUnstableAliasTarget(t *testing.T) {
	lex, err := lexicon.Parse("bad.hcl", []byte(`
category "fruits" { keywords = ["apple"] }
aliases = { "seb" = "apples" }
`))
	require.NoError(t, err)

	_, err = New(lex)
	assert.Error(t, err)
}
