package keyword

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/shoplist/internal/lexicon"
	"github.com/vbonduro/shoplist/internal/nlp"
)

func defaultLexicon(t *testing.T) *lexicon.Lexicon {
	t.Helper()
	lex, err := lexicon.Default()
	require.NoError(t, err)
	return lex
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"सेब", "हटाओ"}, Tokens("  सेब   हटाओ। "))
	assert.Equal(t, []string{"add", "3", "apples"}, Tokens("Add 3 apples!"))
	assert.Equal(t, []string{"2", "सेब"}, Tokens("२ सेब"))
}

func TestGlossaryTranslate(t *testing.T) {
	g := NewGlossary(defaultLexicon(t))
	ctx := context.Background()

	tests := []struct {
		name string
		text string
		lang string
		want string
	}{
		{name: "verb moves to the front", text: "सेब हटाओ", lang: "hi", want: "remove apple"},
		{name: "number word", text: "दो केला जोड़ो", lang: "hi", want: "add 2 banana"},
		{name: "devanagari digits", text: "३ अंडा डालो", lang: "hi-IN", want: "add 3 egg"},
		{name: "multi word verb", text: "दूध दे दो", lang: "hi", want: "add milk"},
		{name: "search verb", text: "टमाटर खोजो", lang: "hi", want: "search tomato"},
		{name: "auto detect", text: "प्याज निकालो", lang: "auto", want: "remove onion"},
		{name: "no verb", text: "शहद", lang: "hi", want: "honey"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.Translate(ctx, tt.text, tt.lang)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGlossaryTranslateMisses(t *testing.T) {
	g := NewGlossary(defaultLexicon(t))
	ctx := context.Background()

	_, err := g.Translate(ctx, "आलू हटाओ", "hi")
	assert.Error(t, err, "unknown item")

	_, err = g.Translate(ctx, "सेब", "fr")
	assert.Error(t, err, "no phrasebook")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = g.Translate(cancelled, "सेब", "hi")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractor(t *testing.T) {
	e := NewExtractor(defaultLexicon(t))
	ctx := context.Background()

	intent, err := e.Extract(ctx, "मक्खन हटाओ")
	require.NoError(t, err)
	assert.Equal(t, nlp.Intent{Kind: nlp.KindRemove, Name: "butter", Quantity: "1"}, intent)

	intent, err = e.Extract(ctx, "add 4 केला")
	require.NoError(t, err)
	assert.Equal(t, nlp.Intent{Kind: nlp.KindAdd, Name: "banana", Quantity: "4"}, intent)

	intent, err = e.Extract(ctx, "something else entirely")
	require.NoError(t, err)
	assert.False(t, intent.Actionable())
	assert.Equal(t, nlp.KindUnknown, intent.Kind)
}

func TestParserKeepsUnmappedName(t *testing.T) {
	p := NewParser(defaultLexicon(t))

	assert.Equal(t, nlp.Intent{Kind: nlp.KindRemove, Name: "आलू", Quantity: "1"}, p.Parse("आलू हटाओ", "hi"))
	assert.Equal(t, nlp.Intent{Kind: nlp.KindAdd, Name: "apple", Quantity: "2"}, p.Parse("दो सेब जोड़ो।", "hi"))
	assert.Equal(t, nlp.KindUnknown, p.Parse("सेब", "hi").Kind)
	assert.Equal(t, nlp.Unknown, p.Parse("सेब हटाओ", "fr"))
}
