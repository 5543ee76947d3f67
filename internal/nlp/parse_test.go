package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntentLine(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Intent
	}{
		{
			name: "full line",
			raw:  "add | Apples | 2",
			want: Intent{Kind: KindAdd, Name: "apples", Quantity: "2"},
		},
		{
			name: "preamble skipped",
			raw:  "Sure, here it is:\nremove | milk | 1",
			want: Intent{Kind: KindRemove, Name: "milk", Quantity: "1"},
		},
		{
			name: "missing quantity",
			raw:  "search | bread",
			want: Intent{Kind: KindSearch, Name: "bread", Quantity: "1"},
		},
		{
			name: "backticks",
			raw:  "`add | eggs | 12`",
			want: Intent{Kind: KindAdd, Name: "eggs", Quantity: "12"},
		},
		{
			name: "unknown item",
			raw:  "unknown | unknown | 1",
			want: Intent{Kind: KindUnknown, Name: "", Quantity: "1"},
		},
		{
			name: "odd verb",
			raw:  "buy | rice | 1",
			want: Intent{Kind: KindUnknown, Name: "rice", Quantity: "1"},
		},
		{
			name: "no separator",
			raw:  "I could not understand that.",
			want: Unknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIntentLine(tt.raw))
		})
	}
}

func TestCleanTranslation(t *testing.T) {
	assert.Equal(t, "add two apples", CleanTranslation(`"add two apples"`))
	assert.Equal(t, "remove milk", CleanTranslation("Translation: remove milk\n(literal)"))
	assert.Equal(t, "find bread", CleanTranslation("  English: find bread  "))
}

func TestParseKindAndActionable(t *testing.T) {
	assert.Equal(t, KindRemove, ParseKind(" Remove "))
	assert.Equal(t, KindUnknown, ParseKind("delete"))

	assert.True(t, Intent{Kind: KindAdd, Name: "milk"}.Actionable())
	assert.False(t, Intent{Kind: KindAdd, Name: "  "}.Actionable())
	assert.False(t, Intent{Kind: KindUnknown, Name: "milk"}.Actionable())
}

func TestPrimaryLang(t *testing.T) {
	assert.Equal(t, "hi", PrimaryLang("hi-IN"))
	assert.Equal(t, "hi", PrimaryLang("HI_in"))
	assert.Equal(t, "en", PrimaryLang(""))
	assert.Equal(t, "auto", PrimaryLang("auto"))
}
