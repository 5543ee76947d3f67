package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEnglish(t *testing.T) {
	tests := []struct {
		text string
		want Intent
	}{
		{"add 2 apples", Intent{Kind: KindAdd, Name: "apples", Quantity: "2"}},
		{"Add milk", Intent{Kind: KindAdd, Name: "milk", Quantity: "1"}},
		{"adding 3 eggs", Intent{Kind: KindAdd, Name: "eggs", Quantity: "3"}},
		{"i want to add 3 eggs", Intent{Kind: KindAdd, Name: "eggs", Quantity: "3"}},
		{"please remove bread", Intent{Kind: KindRemove, Name: "bread", Quantity: "1"}},
		{"remove 4 bananas", Intent{Kind: KindRemove, Name: "bananas", Quantity: "4"}},
		{"find organic milk", Intent{Kind: KindSearch, Name: "organic milk", Quantity: "1"}},
		{"search for apples", Intent{Kind: KindSearch, Name: "apples", Quantity: "1"}},
		{"show me the bread", Intent{Kind: KindSearch, Name: "the bread", Quantity: "1"}},
		{"can you show yogurt", Intent{Kind: KindSearch, Name: "yogurt", Quantity: "1"}},
		{"5 oranges", Intent{Kind: KindAdd, Name: "oranges", Quantity: "5"}},
		{"tomatoes", Intent{Kind: KindAdd, Name: "tomatoes", Quantity: "1"}},
		{"7", Intent{Kind: KindUnknown, Quantity: "7"}},
		{"", Intent{Kind: KindUnknown, Quantity: "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseEnglish(tt.text))
		})
	}
}
