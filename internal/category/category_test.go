package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/shoplist/internal/domain"
	"github.com/vbonduro/shoplist/internal/lexicon"
)

func TestInfer(t *testing.T) {
	lex, err := lexicon.Default()
	require.NoError(t, err)
	c := New(lex)

	tests := []struct {
		name  string
		brand string
		want  domain.Category
	}{
		{"cheddar cheese", "", domain.CategoryDairy},
		{"xyzzy", "", domain.CategoryOther},
		{"Almond MILK", "", domain.CategoryDairy},
		{"banana", "", domain.CategoryFruits},
		{"strawberry", "", domain.CategoryFruits},
		{"carrot", "", domain.CategoryVegetables},
		{"croissant", "", domain.CategoryBakery},
		{"egg", "", domain.CategoryMeat},
		{"eggplant", "", domain.CategoryMeat},
		{"green tea", "", domain.CategoryBeverages},
		{"bar", "Cadbury Milk", domain.CategoryDairy},
		{"sparkling", "Coca Cola", domain.CategoryBeverages},
		{"buttermilk", "", domain.CategoryDairy},
		{"", "", domain.CategoryOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Infer(tt.name, tt.brand), "%s/%s", tt.name, tt.brand)
	}
}

func TestInferRespectsTableOrder(t *testing.T) {
	lex, err := lexicon.Parse("order.hcl", []byte(`
category "beverages" { keywords = ["milk"] }
category "dairy" { keywords = ["milk"] }
`))
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryBeverages, New(lex).Infer("milk", ""))
}

func TestParse(t *testing.T) {
	assert.Equal(t, domain.CategoryDairy, Parse("Dairy"))
	assert.Equal(t, domain.CategoryBeverages, Parse(" beverages "))
	assert.Equal(t, domain.CategoryOther, Parse("snacks"))
	assert.Equal(t, domain.CategoryOther, Parse(""))
}
