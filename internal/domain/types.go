package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

type Category string

const (
	CategoryDairy      Category = "dairy"
	CategoryFruits     Category = "fruits"
	CategoryVegetables Category = "vegetables"
	CategoryBakery     Category = "bakery"
	CategoryMeat       Category = "meat"
	CategoryBeverages  Category = "beverages"
	CategoryOther      Category = "other"
)

// Categories lists every known category, CategoryOther last.
var Categories = []Category{
	CategoryDairy,
	CategoryFruits,
	CategoryVegetables,
	CategoryBakery,
	CategoryMeat,
	CategoryBeverages,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
	ActionUpdate Action = "update"
)

// Item is a single line of a shopping list. Name is the canonical key
// within an owner's scope; the empty owner is the shared anonymous list.
type Item struct {
	ID       int64     `json:"id"`
	Owner    string    `json:"owner,omitempty"`
	Name     string    `json:"name"`
	Quantity string    `json:"quantity"`
	Category Category  `json:"category"`
	Brand    string    `json:"brand,omitempty"`
	Price    *float64  `json:"price,omitempty"`
	AddedAt  time.Time `json:"added_at"`
}

// QuantityInt parses the stored quantity. ok is false when the value is not
// an integer, in which case callers apply their own fallback.
func (i *Item) QuantityInt() (n int, ok bool) {
	n, err := strconv.Atoi(strings.TrimSpace(i.Quantity))
	if err != nil {
		return 0, false
	}
	return n, true
}

// MaxQuantity bounds the quantity of a single item, requested or stored.
const MaxQuantity = 1_000_000

// ParseQuantity reads a requested quantity. Whole-valued decimals such as
// "2.0" are accepted. Anything else, or a value outside 1..MaxQuantity, is
// ErrInvalidInput.
func ParseQuantity(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < 1 || f > MaxQuantity {
			return 0, fmt.Errorf("quantity %q is not a whole number between 1 and %d: %w", s, MaxQuantity, ErrInvalidInput)
		}
		n = int(f)
	}
	if n < 1 || n > MaxQuantity {
		return 0, fmt.Errorf("quantity %q is not a whole number between 1 and %d: %w", s, MaxQuantity, ErrInvalidInput)
	}
	return n, nil
}

// RoundPrice rounds a price to cents.
func RoundPrice(p float64) float64 {
	return math.Round(p*100) / 100
}

type HistoryEvent struct {
	ID        int64     `json:"id"`
	Owner     string    `json:"owner,omitempty"`
	ItemName  string    `json:"item_name"`
	Action    Action    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}
