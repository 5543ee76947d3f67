// Package importer bulk-loads shopping lists from spreadsheets and exports
// the current list as an XLSX workbook.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/vbonduro/shoplist/internal/category"
	"github.com/vbonduro/shoplist/internal/domain"
	"github.com/vbonduro/shoplist/internal/service"
)

// listService is the subset of service.ListService that Importer requires.
type listService interface {
	Add(ctx context.Context, in service.AddInput) (*domain.Item, error)
	List(ctx context.Context, owner string) ([]*domain.Item, error)
}

type column int

const (
	colName column = iota
	colQuantity
	colCategory
	colBrand
	colPrice
	numColumns
)

// headerNames maps accepted header cells to columns.
var headerNames = map[string]column{
	"name":     colName,
	"item":     colName,
	"product":  colName,
	"quantity": colQuantity,
	"qty":      colQuantity,
	"count":    colQuantity,
	"category": colCategory,
	"brand":    colBrand,
	"price":    colPrice,
	"cost":     colPrice,
}

type Importer struct {
	list   listService
	logger *slog.Logger
}

func New(list listService, logger *slog.Logger) *Importer {
	return &Importer{list: list, logger: logger}
}

type Summary struct {
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Problems []RowError `json:"problems,omitempty"`
}

// RowError explains why a row was skipped. Row is 1-based as in the sheet.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Import adds every data row of the file to owner's list. Rows with bad
// values are skipped and reported; a storage failure aborts the import.
func (im *Importer) Import(ctx context.Context, owner string, r io.Reader, filename string) (*Summary, error) {
	rows, err := ReadRows(r, filename)
	if err != nil {
		return nil, err
	}

	layout, start := detectLayout(rows)
	sum := &Summary{}
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}

		in, reason := layout.input(owner, row)
		if reason == "" {
			_, err = im.list.Add(ctx, in)
			if errors.Is(err, domain.ErrInvalidInput) {
				reason = err.Error()
			} else if err != nil {
				return sum, fmt.Errorf("failed to import row %d: %w", i+1, err)
			}
		}
		if reason != "" {
			sum.Skipped++
			sum.Problems = append(sum.Problems, RowError{Row: i + 1, Reason: reason})
			continue
		}
		sum.Imported++
	}

	im.logger.Info("list imported", "owner", owner, "file", filename, "imported", sum.Imported, "skipped", sum.Skipped)
	return sum, nil
}

// layout holds the cell index for each column, -1 when absent.
type layout [numColumns]int

// detectLayout reads the header from the first non-blank row. Without a
// recognisable name header the sheet is taken as headerless in the order
// name, quantity, category, brand, price.
func detectLayout(rows [][]string) (layout, int) {
	first := 0
	for first < len(rows) && blank(rows[first]) {
		first++
	}
	if first == len(rows) {
		return layout{}, first
	}

	var l layout
	for i := range l {
		l[i] = -1
	}
	for i, cell := range rows[first] {
		if col, ok := headerNames[strings.ToLower(strings.TrimSpace(cell))]; ok && l[col] == -1 {
			l[col] = i
		}
	}
	if l[colName] != -1 {
		return l, first + 1
	}
	return layout{0, 1, 2, 3, 4}, first
}

func (l layout) cell(row []string, col column) string {
	i := l[col]
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func (l layout) input(owner string, row []string) (service.AddInput, string) {
	in := service.AddInput{
		Owner:    owner,
		Name:     l.cell(row, colName),
		Quantity: 1,
		Brand:    l.cell(row, colBrand),
	}
	if in.Name == "" {
		return in, "missing name"
	}

	if q := l.cell(row, colQuantity); q != "" {
		// Spreadsheet numbers sometimes arrive as "2.0".
		n, err := domain.ParseQuantity(q)
		if err != nil {
			return in, fmt.Sprintf("quantity %q is not a whole number between 1 and %d", q, domain.MaxQuantity)
		}
		in.Quantity = n
	}

	if c := l.cell(row, colCategory); c != "" {
		in.Category = category.Parse(c)
	}

	if p := l.cell(row, colPrice); p != "" {
		price, err := parsePrice(p)
		if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
			return in, fmt.Sprintf("price %q is not a number", p)
		}
		in.Price = &price
	}
	return in, ""
}

func parsePrice(s string) (float64, error) {
	s = strings.NewReplacer("$", "", "€", "", "£", "", "₹", "", ",", "").Replace(s)
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
