// Package display renders shopping list results for the terminal.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vbonduro/shoplist/internal/command"
	"github.com/vbonduro/shoplist/internal/domain"
	"github.com/vbonduro/shoplist/internal/importer"
	"github.com/vbonduro/shoplist/internal/nlp"
	"github.com/vbonduro/shoplist/internal/service"
	"github.com/vbonduro/shoplist/internal/suggest"
)

// Styles for terminal output.
var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	qtyStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	priceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// PrintJSON writes v as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintItems renders a whole list.
func PrintItems(w io.Writer, title string, items []*domain.Item) {
	fmt.Fprintf(w, "\n%s — %s\n\n",
		headerStyle.Render(title),
		dimStyle.Render(countLabel(len(items), "item")),
	)
	if len(items) == 0 {
		fmt.Fprintf(w, "  %s\n\n", dimStyle.Render("Nothing here yet."))
		return
	}
	for _, it := range items {
		printItem(w, it)
	}
	fmt.Fprintln(w)
}

// PrintAdded confirms an add.
func PrintAdded(w io.Writer, it *domain.Item) {
	fmt.Fprintf(w, "Added %s, now %s\n", titleStyle.Render(it.Name), qtyStyle.Render(it.Quantity))
}

// PrintRemoved confirms a removal, including a partial one.
func PrintRemoved(w io.Writer, res *service.RemoveResult) {
	if res.Action == domain.ActionUpdate && res.Item != nil {
		fmt.Fprintf(w, "Removed some %s, %s left\n", titleStyle.Render(res.ItemName), qtyStyle.Render(res.Item.Quantity))
		return
	}
	fmt.Fprintf(w, "Removed %s\n", titleStyle.Render(res.ItemName))
}

// PrintNotFound reports a failed removal with its hints.
func PrintNotFound(w io.Writer, nf *service.NotFoundError) {
	fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("%q is not on the list", nf.Name)))
	if len(nf.DidYouMean) > 0 {
		fmt.Fprintf(w, "  did you mean: %s\n", strings.Join(nf.DidYouMean, ", "))
	}
}

// PrintSuggestions renders every non-empty group of the bundle.
func PrintSuggestions(w io.Writer, b suggest.Bundle) {
	fmt.Fprintf(w, "\n%s\n\n", headerStyle.Render("Suggestions"))
	groups := []struct {
		label string
		names []string
	}{
		{"Frequently bought", b.Frequent},
		{"Running low", b.Shortages},
		{"In season", b.Seasonal},
		{"Try instead", b.Substitutes},
	}
	printed := false
	for _, g := range groups {
		if len(g.names) == 0 {
			continue
		}
		printed = true
		fmt.Fprintf(w, "  %s\n", titleStyle.Render(g.label))
		for _, n := range g.names {
			fmt.Fprintf(w, "    - %s\n", n)
		}
	}
	if !printed {
		fmt.Fprintf(w, "  %s\n", dimStyle.Render("No suggestions yet."))
	}
	fmt.Fprintln(w)
}

// PrintCommand renders the outcome of a free-text command.
func PrintCommand(w io.Writer, res *command.Result) {
	fmt.Fprintf(w, "%s\n", dimStyle.Render(fmt.Sprintf("understood: %s %s x%s", res.Intent.Kind, res.Intent.Name, res.Intent.Quantity)))
	switch res.Intent.Kind {
	case nlp.KindAdd:
		if res.Item != nil {
			PrintAdded(w, res.Item)
		}
	case nlp.KindRemove:
		if res.Removed != nil {
			PrintRemoved(w, res.Removed)
		}
	case nlp.KindSearch:
		PrintItems(w, fmt.Sprintf("Results for %q", res.Intent.Name), res.Items)
	}
}

// PrintImport summarises a spreadsheet import.
func PrintImport(w io.Writer, sum *importer.Summary) {
	fmt.Fprintf(w, "Imported %s, skipped %s\n",
		qtyStyle.Render(strconv.Itoa(sum.Imported)),
		qtyStyle.Render(strconv.Itoa(sum.Skipped)),
	)
	for _, p := range sum.Problems {
		fmt.Fprintf(w, "  %s\n", warningStyle.Render(fmt.Sprintf("row %d: %s", p.Row, p.Reason)))
	}
}

// PrintError prints a styled error message.
func PrintError(w io.Writer, msg string) {
	fmt.Fprintln(w, errorStyle.Render(msg))
}

func printItem(w io.Writer, it *domain.Item) {
	line := fmt.Sprintf("  %s %s", qtyStyle.Render(it.Quantity+"x"), titleStyle.Render(it.Name))
	if it.Brand != "" {
		line += " " + dimStyle.Render("("+it.Brand+")")
	}
	fmt.Fprintln(w, line)

	meta := []string{categoryStyle.Render(string(it.Category))}
	if it.Price != nil {
		meta = append(meta, priceStyle.Render(fmt.Sprintf("$%.2f", *it.Price)))
	}
	fmt.Fprintf(w, "      %s\n", strings.Join(meta, " | "))
}

func countLabel(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
