package importer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Shopping List"

var exportHeader = []interface{}{"Name", "Quantity", "Category", "Brand", "Price", "Added"}

// Export writes owner's list as an XLSX workbook with a frozen header row.
func (im *Importer) Export(ctx context.Context, owner string, w io.Writer) error {
	items, err := im.list.List(ctx, owner)
	if err != nil {
		return fmt.Errorf("failed to list items: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	if err := f.SetCellStyle(exportSheet, "A1", "F1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, item := range items {
		var price interface{}
		if item.Price != nil {
			price = *item.Price
		}
		row := []interface{}{
			item.Name,
			item.Quantity,
			string(item.Category),
			item.Brand,
			price,
			item.AddedAt.UTC().Format(time.DateTime),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(exportSheet, "A", "A", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(exportSheet, "F", "F", 20); err != nil {
		return err
	}
	if err := f.SetPanes(exportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
