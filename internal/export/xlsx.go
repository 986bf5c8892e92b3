package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"tally/internal/core"
)

// SheetName is the single sheet Workbook writes to.
const SheetName = "Transactions"

var xlsxColumns = []string{"ID", "Name", "Amount", "Type", "Date", "Category"}

// Workbook renders the entries as a single-sheet XLSX workbook with a
// bold header row, one row per entry in input order. The caller owns
// the file and is responsible for closing it.
func Workbook(entries []core.Entry) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", SheetName)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, col := range xlsxColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, col); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(xlsxColumns), 1)
	if err := f.SetCellStyle(SheetName, "A1", endHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, e := range entries {
		row := i + 2
		values := []any{e.ID, e.Name, e.Amount.String(), string(e.Type), e.Date, e.Category}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return nil, fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 16); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(SheetName, "B", "F", 20); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}
	return f, nil
}
