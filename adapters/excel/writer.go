package excel

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"tabreport/domain/table"
)

// Writer exports tabular report views to an xlsx workbook, one sheet
// per view group.
type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

// WriteTables writes every group to its own sheet, sorted by group name
// so the workbook layout is deterministic.
func (w *Writer) WriteTables(path string, groups map[string]*table.Table) error {
	if len(groups) == 0 {
		return fmt.Errorf("no tables to write")
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range names {
		sheet := sheetName(name)
		if i == 0 {
			f.SetSheetName(f.GetSheetName(0), sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
			}
		}
		if err := writeSheet(f, sheet, groups[name]); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, t *table.Table) error {
	for c, col := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col.Name); err != nil {
			return err
		}
	}
	for r := 0; r < t.RowCount(); r++ {
		for c, col := range t.Columns {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, cellValue(col, r)); err != nil {
				return err
			}
		}
	}
	return nil
}

func cellValue(col table.Column, row int) interface{} {
	switch col.Kind {
	case table.KindNumeric:
		v := col.Floats[row]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ""
		}
		return v
	case table.KindTime:
		t := col.Times[row]
		if t.IsZero() {
			return ""
		}
		return t.Format(time.RFC3339)
	default:
		return col.Strings[row]
	}
}

// sheetName trims a group name to the xlsx 31 character sheet limit
func sheetName(name string) string {
	if name == "" {
		return "report"
	}
	if len(name) > 31 {
		return name[:31]
	}
	return name
}
