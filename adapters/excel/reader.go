package excel

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"tabreport/domain/table"
)

// timeLayouts are tried in order when sniffing a datetime column.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// Reader loads tabular datasets from xlsx or csv files. The first row is
// the header, every following row is data. Column kinds are inferred from
// the cell values.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

func (r *Reader) ReadTable(path string) (*table.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return r.readExcel(path)
	case ".csv":
		return r.readCSV(path)
	default:
		return nil, fmt.Errorf("unsupported dataset format: %s", filepath.Ext(path))
	}
}

func (r *Reader) readExcel(path string) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets in %s", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return fromRows(rows)
}

func (r *Reader) readCSV(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv file %s: %w", path, err)
	}
	return fromRows(rows)
}

func fromRows(rows [][]string) (*table.Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}
	header := rows[0]
	if len(header) == 0 {
		return nil, fmt.Errorf("dataset has no columns")
	}

	cells := make([][]string, len(header))
	for c := range header {
		cells[c] = make([]string, len(rows)-1)
		for i, row := range rows[1:] {
			if c < len(row) {
				cells[c][i] = strings.TrimSpace(row[c])
			}
		}
	}

	columns := make([]table.Column, len(header))
	for c, name := range header {
		columns[c] = inferColumn(strings.TrimSpace(name), cells[c])
	}
	return table.New(columns...)
}

// inferColumn picks the narrowest kind the values fit: numeric, then
// time, then string. Empty cells stay missing in every kind.
func inferColumn(name string, values []string) table.Column {
	if floats, ok := tryNumeric(values); ok {
		return table.NumericColumn(name, floats)
	}
	if times, ok := tryTime(values); ok {
		return table.TimeColumn(name, times)
	}
	return table.StringColumn(name, values)
}

func tryNumeric(values []string) ([]float64, bool) {
	floats := make([]float64, len(values))
	seen := false
	for i, v := range values {
		if v == "" {
			floats[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, false
		}
		floats[i] = f
		seen = true
	}
	return floats, seen
}

func tryTime(values []string) ([]time.Time, bool) {
	times := make([]time.Time, len(values))
	seen := false
	for i, v := range values {
		if v == "" {
			continue
		}
		parsed, ok := parseTime(v)
		if !ok {
			return nil, false
		}
		times[i] = parsed
		seen = true
	}
	return times, seen
}

func parseTime(v string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
