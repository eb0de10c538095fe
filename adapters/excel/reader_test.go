package excel

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabreport/domain/table"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadTableCSVInfersKinds(t *testing.T) {
	path := writeCSV(t, "target,prediction,datetime,label\n"+
		"1.5,1.4,2026-01-01,a\n"+
		"2.5,2.6,2026-01-02,b\n")

	tbl, err := NewReader().ReadTable(path)
	require.NoError(t, err)
	require.Equal(t, 2, tbl.RowCount())

	target, ok := tbl.Column("target")
	require.True(t, ok)
	assert.Equal(t, table.KindNumeric, target.Kind)
	assert.Equal(t, []float64{1.5, 2.5}, target.Floats)

	datetime, ok := tbl.Column("datetime")
	require.True(t, ok)
	assert.Equal(t, table.KindTime, datetime.Kind)
	assert.Equal(t, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), datetime.Times[1])

	label, ok := tbl.Column("label")
	require.True(t, ok)
	assert.Equal(t, table.KindString, label.Kind)
}

func TestReadTableEmptyNumericCellsBecomeNaN(t *testing.T) {
	path := writeCSV(t, "v,label\n1,a\n,b\n3,c\n")
	tbl, err := NewReader().ReadTable(path)
	require.NoError(t, err)

	values, ok := tbl.Floats("v")
	require.True(t, ok)
	require.Len(t, values, 3)
	assert.Equal(t, 1.0, values[0])
	assert.True(t, math.IsNaN(values[1]))
	assert.Equal(t, 3.0, values[2])
}

func TestReadTableMixedColumnFallsBackToString(t *testing.T) {
	path := writeCSV(t, "v\n1\nbanana\n")
	tbl, err := NewReader().ReadTable(path)
	require.NoError(t, err)

	col, _ := tbl.Column("v")
	assert.Equal(t, table.KindString, col.Kind)
}

func TestReadTableAllEmptyColumnIsString(t *testing.T) {
	path := writeCSV(t, "a,b\n1,\n2,\n")
	tbl, err := NewReader().ReadTable(path)
	require.NoError(t, err)

	col, _ := tbl.Column("b")
	assert.Equal(t, table.KindString, col.Kind)
}

func TestReadTableRejectsUnknownExtension(t *testing.T) {
	_, err := NewReader().ReadTable("data.parquet")
	require.Error(t, err)
}

func TestReadTableHeaderOnly(t *testing.T) {
	path := writeCSV(t, "a,b\n")
	tbl, err := NewReader().ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.RowCount())
	assert.Equal(t, []string{"a", "b"}, tbl.Names())
}

func TestWriteThenReadWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	groups := map[string]*table.Table{
		"summary": table.MustNew(
			table.StringColumn("column", []string{"f1", "f2"}),
			table.NumericColumn("mean", []float64{1.5, 2.5}),
		),
	}
	require.NoError(t, NewWriter().WriteTables(path, groups))

	tbl, err := NewReader().ReadTable(path)
	require.NoError(t, err)
	require.Equal(t, 2, tbl.RowCount())
	means, ok := tbl.Floats("mean")
	require.True(t, ok)
	assert.Equal(t, []float64{1.5, 2.5}, means)
}
