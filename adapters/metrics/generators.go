package metrics

import (
	"tabreport/domain/report"
	"tabreport/domain/table"
)

// ColumnSummaryGenerator expands into one ColumnSummary per column. With no
// columns listed it covers every resolved numeric feature. Generators need
// column-role information only; they never touch the data.
type ColumnSummaryGenerator struct {
	Columns []string       `json:"columns,omitempty"`
	Opts    report.Options `json:"options"`
}

// Generate produces the per-column metrics in column order
func (g ColumnSummaryGenerator) Generate(columns table.ColumnsInfo) ([]report.Metric, error) {
	names := g.Columns
	if len(names) == 0 {
		names = columns.Numerical
	}
	generated := make([]report.Metric, 0, len(names))
	for _, name := range names {
		generated = append(generated, NewColumnSummary(name, g.Opts))
	}
	return generated, nil
}

// ColumnDriftGenerator expands into one ColumnDrift per column. With no
// columns listed it covers every resolved numeric feature.
type ColumnDriftGenerator struct {
	Columns []string       `json:"columns,omitempty"`
	Opts    report.Options `json:"options"`
}

// Generate produces the per-column drift metrics in column order
func (g ColumnDriftGenerator) Generate(columns table.ColumnsInfo) ([]report.Metric, error) {
	names := g.Columns
	if len(names) == 0 {
		names = columns.Numerical
	}
	generated := make([]report.Metric, 0, len(names))
	for _, name := range names {
		generated = append(generated, NewColumnDrift(name, g.Opts))
	}
	return generated, nil
}
