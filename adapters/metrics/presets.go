package metrics

import (
	"tabreport/domain/report"
	"tabreport/domain/table"
)

// RegressionPreset bundles the regression performance metrics: the scatter,
// the error distribution, and per-column summaries of the target and
// prediction columns (via a nested generator).
type RegressionPreset struct {
	Opts report.Options `json:"options"`
}

// GenerateMetrics expands the preset. Produced generators are expanded in
// place by the report, preserving this order.
func (p RegressionPreset) GenerateMetrics(data report.InputData, columns table.ColumnsInfo) ([]report.MetricSpec, error) {
	var summaryColumns []string
	if columns.Utility.Target != "" {
		summaryColumns = append(summaryColumns, columns.Utility.Target)
	}
	if prediction, ok := columns.SinglePrediction(); ok {
		summaryColumns = append(summaryColumns, prediction)
	}
	return []report.MetricSpec{
		NewPredictedVsActual(p.Opts),
		NewErrorDistribution(p.Opts),
		ColumnSummaryGenerator{Columns: summaryColumns, Opts: p.Opts},
	}, nil
}

// DataQualityPreset bundles per-column summaries for every numeric feature
// and, when a reference baseline is supplied, a drift check per feature.
type DataQualityPreset struct {
	Opts report.Options `json:"options"`
}

// GenerateMetrics expands the preset, consulting the data bundle to decide
// whether drift metrics apply.
func (p DataQualityPreset) GenerateMetrics(data report.InputData, columns table.ColumnsInfo) ([]report.MetricSpec, error) {
	specs := []report.MetricSpec{
		ColumnSummaryGenerator{Opts: p.Opts},
	}
	if data.HasReference() {
		specs = append(specs, ColumnDriftGenerator{Opts: p.Opts})
	}
	return specs, nil
}
