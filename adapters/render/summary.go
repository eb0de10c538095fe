package render

import (
	"tabreport/adapters/metrics"
	"tabreport/domain/report"
	"tabreport/domain/table"
)

// SummaryRenderer renders the per-column summary metric
type SummaryRenderer struct{}

func (SummaryRenderer) RenderStructured(m report.Metric, res report.Result, includeRender bool) (map[string]interface{}, error) {
	r, ok := res.(*metrics.ColumnSummaryResult)
	if !ok {
		return nil, wrongResult(m.ID(), res)
	}
	structure := map[string]interface{}{
		"column": r.Column,
		"kind":   string(r.Representation()),
	}
	current, err := asMap(r.Current)
	if err != nil {
		return nil, err
	}
	structure["current"] = current
	if r.Reference != nil {
		reference, err := asMap(r.Reference)
		if err != nil {
			return nil, err
		}
		structure["reference"] = reference
	}
	if !includeRender {
		return structure, nil
	}
	series, err := summarySide(m, r.Series.Current)
	if err != nil {
		return nil, err
	}
	structure["current_series"] = series
	if r.Series.Reference != nil {
		refSeries, err := summarySide(m, *r.Series.Reference)
		if err != nil {
			return nil, err
		}
		structure["reference_series"] = refSeries
	}
	return structure, nil
}

func summarySide(m report.Metric, v report.Variant[metrics.ValueSeries, metrics.Histogram]) (map[string]interface{}, error) {
	if m.Options().AggData {
		hist, err := v.AggData()
		if err != nil {
			return nil, err
		}
		return asMap(hist)
	}
	raw, err := v.RawData()
	if err != nil {
		return nil, err
	}
	return asMap(raw)
}

func (SummaryRenderer) RenderTable(m report.Metric, res report.Result) (*table.Table, error) {
	r, ok := res.(*metrics.ColumnSummaryResult)
	if !ok {
		return nil, wrongResult(m.ID(), res)
	}
	columns := []string{r.Column}
	datasets := []string{"current"}
	rows := []metrics.SummaryStats{r.Current}
	if r.Reference != nil {
		columns = append(columns, r.Column)
		datasets = append(datasets, "reference")
		rows = append(rows, *r.Reference)
	}
	counts := make([]float64, len(rows))
	means := make([]float64, len(rows))
	stds := make([]float64, len(rows))
	medians := make([]float64, len(rows))
	outliers := make([]float64, len(rows))
	for i, s := range rows {
		counts[i] = float64(s.Count)
		means[i] = s.Mean
		stds[i] = s.StdDev
		medians[i] = s.Median
		outliers[i] = float64(s.Outliers)
	}
	return table.New(
		table.StringColumn("column", columns),
		table.StringColumn("dataset", datasets),
		table.NumericColumn("count", counts),
		table.NumericColumn("mean", means),
		table.NumericColumn("std_dev", stds),
		table.NumericColumn("median", medians),
		table.NumericColumn("outliers", outliers),
	)
}

func (SummaryRenderer) RenderWidgets(m report.Metric, res report.Result) ([]report.Widget, error) {
	r, ok := res.(*metrics.ColumnSummaryResult)
	if !ok {
		return nil, wrongResult(m.ID(), res)
	}
	stats, err := asMap(r.Current)
	if err != nil {
		return nil, err
	}
	counter := report.Widget{
		Title:  "Summary: " + r.Column,
		Type:   report.WidgetCounter,
		Size:   1,
		Params: stats,
	}
	series, err := summarySide(m, r.Series.Current)
	if err != nil {
		return nil, err
	}
	graph := report.BigGraph("Distribution: "+r.Column,
		map[string]interface{}{"type": "histogram", "data": series})
	if r.Series.Reference != nil {
		refSeries, err := summarySide(m, *r.Series.Reference)
		if err != nil {
			return nil, err
		}
		graph.AdditionalGraphs = []report.GraphInfo{
			referenceGraph(m.ID(), "Distribution: "+r.Column+" (reference)",
				map[string]interface{}{"type": "histogram", "data": refSeries}),
		}
	}
	return []report.Widget{counter, graph}, nil
}
