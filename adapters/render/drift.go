package render

import (
	"tabreport/adapters/metrics"
	"tabreport/domain/report"
	"tabreport/domain/table"
)

// DriftRenderer renders the column drift metric
type DriftRenderer struct{}

func (DriftRenderer) RenderStructured(m report.Metric, res report.Result, includeRender bool) (map[string]interface{}, error) {
	r, ok := res.(*metrics.ColumnDriftResult)
	if !ok {
		return nil, wrongResult(m.ID(), res)
	}
	shift, err := asMap(r.Shift)
	if err != nil {
		return nil, err
	}
	structure := map[string]interface{}{
		"column": r.Column,
		"kind":   string(r.Representation()),
		"shift":  shift,
	}
	if !includeRender {
		return structure, nil
	}
	series, err := driftSide(m, r.Series.Current)
	if err != nil {
		return nil, err
	}
	structure["series"] = series
	return structure, nil
}

func driftSide(m report.Metric, v report.Variant[metrics.DriftSeries, metrics.DriftHistograms]) (map[string]interface{}, error) {
	if m.Options().AggData {
		hists, err := v.AggData()
		if err != nil {
			return nil, err
		}
		return asMap(hists)
	}
	raw, err := v.RawData()
	if err != nil {
		return nil, err
	}
	return asMap(raw)
}

func (DriftRenderer) RenderTable(m report.Metric, res report.Result) (*table.Table, error) {
	r, ok := res.(*metrics.ColumnDriftResult)
	if !ok {
		return nil, wrongResult(m.ID(), res)
	}
	drifted := "no"
	if r.Shift.Drifted {
		drifted = "yes"
	}
	return table.New(
		table.StringColumn("column", []string{r.Column}),
		table.NumericColumn("current_mean", []float64{r.Shift.CurrentMean}),
		table.NumericColumn("reference_mean", []float64{r.Shift.ReferenceMean}),
		table.NumericColumn("mean_shift", []float64{r.Shift.MeanShift}),
		table.StringColumn("drifted", []string{drifted}),
	)
}

func (DriftRenderer) RenderWidgets(m report.Metric, res report.Result) ([]report.Widget, error) {
	r, ok := res.(*metrics.ColumnDriftResult)
	if !ok {
		return nil, wrongResult(m.ID(), res)
	}
	shift, err := asMap(r.Shift)
	if err != nil {
		return nil, err
	}
	counter := report.Widget{
		Title:  "Drift: " + r.Column,
		Type:   report.WidgetCounter,
		Size:   1,
		Params: shift,
	}
	series, err := driftSide(m, r.Series.Current)
	if err != nil {
		return nil, err
	}
	graph := report.BigGraph("Drift: "+r.Column,
		map[string]interface{}{"type": "overlay_histogram", "data": series})
	return []report.Widget{counter, graph}, nil
}
