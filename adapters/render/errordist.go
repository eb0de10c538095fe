package render

import (
	"tabreport/adapters/metrics"
	"tabreport/domain/report"
	"tabreport/domain/table"
)

// ErrorDistRenderer renders the error distribution metric
type ErrorDistRenderer struct{}

func (ErrorDistRenderer) RenderStructured(m report.Metric, res report.Result, includeRender bool) (map[string]interface{}, error) {
	r, ok := res.(*metrics.ErrorDistributionResult)
	if !ok {
		return nil, wrongResult(m.ID(), res)
	}
	structure := map[string]interface{}{
		"kind":              string(r.Representation()),
		"reference_present": r.HasReference(),
	}
	if !includeRender {
		return structure, nil
	}
	current, err := errorSide(m, r.Current)
	if err != nil {
		return nil, err
	}
	structure["current"] = current
	if r.Reference != nil {
		reference, err := errorSide(m, *r.Reference)
		if err != nil {
			return nil, err
		}
		structure["reference"] = reference
	}
	return structure, nil
}

func errorSide(m report.Metric, v report.Variant[metrics.ErrorSeries, metrics.Histogram]) (map[string]interface{}, error) {
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

func (ErrorDistRenderer) RenderTable(m report.Metric, res report.Result) (*table.Table, error) {
	r, ok := res.(*metrics.ErrorDistributionResult)
	if !ok {
		return nil, wrongResult(m.ID(), res)
	}
	datasets := []string{"current"}
	counts := []float64{0}
	n, err := errorCount(m, r.Current)
	if err != nil {
		return nil, err
	}
	counts[0] = float64(n)
	if r.Reference != nil {
		n, err := errorCount(m, *r.Reference)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, "reference")
		counts = append(counts, float64(n))
	}
	return table.New(
		table.StringColumn("dataset", datasets),
		table.NumericColumn("rows", counts),
	)
}

func errorCount(m report.Metric, v report.Variant[metrics.ErrorSeries, metrics.Histogram]) (int, error) {
	if m.Options().AggData {
		hist, err := v.AggData()
		if err != nil {
			return 0, err
		}
		return hist.Total(), nil
	}
	raw, err := v.RawData()
	if err != nil {
		return 0, err
	}
	return len(raw.Errors), nil
}

func (ErrorDistRenderer) RenderWidgets(m report.Metric, res report.Result) ([]report.Widget, error) {
	r, ok := res.(*metrics.ErrorDistributionResult)
	if !ok {
		return nil, wrongResult(m.ID(), res)
	}
	current, err := errorSide(m, r.Current)
	if err != nil {
		return nil, err
	}
	graph := report.BigGraph("", map[string]interface{}{"type": "histogram", "data": current})
	if r.Reference != nil {
		reference, err := errorSide(m, *r.Reference)
		if err != nil {
			return nil, err
		}
		graph.AdditionalGraphs = []report.GraphInfo{
			referenceGraph(m.ID(), "Error Distribution (reference)",
				map[string]interface{}{"type": "histogram", "data": reference}),
		}
	}
	return []report.Widget{
		report.HeaderText("Error Distribution"),
		graph,
	}, nil
}
