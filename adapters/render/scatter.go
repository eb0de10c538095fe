package render

import (
	"tabreport/adapters/metrics"
	"tabreport/domain/report"
	"tabreport/domain/table"
)

// ScatterRenderer renders the predicted-versus-actual metric
type ScatterRenderer struct{}

func (ScatterRenderer) RenderStructured(m report.Metric, res report.Result, includeRender bool) (map[string]interface{}, error) {
	r, ok := res.(*metrics.PredictedVsActualResult)
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
	if m.Options().AggData {
		current, err := r.Current.AggData()
		if err != nil {
			return nil, err
		}
		structure["current"], err = asMap(current)
		if err != nil {
			return nil, err
		}
		if r.Reference != nil {
			reference, err := r.Reference.AggData()
			if err != nil {
				return nil, err
			}
			structure["reference"], err = asMap(reference)
			if err != nil {
				return nil, err
			}
		}
		return structure, nil
	}
	current, err := r.Current.RawData()
	if err != nil {
		return nil, err
	}
	structure["current"], err = asMap(current)
	if err != nil {
		return nil, err
	}
	if r.Reference != nil {
		reference, err := r.Reference.RawData()
		if err != nil {
			return nil, err
		}
		structure["reference"], err = asMap(reference)
		if err != nil {
			return nil, err
		}
	}
	return structure, nil
}

func (ScatterRenderer) RenderTable(m report.Metric, res report.Result) (*table.Table, error) {
	r, ok := res.(*metrics.PredictedVsActualResult)
	if !ok {
		return nil, wrongResult(m.ID(), res)
	}
	datasets := []string{"current"}
	rows := []float64{0}
	if n, err := sideRows(m, r.Current); err != nil {
		return nil, err
	} else {
		rows[0] = float64(n)
	}
	if r.Reference != nil {
		n, err := sideRows(m, *r.Reference)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, "reference")
		rows = append(rows, float64(n))
	}
	kinds := make([]string, len(datasets))
	for i := range kinds {
		kinds[i] = string(r.Representation())
	}
	return table.New(
		table.StringColumn("dataset", datasets),
		table.NumericColumn("rows", rows),
		table.StringColumn("representation", kinds),
	)
}

func sideRows(m report.Metric, v report.Variant[metrics.PredActualScatter, metrics.Grid]) (int, error) {
	if m.Options().AggData {
		grid, err := v.AggData()
		if err != nil {
			return 0, err
		}
		total := 0
		for _, col := range grid.Counts {
			for _, c := range col {
				total += c
			}
		}
		return total, nil
	}
	raw, err := v.RawData()
	if err != nil {
		return 0, err
	}
	return len(raw.Actual), nil
}

func (ScatterRenderer) RenderWidgets(m report.Metric, res report.Result) ([]report.Widget, error) {
	r, ok := res.(*metrics.PredictedVsActualResult)
	if !ok {
		return nil, wrongResult(m.ID(), res)
	}
	figure, err := scatterFigure(m, r.Current)
	if err != nil {
		return nil, err
	}
	graph := report.BigGraph("", figure)
	if r.Reference != nil {
		refFigure, err := scatterFigure(m, *r.Reference)
		if err != nil {
			return nil, err
		}
		graph.AdditionalGraphs = []report.GraphInfo{
			referenceGraph(m.ID(), "Predicted vs Actual (reference)", refFigure),
		}
	}
	return []report.Widget{
		report.HeaderText("Predicted vs Actual"),
		graph,
	}, nil
}

func scatterFigure(m report.Metric, v report.Variant[metrics.PredActualScatter, metrics.Grid]) (map[string]interface{}, error) {
	if m.Options().AggData {
		grid, err := v.AggData()
		if err != nil {
			return nil, err
		}
		data, err := asMap(grid)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"type": "heatmap", "data": data}, nil
	}
	raw, err := v.RawData()
	if err != nil {
		return nil, err
	}
	data, err := asMap(raw)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"type": "scatter", "data": data}, nil
}
