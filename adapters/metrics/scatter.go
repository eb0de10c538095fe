package metrics

import (
	"fmt"

	"tabreport/domain/core"
	"tabreport/domain/report"
	"tabreport/domain/table"
)

// PredictedVsActualID is the stable type tag for the scatter metric
const PredictedVsActualID = "regression_predicted_vs_actual"

// PredActualScatter is the raw representation: paired per-row values,
// filtered of non-finite rows and deterministically ordered.
type PredActualScatter struct {
	Actual    []float64 `json:"actual"`
	Predicted []float64 `json:"predicted"`
}

// PredictedVsActualResult carries the scatter per dataset side: raw paired
// arrays or a 2-D binned grid, never both.
type PredictedVsActualResult struct {
	report.Pair[PredActualScatter, Grid]
}

// PredictedVsActual computes the predicted-versus-actual scatter for a
// regression setup. Needs a target column and exactly one prediction
// column.
type PredictedVsActual struct {
	Opts report.Options `json:"options"`
	Bins int            `json:"bins,omitempty"`
}

// NewPredictedVsActual creates the metric with the given options
func NewPredictedVsActual(opts report.Options) *PredictedVsActual {
	return &PredictedVsActual{Opts: opts}
}

func (m *PredictedVsActual) ID() string              { return PredictedVsActualID }
func (m *PredictedVsActual) Options() report.Options { return m.Opts }

// Calculate builds the scatter from the input bundle. The representation is
// decided here, once, from the metric's AggData option.
func (m *PredictedVsActual) Calculate(data report.InputData) (report.Result, error) {
	target, prediction, err := regressionColumns(m.ID(), data.Definition)
	if err != nil {
		return nil, err
	}

	if !m.Opts.AggData {
		current, err := m.rawScatter(data.Current, data.Definition.Datetime, target, prediction)
		if err != nil {
			return nil, err
		}
		var reference *PredActualScatter
		if data.HasReference() {
			reference, err = m.rawScatter(data.Reference, data.Definition.Datetime, target, prediction)
			if err != nil {
				return nil, err
			}
		}
		return &PredictedVsActualResult{Pair: report.RawPair[PredActualScatter, Grid](*current, reference)}, nil
	}

	current := m.aggScatter(data.Current, target, prediction)
	var reference *Grid
	if data.HasReference() {
		g := m.aggScatter(data.Reference, target, prediction)
		reference = &g
	}
	return &PredictedVsActualResult{Pair: report.AggPair[PredActualScatter, Grid](current, reference)}, nil
}

func (m *PredictedVsActual) rawScatter(t *table.Table, datetime, target, prediction string) (*PredActualScatter, error) {
	plot := table.OrderForPlot(t, datetime, target, prediction)
	actual, _ := plot.Floats(target)
	predicted, _ := plot.Floats(prediction)
	return &PredActualScatter{Actual: actual, Predicted: predicted}, nil
}

func (m *PredictedVsActual) aggScatter(t *table.Table, target, prediction string) Grid {
	filtered := table.FilterFinite(t, target, prediction)
	actual, _ := filtered.Floats(target)
	predicted, _ := filtered.Floats(prediction)
	return BinPairs(actual, predicted, m.Bins)
}

// regressionColumns resolves the target and single prediction column for
// regression metrics, or fails with an actionable column error.
func regressionColumns(metricID string, def table.DataDefinition) (string, string, error) {
	if def.Target == "" {
		return "", "", core.NewMissingColumnError(metricID, "target")
	}
	if len(def.Prediction) == 0 {
		return "", "", core.NewMissingColumnError(metricID, "prediction")
	}
	if len(def.Prediction) > 1 {
		return "", "", core.NewInvalidColumnsError(metricID,
			fmt.Sprintf("expect one prediction column, got %d", len(def.Prediction)))
	}
	return def.Target, def.Prediction[0], nil
}
