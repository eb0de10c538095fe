package metrics

import (
	"math"

	"tabreport/domain/report"
	"tabreport/domain/table"
)

// ErrorDistributionID is the stable type tag for the error metric
const ErrorDistributionID = "regression_error_distribution"

// ErrorFeatureName is the derived column holding per-row prediction error
const ErrorFeatureName = "error"

// ErrorSeries is the raw representation: the ordered per-row errors
type ErrorSeries struct {
	Errors []float64 `json:"errors"`
}

// ErrorDistributionResult carries the error series per dataset side
type ErrorDistributionResult struct {
	report.Pair[ErrorSeries, Histogram]
}

// ErrorDistribution computes the distribution of prediction errors
// (prediction minus target). The error column itself is a derived feature
// computed once by the suite before execution.
type ErrorDistribution struct {
	Opts report.Options `json:"options"`
	Bins int            `json:"bins,omitempty"`
}

// NewErrorDistribution creates the metric with the given options
func NewErrorDistribution(opts report.Options) *ErrorDistribution {
	return &ErrorDistribution{Opts: opts}
}

func (m *ErrorDistribution) ID() string              { return ErrorDistributionID }
func (m *ErrorDistribution) Options() report.Options { return m.Opts }

// RequiredFeatures declares the derived error column
func (m *ErrorDistribution) RequiredFeatures(def table.DataDefinition) []report.GeneratedFeature {
	return []report.GeneratedFeature{errorFeature{}}
}

func (m *ErrorDistribution) Calculate(data report.InputData) (report.Result, error) {
	if _, _, err := regressionColumns(m.ID(), data.Definition); err != nil {
		return nil, err
	}

	current, err := m.errorsFor(data.Current, data.CurrentExtra, data.Definition.Datetime)
	if err != nil {
		return nil, err
	}
	var reference []float64
	if data.HasReference() {
		reference, err = m.errorsFor(data.Reference, data.ReferenceExtra, data.Definition.Datetime)
		if err != nil {
			return nil, err
		}
	}

	if !m.Opts.AggData {
		res := &ErrorDistributionResult{}
		if data.HasReference() {
			res.Pair = report.RawPair[ErrorSeries, Histogram](ErrorSeries{Errors: current}, &ErrorSeries{Errors: reference})
		} else {
			res.Pair = report.RawPair[ErrorSeries, Histogram](ErrorSeries{Errors: current}, nil)
		}
		return res, nil
	}

	res := &ErrorDistributionResult{}
	if data.HasReference() {
		h := BinValues(reference, m.Bins)
		res.Pair = report.AggPair[ErrorSeries, Histogram](BinValues(current, m.Bins), &h)
	} else {
		res.Pair = report.AggPair[ErrorSeries, Histogram](BinValues(current, m.Bins), nil)
	}
	return res, nil
}

// errorsFor assembles the filtered, deterministically ordered error series
// for one dataset side from its base and extra tables.
func (m *ErrorDistribution) errorsFor(base, extra *table.Table, datetime string) ([]float64, error) {
	errCol, ok := extra.Column(ErrorFeatureName)
	if !ok {
		return nil, errMissingFeature(m.ID(), ErrorFeatureName)
	}
	columns := []table.Column{errCol}
	if datetime != "" {
		if dtCol, ok := base.Column(datetime); ok {
			columns = append(columns, dtCol)
		}
	}
	combined, err := table.New(columns...)
	if err != nil {
		return nil, err
	}
	plot := table.OrderForPlot(combined, datetime, ErrorFeatureName)
	values, _ := plot.Floats(ErrorFeatureName)
	return values, nil
}

// errorFeature computes prediction minus target per row. Rows where either
// side is non-finite produce NaN and are dropped later by the raw-path
// filter.
type errorFeature struct{}

func (errorFeature) FeatureName() string { return ErrorFeatureName }

func (errorFeature) Compute(t *table.Table, def table.DataDefinition) (table.Column, error) {
	if def.Target == "" || len(def.Prediction) != 1 {
		return table.Column{}, errMissingFeature(ErrorDistributionID, "target/prediction for error feature")
	}
	target, ok := t.Floats(def.Target)
	if !ok {
		return table.Column{}, errMissingFeature(ErrorDistributionID, def.Target)
	}
	prediction, ok := t.Floats(def.Prediction[0])
	if !ok {
		return table.Column{}, errMissingFeature(ErrorDistributionID, def.Prediction[0])
	}
	values := make([]float64, len(target))
	for i := range target {
		if math.IsNaN(target[i]) || math.IsInf(target[i], 0) ||
			math.IsNaN(prediction[i]) || math.IsInf(prediction[i], 0) {
			values[i] = math.NaN()
			continue
		}
		values[i] = prediction[i] - target[i]
	}
	return table.NumericColumn(ErrorFeatureName, values), nil
}
