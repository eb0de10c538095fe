package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabreport/domain/core"
	"tabreport/domain/report"
	"tabreport/domain/table"
)

func regressionData(current, reference *table.Table) report.InputData {
	return report.InputData{
		Reference:  reference,
		Current:    current,
		Definition: table.CreateDataDefinition(reference, current, table.ColumnMapping{}),
	}
}

func TestPredictedVsActualRaw(t *testing.T) {
	current := table.MustNew(
		table.NumericColumn("target", []float64{1, 2, 3}),
		table.NumericColumn("prediction", []float64{1.1, 2.5, 2.9}),
	)
	m := NewPredictedVsActual(report.DefaultOptions())

	res, err := m.Calculate(regressionData(current, nil))
	require.NoError(t, err)

	r := res.(*PredictedVsActualResult)
	assert.Equal(t, report.RepresentationRaw, r.Representation())
	assert.False(t, r.HasReference())

	scatter, err := r.Current.RawData()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, scatter.Actual)
	assert.Equal(t, []float64{1.1, 2.5, 2.9}, scatter.Predicted)

	_, err = r.Current.AggData()
	assert.ErrorIs(t, err, core.ErrMissingRepresentation)
}

func TestPredictedVsActualDropsIncompleteRows(t *testing.T) {
	current := table.MustNew(
		table.NumericColumn("target", []float64{1, math.NaN(), 3, math.Inf(1)}),
		table.NumericColumn("prediction", []float64{1.1, 2.2, 3.3, 4.4}),
	)
	m := NewPredictedVsActual(report.DefaultOptions())

	res, err := m.Calculate(regressionData(current, nil))
	require.NoError(t, err)
	scatter, err := res.(*PredictedVsActualResult).Current.RawData()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3}, scatter.Actual)
	assert.Equal(t, []float64{1.1, 3.3}, scatter.Predicted)
}

func TestPredictedVsActualSortsByDatetime(t *testing.T) {
	current := table.MustNew(
		table.NumericColumn("target", []float64{3, 1, 2}),
		table.NumericColumn("prediction", []float64{3.3, 1.1, 2.2}),
		table.TimeColumn("datetime", []time.Time{day(3), day(1), day(2)}),
	)
	m := NewPredictedVsActual(report.DefaultOptions())

	res, err := m.Calculate(regressionData(current, nil))
	require.NoError(t, err)
	scatter, err := res.(*PredictedVsActualResult).Current.RawData()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, scatter.Actual)
	assert.Equal(t, []float64{1.1, 2.2, 3.3}, scatter.Predicted)
}

func TestPredictedVsActualAggregated(t *testing.T) {
	current := table.MustNew(
		table.NumericColumn("target", []float64{1, 2, 3, 4}),
		table.NumericColumn("prediction", []float64{1, 2, 3, 4}),
	)
	m := &PredictedVsActual{Opts: report.Options{AggData: true}, Bins: 2}

	res, err := m.Calculate(regressionData(current, nil))
	require.NoError(t, err)

	r := res.(*PredictedVsActualResult)
	assert.Equal(t, report.RepresentationAggregated, r.Representation())
	grid, err := r.Current.AggData()
	require.NoError(t, err)
	assert.Len(t, grid.Counts, 2)

	_, err = r.Current.RawData()
	assert.ErrorIs(t, err, core.ErrMissingRepresentation)
}

func TestPredictedVsActualWithReference(t *testing.T) {
	current := table.MustNew(
		table.NumericColumn("target", []float64{1, 2}),
		table.NumericColumn("prediction", []float64{1, 2}),
	)
	reference := table.MustNew(
		table.NumericColumn("target", []float64{5, 6, 7}),
		table.NumericColumn("prediction", []float64{5, 6, 7}),
	)
	m := NewPredictedVsActual(report.DefaultOptions())

	res, err := m.Calculate(regressionData(current, reference))
	require.NoError(t, err)
	r := res.(*PredictedVsActualResult)
	require.True(t, r.HasReference())

	refScatter, err := r.Reference.RawData()
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 6, 7}, refScatter.Actual)
}

func TestPredictedVsActualMissingColumns(t *testing.T) {
	m := NewPredictedVsActual(report.DefaultOptions())

	noTarget := table.MustNew(table.NumericColumn("prediction", []float64{1}))
	_, err := m.Calculate(regressionData(noTarget, nil))
	assert.ErrorIs(t, err, core.ErrInvalidColumns)

	noPrediction := table.MustNew(table.NumericColumn("target", []float64{1}))
	_, err = m.Calculate(regressionData(noPrediction, nil))
	assert.ErrorIs(t, err, core.ErrInvalidColumns)
}

func TestPredictedVsActualRejectsMultiplePredictions(t *testing.T) {
	current := table.MustNew(
		table.NumericColumn("target", []float64{1}),
		table.NumericColumn("p1", []float64{1}),
		table.NumericColumn("p2", []float64{1}),
	)
	data := report.InputData{
		Current: current,
		Definition: table.CreateDataDefinition(nil, current, table.ColumnMapping{
			Prediction: []string{"p1", "p2"},
		}),
	}
	m := NewPredictedVsActual(report.DefaultOptions())
	_, err := m.Calculate(data)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidColumns)
	assert.Contains(t, err.Error(), "got 2")
}

func day(d int) time.Time {
	return time.Date(2026, 2, d, 0, 0, 0, 0, time.UTC)
}
