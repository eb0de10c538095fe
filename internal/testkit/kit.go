// Package testkit builds deterministic synthetic datasets for tests and
// demos. Everything is seeded, so fixtures are reproducible across runs.
package testkit

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"tabreport/domain/table"
)

// DatasetSpec controls the shape of a generated regression dataset
type DatasetSpec struct {
	Rows        int
	Seed        int64
	Noise       float64
	MeanShift   float64
	MissingRows int
	InfRows     int
	Features    int
}

// DefaultSpec returns a small clean dataset spec
func DefaultSpec() DatasetSpec {
	return DatasetSpec{
		Rows:     100,
		Seed:     42,
		Noise:    0.5,
		Features: 2,
	}
}

// RegressionTable generates a dataset with target, prediction, datetime
// and numeric feature columns. Prediction tracks target with gaussian
// noise. MissingRows and InfRows poke NaN and Inf values into the target
// so filtering paths get exercised.
func RegressionTable(spec DatasetSpec) *table.Table {
	rng := rand.New(rand.NewSource(spec.Seed))
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	target := make([]float64, spec.Rows)
	prediction := make([]float64, spec.Rows)
	times := make([]time.Time, spec.Rows)
	for i := 0; i < spec.Rows; i++ {
		target[i] = spec.MeanShift + 10*rng.Float64()
		prediction[i] = target[i] + rng.NormFloat64()*spec.Noise
		times[i] = start.Add(time.Duration(i) * time.Hour)
	}
	for i := 0; i < spec.MissingRows && i < spec.Rows; i++ {
		target[rng.Intn(spec.Rows)] = math.NaN()
	}
	for i := 0; i < spec.InfRows && i < spec.Rows; i++ {
		target[rng.Intn(spec.Rows)] = math.Inf(1)
	}

	columns := []table.Column{
		table.NumericColumn("target", target),
		table.NumericColumn("prediction", prediction),
		table.TimeColumn("datetime", times),
	}
	for f := 0; f < spec.Features; f++ {
		values := make([]float64, spec.Rows)
		for i := range values {
			values[i] = rng.NormFloat64() * float64(f+1)
		}
		columns = append(columns, table.NumericColumn(fmt.Sprintf("feature_%d", f+1), values))
	}
	return table.MustNew(columns...)
}

// CurrentAndReference generates a current and a mean-shifted reference
// dataset sharing a schema, for drift scenarios.
func CurrentAndReference(rows int, seed int64, shift float64) (*table.Table, *table.Table) {
	current := RegressionTable(DatasetSpec{Rows: rows, Seed: seed, Noise: 0.5, Features: 2})
	reference := RegressionTable(DatasetSpec{Rows: rows, Seed: seed + 1, Noise: 0.5, MeanShift: shift, Features: 2})
	return current, reference
}

// SmallTable builds the three row fixture used across engine tests
func SmallTable() *table.Table {
	return table.MustNew(
		table.NumericColumn("target", []float64{1, 2, 3}),
		table.NumericColumn("prediction", []float64{1.1, 2.5, 2.9}),
	)
}
