package report

import (
	"tabreport/domain/table"
)

// InputData is the immutable per-run bundle handed to every metric.
// Extra tables carry additional (derived) features computed by the suite
// after specification expansion; they are row-aligned with their dataset.
type InputData struct {
	Reference      *table.Table
	Current        *table.Table
	ReferenceExtra *table.Table
	CurrentExtra   *table.Table
	Mapping        table.ColumnMapping
	Definition     table.DataDefinition
}

// CurrentColumn looks a column up in the current table, falling back to the
// additional-features table.
func (d InputData) CurrentColumn(name string) (table.Column, bool) {
	if col, ok := d.Current.Column(name); ok {
		return col, true
	}
	return d.CurrentExtra.Column(name)
}

// ReferenceColumn looks a column up in the reference table, falling back to
// the additional-features table.
func (d InputData) ReferenceColumn(name string) (table.Column, bool) {
	if col, ok := d.Reference.Column(name); ok {
		return col, true
	}
	return d.ReferenceExtra.Column(name)
}

// HasReference reports whether a reference dataset was supplied for the run
func (d InputData) HasReference() bool {
	return d.Reference != nil
}

// Metric is a unit of computation: it consumes the InputData bundle and
// produces one Result. ID is a stable type-derived tag shared by all
// instances of the same metric kind; renderer and codec lookup key on it.
type Metric interface {
	ID() string
	Options() Options
	Calculate(data InputData) (Result, error)
}

// GeneratedFeature computes one derived column over a dataset
type GeneratedFeature interface {
	FeatureName() string
	Compute(t *table.Table, def table.DataDefinition) (table.Column, error)
}

// FeatureProvider is implemented by metrics that need derived columns. The
// suite collects required features from all registered metrics after
// expansion and computes each once, before any metric runs.
type FeatureProvider interface {
	RequiredFeatures(def table.DataDefinition) []GeneratedFeature
}
