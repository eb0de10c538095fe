package report

import (
	"tabreport/domain/table"
)

// MetricSpec is a polymorphic specification item: a concrete Metric, a
// Preset, or a Generator. Anything else in a specification list is a
// configuration error surfaced during expansion.
type MetricSpec interface{}

// Preset is a metric bundle. It expands, given the run's data bundle and
// resolved columns, into an ordered list of spec items; produced items may
// themselves be Generators, which are expanded in place.
type Preset interface {
	GenerateMetrics(data InputData, columns table.ColumnsInfo) ([]MetricSpec, error)
}

// Generator is a parametrized metric family. It expands into an ordered
// list of concrete metrics using column-role information alone, with no
// data access.
type Generator interface {
	Generate(columns table.ColumnsInfo) ([]Metric, error)
}
