// Package metrics holds the concrete metric implementations: regression
// scatter and error distribution, per-column summaries, and drift against
// a reference baseline. Every metric computes either a raw per-row
// representation or an aggregated one, selected by its AggData option.
package metrics

import (
	"tabreport/domain/core"
)

func errMissingFeature(metricID, name string) error {
	return core.NewMissingColumnError(metricID, name)
}
