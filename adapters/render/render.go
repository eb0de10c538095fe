// Package render binds each metric kind to its renderer and payload codec.
// Registration is explicit: the registry built here is handed to the report
// at construction, so there is no ambient global renderer state.
package render

import (
	"encoding/json"
	"fmt"

	"tabreport/domain/core"
	"tabreport/domain/report"
)

// asMap normalizes any JSON-marshalable value into a generic structure.
// All structured output goes through this one path, so a report rendered
// before saving and after loading produces identical structures.
func asMap(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return out, nil
}

// wrongResult reports a result of an unexpected concrete type. This is a
// wiring bug (renderer registered under the wrong metric tag), not a data
// problem.
func wrongResult(metricID string, res report.Result) error {
	return fmt.Errorf("renderer for %s received %T", metricID, res)
}

// referenceGraph wraps a reference-side figure into a drill-down graph
// keyed by a freshly generated identifier.
func referenceGraph(metricID, title string, params map[string]interface{}) report.GraphInfo {
	return report.GraphInfo{
		ID:     core.NewGraphID(metricID).String(),
		Title:  title,
		Params: params,
	}
}
