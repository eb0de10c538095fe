package render

import (
	"encoding/json"

	"tabreport/adapters/metrics"
	"tabreport/domain/report"
)

// DefaultRegistry builds a registry covering every built-in metric kind:
// renderer plus payload codec per type tag. Callers with custom metrics
// register them on top.
func DefaultRegistry() *report.Registry {
	registry := report.NewRegistry()

	registry.RegisterRenderer(metrics.PredictedVsActualID, ScatterRenderer{})
	registry.RegisterCodec(metrics.PredictedVsActualID, report.MetricCodec{
		DecodeMetric: func(data json.RawMessage) (report.Metric, error) {
			m := &metrics.PredictedVsActual{}
			return m, json.Unmarshal(data, m)
		},
		DecodeResult: func(data json.RawMessage) (report.Result, error) {
			r := &metrics.PredictedVsActualResult{}
			return r, json.Unmarshal(data, r)
		},
	})

	registry.RegisterRenderer(metrics.ErrorDistributionID, ErrorDistRenderer{})
	registry.RegisterCodec(metrics.ErrorDistributionID, report.MetricCodec{
		DecodeMetric: func(data json.RawMessage) (report.Metric, error) {
			m := &metrics.ErrorDistribution{}
			return m, json.Unmarshal(data, m)
		},
		DecodeResult: func(data json.RawMessage) (report.Result, error) {
			r := &metrics.ErrorDistributionResult{}
			return r, json.Unmarshal(data, r)
		},
	})

	registry.RegisterRenderer(metrics.ColumnSummaryID, SummaryRenderer{})
	registry.RegisterCodec(metrics.ColumnSummaryID, report.MetricCodec{
		DecodeMetric: func(data json.RawMessage) (report.Metric, error) {
			m := &metrics.ColumnSummary{}
			return m, json.Unmarshal(data, m)
		},
		DecodeResult: func(data json.RawMessage) (report.Result, error) {
			r := &metrics.ColumnSummaryResult{}
			return r, json.Unmarshal(data, r)
		},
	})

	registry.RegisterRenderer(metrics.ColumnDriftID, DriftRenderer{})
	registry.RegisterCodec(metrics.ColumnDriftID, report.MetricCodec{
		DecodeMetric: func(data json.RawMessage) (report.Metric, error) {
			m := &metrics.ColumnDrift{}
			return m, json.Unmarshal(data, m)
		},
		DecodeResult: func(data json.RawMessage) (report.Result, error) {
			r := &metrics.ColumnDriftResult{}
			return r, json.Unmarshal(data, r)
		},
	})

	return registry
}
