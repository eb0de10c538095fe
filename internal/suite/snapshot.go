package suite

import (
	"encoding/json"
	"fmt"

	"tabreport/domain/core"
	"tabreport/domain/report"
)

// MetricSnapshot captures one executed metric and its result. The metric's
// parameters and its concrete result type are serialized as JSON and
// reconstructed through the registry's codec for the type tag.
type MetricSnapshot struct {
	MetricID string          `json:"metric_id"`
	Metric   json.RawMessage `json:"metric"`
	Result   json.RawMessage `json:"result"`
}

// ContextPayload is the serialized form of a fully executed context, in
// registration order.
type ContextPayload struct {
	Metrics []MetricSnapshot `json:"metrics"`
}

// SnapshotContext serializes a populated context
func SnapshotContext(ctx *Context) (ContextPayload, error) {
	if !ctx.Populated() {
		return ContextPayload{}, fmt.Errorf("cannot snapshot an unexecuted context")
	}
	payload := ContextPayload{Metrics: make([]MetricSnapshot, 0, len(ctx.Metrics))}
	for i, m := range ctx.Metrics {
		metricJSON, err := json.Marshal(m)
		if err != nil {
			return ContextPayload{}, fmt.Errorf("snapshot metric %s: %w", m.ID(), err)
		}
		resultJSON, err := json.Marshal(ctx.Results[i])
		if err != nil {
			return ContextPayload{}, fmt.Errorf("snapshot result of %s: %w", m.ID(), err)
		}
		payload.Metrics = append(payload.Metrics, MetricSnapshot{
			MetricID: m.ID(),
			Metric:   metricJSON,
			Result:   resultJSON,
		})
	}
	return payload, nil
}

// Restore reconstructs a live context verbatim from a snapshot, without
// recomputing any metric.
func (p ContextPayload) Restore(registry *report.Registry) (*Context, error) {
	ctx := &Context{Registry: registry}
	for _, snap := range p.Metrics {
		codec, err := registry.Codec(snap.MetricID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", core.ErrUnknownMetricType, snap.MetricID)
		}
		m, err := codec.DecodeMetric(snap.Metric)
		if err != nil {
			return nil, fmt.Errorf("decode metric %s: %w", snap.MetricID, err)
		}
		res, err := codec.DecodeResult(snap.Result)
		if err != nil {
			return nil, fmt.Errorf("decode result of %s: %w", snap.MetricID, err)
		}
		ctx.Metrics = append(ctx.Metrics, m)
		ctx.Results = append(ctx.Results, res)
	}
	ctx.executed = true
	return ctx, nil
}
