package app

import (
	"fmt"

	"tabreport/domain/core"
	"tabreport/domain/report"
	"tabreport/internal/suite"
)

// Payload is the serializable snapshot of an executed report: the suite's
// context in registration order plus the positions of the first-level
// metrics within it. Loading reconstructs the report by indexing, never by
// recomputing.
type Payload struct {
	ID         string               `json:"id"`
	Suite      suite.ContextPayload `json:"suite"`
	MetricsIDs []int                `json:"metrics_ids"`
	Timestamp  core.Timestamp       `json:"timestamp"`
	Metadata   map[string]string    `json:"metadata"`
}

// ToPayload snapshots the executed report for persistence
func (r *Report) ToPayload() (Payload, error) {
	ctx := r.suite.Context
	snapshot, err := suite.SnapshotContext(ctx)
	if err != nil {
		return Payload{}, err
	}
	indices := make([]int, 0, len(r.firstLevel))
	for _, m := range r.firstLevel {
		idx := ctx.Index(m)
		if idx < 0 {
			return Payload{}, fmt.Errorf("first-level metric %s missing from context", m.ID())
		}
		indices = append(indices, idx)
	}
	return Payload{
		ID:         r.ID.String(),
		Suite:      snapshot,
		MetricsIDs: indices,
		Timestamp:  r.Timestamp,
		Metadata:   r.Metadata,
	}, nil
}

// FromPayload reconstructs a live report from a payload. The registry must
// hold a codec for every metric type in the snapshot. The restored report
// serves all views without re-running any metric.
func FromPayload(p Payload, registry *report.Registry) (*Report, error) {
	id, err := core.ParseReportID(p.ID)
	if err != nil {
		return nil, err
	}
	ctx, err := p.Suite.Restore(registry)
	if err != nil {
		return nil, err
	}

	firstLevel := make([]report.Metric, 0, len(p.MetricsIDs))
	specs := make([]report.MetricSpec, 0, len(p.MetricsIDs))
	for _, idx := range p.MetricsIDs {
		if idx < 0 || idx >= len(ctx.Metrics) {
			return nil, fmt.Errorf("%w: %d of %d", core.ErrPayloadIndex, idx, len(ctx.Metrics))
		}
		m := ctx.Metrics[idx]
		firstLevel = append(firstLevel, m)
		specs = append(specs, m)
	}

	metadata := p.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	r := New(registry, specs, WithID(id), WithTimestamp(p.Timestamp), WithMetadata(metadata))
	r.firstLevel = firstLevel
	r.suite.Context = ctx
	return r, nil
}
