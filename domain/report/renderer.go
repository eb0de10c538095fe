package report

import (
	"encoding/json"

	"tabreport/domain/core"
	"tabreport/domain/table"
)

// Renderer turns one metric's computed result into the three view shapes.
// A renderer must read the variant branch matching the metric's AggData
// option; the variant accessors enforce that contract.
type Renderer interface {
	// RenderStructured produces a JSON-compatible structure. Bulky
	// visualization payloads are embedded only when includeRender is set.
	RenderStructured(m Metric, res Result, includeRender bool) (map[string]interface{}, error)
	// RenderTable produces a row-oriented table for the tabular view
	RenderTable(m Metric, res Result) (*table.Table, error)
	// RenderWidgets produces dashboard widgets, possibly carrying
	// additional drill-down graphs.
	RenderWidgets(m Metric, res Result) ([]Widget, error)
}

// MetricCodec reconstructs a metric kind from payload JSON. Registration is
// explicit per metric type; there is no reflection-based dispatch.
type MetricCodec struct {
	// DecodeMetric rebuilds the metric (its parameters and options) from
	// its serialized form.
	DecodeMetric func(data json.RawMessage) (Metric, error)
	// DecodeResult rebuilds the metric's concrete result type
	DecodeResult func(data json.RawMessage) (Result, error)
}

// Registry maps metric type tags to renderers and codecs. It is an
// explicit object owned by the report being built - there is no ambient
// process-global registry.
type Registry struct {
	renderers map[string]Renderer
	codecs    map[string]MetricCodec
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
		codecs:    make(map[string]MetricCodec),
	}
}

// RegisterRenderer binds a renderer to a metric type tag
func (r *Registry) RegisterRenderer(metricID string, renderer Renderer) {
	r.renderers[metricID] = renderer
}

// RegisterCodec binds a payload codec to a metric type tag
func (r *Registry) RegisterCodec(metricID string, codec MetricCodec) {
	r.codecs[metricID] = codec
}

// Renderer resolves the renderer for a metric type
func (r *Registry) Renderer(metricID string) (Renderer, error) {
	renderer, ok := r.renderers[metricID]
	if !ok {
		return nil, core.NewRendererNotFoundError(metricID)
	}
	return renderer, nil
}

// Codec resolves the payload codec for a metric type
func (r *Registry) Codec(metricID string) (MetricCodec, error) {
	codec, ok := r.codecs[metricID]
	if !ok {
		return MetricCodec{}, core.ErrUnknownMetricType
	}
	return codec, nil
}
