package app

import (
	"fmt"

	"tabreport/domain/core"
	"tabreport/domain/report"
	"tabreport/domain/table"
	"tabreport/internal"
	"tabreport/internal/suite"
)

// Report is the public orchestration object. It accepts a mixed
// specification list (Metric | Preset | Generator), owns a suite, performs
// the expansion-then-execution lifecycle, and exposes result views.
type Report struct {
	ID        core.ReportID
	Metadata  map[string]string
	Timestamp core.Timestamp

	specs      []report.MetricSpec
	registry   *report.Registry
	suite      *suite.Suite
	firstLevel []report.Metric

	log *internal.Logger
}

// Option configures a report at construction
type Option func(*Report)

// WithID fixes the report identifier instead of generating one
func WithID(id core.ReportID) Option {
	return func(r *Report) { r.ID = id }
}

// WithTimestamp fixes the report timestamp instead of using now
func WithTimestamp(ts core.Timestamp) Option {
	return func(r *Report) { r.Timestamp = ts }
}

// WithMetadata attaches string metadata to the report
func WithMetadata(metadata map[string]string) Option {
	return func(r *Report) {
		for k, v := range metadata {
			r.Metadata[k] = v
		}
	}
}

// New creates a report for a specification list. The registry supplies
// renderers for views and codecs for persistence; it is owned explicitly by
// the report rather than living in ambient global state.
func New(registry *report.Registry, specs []report.MetricSpec, opts ...Option) *Report {
	r := &Report{
		ID:        core.NewReportID(),
		Metadata:  map[string]string{},
		Timestamp: core.Now(),
		specs:     specs,
		registry:  registry,
		suite:     suite.New(registry),
		log:       internal.DefaultLogger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the full pipeline: column-role resolution, specification
// expansion, additional-feature computation, and metric execution. A run
// either fully populates the context or fails before any result view is
// available; re-running discards all prior state.
func (r *Report) Run(reference, current *table.Table, mapping *table.ColumnMapping) error {
	if current == nil {
		// Prior context state, if any, is deliberately left untouched
		return core.ErrMissingCurrentData
	}
	cm := table.ColumnMapping{}
	if mapping != nil {
		cm = *mapping
	}

	columnsInfo := table.ProcessColumns(current, cm)
	r.suite.Reset()
	r.firstLevel = nil

	definition := table.CreateDataDefinition(reference, current, cm)
	data := report.InputData{
		Reference:  reference,
		Current:    current,
		Mapping:    cm,
		Definition: definition,
	}

	if err := r.expand(data, columnsInfo); err != nil {
		return err
	}
	if err := r.suite.Verify(); err != nil {
		return err
	}
	r.log.Debug("report %s: expanded to %d metrics", r.ID, len(r.firstLevel))

	definition = table.CreateDataDefinition(reference, current, cm)
	currentExtra, referenceExtra, err := r.suite.CreateAdditionalFeatures(current, reference, definition)
	if err != nil {
		return err
	}
	data = report.InputData{
		Reference:      reference,
		Current:        current,
		ReferenceExtra: referenceExtra,
		CurrentExtra:   currentExtra,
		Mapping:        cm,
		Definition:     definition,
	}
	return r.suite.RunCalculate(data)
}

// expand walks the specification list once, in order, appending concrete
// metrics to the execution plan and the first-level list. Preset items may
// produce nested generators, which are expanded in place under the same
// rule; anything that is not a Metric, Preset, or Generator is a
// configuration error.
func (r *Report) expand(data report.InputData, columns table.ColumnsInfo) error {
	for _, item := range r.specs {
		switch spec := item.(type) {
		case report.Generator:
			generated, err := spec.Generate(columns)
			if err != nil {
				return fmt.Errorf("generator %T: %w", spec, err)
			}
			for _, m := range generated {
				r.addFirstLevel(m)
			}

		case report.Preset:
			items, err := spec.GenerateMetrics(data, columns)
			if err != nil {
				return fmt.Errorf("preset %T: %w", spec, err)
			}
			var metrics []report.Metric
			for _, produced := range items {
				switch inner := produced.(type) {
				case report.Generator:
					generated, err := inner.Generate(columns)
					if err != nil {
						return fmt.Errorf("preset %T generator %T: %w", spec, inner, err)
					}
					metrics = append(metrics, generated...)
				case report.Metric:
					metrics = append(metrics, inner)
				default:
					return core.NewInvalidSpecError(produced)
				}
			}
			for _, m := range metrics {
				r.addFirstLevel(m)
			}

		case report.Metric:
			r.addFirstLevel(spec)

		default:
			return core.NewInvalidSpecError(item)
		}
	}
	return nil
}

func (r *Report) addFirstLevel(m report.Metric) {
	r.firstLevel = append(r.firstLevel, m)
	r.suite.AddMetric(m)
}

// FirstLevelMetrics returns the concrete metrics directly requested by the
// specification list, in expansion order.
func (r *Report) FirstLevelMetrics() []report.Metric {
	return r.firstLevel
}

// resultFor resolves the renderer and computed result for one metric
func (r *Report) resultFor(m report.Metric) (report.Renderer, report.Result, error) {
	renderer, err := r.registry.Renderer(m.ID())
	if err != nil {
		return nil, nil, err
	}
	idx := r.suite.Context.Index(m)
	if idx < 0 {
		return nil, nil, fmt.Errorf("metric %s is not registered in this report", m.ID())
	}
	res, err := r.suite.Context.Result(idx)
	if err != nil {
		return nil, nil, err
	}
	return renderer, res, nil
}
