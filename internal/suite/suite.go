package suite

import (
	"encoding/json"
	"fmt"

	"tabreport/domain/core"
	"tabreport/domain/report"
	"tabreport/domain/table"
	"tabreport/internal"
)

// Context is the per-suite store of registered metrics, their computed
// results, and the renderer/codec registry. It is created with the suite,
// reset at the start of each run, populated during execution, and read-only
// afterward until the next reset.
type Context struct {
	Metrics  []report.Metric
	Results  []report.Result
	Registry *report.Registry

	executed bool
}

// Populated reports whether the context holds a complete set of results
func (c *Context) Populated() bool {
	return c.executed && len(c.Results) == len(c.Metrics)
}

// Result returns the result computed for the metric at position i
func (c *Context) Result(i int) (report.Result, error) {
	if !c.Populated() {
		return nil, fmt.Errorf("context has no results: run the report first")
	}
	if i < 0 || i >= len(c.Results) {
		return nil, fmt.Errorf("%w: %d", core.ErrPayloadIndex, i)
	}
	return c.Results[i], nil
}

// Index returns the registration position of a metric instance, or -1
func (c *Context) Index(m report.Metric) int {
	for i, registered := range c.Metrics {
		if registered == m {
			return i
		}
	}
	return -1
}

// Suite holds the ordered list of concrete metrics for one report and runs
// their computations against the shared input bundle.
type Suite struct {
	Context *Context

	log *internal.Logger
}

// New creates a suite with an empty context bound to the given registry
func New(registry *report.Registry) *Suite {
	return &Suite{
		Context: &Context{Registry: registry},
		log:     internal.DefaultLogger,
	}
}

// Reset discards all registered metrics and prior results. The registry
// survives resets: renderers are bound to metric types, not runs.
func (s *Suite) Reset() {
	s.Context.Metrics = nil
	s.Context.Results = nil
	s.Context.executed = false
}

// AddMetric registers a metric for execution. Registration order is
// execution order and the presentation order of every result view.
func (s *Suite) AddMetric(m report.Metric) {
	s.Context.Metrics = append(s.Context.Metrics, m)
}

// Verify checks suite configuration before execution. Two registered
// metrics with the same type tag and identical parameters are a conflict:
// they would compute the same result twice and collide in the tabular view.
func (s *Suite) Verify() error {
	seen := make(map[string]bool, len(s.Context.Metrics))
	for _, m := range s.Context.Metrics {
		fp, err := fingerprint(m)
		if err != nil {
			return core.NewVerificationError(m.ID(), err.Error())
		}
		if seen[fp] {
			return core.NewVerificationError(m.ID(), "duplicate metric with identical parameters")
		}
		seen[fp] = true
	}
	return nil
}

// fingerprint identifies a metric by type tag plus serialized parameters
func fingerprint(m report.Metric) (string, error) {
	params, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("cannot fingerprint metric: %w", err)
	}
	return m.ID() + ":" + string(params), nil
}

// CreateAdditionalFeatures computes every derived column required by the
// registered metrics, each exactly once, for the current and (when present)
// reference datasets. Must run after expansion so the metric set is known.
func (s *Suite) CreateAdditionalFeatures(current, reference *table.Table, def table.DataDefinition) (*table.Table, *table.Table, error) {
	var features []report.GeneratedFeature
	seen := map[string]bool{}
	for _, m := range s.Context.Metrics {
		provider, ok := m.(report.FeatureProvider)
		if !ok {
			continue
		}
		for _, f := range provider.RequiredFeatures(def) {
			if seen[f.FeatureName()] {
				continue
			}
			seen[f.FeatureName()] = true
			features = append(features, f)
		}
	}
	if len(features) == 0 {
		return nil, nil, nil
	}
	s.log.Debug("computing %d additional features", len(features))

	currentExtra, err := computeFeatures(current, def, features)
	if err != nil {
		return nil, nil, err
	}
	var referenceExtra *table.Table
	if reference != nil {
		referenceExtra, err = computeFeatures(reference, def, features)
		if err != nil {
			return nil, nil, err
		}
	}
	return currentExtra, referenceExtra, nil
}

func computeFeatures(t *table.Table, def table.DataDefinition, features []report.GeneratedFeature) (*table.Table, error) {
	columns := make([]table.Column, 0, len(features))
	for _, f := range features {
		col, err := f.Compute(t, def)
		if err != nil {
			return nil, fmt.Errorf("additional feature %s: %w", f.FeatureName(), err)
		}
		columns = append(columns, col)
	}
	return table.New(columns...)
}

// RunCalculate executes every registered metric exactly once, in
// registration order, storing each result at the metric's position. The
// first failure aborts the run and leaves the context unpopulated: callers
// never observe a partial result set.
func (s *Suite) RunCalculate(data report.InputData) error {
	results := make([]report.Result, 0, len(s.Context.Metrics))
	for i, m := range s.Context.Metrics {
		s.log.Debug("calculating metric %d/%d: %s", i+1, len(s.Context.Metrics), m.ID())
		res, err := m.Calculate(data)
		if err != nil {
			s.Context.Results = nil
			s.Context.executed = false
			return fmt.Errorf("metric %s: %w", m.ID(), err)
		}
		results = append(results, res)
	}
	s.Context.Results = results
	s.Context.executed = true
	return nil
}
