package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabreport/app"
	"tabreport/domain/core"
	"tabreport/domain/report"
	"tabreport/domain/table"
)

type fakeResult struct {
	Name string `json:"name"`
}

func (fakeResult) Representation() report.Representation { return report.RepresentationRaw }

type fakeMetric struct {
	Name  string `json:"name"`
	Label string `json:"label,omitempty"`
	calls int
}

func (m *fakeMetric) ID() string              { return m.Name }
func (m *fakeMetric) Options() report.Options { return report.DefaultOptions() }

func (m *fakeMetric) Calculate(data report.InputData) (report.Result, error) {
	m.calls++
	return fakeResult{Name: m.Name}, nil
}

type fakeGenerator struct {
	names []string
}

func (g fakeGenerator) Generate(columns table.ColumnsInfo) ([]report.Metric, error) {
	metrics := make([]report.Metric, 0, len(g.names))
	for _, name := range g.names {
		metrics = append(metrics, &fakeMetric{Name: name})
	}
	return metrics, nil
}

type fakePreset struct {
	items []report.MetricSpec
}

func (p fakePreset) GenerateMetrics(data report.InputData, columns table.ColumnsInfo) ([]report.MetricSpec, error) {
	return p.items, nil
}

type fakeRenderer struct{}

func (fakeRenderer) RenderStructured(m report.Metric, res report.Result, includeRender bool) (map[string]interface{}, error) {
	return map[string]interface{}{"name": m.ID()}, nil
}

func (fakeRenderer) RenderTable(m report.Metric, res report.Result) (*table.Table, error) {
	return table.New(table.StringColumn("name", []string{m.ID()}))
}

func (fakeRenderer) RenderWidgets(m report.Metric, res report.Result) ([]report.Widget, error) {
	return []report.Widget{report.HeaderText(m.ID())}, nil
}

func fakeRegistry(ids ...string) *report.Registry {
	registry := report.NewRegistry()
	for _, id := range ids {
		registry.RegisterRenderer(id, fakeRenderer{})
	}
	return registry
}

func currentFixture() *table.Table {
	return table.MustNew(
		table.NumericColumn("target", []float64{1, 2, 3}),
		table.NumericColumn("prediction", []float64{1.1, 2.5, 2.9}),
	)
}

func metricIDs(metrics []report.Metric) []string {
	ids := make([]string, 0, len(metrics))
	for _, m := range metrics {
		ids = append(ids, m.ID())
	}
	return ids
}

func TestRunExpandsSpecsInOrder(t *testing.T) {
	specs := []report.MetricSpec{
		&fakeMetric{Name: "a"},
		fakePreset{items: []report.MetricSpec{
			&fakeMetric{Name: "d"},
			fakeGenerator{names: []string{"f", "g"}},
		}},
		fakeGenerator{names: []string{"h"}},
	}
	r := app.New(report.NewRegistry(), specs)

	require.NoError(t, r.Run(nil, currentFixture(), nil))
	assert.Equal(t, []string{"a", "d", "f", "g", "h"}, metricIDs(r.FirstLevelMetrics()))
}

func TestRunExecutesEachMetricOnce(t *testing.T) {
	m := &fakeMetric{Name: "a"}
	r := app.New(report.NewRegistry(), []report.MetricSpec{m})

	require.NoError(t, r.Run(nil, currentFixture(), nil))
	assert.Equal(t, 1, m.calls)
}

func TestRunRejectsInvalidSpecItem(t *testing.T) {
	r := app.New(report.NewRegistry(), []report.MetricSpec{42})
	err := r.Run(nil, currentFixture(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidSpec)
}

func TestRunRejectsInvalidPresetItem(t *testing.T) {
	r := app.New(report.NewRegistry(), []report.MetricSpec{
		fakePreset{items: []report.MetricSpec{"not a metric"}},
	})
	err := r.Run(nil, currentFixture(), nil)
	assert.ErrorIs(t, err, core.ErrInvalidSpec)
}

func TestRunRejectsDuplicateMetrics(t *testing.T) {
	r := app.New(report.NewRegistry(), []report.MetricSpec{
		&fakeMetric{Name: "a"},
		&fakeMetric{Name: "a"},
	})
	err := r.Run(nil, currentFixture(), nil)
	assert.ErrorIs(t, err, core.ErrVerification)
}

func TestRunNilCurrentKeepsPriorResults(t *testing.T) {
	r := app.New(fakeRegistry("a"), []report.MetricSpec{&fakeMetric{Name: "a"}})
	require.NoError(t, r.Run(nil, currentFixture(), nil))

	err := r.Run(nil, nil, nil)
	assert.ErrorIs(t, err, core.ErrMissingCurrentData)

	// the failed run left the previous context untouched
	structured, err := r.AsStructured(report.StructuredOptions{})
	require.NoError(t, err)
	metrics := structured["metrics"].([]map[string]interface{})
	require.Len(t, metrics, 1)
	assert.Equal(t, "a", metrics[0]["metric"])
}

func TestRerunDiscardsPriorState(t *testing.T) {
	r := app.New(fakeRegistry("a", "b"), []report.MetricSpec{
		&fakeMetric{Name: "a"},
		&fakeMetric{Name: "b"},
	})
	require.NoError(t, r.Run(nil, currentFixture(), nil))
	require.NoError(t, r.Run(nil, currentFixture(), nil))

	assert.Equal(t, []string{"a", "b"}, metricIDs(r.FirstLevelMetrics()))
}

func TestReportOptions(t *testing.T) {
	id := core.NewReportID()
	ts := core.Now()
	r := app.New(report.NewRegistry(), nil,
		app.WithID(id),
		app.WithTimestamp(ts),
		app.WithMetadata(map[string]string{"env": "test"}),
	)
	assert.Equal(t, id, r.ID)
	assert.True(t, r.Timestamp.Equal(ts))
	assert.Equal(t, "test", r.Metadata["env"])
}
