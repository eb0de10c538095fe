package app_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabreport/adapters/metrics"
	"tabreport/adapters/render"
	"tabreport/app"
	"tabreport/domain/core"
	"tabreport/domain/report"
	"tabreport/internal/testkit"
)

func executedReport(t *testing.T, aggData bool) *app.Report {
	t.Helper()
	current, reference := testkit.CurrentAndReference(60, 7, 3.0)
	opts := report.Options{AggData: aggData}
	r := app.New(render.DefaultRegistry(), []report.MetricSpec{
		metrics.RegressionPreset{Opts: opts},
		metrics.DataQualityPreset{Opts: opts},
	})
	require.NoError(t, r.Run(reference, current, nil))
	return r
}

func TestPayloadRoundTripPreservesStructuredView(t *testing.T) {
	for _, aggData := range []bool{false, true} {
		r := executedReport(t, aggData)

		before, err := r.AsStructured(report.StructuredOptions{IncludeRender: true})
		require.NoError(t, err)

		payload, err := r.ToPayload()
		require.NoError(t, err)
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		var decoded app.Payload
		require.NoError(t, json.Unmarshal(encoded, &decoded))

		restored, err := app.FromPayload(decoded, render.DefaultRegistry())
		require.NoError(t, err)
		after, err := restored.AsStructured(report.StructuredOptions{IncludeRender: true})
		require.NoError(t, err)

		beforeJSON, err := json.Marshal(before)
		require.NoError(t, err)
		afterJSON, err := json.Marshal(after)
		require.NoError(t, err)
		assert.JSONEq(t, string(beforeJSON), string(afterJSON))
	}
}

func TestPayloadRoundTripPreservesTabularView(t *testing.T) {
	r := executedReport(t, false)
	payload, err := r.ToPayload()
	require.NoError(t, err)

	restored, err := app.FromPayload(payload, render.DefaultRegistry())
	require.NoError(t, err)

	before, err := r.Tables()
	require.NoError(t, err)
	after, err := restored.Tables()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestPayloadCarriesIdentity(t *testing.T) {
	r := executedReport(t, false)
	r.Metadata["env"] = "test"

	payload, err := r.ToPayload()
	require.NoError(t, err)
	assert.Equal(t, r.ID.String(), payload.ID)
	assert.Equal(t, len(r.FirstLevelMetrics()), len(payload.MetricsIDs))

	restored, err := app.FromPayload(payload, render.DefaultRegistry())
	require.NoError(t, err)
	assert.Equal(t, r.ID, restored.ID)
	assert.Equal(t, "test", restored.Metadata["env"])
	assert.True(t, restored.Timestamp.Equal(r.Timestamp))
}

func TestFromPayloadRejectsBadIndices(t *testing.T) {
	r := executedReport(t, false)
	payload, err := r.ToPayload()
	require.NoError(t, err)

	payload.MetricsIDs = append(payload.MetricsIDs, len(payload.Suite.Metrics)+3)
	_, err = app.FromPayload(payload, render.DefaultRegistry())
	assert.ErrorIs(t, err, core.ErrPayloadIndex)
}

func TestFromPayloadRejectsInvalidID(t *testing.T) {
	r := executedReport(t, false)
	payload, err := r.ToPayload()
	require.NoError(t, err)

	payload.ID = "not-a-uuid"
	_, err = app.FromPayload(payload, render.DefaultRegistry())
	require.Error(t, err)
}

func TestFromPayloadNeedsCodecs(t *testing.T) {
	r := executedReport(t, false)
	payload, err := r.ToPayload()
	require.NoError(t, err)

	_, err = app.FromPayload(payload, report.NewRegistry())
	assert.ErrorIs(t, err, core.ErrUnknownMetricType)
}

func TestToPayloadRequiresExecutedReport(t *testing.T) {
	r := app.New(render.DefaultRegistry(), []report.MetricSpec{
		metrics.NewPredictedVsActual(report.DefaultOptions()),
	})
	_, err := r.ToPayload()
	require.Error(t, err)
}
