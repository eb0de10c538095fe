package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabreport/adapters/metrics"
	"tabreport/adapters/render"
	"tabreport/app"
	"tabreport/domain/core"
	"tabreport/domain/report"
	"tabreport/internal/testkit"
	"tabreport/ports"
)

// memStore is an in-memory ReportStore for handler tests
type memStore struct {
	mu      sync.Mutex
	reports map[core.ReportID]ports.StoredReport
}

func newMemStore() *memStore {
	return &memStore{reports: make(map[core.ReportID]ports.StoredReport)}
}

func (s *memStore) Save(ctx context.Context, report ports.StoredReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[report.ID] = report
	return nil
}

func (s *memStore) Load(ctx context.Context, id core.ReportID) (ports.StoredReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.reports[id]
	if !ok {
		return ports.StoredReport{}, fmt.Errorf("report %s: %w", id, core.ErrReportNotFound)
	}
	return stored, nil
}

func (s *memStore) List(ctx context.Context, limit, offset int) ([]ports.StoredReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]ports.StoredReport, 0, len(s.reports))
	for _, stored := range s.reports {
		all = append(all, stored)
	}
	return all, nil
}

func (s *memStore) Delete(ctx context.Context, id core.ReportID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reports[id]; !ok {
		return fmt.Errorf("report %s: %w", id, core.ErrReportNotFound)
	}
	delete(s.reports, id)
	return nil
}

func executedPayload(t *testing.T) []byte {
	t.Helper()
	current, reference := testkit.CurrentAndReference(40, 11, 2.0)
	r := app.New(render.DefaultRegistry(), []report.MetricSpec{
		metrics.RegressionPreset{},
	})
	require.NoError(t, r.Run(reference, current, nil))
	payload, err := r.ToPayload()
	require.NoError(t, err)
	encoded, err := json.Marshal(payload)
	require.NoError(t, err)
	return encoded
}

func newTestApp() *App {
	return NewApp(newMemStore(), render.DefaultRegistry())
}

func postReport(t *testing.T, a *App, body []byte) string {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reports", bytes.NewReader(body))
	a.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created["id"]
}

func TestSaveAndListReports(t *testing.T) {
	a := newTestApp()
	id := postReport(t, a, executedPayload(t))

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var listed struct {
		Reports []map[string]interface{} `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Reports, 1)
	assert.Equal(t, id, listed.Reports[0]["id"])
}

func TestSaveRejectsUndecodablePayload(t *testing.T) {
	a := newTestApp()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reports", bytes.NewReader([]byte(`{"id":"zzz"}`)))
	a.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStructuredView(t *testing.T) {
	a := newTestApp()
	id := postReport(t, a, executedPayload(t))

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/"+id, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var structured struct {
		Metrics []struct {
			Metric string `json:"metric"`
		} `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &structured))
	require.NotEmpty(t, structured.Metrics)
	assert.Equal(t, metrics.PredictedVsActualID, structured.Metrics[0].Metric)
}

func TestDashboardView(t *testing.T) {
	a := newTestApp()
	id := postReport(t, a, executedPayload(t))

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/"+id+"/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var dashboard struct {
		ID        string `json:"id"`
		Dashboard struct {
			Widgets []json.RawMessage `json:"widgets"`
		} `json:"dashboard"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dashboard))
	assert.NotEmpty(t, dashboard.ID)
	assert.NotEmpty(t, dashboard.Dashboard.Widgets)
}

func TestTablesView(t *testing.T) {
	a := newTestApp()
	id := postReport(t, a, executedPayload(t))

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/"+id+"/tables", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var tables map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tables))
	assert.Contains(t, tables, metrics.PredictedVsActualID)
	assert.Contains(t, tables, metrics.ColumnSummaryID)
}

func TestTablesViewUnknownGroup(t *testing.T) {
	a := newTestApp()
	id := postReport(t, a, executedPayload(t))

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/"+id+"/tables?group=nope", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteReport(t *testing.T) {
	a := newTestApp()
	id := postReport(t, a, executedPayload(t))

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/reports/"+id, nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/"+id, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMissingReportIs404(t *testing.T) {
	a := newTestApp()
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/"+core.NewReportID().String(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	a := newTestApp()
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
