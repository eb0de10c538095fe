package ui

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"tabreport/app"
	"tabreport/domain/core"
	"tabreport/domain/report"
	"tabreport/ports"
)

const overviewMarkdown = "# Report Server\n\n" +
	"Stores executed metric reports and serves their views.\n\n" +
	"## Endpoints\n\n" +
	"* `GET /api/reports` list stored reports\n" +
	"* `POST /api/reports` save an executed report payload\n" +
	"* `GET /api/reports/{id}` structured view, `?render=true` includes bulk data\n" +
	"* `GET /api/reports/{id}/tables` tabular view per metric group\n" +
	"* `GET /api/reports/{id}/dashboard` dashboard widgets and drill-down graphs\n" +
	"* `GET /api/reports/{id}/payload` raw stored payload\n" +
	"* `DELETE /api/reports/{id}` remove a stored report\n"

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	page := markdown.ToHTML([]byte(overviewMarkdown), p, renderer)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleListReports(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)
	stored, err := a.store.List(r.Context(), limit, offset)
	if err != nil {
		a.respondError(w, err)
		return
	}
	summaries := make([]map[string]interface{}, 0, len(stored))
	for _, s := range stored {
		summaries = append(summaries, map[string]interface{}{
			"id":        string(s.ID),
			"timestamp": s.Timestamp,
			"metadata":  s.Metadata,
		})
	}
	a.respondJSON(w, http.StatusOK, map[string]interface{}{"reports": summaries})
}

// handleSaveReport accepts an executed report payload, checks it decodes
// against the registry, then stores it as-is.
func (a *App) handleSaveReport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		a.respondError(w, err)
		return
	}
	var payload app.Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		http.Error(w, "invalid payload JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	restored, err := app.FromPayload(payload, a.registry)
	if err != nil {
		http.Error(w, "payload rejected: "+err.Error(), http.StatusBadRequest)
		return
	}
	stored := ports.StoredReport{
		ID:        core.ReportID(payload.ID),
		Timestamp: payload.Timestamp,
		Metadata:  payload.Metadata,
		Payload:   body,
	}
	if err := a.store.Save(r.Context(), stored); err != nil {
		a.respondError(w, err)
		return
	}
	a.log.Info("stored report %s with %d metrics", payload.ID, len(restored.FirstLevelMetrics()))
	a.respondJSON(w, http.StatusCreated, map[string]string{"id": payload.ID})
}

func (a *App) handleStructured(w http.ResponseWriter, r *http.Request) {
	loaded, err := a.loadReport(r)
	if err != nil {
		a.respondError(w, err)
		return
	}
	opts := report.StructuredOptions{
		IncludeRender: r.URL.Query().Get("render") == "true",
	}
	structured, err := loaded.AsStructured(opts)
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.respondJSON(w, http.StatusOK, structured)
}

func (a *App) handleTables(w http.ResponseWriter, r *http.Request) {
	loaded, err := a.loadReport(r)
	if err != nil {
		a.respondError(w, err)
		return
	}
	if group := r.URL.Query().Get("group"); group != "" {
		t, err := loaded.Table(group)
		if err != nil {
			a.respondError(w, err)
			return
		}
		a.respondJSON(w, http.StatusOK, t)
		return
	}
	tables, err := loaded.Tables()
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.respondJSON(w, http.StatusOK, tables)
}

func (a *App) handleDashboard(w http.ResponseWriter, r *http.Request) {
	loaded, err := a.loadReport(r)
	if err != nil {
		a.respondError(w, err)
		return
	}
	id, dashboard, graphs, err := loaded.BuildDashboard()
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":        string(id),
		"dashboard": dashboard,
		"graphs":    graphs,
	})
}

func (a *App) handlePayload(w http.ResponseWriter, r *http.Request) {
	stored, err := a.store.Load(r.Context(), core.ReportID(chi.URLParam(r, "id")))
	if err != nil {
		a.respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(stored.Payload)
}

func (a *App) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	id := core.ReportID(chi.URLParam(r, "id"))
	if err := a.store.Delete(r.Context(), id); err != nil {
		a.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) loadReport(r *http.Request) (*app.Report, error) {
	stored, err := a.store.Load(r.Context(), core.ReportID(chi.URLParam(r, "id")))
	if err != nil {
		return nil, err
	}
	var payload app.Payload
	if err := json.Unmarshal(stored.Payload, &payload); err != nil {
		return nil, err
	}
	return app.FromPayload(payload, a.registry)
}

func (a *App) respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.log.Error("failed to encode response: %v", err)
	}
}

func (a *App) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrReportNotFound):
		status = http.StatusNotFound
	case core.IsViewError(err):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		a.log.Error("request failed: %v", err)
	}
	http.Error(w, err.Error(), status)
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}
