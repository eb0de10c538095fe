package app

import (
	"fmt"

	"tabreport/domain/core"
	"tabreport/domain/report"
	"tabreport/domain/table"
)

// AsStructured produces the structured view: one entry per first-level
// metric, rendered by the metric's renderer and filtered by the include and
// exclude field filters.
func (r *Report) AsStructured(opts report.StructuredOptions) (map[string]interface{}, error) {
	metrics := make([]map[string]interface{}, 0, len(r.firstLevel))
	for _, m := range r.firstLevel {
		renderer, res, err := r.resultFor(m)
		if err != nil {
			return nil, err
		}
		structure, err := renderer.RenderStructured(m, res, opts.IncludeRender)
		if err != nil {
			return nil, fmt.Errorf("metric %s: %w", m.ID(), err)
		}
		structure = report.FilterFields(structure, opts.Include[m.ID()], opts.Exclude[m.ID()])
		metrics = append(metrics, map[string]interface{}{
			"metric": m.ID(),
			"result": structure,
		})
	}
	return map[string]interface{}{"metrics": metrics}, nil
}

// Tables renders every first-level metric to rows and concatenates them per
// metric group (metrics of one type tag form one group).
func (r *Report) Tables() (map[string]*table.Table, error) {
	return r.tablesFiltered("")
}

// Table renders a single metric group. An empty group name succeeds only
// when the report holds exactly one group; a group name absent from the
// report is an error.
func (r *Report) Table(group string) (*table.Table, error) {
	grouped, err := r.tablesFiltered(group)
	if err != nil {
		return nil, err
	}
	if group != "" {
		t, ok := grouped[group]
		if !ok {
			return nil, core.NewGroupNotFoundError(group)
		}
		return t, nil
	}
	if len(grouped) != 1 {
		return nil, fmt.Errorf("report has %d metric groups, request one by name", len(grouped))
	}
	for _, t := range grouped {
		return t, nil
	}
	return nil, core.NewGroupNotFoundError(group)
}

func (r *Report) tablesFiltered(group string) (map[string]*table.Table, error) {
	perGroup := map[string][]*table.Table{}
	var order []string
	for _, m := range r.firstLevel {
		if group != "" && m.ID() != group {
			continue
		}
		renderer, res, err := r.resultFor(m)
		if err != nil {
			return nil, err
		}
		t, err := renderer.RenderTable(m, res)
		if err != nil {
			return nil, fmt.Errorf("metric %s: %w", m.ID(), err)
		}
		if _, seen := perGroup[m.ID()]; !seen {
			order = append(order, m.ID())
		}
		perGroup[m.ID()] = append(perGroup[m.ID()], t)
	}
	result := make(map[string]*table.Table, len(perGroup))
	for _, id := range order {
		combined, err := table.Concat(perGroup[id]...)
		if err != nil {
			return nil, fmt.Errorf("group %s: %w", id, err)
		}
		result[id] = combined
	}
	return result, nil
}

// BuildDashboard assembles the dashboard view: every first-level metric's
// widgets in order, under a freshly generated dashboard identifier, with
// drill-down graphs collected into an auxiliary mapping keyed by their own
// identifiers.
func (r *Report) BuildDashboard() (core.DashboardID, report.DashboardInfo, map[string]report.GraphInfo, error) {
	var widgets []report.Widget
	graphs := map[string]report.GraphInfo{}
	for _, m := range r.firstLevel {
		renderer, res, err := r.resultFor(m)
		if err != nil {
			return "", report.DashboardInfo{}, nil, err
		}
		rendered, err := renderer.RenderWidgets(m, res)
		if err != nil {
			return "", report.DashboardInfo{}, nil, fmt.Errorf("metric %s: %w", m.ID(), err)
		}
		for _, w := range rendered {
			for _, g := range w.AdditionalGraphs {
				graphs[g.ID] = g
			}
		}
		widgets = append(widgets, rendered...)
	}
	dashboard := report.DashboardInfo{Title: "Report", Widgets: widgets}
	return core.NewDashboardID(), dashboard, graphs, nil
}
