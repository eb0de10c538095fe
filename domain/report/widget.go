package report

// WidgetType selects the display shape of a dashboard widget
type WidgetType string

const (
	WidgetCounter  WidgetType = "counter"
	WidgetBigGraph WidgetType = "big_graph"
	WidgetTable    WidgetType = "table"
	WidgetText     WidgetType = "text"
)

// Widget is one renderable dashboard element
type Widget struct {
	Title            string                 `json:"title"`
	Type             WidgetType             `json:"type"`
	Size             int                    `json:"size"`
	Params           map[string]interface{} `json:"params,omitempty"`
	AdditionalGraphs []GraphInfo            `json:"additional_graphs,omitempty"`
}

// GraphInfo is a drill-down graph referenced from a widget and collected
// into the dashboard's auxiliary graph mapping.
type GraphInfo struct {
	ID     string                 `json:"id"`
	Title  string                 `json:"title"`
	Params map[string]interface{} `json:"params,omitempty"`
}

// DashboardInfo is an assembled dashboard: a title plus ordered widgets
type DashboardInfo struct {
	Title   string   `json:"title"`
	Widgets []Widget `json:"widgets"`
}

// HeaderText creates a plain header widget
func HeaderText(label string) Widget {
	return Widget{Title: label, Type: WidgetText, Size: 2}
}

// BigGraph creates a full-width graph widget from figure params
func BigGraph(title string, params map[string]interface{}) Widget {
	return Widget{Title: title, Type: WidgetBigGraph, Size: 2, Params: params}
}
