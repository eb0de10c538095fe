package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	ReportID    ID
	DashboardID ID
	GraphID     ID
)

// String conversions for domain IDs
func (id ReportID) String() string    { return ID(id).String() }
func (id DashboardID) String() string { return ID(id).String() }
func (id GraphID) String() string     { return ID(id).String() }

// NewReportID generates a fresh report identifier
func NewReportID() ReportID {
	return ReportID(NewID())
}

// NewDashboardID generates a dashboard identifier with a recognizable prefix
func NewDashboardID() DashboardID {
	raw := strings.ReplaceAll(NewID().String(), "-", "")
	return DashboardID("report_dashboard_" + raw)
}

// NewGraphID generates an identifier for an additional (drill-down) graph
func NewGraphID(metricID string) GraphID {
	raw := strings.ReplaceAll(NewID().String(), "-", "")
	return GraphID(fmt.Sprintf("%s_%s", metricID, raw))
}

// ParseReportID parses a string into ReportID
func ParseReportID(s string) (ReportID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("report ID cannot be empty")
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("report ID is not a valid UUID: %w", err)
	}
	return ReportID(s), nil
}
