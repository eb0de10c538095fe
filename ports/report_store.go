package ports

import (
	"context"
	"encoding/json"

	"tabreport/domain/core"
)

// StoredReport is a persisted report payload plus its lookup metadata.
// The payload bytes are the JSON form of an executed report's snapshot.
type StoredReport struct {
	ID        core.ReportID     `json:"id"`
	Timestamp core.Timestamp    `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Payload   json.RawMessage   `json:"payload"`
}

// ReportStore persists executed report payloads
type ReportStore interface {
	Save(ctx context.Context, report StoredReport) error
	Load(ctx context.Context, id core.ReportID) (StoredReport, error)
	List(ctx context.Context, limit, offset int) ([]StoredReport, error)
	Delete(ctx context.Context, id core.ReportID) error
}
