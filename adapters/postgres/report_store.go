package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"tabreport/domain/core"
	"tabreport/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS reports (
    id         UUID PRIMARY KEY,
    created_at TIMESTAMPTZ NOT NULL,
    metadata   JSONB NOT NULL DEFAULT '{}',
    payload    JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports (created_at DESC);
`

// ReportStore persists report payloads in PostgreSQL
type ReportStore struct {
	db *sqlx.DB
}

// Connect opens a database connection and ensures the schema exists
func Connect(ctx context.Context, url string) (*ReportStore, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	store := &ReportStore{db: db}
	if err := store.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewReportStore wraps an existing connection without touching the schema
func NewReportStore(db *sqlx.DB) *ReportStore {
	return &ReportStore{db: db}
}

func (s *ReportStore) ensureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create reports schema: %w", err)
	}
	return nil
}

func (s *ReportStore) Close() error {
	return s.db.Close()
}

type reportRow struct {
	ID        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	Metadata  []byte    `db:"metadata"`
	Payload   []byte    `db:"payload"`
}

func (s *ReportStore) Save(ctx context.Context, report ports.StoredReport) error {
	metadata, err := json.Marshal(report.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal report metadata: %w", err)
	}
	query := `
		INSERT INTO reports (id, created_at, metadata, payload)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			created_at = EXCLUDED.created_at,
			metadata = EXCLUDED.metadata,
			payload = EXCLUDED.payload`
	_, err = s.db.ExecContext(ctx, query,
		string(report.ID), report.Timestamp.Time(), metadata, []byte(report.Payload))
	if err != nil {
		return fmt.Errorf("failed to save report %s: %w", report.ID, err)
	}
	return nil
}

func (s *ReportStore) Load(ctx context.Context, id core.ReportID) (ports.StoredReport, error) {
	var row reportRow
	query := `SELECT id, created_at, metadata, payload FROM reports WHERE id = $1`
	if err := s.db.GetContext(ctx, &row, query, string(id)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ports.StoredReport{}, fmt.Errorf("report %s: %w", id, core.ErrReportNotFound)
		}
		return ports.StoredReport{}, fmt.Errorf("failed to load report %s: %w", id, err)
	}
	return row.toStored()
}

func (s *ReportStore) List(ctx context.Context, limit, offset int) ([]ports.StoredReport, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []reportRow
	query := `
		SELECT id, created_at, metadata, payload FROM reports
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	if err := s.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	reports := make([]ports.StoredReport, 0, len(rows))
	for _, row := range rows {
		stored, err := row.toStored()
		if err != nil {
			return nil, err
		}
		reports = append(reports, stored)
	}
	return reports, nil
}

func (s *ReportStore) Delete(ctx context.Context, id core.ReportID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete report %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete report %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("report %s: %w", id, core.ErrReportNotFound)
	}
	return nil
}

func (r reportRow) toStored() (ports.StoredReport, error) {
	var metadata map[string]string
	if len(r.Metadata) > 0 {
		if err := json.Unmarshal(r.Metadata, &metadata); err != nil {
			return ports.StoredReport{}, fmt.Errorf("failed to decode metadata for report %s: %w", r.ID, err)
		}
	}
	return ports.StoredReport{
		ID:        core.ReportID(r.ID),
		Timestamp: core.NewTimestamp(r.CreatedAt),
		Metadata:  metadata,
		Payload:   json.RawMessage(r.Payload),
	}, nil
}
