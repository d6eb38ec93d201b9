package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"PropSight/internal/domain/models"
	domrepo "PropSight/internal/domain/repository"
)

var reportSchema = []string{
	`CREATE TABLE IF NOT EXISTS properties (
        id         TEXT PRIMARY KEY,
        input      TEXT NOT NULL,
        created_at TIMESTAMP NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS reports (
        id            TEXT PRIMARY KEY,
        property_id   TEXT NOT NULL REFERENCES properties(id),
        tax_rate      REAL NOT NULL,
        discount_rate REAL NOT NULL,
        payload       TEXT NOT NULL,
        created_at    TIMESTAMP NOT NULL
    )`,
	`CREATE INDEX IF NOT EXISTS idx_reports_property ON reports(property_id)`,
}

// SQLiteReportStore persists properties and generated reports in SQLite.
// Reports are stored as JSON snapshots; a report read back is exactly the
// report that was generated, byte for byte.
type SQLiteReportStore struct {
	db *sql.DB
}

// NewSQLiteReportStore opens (or creates) the SQLite database at path.
func NewSQLiteReportStore(path string, busyTimeout time.Duration) (*SQLiteReportStore, error) {
	if busyTimeout <= 0 {
		busyTimeout = 5 * time.Second
	}
	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d&_journal_mode=WAL&_foreign_keys=on",
		path, busyTimeout.Milliseconds())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite handles one writer at a time.
	db.SetMaxOpenConns(1)
	return &SQLiteReportStore{db: db}, nil
}

func (s *SQLiteReportStore) Init(ctx context.Context) error {
	for _, stmt := range reportSchema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init report schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteReportStore) SaveProperty(ctx context.Context, p *models.PropertyRecord) error {
	input, err := json.Marshal(p.Input)
	if err != nil {
		return fmt.Errorf("marshal property input: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO properties (id, input, created_at) VALUES (?, ?, ?)`,
		p.ID, string(input), p.CreatedAt)
	if err != nil {
		return fmt.Errorf("save property: %w", err)
	}
	return nil
}

func (s *SQLiteReportStore) GetProperty(ctx context.Context, id string) (*models.PropertyRecord, error) {
	var p models.PropertyRecord
	var input string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, input, created_at FROM properties WHERE id = ?`, id).
		Scan(&p.ID, &input, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}
	if err := json.Unmarshal([]byte(input), &p.Input); err != nil {
		return nil, fmt.Errorf("unmarshal property input: %w", err)
	}
	return &p, nil
}

func (s *SQLiteReportStore) ListProperties(ctx context.Context, limit, offset int) ([]*models.PropertyRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input, created_at FROM properties ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	out := make([]*models.PropertyRecord, 0, limit)
	for rows.Next() {
		var p models.PropertyRecord
		var input string
		if err := rows.Scan(&p.ID, &input, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		if err := json.Unmarshal([]byte(input), &p.Input); err != nil {
			return nil, fmt.Errorf("unmarshal property input: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (s *SQLiteReportStore) SaveReport(ctx context.Context, r *models.Report) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (id, property_id, tax_rate, discount_rate, payload, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.PropertyID, r.TaxRate, r.DiscountRate, string(payload), r.CreatedAt)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

func (s *SQLiteReportStore) GetReport(ctx context.Context, id string) (*models.Report, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM reports WHERE id = ?`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	var r models.Report
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &r, nil
}

func (s *SQLiteReportStore) ListReports(ctx context.Context, limit, offset int) ([]*models.Report, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM reports ORDER BY created_at DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()
	return scanReports(rows)
}

func (s *SQLiteReportStore) ListReportsByProperty(ctx context.Context, propertyID string) ([]*models.Report, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM reports WHERE property_id = ? ORDER BY created_at DESC`, propertyID)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()
	return scanReports(rows)
}

func scanReports(rows *sql.Rows) ([]*models.Report, error) {
	var out []*models.Report
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		var r models.Report
		if err := json.Unmarshal([]byte(payload), &r); err != nil {
			return nil, fmt.Errorf("unmarshal report: %w", err)
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

func (s *SQLiteReportStore) Close() error {
	return s.db.Close()
}

var _ domrepo.ReportStore = (*SQLiteReportStore)(nil)
