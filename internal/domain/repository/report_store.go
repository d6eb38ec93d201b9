package repository

import (
	"context"

	"PropSight/internal/domain/models"
)

// ReportStore persists properties and their immutable cost segregation
// reports.
type ReportStore interface {
	Init(ctx context.Context) error
	SaveProperty(ctx context.Context, p *models.PropertyRecord) error
	GetProperty(ctx context.Context, id string) (*models.PropertyRecord, error)
	ListProperties(ctx context.Context, limit, offset int) ([]*models.PropertyRecord, error)
	SaveReport(ctx context.Context, r *models.Report) error
	GetReport(ctx context.Context, id string) (*models.Report, error)
	ListReports(ctx context.Context, limit, offset int) ([]*models.Report, error)
	ListReportsByProperty(ctx context.Context, propertyID string) ([]*models.Report, error)
	Close() error
}
