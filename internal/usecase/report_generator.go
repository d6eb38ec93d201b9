package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"PropSight/internal/domain/models"
	domrepo "PropSight/internal/domain/repository"
	domsvc "PropSight/internal/domain/service"
)

// ReportGenerator creates properties and generates immutable cost segregation
// reports for them.
type ReportGenerator struct {
	store   domrepo.ReportStore
	engine  domsvc.CostSegregator
	metrics domrepo.Metrics
}

func NewReportGenerator(store domrepo.ReportStore, engine domsvc.CostSegregator, metrics domrepo.Metrics) *ReportGenerator {
	return &ReportGenerator{store: store, engine: engine, metrics: metrics}
}

// CreateProperty stores a submitted property and returns its record.
func (g *ReportGenerator) CreateProperty(ctx context.Context, req models.CreatePropertyRequest) (*models.PropertyRecord, error) {
	rec := &models.PropertyRecord{
		ID: uuid.NewString(),
		Input: models.PropertyInput{
			PurchasePrice:   req.PurchasePrice,
			LandValue:       req.LandValue,
			BuildingType:    models.BuildingType(req.BuildingType),
			YearBuilt:       req.YearBuilt,
			AcquisitionDate: req.AcquisitionDate,
			SquareFootage:   req.SquareFootage,
			NumberOfUnits:   req.NumberOfUnits,
			Features:        req.Features,
			Renovations:     req.Renovations,
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := g.store.SaveProperty(ctx, rec); err != nil {
		g.metrics.RecordError("property_save")
		return nil, err
	}
	return rec, nil
}

// GetProperty returns a stored property, or nil if unknown.
func (g *ReportGenerator) GetProperty(ctx context.Context, id string) (*models.PropertyRecord, error) {
	return g.store.GetProperty(ctx, id)
}

// ListProperties returns stored properties, newest first.
func (g *ReportGenerator) ListProperties(ctx context.Context, limit, offset int) ([]*models.PropertyRecord, error) {
	return g.store.ListProperties(ctx, limit, offset)
}

// Generate runs the classification and depreciation engines over a stored
// property and persists the result as an immutable snapshot. The returned
// report is exactly what any later read will see.
func (g *ReportGenerator) Generate(ctx context.Context, req models.CreateReportRequest) (*models.Report, error) {
	start := time.Now()

	prop, err := g.store.GetProperty(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, fmt.Errorf("property %s not found", req.PropertyID)
	}

	classification := g.engine.Classify(prop.Input)
	depreciation := g.engine.Depreciate(classification, req.TaxRate, req.DiscountRate)

	report := &models.Report{
		ID:             uuid.NewString(),
		PropertyID:     prop.ID,
		TaxRate:        req.TaxRate,
		DiscountRate:   req.DiscountRate,
		Classification: classification,
		Depreciation:   depreciation,
		CreatedAt:      time.Now().UTC(),
	}
	if err := g.store.SaveReport(ctx, report); err != nil {
		g.metrics.RecordError("report_save")
		return nil, err
	}

	g.metrics.RecordReportGenerated()
	g.metrics.RecordLatency("report_generate", time.Since(start).Seconds())
	return report, nil
}

// GetReport returns a previously generated report, or nil if unknown.
func (g *ReportGenerator) GetReport(ctx context.Context, id string) (*models.Report, error) {
	return g.store.GetReport(ctx, id)
}

// ListReports returns all reports generated for a property, newest first.
func (g *ReportGenerator) ListReports(ctx context.Context, propertyID string) ([]*models.Report, error) {
	return g.store.ListReportsByProperty(ctx, propertyID)
}

// ListRecentReports returns stored reports across all properties, newest
// first.
func (g *ReportGenerator) ListRecentReports(ctx context.Context, limit, offset int) ([]*models.Report, error) {
	return g.store.ListReports(ctx, limit, offset)
}
