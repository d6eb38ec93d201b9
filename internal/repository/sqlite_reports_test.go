package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"PropSight/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteReportStore {
	t.Helper()
	store, err := NewSQLiteReportStore(filepath.Join(t.TempDir(), "reports.db"), time.Second)
	require.NoError(t, err)
	require.NoError(t, store.Init(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testProperty(id string) *models.PropertyRecord {
	return &models.PropertyRecord{
		ID: id,
		Input: models.PropertyInput{
			PurchasePrice:   500000,
			BuildingType:    models.SingleFamily,
			YearBuilt:       1995,
			AcquisitionDate: "2022-06-15",
			SquareFootage:   2400,
			NumberOfUnits:   1,
			Features: models.PropertyFeatures{
				HasPool:           true,
				NumberOfBathrooms: 2,
				GarageType:        models.GarageAttached,
			},
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestPropertyRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	p := testProperty("p-1")
	require.NoError(t, store.SaveProperty(ctx, p))

	got, err := store.GetProperty(ctx, "p-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.Input, got.Input)
}

func TestGetPropertyUnknown(t *testing.T) {
	store := openTestStore(t)

	got, err := store.GetProperty(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSavePropertyDuplicateID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProperty(ctx, testProperty("dup")))
	require.Error(t, store.SaveProperty(ctx, testProperty("dup")))
}

func TestListPropertiesNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	old := testProperty("old")
	old.CreatedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, store.SaveProperty(ctx, old))
	require.NoError(t, store.SaveProperty(ctx, testProperty("new")))

	list, err := store.ListProperties(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, "old", list[1].ID)

	page, err := store.ListProperties(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "old", page[0].ID)
}

func TestReportRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	p := testProperty("p-2")
	require.NoError(t, store.SaveProperty(ctx, p))

	r := &models.Report{
		ID:           "r-1",
		PropertyID:   p.ID,
		TaxRate:      0.37,
		DiscountRate: 0.06,
		Classification: models.ClassificationResult{
			Property: p.Input,
			Summary:  models.ClassificationSummary{FiveYear: 48000, TwentySevenYear: 320000},
		},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.SaveReport(ctx, r))

	got, err := store.GetReport(ctx, "r-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, r.TaxRate, got.TaxRate)
	assert.Equal(t, r.Classification.Summary, got.Classification.Summary)
}

func TestGetReportUnknown(t *testing.T) {
	store := openTestStore(t)

	got, err := store.GetReport(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListReportsByProperty(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	p := testProperty("p-3")
	require.NoError(t, store.SaveProperty(ctx, p))

	for i, id := range []string{"r-a", "r-b"} {
		r := &models.Report{
			ID:         id,
			PropertyID: p.ID,
			TaxRate:    0.37,
			CreatedAt:  time.Now().UTC().Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, store.SaveReport(ctx, r))
	}

	list, err := store.ListReportsByProperty(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "r-b", list[0].ID, "newest first")

	empty, err := store.ListReportsByProperty(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, empty)

	all, err := store.ListReports(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	page, err := store.ListReports(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "r-a", page[0].ID)
}
