package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbdiallo/stockboard/internal/domain/models"
)

type fakeStore struct {
	statsFn    func() (*models.StatsReport, error)
	lowStockFn func() ([]models.Item, error)
	saved      []models.InventorySnapshot
	saveErr    error
}

func (f *fakeStore) Stats(ctx context.Context) (*models.StatsReport, error) {
	if f.statsFn == nil {
		return &models.StatsReport{}, nil
	}
	return f.statsFn()
}

func (f *fakeStore) LowStock(ctx context.Context) ([]models.Item, error) {
	if f.lowStockFn == nil {
		return nil, nil
	}
	return f.lowStockFn()
}

func (f *fakeStore) SaveSnapshot(ctx context.Context, snapshot models.InventorySnapshot) error {
	f.saved = append(f.saved, snapshot)
	return f.saveErr
}

type fakeExporter struct {
	rows [][]interface{}
	err  error
}

func (f *fakeExporter) AppendSnapshotRow(ctx context.Context, row []interface{}) error {
	f.rows = append(f.rows, row)
	return f.err
}

func TestCaptureSnapshotPersistsReport(t *testing.T) {
	store := &fakeStore{
		statsFn: func() (*models.StatsReport, error) {
			return &models.StatsReport{
				TotalItems:    12,
				LowStockItems: 3,
				TotalValue:    250.75,
				Categories:    []models.CategoryCount{{Label: "Food", Count: 12}},
			}, nil
		},
	}
	svc := NewService(store, nil, nil)
	svc.now = func() time.Time {
		return time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC)
	}

	snapshot, err := svc.CaptureSnapshot(context.Background())
	require.NoError(t, err)

	require.Len(t, store.saved, 1)
	assert.Equal(t, 12, snapshot.TotalItems)
	assert.Equal(t, 3, snapshot.LowStockItems)
	assert.Equal(t, 250.75, snapshot.TotalValue)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), snapshot.Date)
}

func TestCaptureSnapshotExportsRow(t *testing.T) {
	store := &fakeStore{
		statsFn: func() (*models.StatsReport, error) {
			return &models.StatsReport{
				TotalItems: 2,
				TotalValue: 10,
				Categories: []models.CategoryCount{{Label: "Other", Count: 2}},
			}, nil
		},
	}
	exporter := &fakeExporter{}
	svc := NewService(store, exporter, nil)
	svc.now = func() time.Time {
		return time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC)
	}

	_, err := svc.CaptureSnapshot(context.Background())
	require.NoError(t, err)

	require.Len(t, exporter.rows, 1)
	assert.Equal(t, "2025-06-15", exporter.rows[0][0])
	assert.Equal(t, 2, exporter.rows[0][1])
	assert.Equal(t, 1, exporter.rows[0][4])
}

func TestCaptureSnapshotSurvivesExportFailure(t *testing.T) {
	store := &fakeStore{}
	exporter := &fakeExporter{err: errors.New("quota exceeded")}
	svc := NewService(store, exporter, nil)

	_, err := svc.CaptureSnapshot(context.Background())
	require.NoError(t, err, "export failure does not fail the snapshot")
	assert.Len(t, store.saved, 1)
}

func TestCaptureSnapshotFailsWhenStatsFail(t *testing.T) {
	store := &fakeStore{
		statsFn: func() (*models.StatsReport, error) {
			return nil, errors.New("mongo down")
		},
	}
	svc := NewService(store, nil, nil)

	_, err := svc.CaptureSnapshot(context.Background())
	require.Error(t, err)
	assert.Empty(t, store.saved)
}

func TestLowStockSummaryListsItems(t *testing.T) {
	store := &fakeStore{
		lowStockFn: func() ([]models.Item, error) {
			return []models.Item{
				{Name: "Bolt", ItemCode: "B1", Quantity: 3},
				{Name: "Nut", ItemCode: "N1", Quantity: 7},
			}, nil
		},
	}
	svc := NewService(store, nil, nil)

	summary, err := svc.LowStockSummary(context.Background())
	require.NoError(t, err)
	assert.Contains(t, summary, "2 item(s)")
	assert.Contains(t, summary, "Bolt (B1): 3 left")
	assert.Contains(t, summary, "Nut (N1): 7 left")
}

func TestLowStockSummaryEmpty(t *testing.T) {
	svc := NewService(&fakeStore{}, nil, nil)

	summary, err := svc.LowStockSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Low stock: all items above threshold.", summary)
}
