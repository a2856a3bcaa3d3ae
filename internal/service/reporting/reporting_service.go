package reporting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sbdiallo/stockboard/internal/domain/models"
	"github.com/sbdiallo/stockboard/internal/repository/sheets"
)

const dateLayout = "2006-01-02"

// Store is the persistence surface the reporting service needs.
type Store interface {
	Stats(ctx context.Context) (*models.StatsReport, error)
	LowStock(ctx context.Context) ([]models.Item, error)
	SaveSnapshot(ctx context.Context, snapshot models.InventorySnapshot) error
}

// Service produces scheduled inventory snapshots: a persisted copy of the
// aggregate report plus an optional row appended to a spreadsheet.
type Service struct {
	store    Store
	exporter sheets.Exporter
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new reporting service instance. exporter may be nil when
// the sheets export is not configured.
func NewService(store Store, exporter sheets.Exporter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		exporter: exporter,
		logger:   logger,
		now:      time.Now,
	}
}

// CaptureSnapshot computes the current aggregate report and persists it as a
// snapshot. A failed sheets export does not fail the snapshot; the persisted
// copy is the source of truth.
func (s *Service) CaptureSnapshot(ctx context.Context) (*models.InventorySnapshot, error) {
	report, err := s.store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("compute stats for snapshot: %w", err)
	}

	now := s.now().UTC()
	snapshot := models.InventorySnapshot{
		Date:          now.Truncate(24 * time.Hour),
		TotalItems:    report.TotalItems,
		LowStockItems: report.LowStockItems,
		TotalValue:    report.TotalValue,
		Categories:    report.Categories,
		CreatedAt:     now,
	}

	if err := s.store.SaveSnapshot(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("persist snapshot: %w", err)
	}

	if s.exporter != nil {
		row := []interface{}{
			snapshot.Date.Format(dateLayout),
			snapshot.TotalItems,
			snapshot.LowStockItems,
			snapshot.TotalValue,
			len(snapshot.Categories),
		}
		if err := s.exporter.AppendSnapshotRow(ctx, row); err != nil {
			s.logger.Warn("sheets export failed", zap.Error(err))
		}
	}

	s.logger.Info("inventory snapshot captured",
		zap.Int("total_items", snapshot.TotalItems),
		zap.Int("low_stock_items", snapshot.LowStockItems),
		zap.Float64("total_value", snapshot.TotalValue))

	return &snapshot, nil
}

// LowStockSummary formats a short operator-readable summary of the items at
// or below the low-stock threshold.
func (s *Service) LowStockSummary(ctx context.Context) (string, error) {
	items, err := s.store.LowStock(ctx)
	if err != nil {
		return "", fmt.Errorf("load low stock items: %w", err)
	}

	if len(items) == 0 {
		return "Low stock: all items above threshold.", nil
	}

	summary := fmt.Sprintf("Low stock: %d item(s) at or below %d units.", len(items), models.LowStockThreshold)
	for _, item := range items {
		summary += fmt.Sprintf("\n- %s (%s): %d left", item.Name, item.ItemCode, item.Quantity)
	}
	return summary, nil
}
