package dashboard

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/sbdiallo/stockboard/internal/domain/models"
	"github.com/sbdiallo/stockboard/pkg/clients/inventory"
)

const fetchStatsFailedMsg = "Failed to fetch statistics"

// StatsCoordinator fetches and holds the aggregate inventory report. It is
// read-only: no mutation operations, and it does not watch the refresh token.
// The report is fetched once per view activation, so statistics can lag
// behind mutations until the view is re-entered.
type StatsCoordinator struct {
	client inventory.Client
	logger *zap.Logger

	mu      sync.Mutex
	report  *models.StatsReport
	errMsg  string
	pending bool
}

// CategoryBar is one row of the per-category breakdown with its precomputed
// bar width.
type CategoryBar struct {
	Label   string
	Count   int
	Percent float64
}

// StatsState is a point-in-time copy of the stats view state.
type StatsState struct {
	Report  *models.StatsReport
	Bars    []CategoryBar
	Err     string
	Pending bool
}

// NewStatsCoordinator wires a stats coordinator.
func NewStatsCoordinator(client inventory.Client, logger *zap.Logger) *StatsCoordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsCoordinator{client: client, logger: logger}
}

// Fetch loads the aggregate report. On failure the previous report is
// dropped: unlike the list there is no last-known-good fallback, the view
// shows the error and nothing else.
func (c *StatsCoordinator) Fetch(ctx context.Context) {
	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return
	}
	c.pending = true
	c.mu.Unlock()

	report, err := c.client.GetStats(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = false

	if err != nil {
		c.report = nil
		c.errMsg = fetchStatsFailedMsg
		c.logger.Warn("stats fetch failed", zap.Error(err))
		return
	}

	c.report = report
	c.errMsg = ""
}

// Snapshot returns a copy of the current stats state with bar widths
// computed.
func (c *StatsCoordinator) Snapshot() StatsState {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := StatsState{Err: c.errMsg, Pending: c.pending}
	if c.report == nil {
		return state
	}

	report := *c.report
	state.Report = &report
	state.Bars = make([]CategoryBar, 0, len(report.Categories))
	for _, cat := range report.Categories {
		state.Bars = append(state.Bars, CategoryBar{
			Label:   cat.Label,
			Count:   cat.Count,
			Percent: categoryPercent(cat.Count, report.TotalItems),
		})
	}
	return state
}

// categoryPercent computes the bar width for a category. An empty inventory
// yields 0, never a NaN or infinity, and the result is clamped to [0, 100].
func categoryPercent(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	pct := float64(count) / float64(total) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
