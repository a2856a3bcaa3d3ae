// Package dashboard implements the view-state core of the inventory
// dashboard: three coordinators (list, form, stats) and the orchestrator that
// decides which of them is active and threads the shared refresh token
// between them.
package dashboard

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/sbdiallo/stockboard/internal/domain/models"
	"github.com/sbdiallo/stockboard/pkg/clients/inventory"
)

// View identifies which of the three mutually exclusive views is active.
type View string

const (
	ViewItems View = "items"
	ViewStats View = "stats"
	ViewForm  View = "form"
)

// Session is the capability handed in by the session layer: who the current
// user is and how to end the session. The core never owns it.
type Session interface {
	CurrentUser() string
	Logout()
}

// Dashboard is the orchestrator. It owns the active view, the transient edit
// target, and the refresh token: a monotonic counter bumped by every
// successful mutation that tells the list coordinator to refetch. It starts
// on the items view and has no terminal state.
type Dashboard struct {
	session Session
	logger  *zap.Logger

	list  *ListCoordinator
	form  *FormCoordinator
	stats *StatsCoordinator

	mu      sync.Mutex
	view    View
	editing *models.Item
	refresh uint64
}

// New wires the orchestrator and its three coordinators around the given
// repository client.
func New(client inventory.Client, session Session, logger *zap.Logger) *Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Dashboard{
		session: session,
		logger:  logger,
		view:    ViewItems,
	}
	d.list = NewListCoordinator(client, d.Invalidate, logger.Named("list"))
	d.form = NewFormCoordinator(client, d.formSucceeded, logger.Named("form"))
	d.stats = NewStatsCoordinator(client, logger.Named("stats"))
	return d
}

// Start performs the initial list fetch for the freshly mounted dashboard.
func (d *Dashboard) Start(ctx context.Context) {
	d.list.Sync(ctx, d.Token())
}

// List exposes the list coordinator for query operations.
func (d *Dashboard) List() *ListCoordinator { return d.list }

// Form exposes the form coordinator.
func (d *Dashboard) Form() *FormCoordinator { return d.form }

// Stats exposes the stats coordinator.
func (d *Dashboard) Stats() *StatsCoordinator { return d.stats }

// View returns the currently active view.
func (d *Dashboard) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.view
}

// Editing returns a copy of the item currently being edited, or nil in
// create mode or outside the form.
func (d *Dashboard) Editing() *models.Item {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.editing == nil {
		return nil
	}
	item := *d.editing
	return &item
}

// Token returns the current refresh token.
func (d *Dashboard) Token() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.refresh
}

// Invalidate bumps the refresh token after a successful mutation and returns
// the new value. The token only ever grows.
func (d *Dashboard) Invalidate() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.refresh++
	return d.refresh
}

// ShowItems activates the items view, refetching if a mutation happened while
// it was inactive.
func (d *Dashboard) ShowItems(ctx context.Context) {
	d.mu.Lock()
	d.view = ViewItems
	token := d.refresh
	d.mu.Unlock()

	d.list.Sync(ctx, token)
}

// ShowStats activates the stats view and fetches a fresh report.
func (d *Dashboard) ShowStats(ctx context.Context) {
	d.mu.Lock()
	d.view = ViewStats
	d.mu.Unlock()

	d.stats.Fetch(ctx)
}

// AddNew opens the form in create mode with no edit target.
func (d *Dashboard) AddNew() {
	d.mu.Lock()
	d.editing = nil
	d.view = ViewForm
	d.mu.Unlock()

	d.form.BeginCreate()
}

// Edit opens the form in edit mode seeded from the given item.
func (d *Dashboard) Edit(item models.Item) {
	d.mu.Lock()
	d.editing = &item
	d.view = ViewForm
	d.mu.Unlock()

	d.form.BeginEdit(item)
}

// SubmitForm stores the entered values and dispatches the submission. On
// success formSucceeded runs; on failure the form view stays active with the
// values and the error retained.
func (d *Dashboard) SubmitForm(ctx context.Context, draft models.ItemDraft) error {
	d.form.SetDraft(draft)
	return d.form.Submit(ctx)
}

// CancelForm discards the form and returns to the items view. No network
// call, no refresh token change.
func (d *Dashboard) CancelForm(ctx context.Context) {
	d.form.Cancel()

	d.mu.Lock()
	d.editing = nil
	d.view = ViewItems
	token := d.refresh
	d.mu.Unlock()

	d.list.Sync(ctx, token)
}

// DeleteItem delegates to the list coordinator.
func (d *Dashboard) DeleteItem(ctx context.Context, id string, confirmed bool) error {
	return d.list.Delete(ctx, id, confirmed)
}

// CurrentUser reports the session's user, or empty when no session capability
// was supplied.
func (d *Dashboard) CurrentUser() string {
	if d.session == nil {
		return ""
	}
	return d.session.CurrentUser()
}

// Logout delegates to the session capability. Ending the session is the
// session layer's responsibility, not the core's.
func (d *Dashboard) Logout() {
	if d.session != nil {
		d.session.Logout()
	}
}

// formSucceeded is the form coordinator's completion hook: clear the edit
// target, return to the items view, bump the refresh token, and let the list
// coordinator refetch exactly once with its current query state.
func (d *Dashboard) formSucceeded(ctx context.Context) {
	d.mu.Lock()
	d.editing = nil
	d.view = ViewItems
	d.refresh++
	token := d.refresh
	d.mu.Unlock()

	d.logger.Debug("form submission applied", zap.Uint64("refresh_token", token))
	d.list.Sync(ctx, token)
}
