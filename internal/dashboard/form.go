package dashboard

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/sbdiallo/stockboard/internal/domain/models"
	"github.com/sbdiallo/stockboard/pkg/clients/inventory"
)

const saveItemFailedMsg = "Failed to save item"

// FormMode distinguishes creating a new item from editing an existing one.
type FormMode string

const (
	ModeCreate FormMode = "create"
	ModeEdit   FormMode = "edit"
)

// FormCoordinator edits exactly one item draft. Submission dispatches a
// create or update depending on mode; while a submission is in flight the
// coordinator refuses re-entry. On success it notifies the orchestrator; on
// failure the entered values stay intact and the error is kept for display.
type FormCoordinator struct {
	client    inventory.Client
	onSuccess func(ctx context.Context)
	logger    *zap.Logger

	mu         sync.Mutex
	mode       FormMode
	itemID     string
	draft      models.ItemDraft
	submitting bool
	errMsg     string
}

// FormState is a point-in-time copy of the form view state.
type FormState struct {
	Mode       FormMode
	ItemID     string
	Draft      models.ItemDraft
	Submitting bool
	Err        string
}

// NewFormCoordinator wires a form coordinator. onSuccess runs after a
// successful submission; the orchestrator uses it to bump the refresh token
// and return to the list.
func NewFormCoordinator(client inventory.Client, onSuccess func(ctx context.Context), logger *zap.Logger) *FormCoordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &FormCoordinator{
		client:    client,
		onSuccess: onSuccess,
		logger:    logger,
	}
	f.resetLocked()
	return f
}

// BeginCreate resets the draft to its defaults for a new item.
func (f *FormCoordinator) BeginCreate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
}

// BeginEdit seeds the draft from an existing item. Field values are copied
// verbatim, so a genuine zero price or quantity survives the round trip; only
// an out-of-set category falls back to the default. MinStock is trusted as
// stored since creation already applied the default.
func (f *FormCoordinator) BeginEdit(item models.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()

	category := item.Category
	if !category.Valid() {
		category = models.CategoryElectronics
	}

	f.mode = ModeEdit
	f.itemID = item.ID
	f.draft = models.ItemDraft{
		Name:        item.Name,
		ItemCode:    item.ItemCode,
		Description: item.Description,
		Category:    category,
		Quantity:    item.Quantity,
		Price:       item.Price,
		MinStock:    item.MinStock,
	}
	f.submitting = false
	f.errMsg = ""
}

// SetDraft replaces the entered field values. The mode and target item are
// unaffected.
func (f *FormCoordinator) SetDraft(draft models.ItemDraft) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = draft
}

// Submit dispatches the draft as a create or update. A submission already in
// flight makes Submit a no-op. The draft is not re-validated here; the input
// layer enforces required fields and the server has the final word.
func (f *FormCoordinator) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return nil
	}
	f.submitting = true
	mode := f.mode
	itemID := f.itemID
	draft := f.draft
	f.mu.Unlock()

	var err error
	if mode == ModeEdit {
		err = f.client.UpdateItem(ctx, itemID, draft)
	} else {
		_, err = f.client.CreateItem(ctx, draft)
	}

	f.mu.Lock()
	f.submitting = false
	if err != nil {
		f.errMsg = inventory.ErrorMessage(err, saveItemFailedMsg)
		f.mu.Unlock()
		f.logger.Warn("item submit failed", zap.String("mode", string(mode)), zap.Error(err))
		return err
	}
	f.errMsg = ""
	f.mu.Unlock()

	if f.onSuccess != nil {
		f.onSuccess(ctx)
	}
	return nil
}

// Cancel discards all edits. No network call is made.
func (f *FormCoordinator) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
}

// Snapshot returns a copy of the current form state.
func (f *FormCoordinator) Snapshot() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FormState{
		Mode:       f.mode,
		ItemID:     f.itemID,
		Draft:      f.draft,
		Submitting: f.submitting,
		Err:        f.errMsg,
	}
}

func (f *FormCoordinator) resetLocked() {
	f.mode = ModeCreate
	f.itemID = ""
	f.draft = models.ItemDraft{
		Category: models.CategoryElectronics,
		MinStock: models.DefaultMinStock,
	}
	f.submitting = false
	f.errMsg = ""
}
