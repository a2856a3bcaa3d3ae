package dashboard

import (
	"context"
	"sync"

	"github.com/sbdiallo/stockboard/internal/domain/models"
	"github.com/sbdiallo/stockboard/pkg/clients/inventory"
)

// fakeClient implements inventory.Client with pluggable behavior and call
// recording.
type fakeClient struct {
	mu sync.Mutex

	listFn   func(query inventory.ListQuery) (*models.ListPage, error)
	createFn func(draft models.ItemDraft) (*inventory.CreateItemResponse, error)
	updateFn func(id string, draft models.ItemDraft) error
	deleteFn func(id string) error
	statsFn  func() (*models.StatsReport, error)

	listCalls   []inventory.ListQuery
	createCalls []models.ItemDraft
	updateCalls []updateCall
	deleteCalls []string
	statsCalls  int
}

type updateCall struct {
	id    string
	draft models.ItemDraft
}

func (f *fakeClient) Login(ctx context.Context, req inventory.LoginRequest) (*inventory.LoginResponse, error) {
	return &inventory.LoginResponse{}, nil
}

func (f *fakeClient) ListItems(ctx context.Context, query inventory.ListQuery) (*models.ListPage, error) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, query)
	fn := f.listFn
	f.mu.Unlock()

	if fn == nil {
		return &models.ListPage{Page: query.Page, Pages: 1}, nil
	}
	return fn(query)
}

func (f *fakeClient) GetItem(ctx context.Context, id string) (*models.Item, error) {
	return nil, nil
}

func (f *fakeClient) CreateItem(ctx context.Context, draft models.ItemDraft) (*inventory.CreateItemResponse, error) {
	f.mu.Lock()
	f.createCalls = append(f.createCalls, draft)
	fn := f.createFn
	f.mu.Unlock()

	if fn == nil {
		return &inventory.CreateItemResponse{ID: "new-id"}, nil
	}
	return fn(draft)
}

func (f *fakeClient) UpdateItem(ctx context.Context, id string, draft models.ItemDraft) error {
	f.mu.Lock()
	f.updateCalls = append(f.updateCalls, updateCall{id: id, draft: draft})
	fn := f.updateFn
	f.mu.Unlock()

	if fn == nil {
		return nil
	}
	return fn(id, draft)
}

func (f *fakeClient) DeleteItem(ctx context.Context, id string) error {
	f.mu.Lock()
	f.deleteCalls = append(f.deleteCalls, id)
	fn := f.deleteFn
	f.mu.Unlock()

	if fn == nil {
		return nil
	}
	return fn(id)
}

func (f *fakeClient) GetStats(ctx context.Context) (*models.StatsReport, error) {
	f.mu.Lock()
	f.statsCalls++
	fn := f.statsFn
	f.mu.Unlock()

	if fn == nil {
		return &models.StatsReport{}, nil
	}
	return fn()
}

func (f *fakeClient) listCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listCalls)
}

func (f *fakeClient) lastListCall() inventory.ListQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls[len(f.listCalls)-1]
}

// makeItems builds n items named sequentially.
func makeItems(n int) []models.Item {
	items := make([]models.Item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, models.Item{
			ID:       string(rune('a' + i)),
			Name:     "Item " + string(rune('A'+i)),
			ItemCode: "C" + string(rune('0'+i)),
			Category: models.CategoryOther,
			Quantity: 20 + i,
			Price:    1.5,
			MinStock: models.DefaultMinStock,
		})
	}
	return items
}
