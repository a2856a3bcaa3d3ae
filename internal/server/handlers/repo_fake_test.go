package handlers

import (
	"context"

	"github.com/sbdiallo/stockboard/internal/domain/models"
	"github.com/sbdiallo/stockboard/internal/repository/mongodb"
)

// fakeItemRepo implements mongodb.ItemRepository with pluggable behavior.
type fakeItemRepo struct {
	listFn    func(query mongodb.ItemQuery) ([]models.Item, int64, error)
	getFn     func(id string) (*models.Item, error)
	createFn  func(draft models.ItemDraft) (string, error)
	updateFn  func(id string, draft models.ItemDraft) error
	deleteFn  func(id string) error
	statsFn   func() (*models.StatsReport, error)
	lowStock  func() ([]models.Item, error)
	listCalls []mongodb.ItemQuery
}

func (f *fakeItemRepo) List(ctx context.Context, query mongodb.ItemQuery) ([]models.Item, int64, error) {
	f.listCalls = append(f.listCalls, query)
	if f.listFn == nil {
		return nil, 0, nil
	}
	return f.listFn(query)
}

func (f *fakeItemRepo) GetByID(ctx context.Context, id string) (*models.Item, error) {
	if f.getFn == nil {
		return nil, mongodb.ErrItemNotFound
	}
	return f.getFn(id)
}

func (f *fakeItemRepo) Create(ctx context.Context, draft models.ItemDraft) (string, error) {
	if f.createFn == nil {
		return "new-id", nil
	}
	return f.createFn(draft)
}

func (f *fakeItemRepo) Update(ctx context.Context, id string, draft models.ItemDraft) error {
	if f.updateFn == nil {
		return nil
	}
	return f.updateFn(id, draft)
}

func (f *fakeItemRepo) Delete(ctx context.Context, id string) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(id)
}

func (f *fakeItemRepo) Stats(ctx context.Context) (*models.StatsReport, error) {
	if f.statsFn == nil {
		return &models.StatsReport{}, nil
	}
	return f.statsFn()
}

func (f *fakeItemRepo) LowStock(ctx context.Context) ([]models.Item, error) {
	if f.lowStock == nil {
		return nil, nil
	}
	return f.lowStock()
}

// fakeUserRepo implements mongodb.UserRepository.
type fakeUserRepo struct {
	createFn func(user models.User) (string, error)
	findFn   func(email string) (*models.User, error)
	created  []models.User
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user models.User) (string, error) {
	f.created = append(f.created, user)
	if f.createFn == nil {
		return "user-id", nil
	}
	return f.createFn(user)
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.findFn == nil {
		return nil, nil
	}
	return f.findFn(email)
}
