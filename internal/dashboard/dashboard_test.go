package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbdiallo/stockboard/internal/domain/models"
	"github.com/sbdiallo/stockboard/pkg/clients/inventory"
)

type fakeSession struct {
	user       string
	logoutCall int
}

func (s *fakeSession) CurrentUser() string { return s.user }
func (s *fakeSession) Logout()             { s.logoutCall++ }

func TestDashboardStartsOnItemsView(t *testing.T) {
	client := &fakeClient{}
	d := New(client, nil, nil)
	d.Start(context.Background())

	assert.Equal(t, ViewItems, d.View())
	assert.Equal(t, 1, client.listCallCount())
	assert.Zero(t, d.Token())
}

func TestAddNewOpensFormInCreateMode(t *testing.T) {
	d := New(&fakeClient{}, nil, nil)
	d.AddNew()

	assert.Equal(t, ViewForm, d.View())
	assert.Nil(t, d.Editing())
	assert.Equal(t, ModeCreate, d.Form().Snapshot().Mode)
}

func TestEditOpensFormSeededFromItem(t *testing.T) {
	d := New(&fakeClient{}, nil, nil)
	item := models.Item{ID: "42", Name: "Bolt", Category: models.CategoryOther}
	d.Edit(item)

	assert.Equal(t, ViewForm, d.View())
	editing := d.Editing()
	require.NotNil(t, editing)
	assert.Equal(t, "42", editing.ID)

	state := d.Form().Snapshot()
	assert.Equal(t, ModeEdit, state.Mode)
	assert.Equal(t, "42", state.ItemID)
	assert.Equal(t, "Bolt", state.Draft.Name)
}

func TestSubmitFormSuccessReturnsToListAndRefetchesOnce(t *testing.T) {
	client := &fakeClient{}
	d := New(client, nil, nil)
	d.Start(context.Background())
	require.Equal(t, 1, client.listCallCount())

	d.AddNew()
	err := d.SubmitForm(context.Background(), models.ItemDraft{
		Name:     "Bolt",
		ItemCode: "B1",
		Category: models.CategoryOther,
		Quantity: 5,
		Price:    1.5,
		MinStock: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, ViewItems, d.View())
	assert.Nil(t, d.Editing())
	assert.Equal(t, uint64(1), d.Token())
	assert.Equal(t, 2, client.listCallCount(), "exactly one refetch after the mutation")
	require.Len(t, client.createCalls, 1)
}

func TestSubmitFormFailureStaysOnForm(t *testing.T) {
	client := &fakeClient{
		createFn: func(draft models.ItemDraft) (*inventory.CreateItemResponse, error) {
			return nil, &inventory.APIError{StatusCode: 400, Message: "Missing required field: name"}
		},
	}
	d := New(client, nil, nil)
	d.Start(context.Background())
	d.AddNew()

	err := d.SubmitForm(context.Background(), models.ItemDraft{Category: models.CategoryOther})

	require.Error(t, err)
	assert.Equal(t, ViewForm, d.View())
	assert.Zero(t, d.Token(), "failed mutation never bumps the refresh token")
	assert.Equal(t, 1, client.listCallCount())
	assert.Equal(t, "Missing required field: name", d.Form().Snapshot().Err)
}

func TestCancelFormReturnsWithoutRefetch(t *testing.T) {
	client := &fakeClient{}
	d := New(client, nil, nil)
	d.Start(context.Background())
	d.Edit(models.Item{ID: "42", Category: models.CategoryOther})

	d.CancelForm(context.Background())

	assert.Equal(t, ViewItems, d.View())
	assert.Nil(t, d.Editing())
	assert.Zero(t, d.Token())
	assert.Equal(t, 1, client.listCallCount(), "token unchanged, so the list does not refetch")
	assert.Empty(t, client.createCalls)
	assert.Empty(t, client.updateCalls)
}

func TestShowStatsFetchesReport(t *testing.T) {
	client := &fakeClient{
		statsFn: func() (*models.StatsReport, error) {
			return &models.StatsReport{TotalItems: 4}, nil
		},
	}
	d := New(client, nil, nil)
	d.ShowStats(context.Background())

	assert.Equal(t, ViewStats, d.View())
	assert.Equal(t, 1, client.statsCalls)
	require.NotNil(t, d.Stats().Snapshot().Report)
}

func TestStatsRefreshedAfterDelete(t *testing.T) {
	total := 5
	client := &fakeClient{
		listFn: func(query inventory.ListQuery) (*models.ListPage, error) {
			return &models.ListPage{Items: makeItems(total), Total: total, Page: 1, Pages: 1}, nil
		},
		statsFn: func() (*models.StatsReport, error) {
			return &models.StatsReport{TotalItems: total}, nil
		},
	}
	d := New(client, nil, nil)
	d.Start(context.Background())

	require.NoError(t, d.DeleteItem(context.Background(), "a", true))
	total = 4

	d.ShowStats(context.Background())
	state := d.Stats().Snapshot()
	require.NotNil(t, state.Report)
	assert.Equal(t, 4, state.Report.TotalItems, "stats view re-fetches on entry")
	assert.Equal(t, uint64(1), d.Token())
}

func TestSwitchingBackToItemsAfterMutationRefetches(t *testing.T) {
	client := &fakeClient{}
	d := New(client, nil, nil)
	d.Start(context.Background())
	require.Equal(t, 1, client.listCallCount())

	d.ShowStats(context.Background())
	d.Invalidate()
	d.ShowItems(context.Background())

	assert.Equal(t, ViewItems, d.View())
	assert.Equal(t, 2, client.listCallCount())

	// Re-entering without a mutation in between does not refetch.
	d.ShowStats(context.Background())
	d.ShowItems(context.Background())
	assert.Equal(t, 2, client.listCallCount())
}

func TestInvalidateIsMonotonic(t *testing.T) {
	d := New(&fakeClient{}, nil, nil)
	prev := d.Token()
	for i := 0; i < 5; i++ {
		next := d.Invalidate()
		assert.Greater(t, next, prev)
		prev = next
	}
}

func TestSessionCapability(t *testing.T) {
	session := &fakeSession{user: "admin"}
	d := New(&fakeClient{}, session, nil)

	assert.Equal(t, "admin", d.CurrentUser())
	d.Logout()
	assert.Equal(t, 1, session.logoutCall)
}

func TestNilSessionIsSafe(t *testing.T) {
	d := New(&fakeClient{}, nil, nil)
	assert.Empty(t, d.CurrentUser())
	assert.NotPanics(t, d.Logout)
}
