package webui

import (
	"github.com/sbdiallo/stockboard/internal/dashboard"
	"github.com/sbdiallo/stockboard/internal/domain/models"
)

// viewModel is the JSON rendering of the dashboard: the active view, the
// session user and exactly one populated view section.
type viewModel struct {
	View  dashboard.View `json:"view"`
	User  string         `json:"user"`
	Alert string         `json:"alert,omitempty"`
	List  *listView      `json:"list,omitempty"`
	Form  *formView      `json:"form,omitempty"`
	Stats *statsView     `json:"stats,omitempty"`
}

type listRow struct {
	models.Item
	LowStock bool `json:"low_stock"`
}

type listView struct {
	Rows       []listRow         `json:"rows"`
	Search     string            `json:"search"`
	Category   models.Category   `json:"category"`
	Categories []models.Category `json:"categories"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
	CanPrev    bool              `json:"can_prev"`
	CanNext    bool              `json:"can_next"`
	Error      string            `json:"error,omitempty"`
	Pending    bool              `json:"pending"`
}

type formView struct {
	Mode       dashboard.FormMode `json:"mode"`
	ItemID     string             `json:"item_id,omitempty"`
	Draft      models.ItemDraft   `json:"draft"`
	Categories []models.Category  `json:"categories"`
	Submitting bool               `json:"submitting"`
	Error      string             `json:"error,omitempty"`
}

type statsBar struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type statsView struct {
	TotalItems    int        `json:"total_items"`
	LowStockItems int        `json:"low_stock_items"`
	TotalValue    float64    `json:"total_value"`
	Bars          []statsBar `json:"bars"`
	Empty         bool       `json:"empty"`
	Error         string     `json:"error,omitempty"`
	Pending       bool       `json:"pending"`
}

func listViewFrom(state dashboard.ListState) *listView {
	rows := make([]listRow, 0, len(state.Items))
	for _, item := range state.Items {
		rows = append(rows, listRow{Item: item, LowStock: item.LowStock()})
	}

	return &listView{
		Rows:       rows,
		Search:     state.Search,
		Category:   state.Category,
		Categories: models.Categories(),
		Page:       state.Page,
		TotalPages: state.TotalPages,
		CanPrev:    state.CanPrev,
		CanNext:    state.CanNext,
		Error:      state.Err,
		Pending:    state.Pending,
	}
}

func formViewFrom(state dashboard.FormState) *formView {
	return &formView{
		Mode:       state.Mode,
		ItemID:     state.ItemID,
		Draft:      state.Draft,
		Categories: models.Categories(),
		Submitting: state.Submitting,
		Error:      state.Err,
	}
}

func statsViewFrom(state dashboard.StatsState) *statsView {
	view := &statsView{
		Error:   state.Err,
		Pending: state.Pending,
		Empty:   true,
	}

	if state.Report == nil {
		return view
	}

	view.TotalItems = state.Report.TotalItems
	view.LowStockItems = state.Report.LowStockItems
	view.TotalValue = state.Report.TotalValue
	view.Empty = len(state.Bars) == 0

	bars := make([]statsBar, 0, len(state.Bars))
	for _, bar := range state.Bars {
		bars = append(bars, statsBar{Label: bar.Label, Count: bar.Count, Percent: bar.Percent})
	}
	view.Bars = bars

	return view
}
