package models

import "time"

// Category is the closed set of item categories used by both the filter UI
// and the item form.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryFurniture   Category = "Furniture"
	CategoryClothing    Category = "Clothing"
	CategoryFood        Category = "Food"
	CategoryOther       Category = "Other"
)

// Categories returns every valid category in display order.
func Categories() []Category {
	return []Category{
		CategoryElectronics,
		CategoryFurniture,
		CategoryClothing,
		CategoryFood,
		CategoryOther,
	}
}

// Valid reports whether c is part of the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryElectronics, CategoryFurniture, CategoryClothing, CategoryFood, CategoryOther:
		return true
	}
	return false
}

const (
	// PageSize is the fixed item-list page size. It is not user-configurable.
	PageSize = 10

	// LowStockThreshold is the quantity at or below which an item counts as
	// low stock, both for the list highlight and the aggregate report. It is
	// intentionally independent of the per-item MinStock field.
	LowStockThreshold = 10

	// DefaultMinStock is applied when an item is created without an explicit
	// minimum stock level.
	DefaultMinStock = 10
)

// Item is a single inventory record.
type Item struct {
	ID          string    `json:"_id" bson:"-"`
	Name        string    `json:"name" bson:"name"`
	ItemCode    string    `json:"item_code" bson:"item_code"`
	Description string    `json:"description" bson:"description"`
	Category    Category  `json:"category" bson:"category"`
	Quantity    int       `json:"quantity" bson:"quantity"`
	Price       float64   `json:"price" bson:"price"`
	MinStock    int       `json:"min_stock" bson:"min_stock"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// LowStock reports whether the item gets the low-stock highlight in the list
// view. This is a presentation rule pinned to LowStockThreshold, not to the
// item's own MinStock.
func (i Item) LowStock() bool {
	return i.Quantity <= LowStockThreshold
}

// ItemDraft carries the editable field set of an item, for create and update
// submissions.
type ItemDraft struct {
	Name        string   `json:"name"`
	ItemCode    string   `json:"item_code"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Quantity    int      `json:"quantity"`
	Price       float64  `json:"price"`
	MinStock    int      `json:"min_stock"`
}

// ListPage is one page of items together with pagination metadata.
type ListPage struct {
	Items []Item `json:"items"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Pages int    `json:"pages"`
}
