package models

import "time"

// CategoryCount is one entry of the per-category breakdown. The wire name of
// the label field follows the aggregation output (`_id`).
type CategoryCount struct {
	Label string `json:"_id" bson:"_id"`
	Count int    `json:"count" bson:"count"`
}

// StatsReport is the server-computed aggregate over the whole inventory.
// Categories are sorted by descending count.
type StatsReport struct {
	TotalItems    int             `json:"total_items"`
	LowStockItems int             `json:"low_stock_items"`
	TotalValue    float64         `json:"total_value"`
	Categories    []CategoryCount `json:"categories"`
}

// InventorySnapshot is a persisted point-in-time copy of the aggregate
// report, written by the scheduled reporting job.
type InventorySnapshot struct {
	Date          time.Time       `bson:"date" json:"date"`
	TotalItems    int             `bson:"total_items" json:"total_items"`
	LowStockItems int             `bson:"low_stock_items" json:"low_stock_items"`
	TotalValue    float64         `bson:"total_value" json:"total_value"`
	Categories    []CategoryCount `bson:"categories" json:"categories"`
	CreatedAt     time.Time       `bson:"created_at" json:"created_at"`
}
