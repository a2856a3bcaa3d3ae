package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryValid(t *testing.T) {
	for _, category := range Categories() {
		assert.True(t, category.Valid(), string(category))
	}
	assert.False(t, Category("").Valid())
	assert.False(t, Category("Gadgets").Valid())
}

func TestLowStockBoundary(t *testing.T) {
	assert.True(t, Item{Quantity: 0}.LowStock())
	assert.True(t, Item{Quantity: LowStockThreshold}.LowStock())
	assert.False(t, Item{Quantity: LowStockThreshold + 1}.LowStock())
}
