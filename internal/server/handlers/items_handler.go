package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sbdiallo/stockboard/internal/domain/models"
	"github.com/sbdiallo/stockboard/internal/repository/mongodb"
)

// ItemsHandler exposes the item CRUD and list endpoints.
type ItemsHandler struct {
	repo   mongodb.ItemRepository
	logger *zap.Logger
}

// NewItemsHandler constructs the HTTP handler adapter.
func NewItemsHandler(repo mongodb.ItemRepository, logger *zap.Logger) *ItemsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItemsHandler{repo: repo, logger: logger}
}

// itemPayload is the inbound item body. Required fields are pointers so a
// missing key can be told apart from a zero value.
type itemPayload struct {
	Name        *string          `json:"name"`
	ItemCode    *string          `json:"item_code"`
	Description *string          `json:"description"`
	Category    *models.Category `json:"category"`
	Quantity    *int             `json:"quantity"`
	Price       *float64         `json:"price"`
	MinStock    *int             `json:"min_stock"`
}

// List handles GET /api/items/ with pagination and filters.
func (h *ItemsHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(models.PageSize)))
	if err != nil || limit < 1 {
		limit = models.PageSize
	}

	query := mongodb.ItemQuery{
		Search:   c.Query("search"),
		Category: models.Category(c.Query("category")),
		Skip:     int64((page - 1) * limit),
		Limit:    int64(limit),
	}

	items, total, err := h.repo.List(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("failed listing items", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error: failed to list items"})
		return
	}

	pages := (total + int64(limit) - 1) / int64(limit)

	c.JSON(http.StatusOK, models.ListPage{
		Items: items,
		Total: int(total),
		Page:  page,
		Pages: int(pages),
	})
}

// Get handles GET /api/items/:id.
func (h *ItemsHandler) Get(c *gin.Context) {
	item, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, mongodb.ErrItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed fetching item", zap.String("item_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error: failed to fetch item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// Create handles POST /api/items/.
func (h *ItemsHandler) Create(c *gin.Context) {
	var payload itemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if missing, ok := payload.missingField(); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required field: " + missing})
		return
	}

	draft := models.ItemDraft{
		Name:        *payload.Name,
		ItemCode:    *payload.ItemCode,
		Category:    *payload.Category,
		Quantity:    *payload.Quantity,
		Price:       *payload.Price,
		MinStock:    models.DefaultMinStock,
	}
	if payload.Description != nil {
		draft.Description = *payload.Description
	}
	if payload.MinStock != nil {
		draft.MinStock = *payload.MinStock
	}

	id, err := h.repo.Create(c.Request.Context(), draft)
	if err != nil {
		h.logger.Error("failed creating item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error: failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Item created successfully",
		"id":      id,
	})
}

// Update handles PUT /api/items/:id. Fields absent from the body keep their
// stored values.
func (h *ItemsHandler) Update(c *gin.Context) {
	var payload itemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	id := c.Param("id")

	existing, err := h.repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, mongodb.ErrItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed loading item for update", zap.String("item_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error: failed to update item"})
		return
	}

	draft := payload.overlay(*existing)

	if err := h.repo.Update(c.Request.Context(), id, draft); err != nil {
		if errors.Is(err, mongodb.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
			return
		}
		h.logger.Error("failed updating item", zap.String("item_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error: failed to update item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item updated successfully"})
}

// Delete handles DELETE /api/items/:id.
func (h *ItemsHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	err := h.repo.Delete(c.Request.Context(), id)
	if errors.Is(err, mongodb.ErrItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed deleting item", zap.String("item_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error: failed to delete item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

func (p itemPayload) missingField() (string, bool) {
	switch {
	case p.Name == nil:
		return "name", false
	case p.ItemCode == nil:
		return "item_code", false
	case p.Category == nil:
		return "category", false
	case p.Quantity == nil:
		return "quantity", false
	case p.Price == nil:
		return "price", false
	}
	return "", true
}

func (p itemPayload) overlay(existing models.Item) models.ItemDraft {
	draft := models.ItemDraft{
		Name:        existing.Name,
		ItemCode:    existing.ItemCode,
		Description: existing.Description,
		Category:    existing.Category,
		Quantity:    existing.Quantity,
		Price:       existing.Price,
		MinStock:    existing.MinStock,
	}

	if p.Name != nil {
		draft.Name = *p.Name
	}
	if p.ItemCode != nil {
		draft.ItemCode = *p.ItemCode
	}
	if p.Description != nil {
		draft.Description = *p.Description
	}
	if p.Category != nil {
		draft.Category = *p.Category
	}
	if p.Quantity != nil {
		draft.Quantity = *p.Quantity
	}
	if p.Price != nil {
		draft.Price = *p.Price
	}
	if p.MinStock != nil {
		draft.MinStock = *p.MinStock
	}

	return draft
}
