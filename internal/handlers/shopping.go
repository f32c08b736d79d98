package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yummiapp/yummi-api/internal/logger"
	"github.com/yummiapp/yummi-api/internal/models"
	"github.com/yummiapp/yummi-api/internal/repository"
	"github.com/yummiapp/yummi-api/internal/service"
	"go.uber.org/zap"
)

// ShoppingHandler handles shopping list requests.
type ShoppingHandler struct {
	Service *service.ShoppingService
}

// NewShoppingHandler creates a new ShoppingHandler.
func NewShoppingHandler(shoppingService *service.ShoppingService) *ShoppingHandler {
	return &ShoppingHandler{Service: shoppingService}
}

// ListItems returns unchecked items, or all items with ?all=true.
func (h *ShoppingHandler) ListItems(c *gin.Context) {
	includeChecked := c.Query("all") == "true"

	items, err := h.Service.ListItems(includeChecked)
	if err != nil {
		logger.FromGin(c).Error("failed to list shopping items", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list shopping items"})
		return
	}

	resp := make([]models.IngredientResponse, 0, len(items))
	for i := range items {
		resp = append(resp, items[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"items": resp})
}

// AddItem adds a new item to the list.
func (h *ShoppingHandler) AddItem(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	item, err := h.Service.AddItem(req.Name)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}
		logger.FromGin(c).Error("failed to add shopping item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add shopping item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item.ToResponse()})
}

// CheckItem marks an item as bought.
func (h *ShoppingHandler) CheckItem(c *gin.Context) {
	itemID, err := parseUintParam(c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	item, err := h.Service.CheckItem(itemID)
	if err != nil {
		var notFound repository.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shopping item not found"})
			return
		}
		logger.FromGin(c).Error("failed to check shopping item", zap.Uint("item_id", itemID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check shopping item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item.ToResponse()})
}

// ClearChecked removes every checked item.
func (h *ShoppingHandler) ClearChecked(c *gin.Context) {
	removed, err := h.Service.ClearChecked()
	if err != nil {
		logger.FromGin(c).Error("failed to clear checked items", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear checked items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
