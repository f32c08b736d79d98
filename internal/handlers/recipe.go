package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yummiapp/yummi-api/internal/logger"
	"github.com/yummiapp/yummi-api/internal/repository"
	"github.com/yummiapp/yummi-api/internal/service"
	"github.com/yummiapp/yummi-api/internal/state"
	"go.uber.org/zap"
)

// RecipeHandler is the handler for recipe detail and favorite requests.
type RecipeHandler struct {
	Store     *state.Store
	Favorites *service.FavoriteService
}

// NewRecipeHandler is the constructor function for initializing a new RecipeHandler.
func NewRecipeHandler(store *state.Store, favorites *service.FavoriteService) *RecipeHandler {
	return &RecipeHandler{Store: store, Favorites: favorites}
}

// GetRecipe returns a recipe of the current result batch by ID.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipeID := c.Param("recipe_id")

	recipe, ok := h.Store.FindByID(recipeID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// ToggleFavorite flips the favorite flag of a recipe.
func (h *RecipeHandler) ToggleFavorite(c *gin.Context) {
	recipeID := c.Param("recipe_id")

	recipe, err := h.Favorites.ToggleFavorite(recipeID)
	if err != nil {
		var notFound repository.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		logger.FromGin(c).Error("failed to toggle favorite", zap.String("recipe_id", recipeID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// ListFavorites returns every saved favorite.
func (h *RecipeHandler) ListFavorites(c *gin.Context) {
	recipes, err := h.Favorites.ListFavorites()
	if err != nil {
		logger.FromGin(c).Error("failed to list favorites", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list favorites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}
