package repository

import "github.com/yummiapp/yummi-api/internal/models"

// FavoriteRepo is the interface for favorite repository operations.
type FavoriteRepo interface {
	CreateFavorite(favorite *models.Favorite) error
	GetFavoriteByRecipeID(recipeID string) (*models.Favorite, error)
	DeleteFavoriteByRecipeID(recipeID string) error
	ListFavorites() ([]models.Favorite, error)
}

// ShoppingRepo is the interface for shopping-list repository operations.
type ShoppingRepo interface {
	CreateItem(item *models.Ingredient) error
	GetItemByID(itemID uint) (*models.Ingredient, error)
	SetItemChecked(itemID uint, checked bool) (*models.Ingredient, error)
	ListItems(includeChecked bool) ([]models.Ingredient, error)
	DeleteCheckedItems() (int64, error)
}
