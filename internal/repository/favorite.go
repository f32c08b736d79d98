package repository

import (
	"errors"

	"github.com/yummiapp/yummi-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavoriteRepository is a repository for interacting with favorites.
type FavoriteRepository struct {
	DB *gorm.DB
}

// NewFavoriteRepository creates a new FavoriteRepository.
func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{DB: db}
}

// CreateFavorite saves a favorite. Saving the same recipe twice is a no-op.
func (r *FavoriteRepository) CreateFavorite(favorite *models.Favorite) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "recipe_id"}},
		DoNothing: true,
	}).Create(favorite).Error
}

// GetFavoriteByRecipeID retrieves a favorite by the recipe ID it was saved under.
func (r *FavoriteRepository) GetFavoriteByRecipeID(recipeID string) (*models.Favorite, error) {
	var favorite models.Favorite
	err := r.DB.Where("recipe_id = ?", recipeID).First(&favorite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError{message: "Favorite not found"}
		}
		return nil, err
	}
	return &favorite, nil
}

// DeleteFavoriteByRecipeID removes a favorite. The row is hard-deleted so
// the recipe can be favorited again under the same unique ID.
func (r *FavoriteRepository) DeleteFavoriteByRecipeID(recipeID string) error {
	return r.DB.Unscoped().Where("recipe_id = ?", recipeID).Delete(&models.Favorite{}).Error
}

// ListFavorites returns all favorites, oldest first.
func (r *FavoriteRepository) ListFavorites() ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := r.DB.Order("created_at ASC, id ASC").Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}
