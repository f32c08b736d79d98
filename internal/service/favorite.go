package service

import (
	"fmt"

	"github.com/yummiapp/yummi-api/internal/logger"
	"github.com/yummiapp/yummi-api/internal/models"
	"github.com/yummiapp/yummi-api/internal/repository"
	"github.com/yummiapp/yummi-api/internal/state"
	"go.uber.org/zap"
)

// FavoriteService toggles and lists favorite recipes.
type FavoriteService struct {
	Repo  repository.FavoriteRepo
	Store *state.Store
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(repo repository.FavoriteRepo, store *state.Store) *FavoriteService {
	return &FavoriteService{Repo: repo, Store: store}
}

// ToggleFavorite flips the favorite flag of a recipe in the current batch,
// or of a previously saved favorite, and persists the change. The updated
// recipe is returned.
func (s *FavoriteService) ToggleFavorite(recipeID string) (models.Recipe, error) {
	recipe, ok := s.Store.FindByID(recipeID)
	if !ok {
		fav, err := s.Repo.GetFavoriteByRecipeID(recipeID)
		if err != nil {
			return models.Recipe{}, err
		}
		recipe = fav.ToRecipe()
	}

	updated := recipe.WithFavorited(!recipe.IsFavorited)
	if updated.IsFavorited {
		if err := s.Repo.CreateFavorite(models.NewFavorite(updated)); err != nil {
			return models.Recipe{}, fmt.Errorf("failed to save favorite: %w", err)
		}
	} else {
		if err := s.Repo.DeleteFavoriteByRecipeID(recipeID); err != nil {
			return models.Recipe{}, fmt.Errorf("failed to remove favorite: %w", err)
		}
	}

	s.Store.UpdateRecipe(updated)

	logger.Get().Info("favorite toggled",
		zap.String("recipe_id", recipeID),
		zap.Bool("favorited", updated.IsFavorited),
	)
	return updated, nil
}

// ListFavorites returns every saved favorite, oldest first.
func (s *FavoriteService) ListFavorites() ([]models.Recipe, error) {
	favorites, err := s.Repo.ListFavorites()
	if err != nil {
		return nil, err
	}
	recipes := make([]models.Recipe, 0, len(favorites))
	for i := range favorites {
		recipes = append(recipes, favorites[i].ToRecipe())
	}
	return recipes, nil
}
