package models

import "gorm.io/gorm"

// Favorite is a persisted snapshot of a favorited recipe. It outlives the
// search batch the recipe came from.
type Favorite struct {
	gorm.Model
	RecipeID     string `gorm:"uniqueIndex;not null"`
	Title        string
	Ingredients  string
	Servings     string
	Instructions string
	ImageURL     string
}

// NewFavorite snapshots a recipe for persistence.
func NewFavorite(r Recipe) *Favorite {
	return &Favorite{
		RecipeID:     r.ID,
		Title:        r.Title,
		Ingredients:  r.Ingredients,
		Servings:     r.Servings,
		Instructions: r.Instructions,
		ImageURL:     r.ImageURL,
	}
}

// ToRecipe converts the snapshot back into a favorited Recipe.
func (f *Favorite) ToRecipe() Recipe {
	return Recipe{
		ID:           f.RecipeID,
		Title:        f.Title,
		Ingredients:  f.Ingredients,
		Servings:     f.Servings,
		Instructions: f.Instructions,
		ImageURL:     f.ImageURL,
		IsFavorited:  true,
	}
}
