package models

// DefaultImageURL is the placeholder image used when enrichment resolves
// nothing for a recipe.
const DefaultImageURL = "default_image_url"

// Recipe is one dish returned by a search, plus its locally assigned ID and
// resolved image.
type Recipe struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Ingredients  string `json:"ingredients"`
	Servings     string `json:"servings"`
	Instructions string `json:"instructions"`
	ImageURL     string `json:"image_url"`
	IsFavorited  bool   `json:"is_favorited"`
}

// WithFavorited returns a copy of the recipe with IsFavorited set.
func (r Recipe) WithFavorited(favorited bool) Recipe {
	r.IsFavorited = favorited
	return r
}
