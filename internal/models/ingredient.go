package models

import "gorm.io/gorm"

// Ingredient is one shopping-list entry.
type Ingredient struct {
	gorm.Model
	Name      string `gorm:"not null"`
	IsChecked bool   `gorm:"default:false"`
}

// IngredientResponse is the API representation of an Ingredient.
type IngredientResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	IsChecked bool   `json:"is_checked"`
}

// ToResponse converts an Ingredient to its API representation.
func (i *Ingredient) ToResponse() IngredientResponse {
	return IngredientResponse{ID: i.ID, Name: i.Name, IsChecked: i.IsChecked}
}
