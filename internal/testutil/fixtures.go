package testutil

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
)

// TestImageURL is the image the default image stub resolves for every title.
const TestImageURL = "https://images.pexels.com/photos/1279330/pexels-photo-1279330.jpeg"

// RecipeRecord mirrors one element of the recipe API response.
type RecipeRecord struct {
	Title        string `json:"title"`
	Ingredients  string `json:"ingredients"`
	Servings     string `json:"servings"`
	Instructions string `json:"instructions"`
}

// PastaRecord returns the single record used by the basic search scenario.
func PastaRecord() RecipeRecord {
	return RecipeRecord{
		Title:        "Emerald Pea Pasta",
		Ingredients:  "1 lb pasta|2 cups peas|1 lemon",
		Servings:     "4",
		Instructions: "Cook pasta. Blend peas with lemon. Toss together.",
	}
}

// MixedServingRecords returns records with several distinct serving values,
// including the non-numeric "6+" and a "6" that must not match it.
func MixedServingRecords() []RecipeRecord {
	return []RecipeRecord{
		{Title: "Chicken Soup", Servings: "4"},
		{Title: "Chicken Curry", Servings: "6+"},
		{Title: "Chicken Wraps", Servings: "2"},
		{Title: "Roast Chicken", Servings: "6"},
		{Title: "Chicken Salad", Servings: "4"},
	}
}

// RecipeJSON encodes records the way the recipe API returns them.
func RecipeJSON(records ...RecipeRecord) []byte {
	if records == nil {
		records = []RecipeRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		panic(fmt.Sprintf("failed to encode fixture: %v", err))
	}
	return data
}

// SequentialIDs returns an ID generator yielding "id-1", "id-2", ...
func SequentialIDs() func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("id-%d", n.Add(1))
	}
}
