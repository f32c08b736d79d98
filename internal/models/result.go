package models

import "encoding/json"

// ResultKind tags which half of a SearchResult is populated.
type ResultKind string

// ResultKind enum values.
const (
	ResultSuccess ResultKind = "success"
	ResultError   ResultKind = "error"
)

// SearchResult is the outcome of one search: either an ordered list of
// recipes (possibly empty) or an error message, never both.
type SearchResult struct {
	Kind    ResultKind `json:"kind"`
	Recipes []Recipe   `json:"recipes,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// NewSuccess builds a success result.
func NewSuccess(recipes []Recipe) SearchResult {
	if recipes == nil {
		recipes = []Recipe{}
	}
	return SearchResult{Kind: ResultSuccess, Recipes: recipes}
}

// NewError builds an error result.
func NewError(message string) SearchResult {
	return SearchResult{Kind: ResultError, Error: message}
}

// IsSuccess reports whether the result carries recipes.
func (r SearchResult) IsSuccess() bool {
	return r.Kind == ResultSuccess
}

// MarshalJSON emits only the populated half, and always emits "recipes" for
// a success so zero matches read as [] rather than a missing field.
func (r SearchResult) MarshalJSON() ([]byte, error) {
	if r.IsSuccess() {
		recipes := r.Recipes
		if recipes == nil {
			recipes = []Recipe{}
		}
		return json.Marshal(struct {
			Kind    ResultKind `json:"kind"`
			Recipes []Recipe   `json:"recipes"`
		}{r.Kind, recipes})
	}
	return json.Marshal(struct {
		Kind  ResultKind `json:"kind"`
		Error string     `json:"error"`
	}{r.Kind, r.Error})
}
