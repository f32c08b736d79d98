package provider

import (
	"context"
	"fmt"
)

// RecipeProvider fetches raw recipe search results from the recipe API.
type RecipeProvider interface {
	SearchRecipes(ctx context.Context, query string) ([]byte, error)
}

// ImageProvider resolves a representative image URL for a recipe title.
// It is best-effort: any failure is reported as ok == false.
type ImageProvider interface {
	FetchImage(ctx context.Context, title string) (url string, ok bool)
}

// NetworkError is returned when an upstream call fails. Exactly one of
// StatusCode (non-2xx response) or Cause (transport failure) is set.
type NetworkError struct {
	Upstream   string
	StatusCode int
	Cause      error
}

// Error returns the error message.
func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s request failed: %v", e.Upstream, e.Cause)
	}
	return fmt.Sprintf("%s returned status %d", e.Upstream, e.StatusCode)
}

// Unwrap exposes the transport error, if any.
func (e *NetworkError) Unwrap() error {
	return e.Cause
}
