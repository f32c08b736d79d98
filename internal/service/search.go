package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yummiapp/yummi-api/internal/config"
	"github.com/yummiapp/yummi-api/internal/logger"
	"github.com/yummiapp/yummi-api/internal/models"
	"github.com/yummiapp/yummi-api/internal/provider"
	"github.com/yummiapp/yummi-api/internal/state"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrStaleSearch is returned when a newer search began before this one
// could publish its result.
var ErrStaleSearch = errors.New("search superseded by a newer search")

// ParseError is returned when the recipe API response cannot be decoded
// into recipe records.
type ParseError struct {
	Cause error
}

// Error returns the error message.
func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse recipe response: %v", e.Cause)
}

// Unwrap returns the underlying decode error.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// recipeRecord is one element of the recipe API's JSON array.
type recipeRecord struct {
	Title        *string `json:"title"`
	Ingredients  string  `json:"ingredients"`
	Servings     string  `json:"servings"`
	Instructions string  `json:"instructions"`
}

// SearchService runs recipe searches, enriches results with images and
// publishes them to the state store.
type SearchService struct {
	Cfg            *config.Config
	RecipeProvider provider.RecipeProvider
	ImageProvider  provider.ImageProvider
	Store          *state.Store
	NewID          func() string
}

// NewSearchService creates a new SearchService.
func NewSearchService(cfg *config.Config, recipeProvider provider.RecipeProvider, imageProvider provider.ImageProvider, store *state.Store) *SearchService {
	return &SearchService{
		Cfg:            cfg,
		RecipeProvider: recipeProvider,
		ImageProvider:  imageProvider,
		Store:          store,
		NewID:          uuid.NewString,
	}
}

// Search runs a free-text search and publishes the result. It does not arm
// the navigation signal.
func (s *SearchService) Search(ctx context.Context, query string) (models.SearchResult, error) {
	return s.run(ctx, query, nil, "")
}

// SearchByPreference searches by a single ingredient, optionally keeping
// only recipes whose servings equal servings exactly. An empty servings
// value means no filter. On success the navigation signal is armed with
// the ingredient.
func (s *SearchService) SearchByPreference(ctx context.Context, ingredient, servings string) (models.SearchResult, error) {
	ingredient = strings.TrimSpace(ingredient)
	if ingredient == "" {
		return models.SearchResult{}, &ValidationError{message: "an ingredient is required"}
	}

	var filter *string
	if servings != "" {
		filter = &servings
	}
	return s.run(ctx, ingredient, filter, ingredient)
}

func (s *SearchService) run(ctx context.Context, query string, servingFilter *string, navigateTo string) (models.SearchResult, error) {
	searchCtx, gen := s.Store.Begin(ctx)

	result := s.Enrich(searchCtx, query, servingFilter)

	// An abandoned request must not publish what its cancellation produced.
	if err := ctx.Err(); err != nil {
		logger.Get().Info("discarding search abandoned by caller",
			zap.String("query", query),
			zap.Uint64("generation", gen),
			zap.Error(err),
		)
		return models.SearchResult{}, err
	}

	if !s.Store.Commit(gen, result, navigateTo) {
		logger.Get().Info("discarding superseded search",
			zap.String("query", query),
			zap.Uint64("generation", gen),
		)
		return result, ErrStaleSearch
	}
	return result, nil
}

// Enrich fetches recipes for query, applies the optional serving filter,
// assigns IDs and resolves images concurrently. Output order matches the
// filtered upstream order. It never touches the store.
func (s *SearchService) Enrich(ctx context.Context, query string, servingFilter *string) models.SearchResult {
	log := logger.With(zap.String("query", query))
	start := time.Now()

	body, err := s.RecipeProvider.SearchRecipes(ctx, query)
	if err != nil {
		log.Warn("recipe search failed", zap.Error(err))
		return models.NewError(errorMessage(err))
	}

	records, err := parseRecipeRecords(body)
	if err != nil {
		log.Warn("recipe response could not be parsed", zap.Error(err))
		return models.NewError(errorMessage(err))
	}

	if servingFilter != nil {
		records = filterByServings(records, *servingFilter)
	}

	recipes := make([]models.Recipe, len(records))
	g := new(errgroup.Group)
	if limit := s.maxImageLookups(); limit > 0 {
		g.SetLimit(limit)
	}
	for i, rec := range records {
		recipes[i] = models.Recipe{
			ID:           s.NewID(),
			Title:        *rec.Title,
			Ingredients:  rec.Ingredients,
			Servings:     rec.Servings,
			Instructions: rec.Instructions,
			ImageURL:     models.DefaultImageURL,
		}
		i := i
		g.Go(func() error {
			if url, ok := s.ImageProvider.FetchImage(ctx, recipes[i].Title); ok && url != "" {
				recipes[i].ImageURL = url
			}
			return nil
		})
	}
	// Lookups never return errors; Wait is a barrier.
	_ = g.Wait()

	log.Info("recipe search completed",
		zap.Int("results", len(recipes)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return models.NewSuccess(recipes)
}

func (s *SearchService) maxImageLookups() int {
	if s.Cfg == nil {
		return 0
	}
	return s.Cfg.EnvVars.MaxImageLookups
}

// parseRecipeRecords decodes the recipe API body. Anything other than a JSON
// array of objects each carrying a title fails the whole batch.
func parseRecipeRecords(body []byte) ([]recipeRecord, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &ParseError{Cause: errors.New("response is not a JSON array")}
	}

	var records []recipeRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, &ParseError{Cause: err}
	}
	for i, rec := range records {
		if rec.Title == nil {
			return nil, &ParseError{Cause: fmt.Errorf("record %d is missing a title", i)}
		}
	}
	return records, nil
}

// filterByServings keeps records whose servings equal want exactly.
func filterByServings(records []recipeRecord, want string) []recipeRecord {
	filtered := make([]recipeRecord, 0, len(records))
	for _, rec := range records {
		if rec.Servings == want {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// errorMessage renders a search failure as the single human-readable string
// stored in the error state.
func errorMessage(err error) string {
	var netErr *provider.NetworkError
	if errors.As(err, &netErr) && netErr.StatusCode != 0 {
		return fmt.Sprintf("Failed to get data. Error code: %d", netErr.StatusCode)
	}
	if errors.As(err, &netErr) && netErr.Cause != nil {
		cause := netErr.Cause
		// Keep the upstream URL, which carries the query, out of the state.
		var urlErr *url.Error
		if errors.As(cause, &urlErr) {
			cause = urlErr.Err
		}
		return "Error: " + cause.Error()
	}
	return "Error: " + err.Error()
}
