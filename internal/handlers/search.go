package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yummiapp/yummi-api/internal/config"
	"github.com/yummiapp/yummi-api/internal/logger"
	"github.com/yummiapp/yummi-api/internal/models"
	"github.com/yummiapp/yummi-api/internal/service"
	"go.uber.org/zap"
)

// statusClientClosedRequest reports a request the client abandoned.
const statusClientClosedRequest = 499

// SearchHandler handles recipe search requests.
type SearchHandler struct {
	Service *service.SearchService
	Presets *config.Presets
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searchService *service.SearchService, presets *config.Presets) *SearchHandler {
	return &SearchHandler{Service: searchService, Presets: presets}
}

// SearchRecipes handles GET /v1/recipes/search?query=...
func (h *SearchHandler) SearchRecipes(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'query' is required"})
		return
	}

	result, err := h.Service.Search(c.Request.Context(), query)
	respondWithResult(c, result, err, zap.String("query", query))
}

// SearchByPreference handles GET /v1/recipes/search/preference?ingredient=...&servings=...
func (h *SearchHandler) SearchByPreference(c *gin.Context) {
	ingredient := c.Query("ingredient")
	servings := c.Query("servings")

	if servings != "" && !h.Presets.HasServing(servings) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported servings value"})
		return
	}

	if name := strings.TrimSpace(ingredient); name != "" && !h.Presets.HasIngredient(name) {
		logger.FromGin(c).Info("preference search with off-preset ingredient", zap.String("ingredient", ingredient))
	}

	result, err := h.Service.SearchByPreference(c.Request.Context(), ingredient, servings)
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
		return
	}
	respondWithResult(c, result, err,
		zap.String("ingredient", ingredient),
		zap.String("servings", servings),
	)
}

// GetPresets handles GET /v1/search/presets.
func (h *SearchHandler) GetPresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": h.Presets})
}

// respondWithResult maps a finished search onto the response: 200 for a
// success, 502 for an upstream failure, 409 when a newer search won and
// 499 or 504 when the caller's context ended first.
func respondWithResult(c *gin.Context, result models.SearchResult, err error, fields ...zap.Field) {
	log := logger.FromGin(c).With(fields...)

	if errors.Is(err, context.Canceled) {
		log.Info("search abandoned by client")
		c.JSON(statusClientClosedRequest, gin.H{"error": "Request cancelled"})
		return
	}
	if errors.Is(err, context.DeadlineExceeded) {
		log.Warn("search timed out")
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Search timed out"})
		return
	}
	if errors.Is(err, service.ErrStaleSearch) {
		log.Info("search superseded")
		c.JSON(http.StatusConflict, gin.H{"error": "Search superseded by a newer search"})
		return
	}
	if err != nil {
		log.Error("search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search recipes"})
		return
	}

	if !result.IsSuccess() {
		log.Warn("search returned an error result", zap.String("error", result.Error))
		c.JSON(http.StatusBadGateway, gin.H{"result": result})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}
