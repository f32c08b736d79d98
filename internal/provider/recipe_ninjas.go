package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/yummiapp/yummi-api/internal/logger"
	"go.uber.org/zap"
)

// RecipeNinjasProvider implements RecipeProvider against the API Ninjas
// recipe endpoint published through RapidAPI.
type RecipeNinjasProvider struct {
	apiKey     string
	apiHost    string
	baseURL    string
	httpClient *http.Client
}

// NewRecipeNinjasProvider creates a recipe provider. The HTTP client is
// owned by the caller and may be shared with other providers.
func NewRecipeNinjasProvider(httpClient *http.Client, baseURL, apiKey, apiHost string) *RecipeNinjasProvider {
	return &RecipeNinjasProvider{
		apiKey:     apiKey,
		apiHost:    apiHost,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// SearchRecipes issues one GET /v1/recipe?query=... and returns the raw
// response body. The query is sent as-is; no retries are attempted.
func (p *RecipeNinjasProvider) SearchRecipes(ctx context.Context, query string) ([]byte, error) {
	params := url.Values{}
	params.Set("query", query)

	reqURL := fmt.Sprintf("%s/v1/recipe?%s", p.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create recipe request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", p.apiKey)
	req.Header.Set("X-RapidAPI-Host", p.apiHost)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Upstream: "recipe API", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Upstream: "recipe API", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Get().Warn("recipe API returned non-success status",
			zap.String("query", query),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &NetworkError{Upstream: "recipe API", StatusCode: resp.StatusCode}
	}

	return body, nil
}
