package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/yummiapp/yummi-api/internal/logger"
	"go.uber.org/zap"
)

// PexelsProvider implements ImageProvider using the Pexels photo search API.
type PexelsProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewPexelsProvider creates an image provider. The HTTP client is owned by
// the caller and may be shared with other providers.
func NewPexelsProvider(httpClient *http.Client, baseURL, apiKey string) *PexelsProvider {
	return &PexelsProvider{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type pexelsSearchResponse struct {
	Photos []pexelsPhoto `json:"photos"`
}

type pexelsPhoto struct {
	Src pexelsPhotoSrc `json:"src"`
}

type pexelsPhotoSrc struct {
	Medium string `json:"medium"`
}

// FetchImage returns the medium-size URL of the first photo matching title.
// Failures are logged and reported as ok == false, never as an error.
func (p *PexelsProvider) FetchImage(ctx context.Context, title string) (string, bool) {
	imageURL, err := p.fetchImage(ctx, title)
	if err != nil {
		logger.Get().Debug("image lookup failed", zap.String("title", title), zap.Error(err))
		return "", false
	}
	return imageURL, true
}

func (p *PexelsProvider) fetchImage(ctx context.Context, title string) (string, error) {
	params := url.Values{}
	params.Set("query", title)
	params.Set("per_page", "1")

	reqURL := fmt.Sprintf("%s/v1/search?%s", p.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create pexels request: %w", err)
	}
	req.Header.Set("Authorization", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", &NetworkError{Upstream: "pexels", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{Upstream: "pexels", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &NetworkError{Upstream: "pexels", StatusCode: resp.StatusCode}
	}

	var pResp pexelsSearchResponse
	if err := json.Unmarshal(body, &pResp); err != nil {
		return "", fmt.Errorf("failed to parse pexels response: %w", err)
	}
	if len(pResp.Photos) == 0 {
		return "", fmt.Errorf("no photos for %q", title)
	}

	medium := pResp.Photos[0].Src.Medium
	if !govalidator.IsURL(medium) {
		return "", fmt.Errorf("pexels returned invalid image url %q", medium)
	}
	return medium, nil
}
