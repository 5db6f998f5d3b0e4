package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"cosmetics-store-api/internal/model"
)

const (
	pathCosmetics    = "cosmetics"
	pathNewCosmetics = "cosmetics/new"
	pathShop         = "shop"

	// maxBodySize caps upstream documents; the full catalog is a few MB.
	maxBodySize = 64 << 20
)

// Config holds upstream client settings.
type Config struct {
	BaseURL  string
	APIKey   string
	Language string
	Timeout  time.Duration

	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s returned status %d", e.Path, e.StatusCode)
}

// FortniteClient fetches catalog documents from the upstream cosmetics API.
type FortniteClient struct {
	baseURL  string
	apiKey   string
	language string
	http     *http.Client
}

// NewFortniteClient creates an upstream client.
func NewFortniteClient(cfg Config) *FortniteClient {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &FortniteClient{
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		language: cfg.Language,
		http:     httpClient,
	}
}

// Cosmetics fetches the full cosmetic catalog.
func (c *FortniteClient) Cosmetics(ctx context.Context) (*model.CosmeticsResponse, error) {
	var doc model.CosmeticsResponse
	if err := c.getJSON(ctx, pathCosmetics, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// NewCosmetics fetches the cosmetics added in the latest build.
func (c *FortniteClient) NewCosmetics(ctx context.Context) (*model.NewCosmeticsResponse, error) {
	var doc model.NewCosmeticsResponse
	if err := c.getJSON(ctx, pathNewCosmetics, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Shop fetches the current shop rotation.
func (c *FortniteClient) Shop(ctx context.Context) (*model.ShopResponse, error) {
	var doc model.ShopResponse
	if err := c.getJSON(ctx, pathShop, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *FortniteClient) getJSON(ctx context.Context, path string, out interface{}) error {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("failed to build url for %s: %w", path, err)
	}
	if c.language != "" {
		endpoint += "?" + url.Values{"language": {c.language}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &StatusError{Path: path, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}
