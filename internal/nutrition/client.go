// SPDX-License-Identifier: Apache-2.0

// Package nutrition looks up per-100g nutrition facts for free-text food
// queries against an external REST API.
package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/V7-Lippyy/nutripal/internal/config"
	"github.com/V7-Lippyy/nutripal/internal/logger"
	"github.com/V7-Lippyy/nutripal/models"
)

var (
	// ErrEmptyQuery is returned when the search query is blank.
	ErrEmptyQuery = errors.New("empty nutrition query")

	// ErrUnauthorizedKey is returned when the API rejects the key.
	ErrUnauthorizedKey = errors.New("nutrition api key rejected")

	// ErrLookupFailed is returned for any other non-2xx API response.
	ErrLookupFailed = errors.New("nutrition lookup failed")
)

// Client queries the nutrition lookup API.
type Client interface {
	// Search returns the nutrition facts matching a free-text query such
	// as "100g rice and an apple". An empty result slice is a valid
	// answer for an unrecognized food.
	Search(ctx context.Context, query string) ([]models.NutritionItem, error)
}

type restClient struct {
	client *resty.Client
	logger *logger.Logger
}

// defaultRequestTimeout bounds a lookup call unless configured.
const defaultRequestTimeout = 10 * time.Second

// NewClient constructs the REST implementation of [Client]. The API key is
// sent in the X-Api-Key header on every request. A zero request timeout
// falls back to 10 seconds.
func NewClient(cfg config.Nutrition, logger *logger.Logger) (Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("empty nutrition api base url")
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("X-Api-Key", cfg.APIKey)

	return &restClient{client: client, logger: logger}, nil
}

func (c *restClient) Search(ctx context.Context, query string) ([]models.NutritionItem, error) {
	log := logger.FromContext(ctx)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("query", query).
		Get("/v1/nutrition")
	if err != nil {
		log.Err(err).
			Str("func", "restClient.Search").
			Str("query", query).
			Msg("nutrition lookup request failed")
		return nil, fmt.Errorf("nutrition lookup request: %w", err)
	}

	switch {
	case resp.StatusCode() == http.StatusUnauthorized, resp.StatusCode() == http.StatusForbidden:
		return nil, fmt.Errorf("%w: http %d", ErrUnauthorizedKey, resp.StatusCode())
	case resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices:
		return nil, fmt.Errorf("%w: http %d: %s", ErrLookupFailed, resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
	}

	var body struct {
		Items []models.NutritionItem `json:"items"`
	}
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("decode nutrition response: %w", err)
	}

	return body.Items, nil
}
