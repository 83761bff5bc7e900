// Package geoip provides a client for an ip-api style geolocation endpoint.
package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	activityusecase "vitality_backend/internal/feature/activity/usecase"
)

// Config holds configuration for the geolocation client.
type Config struct {
	BaseURL string // Base URL for the API (e.g. "http://ip-api.com")
}

// Client resolves coarse locations over HTTP.
type Client struct {
	cfg    Config
	client *http.Client
}

// Compile-time check that Client implements the emitter's resolver interface.
var _ activityusecase.GeoResolver = (*Client)(nil)

// NewClient creates a Client with the provided configuration and HTTP client.
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// lookupResponse mirrors the ip-api JSON payload for the fields we request.
type lookupResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	Country    string `json:"country"`
	RegionName string `json:"regionName"`
	City       string `json:"city"`
	Timezone   string `json:"timezone"`
}

// Resolve looks up the coarse location of an IP address.
func (c *Client) Resolve(ctx context.Context, ip string) (*activityusecase.Location, error) {
	u := fmt.Sprintf("%s/json/%s?fields=status,message,country,regionName,city,timezone", c.cfg.BaseURL, ip)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("geoip http %d", res.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Status != "success" {
		return nil, fmt.Errorf("geoip: %s", body.Message)
	}

	return &activityusecase.Location{
		Country:  body.Country,
		Region:   body.RegionName,
		City:     body.City,
		Timezone: body.Timezone,
	}, nil
}
