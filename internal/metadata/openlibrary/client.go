// Package openlibrary provides a small client for the Open Library API,
// used to resolve book titles for activity denormalization and search.
package openlibrary

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Client provides access to the Open Library API.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
	baseURL     string
}

// NewClient creates a new Open Library client.
// Rate limited to stay well under Open Library's courtesy limits.
func NewClient(logger *slog.Logger) *Client {
	return NewClientWithBaseURL(logger, "https://openlibrary.org")
}

// NewClientWithBaseURL creates a client against a specific API host,
// letting tests point it at a stub server.
func NewClientWithBaseURL(logger *slog.Logger, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		// 1 request per second with a small burst keeps us polite.
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 5),
		logger:      logger,
		baseURL:     baseURL,
	}
}

// Close releases resources. Currently a no-op but included for interface consistency.
func (c *Client) Close() {
	// No persistent resources to close
}

// wait blocks until rate limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}
