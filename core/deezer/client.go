package deezer

import (
	"net/http"
	"time"

	"MoodFM/config"
)

// Client is a thin HTTP client for the public Deezer API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client from the application configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.DeezerAPIURL,
		httpClient: &http.Client{
			Timeout: cfg.DeezerTimeout,
		},
	}
}

// NewClientWithBaseURL creates a client against an explicit base URL with a
// fixed timeout. Used by the CLI and by tests pointing at a fake upstream.
func NewClientWithBaseURL(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}
