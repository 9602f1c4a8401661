package deezer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"MoodFM/logger"
	"MoodFM/model"
)

// SearchTracks fetches one page of track results for the given query.
// An empty page signals the end of the upstream result stream.
func (c *Client) SearchTracks(ctx context.Context, query string, limit, index int) ([]model.Track, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("index", strconv.Itoa(index))

	searchURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned status %d", resp.StatusCode)
	}

	var result struct {
		Data []model.Track `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	logger.Debug("[SearchTracks] page fetched",
		logger.String("query", query),
		logger.Int("index", index),
		logger.Int("count", len(result.Data)))

	return result.Data, nil
}

// ResolveArtist resolves a free-text artist name to its canonical Deezer
// name using the artist search endpoint. The top match wins, which makes the
// lookup tolerant of typos. An empty name with a nil error means no artist
// matched at all.
func (c *Client) ResolveArtist(ctx context.Context, name string) (string, error) {
	params := url.Values{}
	params.Set("q", name)

	resolveURL := fmt.Sprintf("%s/search/artist?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resolveURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create artist lookup request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("artist lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("artist lookup API returned status %d", resp.StatusCode)
	}

	var result struct {
		Data []struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode artist lookup response: %w", err)
	}

	if len(result.Data) == 0 {
		return "", nil
	}

	logger.Debug("[ResolveArtist] resolved",
		logger.String("input", name),
		logger.String("canonical", result.Data[0].Name))

	return result.Data[0].Name, nil
}
