package openlibrary

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const searchLimit = 10

// GetWork fetches a single work by its Open Library key (e.g. "OL45883W").
// Used to denormalize book titles into activity entries.
func (c *Client) GetWork(ctx context.Context, workKey string) (*Book, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	workKey = strings.TrimPrefix(strings.TrimSpace(workKey), "/works/")
	workURL := fmt.Sprintf("%s/works/%s.json", c.baseURL, url.PathEscape(workKey))

	c.logger.Debug("fetching Open Library work",
		"key", workKey,
		"url", workURL,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, workURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("work request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("work %s not found", workKey)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("work fetch failed: status %d", resp.StatusCode)
	}

	var work workResponse
	if err := json.UnmarshalRead(resp.Body, &work); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	book := &Book{
		Key:   workKey,
		Title: work.Title,
	}
	if len(work.Covers) > 0 {
		book.CoverURL = CoverURL(work.Covers[0], "L")
	}

	return book, nil
}

// Search queries Open Library for works matching the query string.
func (c *Client) Search(ctx context.Context, query string) ([]Book, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", fmt.Sprintf("%d", searchLimit))
	params.Set("fields", "key,title,author_name,first_publish_year,cover_i")

	searchURL := c.baseURL + "/search.json?" + params.Encode()

	c.logger.Debug("searching Open Library",
		"query", query,
		"url", searchURL,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search failed: status %d", resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.UnmarshalRead(resp.Body, &searchResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	c.logger.Debug("Open Library search results",
		"query", query,
		"count", searchResp.NumFound,
	)

	results := make([]Book, 0, len(searchResp.Docs))
	for i := range searchResp.Docs {
		d := &searchResp.Docs[i]

		book := Book{
			Key:   strings.TrimPrefix(d.Key, "/works/"),
			Title: d.Title,
			Year:  d.FirstPublishYear,
		}
		if len(d.AuthorName) > 0 {
			book.Author = d.AuthorName[0]
		}
		if d.CoverID != 0 {
			book.CoverURL = CoverURL(d.CoverID, "M")
		}

		results = append(results, book)
	}

	return results, nil
}

// CoverURL builds a covers.openlibrary.org URL for a cover ID.
// Size is one of "S", "M", "L".
func CoverURL(coverID int64, size string) string {
	return fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-%s.jpg", coverID, size)
}
