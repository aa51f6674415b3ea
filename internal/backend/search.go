package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"playdamnit/pkg/models"
)

// SearchCatalog queries the backend's game catalog.
func (c *Client) SearchCatalog(ctx context.Context, query string, limit int) (*models.SearchResponse, error) {
	qv := url.Values{}
	qv.Set("q", query)
	if limit > 0 {
		qv.Set("limit", strconv.Itoa(limit))
	}

	var resp models.SearchResponse
	if err := c.doJSON(ctx, http.MethodGet, "/games/search?"+qv.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("search catalog %q: %w", query, err)
	}
	return &resp, nil
}
