// Package httpcat fetches the downloadable-model catalog over HTTP.
// The listing is a public JSON document; no authentication is needed.
package httpcat

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driven"
)

// Ensure Catalog implements the interface.
var _ driven.ModelCatalog = (*Catalog)(nil)

// Catalog lists models from a JSON endpoint.
type Catalog struct {
	url   string
	httpc *http.Client
}

// NewCatalog creates a catalog client for the given listing URL.
func NewCatalog(url string) *Catalog {
	return &Catalog{
		url:   url,
		httpc: &http.Client{Timeout: 30 * time.Second},
	}
}

// List returns the available model entries.
func (c *Catalog) List(ctx context.Context) ([]domain.ModelEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("building catalog request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: unexpected status %d", resp.StatusCode)
	}

	var entries []domain.ModelEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return entries, nil
}
