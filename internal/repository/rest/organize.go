package rest

import (
	"context"
	"net/http"

	models "libris/internal/domain/models/library"
)

// Suggestions returns folder suggestions for unfiled documents.
func (c *Client) Suggestions(ctx context.Context) (*models.OrganizeSuggestions, error) {
	var out models.OrganizeSuggestions
	if err := c.do(ctx, http.MethodGet, "/organize/suggestions", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Apply commits a batch of folder assignments. Per-document failures come
// back in the result's Errors list.
func (c *Client) Apply(ctx context.Context, assignments []models.FolderAssignment) (*models.OrganizeResult, error) {
	body := map[string]any{"assignments": assignments}
	var out models.OrganizeResult
	if err := c.do(ctx, http.MethodPost, "/organize/apply", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
