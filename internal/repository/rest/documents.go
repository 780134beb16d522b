package rest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	models "libris/internal/domain/models/library"
)

// List returns one page of documents matching the criteria.
func (c *Client) List(ctx context.Context, criteria models.ListCriteria) (*models.DocumentPage, error) {
	query := url.Values{}
	if criteria.Search != "" {
		query.Set("search", criteria.Search)
	}
	if criteria.FolderID != nil {
		query.Set("folder_id", *criteria.FolderID)
	}
	if criteria.Unfiled {
		query.Set("unfiled", "true")
	}
	if criteria.Limit > 0 {
		query.Set("limit", strconv.Itoa(criteria.Limit))
	}
	if criteria.Offset > 0 {
		query.Set("offset", strconv.Itoa(criteria.Offset))
	}

	var page models.DocumentPage
	if err := c.do(ctx, http.MethodGet, "/documents", query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Trash soft-deletes a document.
func (c *Client) Trash(ctx context.Context, documentID string) error {
	return c.do(ctx, http.MethodDelete, "/documents/"+documentID, nil, nil, nil)
}

// Restore brings a trashed document back.
func (c *Client) Restore(ctx context.Context, documentID string) error {
	return c.do(ctx, http.MethodPost, "/documents/"+documentID+"/restore", nil, nil, nil)
}

// Purge permanently deletes a trashed document.
func (c *Client) Purge(ctx context.Context, documentID string) error {
	query := url.Values{}
	query.Set("permanent", "true")
	return c.do(ctx, http.MethodDelete, "/documents/"+documentID, query, nil, nil)
}
