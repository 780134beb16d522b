package rest

import (
	"context"
	"net/http"

	models "libris/internal/domain/models/library"
)

// FetchTree retrieves the full nested folder forest with counts.
func (c *Client) FetchTree(ctx context.Context) (*models.FolderForest, error) {
	var forest models.FolderForest
	if err := c.do(ctx, http.MethodGet, "/folder-tree", nil, nil, &forest); err != nil {
		return nil, err
	}

	c.logger.Debug("tree fetched",
		"folder_count", forest.TotalFolderCount,
		"document_count", forest.TotalDocumentCount,
		"unfiled_count", forest.UnfiledDocumentCount,
	)

	return &forest, nil
}
