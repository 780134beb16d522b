package rest

import (
	"context"
	"net/http"

	models "libris/internal/domain/models/library"
	repo "libris/internal/domain/repositories/library"
)

// Create creates a folder and returns the new node (no subtree yet).
func (c *Client) Create(ctx context.Context, payload repo.CreateFolderPayload) (*models.FolderNode, error) {
	var node models.FolderNode
	if err := c.do(ctx, http.MethodPost, "/folders", nil, payload, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// Update patches folder attributes and/or parent. The tri-state ParentID
// cannot round-trip through struct tags (absent vs null), so the body is
// assembled field by field.
func (c *Client) Update(ctx context.Context, folderID string, payload repo.UpdateFolderPayload) (*models.FolderNode, error) {
	body := map[string]any{}
	if payload.Name != nil {
		body["name"] = *payload.Name
	}
	if payload.Description != nil {
		body["description"] = *payload.Description
	}
	if payload.Color != nil {
		body["color"] = *payload.Color
	}
	if payload.ParentID.Present {
		body["folder_id"] = payload.ParentID.Value
	}
	if payload.Tags != nil {
		body["tags"] = payload.Tags
	}

	var node models.FolderNode
	if err := c.do(ctx, http.MethodPatch, "/folders/"+folderID, nil, body, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// Delete removes a folder (and its subtree, remotely) and returns the
// deleted node without its subtree.
func (c *Client) Delete(ctx context.Context, folderID string) (*models.FolderNode, error) {
	var node models.FolderNode
	if err := c.do(ctx, http.MethodDelete, "/folders/"+folderID, nil, nil, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// AssignDocuments files documents into the folder.
func (c *Client) AssignDocuments(ctx context.Context, folderID string, documentIDs []string) error {
	body := map[string]any{"document_ids": documentIDs}
	return c.do(ctx, http.MethodPost, "/folders/"+folderID+"/documents", nil, body, nil)
}
