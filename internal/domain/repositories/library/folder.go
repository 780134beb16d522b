package library

import (
	"context"

	models "libris/internal/domain/models/library"
	"libris/internal/httputil"
)

// CreateFolderPayload is the wire shape of a folder creation request.
type CreateFolderPayload struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Color       string   `json:"color"`
	ParentID    *string  `json:"folder_id,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// UpdateFolderPayload is the wire shape of a folder PATCH. Absent fields
// are left unchanged remotely; ParentID uses tri-state presence so that
// "move to root" (explicit null) is distinguishable from "don't move".
type UpdateFolderPayload struct {
	Name        *string                 `json:"name,omitempty"`
	Description *string                 `json:"description,omitempty"`
	Color       *string                 `json:"color,omitempty"`
	ParentID    httputil.OptionalString `json:"-"`
	Tags        []string                `json:"tags,omitempty"`
}

// FolderWriter issues folder mutations against the remote collaborator.
// Each mutation returns the affected node; update and delete responses do
// not carry the node's subtree.
type FolderWriter interface {
	Create(ctx context.Context, payload CreateFolderPayload) (*models.FolderNode, error)
	Update(ctx context.Context, folderID string, payload UpdateFolderPayload) (*models.FolderNode, error)
	Delete(ctx context.Context, folderID string) (*models.FolderNode, error)
	// AssignDocuments files the given documents into the folder.
	AssignDocuments(ctx context.Context, folderID string, documentIDs []string) error
}
