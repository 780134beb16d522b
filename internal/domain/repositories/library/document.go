package library

import (
	"context"

	models "libris/internal/domain/models/library"
)

// DocumentReader fetches and trash-manages the authoritative document
// list. All persistence lives behind the collaborator.
type DocumentReader interface {
	// List returns one page of documents matching the criteria.
	List(ctx context.Context, criteria models.ListCriteria) (*models.DocumentPage, error)
	// Trash soft-deletes a document (recoverable).
	Trash(ctx context.Context, documentID string) error
	// Restore brings a trashed document back to the active list.
	Restore(ctx context.Context, documentID string) error
	// Purge permanently deletes a trashed document.
	Purge(ctx context.Context, documentID string) error
}
