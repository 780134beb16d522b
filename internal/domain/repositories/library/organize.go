package library

import (
	"context"

	models "libris/internal/domain/models/library"
)

// Organizer talks to the tag-similarity organize service.
type Organizer interface {
	// Suggestions returns folder suggestions for unfiled documents.
	Suggestions(ctx context.Context) (*models.OrganizeSuggestions, error)
	// Apply commits a batch of folder assignments. Partial failures are
	// reported in the result's Errors list, not as a call error.
	Apply(ctx context.Context, assignments []models.FolderAssignment) (*models.OrganizeResult, error)
}
