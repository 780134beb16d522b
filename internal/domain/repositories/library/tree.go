package library

import (
	"context"

	models "libris/internal/domain/models/library"
)

// TreeFetcher retrieves the authoritative folder forest from the remote
// collaborator. The engine never rebuilds the tree from scratch after
// this initial fetch; mutations are applied locally.
type TreeFetcher interface {
	// FetchTree returns the full nested folder forest with counts.
	FetchTree(ctx context.Context) (*models.FolderForest, error)
}
