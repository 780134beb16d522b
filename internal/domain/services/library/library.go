// Package library defines the service contract for the client-side
// library synchronization engine.
package library

import (
	"context"

	"libris/internal/async"
	models "libris/internal/domain/models/library"
	"libris/internal/httputil"
)

// CreateFolderRequest carries the fields for a new folder.
type CreateFolderRequest struct {
	Name        string
	Description string
	Color       string
	ParentID    *string // nil = root level
	Tags        []string
}

// UpdateFolderRequest carries a partial folder update. Nil fields are
// left unchanged; ParentID uses tri-state presence so "move to root"
// (present, nil value) differs from "don't move" (absent).
type UpdateFolderRequest struct {
	Name        *string
	Description *string
	Color       *string
	ParentID    httputil.OptionalString
	Tags        []string
}

// FlatFolder is one entry of the flattened picker list. Name carries an
// indentation marker proportional to Depth.
type FlatFolder struct {
	ID    string
	Name  string
	Depth int
}

// ChangeKind identifies what part of the engine state changed.
type ChangeKind string

const (
	ChangeTree       ChangeKind = "tree"
	ChangeDocuments  ChangeKind = "documents"
	ChangeProcessing ChangeKind = "processing"
	ChangeNotice     ChangeKind = "notice"
)

// NoticeLevel grades a user-facing notification.
type NoticeLevel string

const (
	NoticeInfo  NoticeLevel = "info"
	NoticeError NoticeLevel = "error"
)

// Notice is a user-facing notification raised by the engine, e.g. on a
// failed remote mutation or a partial batch failure.
type Notice struct {
	Level      NoticeLevel
	Message    string
	DocumentID string // set for per-document failures
}

// Change is delivered synchronously to subscribers, in registration
// order, after the triggering mutation completes.
type Change struct {
	Kind   ChangeKind
	Notice *Notice // set when Kind == ChangeNotice
}

// Library is the single coordination point owning the folder forest, the
// document list and the search state. One instance per session; tests
// construct independent instances.
//
// All state mutation happens on one logical thread: commands run to
// completion under the engine's single writer, and observers read
// snapshots that are never mutated after publication.
type Library interface {
	// LoadTree fetches the authoritative folder forest.
	LoadTree(ctx context.Context) error
	// LoadDocuments fetches a fresh first page for the criteria.
	LoadDocuments(ctx context.Context, criteria models.ListCriteria) error
	// LoadMore appends the next page for the current criteria.
	LoadMore(ctx context.Context) error
	// Tree returns the current wrapped forest snapshot.
	Tree() async.Value[*models.FolderForest]
	// Documents returns the current wrapped document page snapshot.
	Documents() async.Value[*models.DocumentPage]

	// Folder mutations are confirmed, never optimistic: local state is
	// touched only after the remote acknowledgment arrives.
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.FolderNode, error)
	UpdateFolder(ctx context.Context, folderID string, req *UpdateFolderRequest) (*models.FolderNode, error)
	MoveFolder(ctx context.Context, folderID string, newParentID *string) (*models.FolderNode, error)
	DeleteFolder(ctx context.Context, folderID string) error
	AssignDocuments(ctx context.Context, folderID string, documentIDs []string) error
	// ParentChoices returns the flattened picker list, excluding the
	// given folder's own subtree so a cycle can never be requested.
	ParentChoices(excludeFolderID string) []FlatFolder

	// Search debounces rapid input and collapses duplicate consecutive
	// values before triggering a document load.
	Search(ctx context.Context, query string)

	OrganizeSuggestions(ctx context.Context) (*models.OrganizeSuggestions, error)
	// ApplyOrganization commits a batch of assignments. Failures inside
	// the batch are surfaced per document; successful assignments stay
	// committed locally.
	ApplyOrganization(ctx context.Context, assignments []models.FolderAssignment) (*models.OrganizeResult, error)

	// Trash/restore/purge implement the trash semantics of the library.
	TrashDocument(ctx context.Context, documentID string) error
	RestoreDocument(ctx context.Context, documentID string) error
	PurgeDocument(ctx context.Context, documentID string) error
	// RegisterUpload inserts a pending placeholder item for an accepted
	// upload; the transport itself lives in a collaborator.
	RegisterUpload(filename string, size int64, folderID *string) *models.LibraryItem

	// HandleProcessingEvent merges one push event into the tracker and
	// the document list.
	HandleProcessingEvent(ev models.ProcessingEvent)
	// Consume pumps events from a channel until it closes or ctx ends.
	Consume(ctx context.Context, events <-chan models.ProcessingEvent)
	IsProcessing(documentID string) bool
	ProgressOf(documentID string) (models.StatusEntry, bool)

	// Subscribe registers a change observer; the returned handle is
	// passed to Unsubscribe.
	Subscribe(fn func(Change)) string
	Unsubscribe(handle string)
	// Close stops pending timers; the engine must not be used after.
	Close()
}
