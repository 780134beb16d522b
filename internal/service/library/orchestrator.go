package library

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"libris/internal/async"
	"libris/internal/config"
	"libris/internal/domain"
	models "libris/internal/domain/models/library"
	repo "libris/internal/domain/repositories/library"
	libSvc "libris/internal/domain/services/library"
	"libris/internal/httputil"
	"libris/internal/swatch"
)

// Deps are the collaborators the orchestrator talks to.
type Deps struct {
	Tree      repo.TreeFetcher
	Folders   repo.FolderWriter
	Documents repo.DocumentReader
	Organize  repo.Organizer
	Swatches  *swatch.Registry
	Logger    *slog.Logger
}

// Options tune the engine's timing and paging. Zero values fall back to
// the defaults from the config package.
type Options struct {
	SearchDebounce        time.Duration
	CompletionReloadDelay time.Duration
	PageSize              int
}

// Orchestrator is the single writer owning the folder forest, the
// document list and the search state. Mutations are confirmed, never
// optimistic: the pure forest operations run only after the remote
// acknowledgment arrives, and are resolved against the tree position at
// that moment, not at issue time.
type Orchestrator struct {
	mu       sync.Mutex
	tree     async.Value[*models.FolderForest]
	docs     async.Value[*models.DocumentPage]
	criteria models.ListCriteria

	treeAPI     repo.TreeFetcher
	folderAPI   repo.FolderWriter
	docAPI      repo.DocumentReader
	organizeAPI repo.Organizer

	tracker   *ProcessingTracker
	validator *RequestValidator
	notifier  *notifier
	logger    *slog.Logger

	searchDebounce time.Duration
	reloadDelay    time.Duration
	pageSize       int

	// timerMu guards the debounce/reload timers and the closed flag,
	// separate from mu so timer callbacks can call back into the engine.
	timerMu      sync.Mutex
	searchTimer  *time.Timer
	pendingQuery string
	lastQuery    string
	reloadTimer  *time.Timer
	closed       bool
}

// NewOrchestrator creates the engine. One instance per session; Close
// tears it down.
func NewOrchestrator(deps Deps, opts Options) *Orchestrator {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	debounce := opts.SearchDebounce
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}
	reloadDelay := opts.CompletionReloadDelay
	if reloadDelay <= 0 {
		reloadDelay = 1500 * time.Millisecond
	}
	pageSize := opts.PageSize
	if pageSize <= 0 || pageSize > config.MaxPageSize {
		pageSize = config.DefaultPageSize
	}

	return &Orchestrator{
		tree:           async.Idle[*models.FolderForest](),
		docs:           async.Idle[*models.DocumentPage](),
		treeAPI:        deps.Tree,
		folderAPI:      deps.Folders,
		docAPI:         deps.Documents,
		organizeAPI:    deps.Organize,
		tracker:        NewProcessingTracker(logger),
		validator:      NewRequestValidator(deps.Swatches),
		notifier:       &notifier{},
		logger:         logger,
		searchDebounce: debounce,
		reloadDelay:    reloadDelay,
		pageSize:       pageSize,
	}
}

var _ libSvc.Library = (*Orchestrator)(nil)

// Tree returns the current wrapped forest snapshot.
func (o *Orchestrator) Tree() async.Value[*models.FolderForest] {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.tree
}

// Documents returns the current wrapped document page snapshot.
func (o *Orchestrator) Documents() async.Value[*models.DocumentPage] {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.docs
}

// LoadTree fetches the authoritative folder forest. On failure the
// container moves to error while keeping the previous forest readable.
func (o *Orchestrator) LoadTree(ctx context.Context) error {
	o.mu.Lock()
	o.tree = o.tree.ToLoading()
	o.mu.Unlock()
	o.notifier.publish(libSvc.Change{Kind: libSvc.ChangeTree})

	forest, err := o.treeAPI.FetchTree(ctx)
	if err != nil {
		o.mu.Lock()
		o.tree = o.tree.ToError(err.Error())
		o.mu.Unlock()
		o.notifier.publish(libSvc.Change{Kind: libSvc.ChangeTree})
		o.notice(libSvc.NoticeError, "failed to load folder tree", "")
		return err
	}

	o.mu.Lock()
	o.tree = o.tree.ToLoaded(forest)
	o.mu.Unlock()
	o.notifier.publish(libSvc.Change{Kind: libSvc.ChangeTree})

	o.logger.Info("tree loaded",
		"folder_count", forest.TotalFolderCount,
		"document_count", forest.TotalDocumentCount,
	)
	return nil
}

// LoadDocuments fetches a fresh first page for the criteria. A newer
// call logically supersedes an older one by overwriting the container
// when its result arrives (last-writer-wins by completion time).
func (o *Orchestrator) LoadDocuments(ctx context.Context, criteria models.ListCriteria) error {
	if criteria.Limit <= 0 {
		criteria.Limit = o.pageSize
	}
	criteria.Offset = 0

	o.mu.Lock()
	o.criteria = criteria
	o.docs = o.docs.ToLoading()
	o.mu.Unlock()
	o.notifier.publish(libSvc.Change{Kind: libSvc.ChangeDocuments})

	page, err := o.docAPI.List(ctx, criteria)
	if err != nil {
		o.mu.Lock()
		o.docs = o.docs.ToError(err.Error())
		o.mu.Unlock()
		o.notifier.publish(libSvc.Change{Kind: libSvc.ChangeDocuments})
		o.notice(libSvc.NoticeError, "failed to load documents", "")
		return err
	}

	o.mu.Lock()
	o.docs = o.docs.ToLoaded(page)
	o.mu.Unlock()
	o.notifier.publish(libSvc.Change{Kind: libSvc.ChangeDocuments})
	return nil
}

// LoadMore appends the next page for the current criteria. A no-op when
// nothing is loaded yet or the list is exhausted.
func (o *Orchestrator) LoadMore(ctx context.Context) error {
	o.mu.Lock()
	current := o.docs.Data()
	if !o.docs.IsLoaded() || current == nil || !current.HasMore {
		o.mu.Unlock()
		return nil
	}
	criteria := o.criteria
	criteria.Offset = len(current.Items)
	o.mu.Unlock()

	next, err := o.docAPI.List(ctx, criteria)
	if err != nil {
		o.notice(libSvc.NoticeError, "failed to load more documents", "")
		return err
	}

	o.mu.Lock()
	page := clonePage(o.docs.Data())
	if page == nil {
		page = &models.DocumentPage{}
	}
	page.Items = append(page.Items, next.Items...)
	page.Total = next.Total
	page.Offset = next.Offset
	page.HasMore = next.HasMore
	o.docs = o.docs.ToLoaded(page)
	o.mu.Unlock()
	o.notifier.publish(libSvc.Change{Kind: libSvc.ChangeDocuments})
	return nil
}

// CreateFolder validates, asks the collaborator to create the folder,
// and inserts the acknowledged node into the local forest.
func (o *Orchestrator) CreateFolder(ctx context.Context, req *libSvc.CreateFolderRequest) (*models.FolderNode, error) {
	if err := o.validator.ValidateCreate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	node, err := o.folderAPI.Create(ctx, repo.CreateFolderPayload{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Color:       req.Color,
		ParentID:    req.ParentID,
		Tags:        req.Tags,
	})
	if err != nil {
		o.notice(libSvc.NoticeError, fmt.Sprintf("failed to create folder %q", req.Name), "")
		return nil, err
	}

	o.mu.Lock()
	if forest := o.tree.Data(); forest != nil {
		o.tree = o.tree.ToLoaded(Insert(forest, node, node.ParentID))
	}
	o.mu.Unlock()
	o.notifier.publish(libSvc.Change{Kind: libSvc.ChangeTree})

	o.logger.Info("folder created",
		"id", node.ID,
		"name", node.Name,
		"parent_folder_id", node.ParentID,
	)
	return node, nil
}

// UpdateFolder validates and issues a folder PATCH. When the
// acknowledgment reports a parent change, the move is resolved against
// the node's position at that moment, not at issue time.
func (o *Orchestrator) UpdateFolder(ctx context.Context, folderID string, req *libSvc.UpdateFolderRequest) (*models.FolderNode, error) {
	if err := o.validator.ValidateUpdate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Cycle prevention happens here, at the input boundary: the pure
	// Move treats an in-subtree target as a no-op, but the request must
	// never reach the collaborator.
	if req.ParentID.Present && req.ParentID.Value != nil {
		if *req.ParentID.Value == folderID {
			return nil, fmt.Errorf("%w: cannot move folder to be its own parent", domain.ErrValidation)
		}
		o.mu.Lock()
		forest := o.tree.Data()
		if forest != nil {
			if node := FindNode(forest, folderID); node != nil && findIn(node, *req.ParentID.Value) != nil {
				o.mu.Unlock()
				return nil, fmt.Errorf("%w: cannot move folder into its own subtree", domain.ErrValidation)
			}
		}
		o.mu.Unlock()
	}

	node, err := o.folderAPI.Update(ctx, folderID, repo.UpdateFolderPayload{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		ParentID:    req.ParentID,
		Tags:        req.Tags,
	})
	if err != nil {
		o.notice(libSvc.NoticeError, "failed to update folder", "")
		return nil, err
	}

	o.mu.Lock()
	if forest := o.tree.Data(); forest != nil {
		current := FindNode(forest, folderID)
		switch {
		case current == nil:
			// Unknown locally; the authoritative state lives remotely
			// and a later full reload reconciles it.
			o.logger.Warn("update for folder absent from local tree", "id", folderID)
		case req.ParentID.Present && !sameParent(current.ParentID, node.ParentID):
			o.tree = o.tree.ToLoaded(Move(forest, node))
		default:
			o.tree = o.tree.ToLoaded(Update(forest, node))
		}
	}
	o.mu.Unlock()
	o.notifier.publish(libSvc.Change{Kind: libSvc.ChangeTree})

	o.logger.Info("folder updated",
		"id", node.ID,
		"name", node.Name,
		"folder_id", node.ParentID,
	)
	return node, nil
}

// MoveFolder relocates a folder under a new parent (nil = root level).
func (o *Orchestrator) MoveFolder(ctx context.Context, folderID string, newParentID *string) (*models.FolderNode, error) {
	return o.UpdateFolder(ctx, folderID, &libSvc.UpdateFolderRequest{
		ParentID: httputil.Set(newParentID),
	})
}

// DeleteFolder removes a folder and its entire subtree after the remote
// acknowledgment. Contents are removed as a unit; trash re-homing is the
// collaborator's concern.
func (o *Orchestrator) DeleteFolder(ctx context.Context, folderID string) error {
	node, err := o.folderAPI.Delete(ctx, folderID)
	if err != nil {
		o.notice(libSvc.NoticeError, "failed to delete folder", "")
		return err
	}

	removedFolders, removedDocs := 0, 0
	o.mu.Lock()
	if forest := o.tree.Data(); forest != nil {
		var next *models.FolderForest
		next, removedFolders, removedDocs = Remove(forest, folderID)
		o.tree = o.tree.ToLoaded(next)
	}
	o.mu.Unlock()
	o.notifier.publish(libSvc.Change{Kind: libSvc.ChangeTree})

	o.logger.Info("folder deleted",
		"id", folderID,
		"name", node.Name,
		"removed_folders", removedFolders,
		"removed_documents", removedDocs,
	)
	return nil
}

// AssignDocuments files documents into a folder and propagates the count
// deltas (one decrement at each old location, one increment at the new).
func (o *Orchestrator) AssignDocuments(ctx context.Context, folderID string, documentIDs []string) error {
	if len(documentIDs) == 0 {
		return nil
	}
	if err := o.folderAPI.AssignDocuments(ctx, folderID, documentIDs); err != nil {
		o.notice(libSvc.NoticeError, "failed to move documents", "")
		return err
	}

	assignments := make([]models.FolderAssignment, 0, len(documentIDs))
	for _, id := range documentIDs {
		assignments = append(assignments, models.FolderAssignment{DocumentID: id, FolderID: folderID})
	}
	o.applyAssignments(assignments)

	o.notifier.publish(libSvc.Change{Kind: libSvc.ChangeTree})
	o.notifier.publish(libSvc.Change{Kind: libSvc.ChangeDocuments})
	o.logger.Info("documents assigned", "folder_id", folderID, "count", len(documentIDs))
	return nil
}

// applyAssignments commits confirmed assignments to local state: the
// item's FolderID moves and the ancestor chains on both sides absorb the
// matching deltas. Items absent from the current page only move counts
// when their old location is known; the next reload reconciles the rest.
func (o *Orchestrator) applyAssignments(assignments []models.FolderAssignment) {
	o.mu.Lock()
	defer o.mu.Unlock()

	forest := o.tree.Data()
	page := clonePage(o.docs.Data())

	for _, a := range assignments {
		var oldFolder *string
		known := false
		if page != nil {
			for i := range page.Items {
				if page.Items[i].DocumentID == a.DocumentID || page.Items[i].ID == a.DocumentID {
					oldFolder = page.Items[i].FolderID
					fid := a.FolderID
					page.Items[i].FolderID = &fid
					known = true
					break
				}
			}
		}
		if forest != nil && known {
			forest = PropagateDocumentDelta(forest, oldFolder, -1)
			fid := a.FolderID
			forest = PropagateDocumentDelta(forest, &fid, +1)
		}
	}

	if forest != nil {
		o.tree = o.tree.ToLoaded(forest)
	}
	if page != nil {
		o.docs = o.docs.ToLoaded(page)
	}
}

// ParentChoices returns the flattened picker list, excluding the given
// folder's own subtree so a cycle can never be chosen.
func (o *Orchestrator) ParentChoices(excludeFolderID string) []libSvc.FlatFolder {
	o.mu.Lock()
	forest := o.tree.Data()
	o.mu.Unlock()
	if forest == nil {
		return nil
	}
	return Flatten(forest, excludeFolderID)
}

// Search debounces rapid input and collapses duplicate consecutive
// values before triggering a document load.
func (o *Orchestrator) Search(ctx context.Context, query string) {
	query = strings.TrimSpace(query)

	o.timerMu.Lock()
	defer o.timerMu.Unlock()
	if o.closed {
		return
	}
	if o.searchTimer != nil {
		if o.pendingQuery == query {
			return // duplicate of what is already scheduled
		}
		o.searchTimer.Stop()
	} else if query == o.lastQuery {
		return // duplicate of what already ran
	}

	o.pendingQuery = query
	o.searchTimer = time.AfterFunc(o.searchDebounce, func() {
		o.timerMu.Lock()
		o.searchTimer = nil
		q := o.pendingQuery
		o.lastQuery = q
		closed := o.closed
		o.timerMu.Unlock()
		if closed {
			return
		}
		_ = o.LoadDocuments(ctx, models.ListCriteria{Search: q, Limit: o.pageSize})
	})
}

// OrganizeSuggestions asks the collaborator for tag-similarity folder
// suggestions covering the unfiled documents.
func (o *Orchestrator) OrganizeSuggestions(ctx context.Context) (*models.OrganizeSuggestions, error) {
	suggestions, err := o.organizeAPI.Suggestions(ctx)
	if err != nil {
		o.notice(libSvc.NoticeError, "failed to load organize suggestions", "")
		return nil, err
	}
	return suggestions, nil
}

// ApplyOrganization commits a batch of folder assignments. Failures
// inside the batch are surfaced per document; successful assignments are
// committed locally and never rolled back.
func (o *Orchestrator) ApplyOrganization(ctx context.Context, assignments []models.FolderAssignment) (*models.OrganizeResult, error) {
	if len(assignments) == 0 {
		return &models.OrganizeResult{}, nil
	}

	result, err := o.organizeAPI.Apply(ctx, assignments)
	if err != nil {
		o.notice(libSvc.NoticeError, "failed to organize documents", "")
		return nil, err
	}

	failed := make(map[string]bool, len(result.Errors))
	for _, e := range result.Errors {
		failed[e.DocumentID] = true
	}
	committed := make([]models.FolderAssignment, 0, len(assignments))
	for _, a := range assignments {
		if !failed[a.DocumentID] {
			committed = append(committed, a)
		}
	}
	o.applyAssignments(committed)

	o.notifier.publish(libSvc.Change{Kind: libSvc.ChangeTree})
	o.notifier.publish(libSvc.Change{Kind: libSvc.ChangeDocuments})
	for _, e := range result.Errors {
		o.notice(libSvc.NoticeError,
			fmt.Sprintf("could not organize document: %s", e.Message), e.DocumentID)
	}

	o.logger.Info("organization applied",
		"organized", result.OrganizedCount,
		"failed", len(result.Errors),
	)
	return result, nil
}

// TrashDocument soft-deletes a document. The item leaves the active list
// and its folder chain loses one document.
func (o *Orchestrator) TrashDocument(ctx context.Context, documentID string) error {
	if err := o.docAPI.Trash(ctx, documentID); err != nil {
		o.notice(libSvc.NoticeError, "failed to move document to trash", documentID)
		return err
	}

	o.mu.Lock()
	page := clonePage(o.docs.Data())
	var folder *string
	found := false
	if page != nil {
		for i := range page.Items {
			if page.Items[i].DocumentID == documentID || page.Items[i].ID == documentID {
				folder = page.Items[i].FolderID
				page.Items = append(page.Items[:i], page.Items[i+1:]...)
				page.Total = clampZero(page.Total - 1)
				found = true
				break
			}
		}
		o.docs = o.docs.ToLoaded(page)
	}
	if found {
		if forest := o.tree.Data(); forest != nil {
			o.tree = o.tree.ToLoaded(PropagateDocumentDelta(forest, folder, -1))
		}
	}
	o.mu.Unlock()

	o.notifier.publish(libSvc.Change{Kind: libSvc.ChangeDocuments})
	o.notifier.publish(libSvc.Change{Kind: libSvc.ChangeTree})
	o.logger.Info("document trashed", "document_id", documentID)
	return nil
}

// RestoreDocument brings a trashed document back. Its placement and the
// affected counts are only known remotely, so both containers reload.
func (o *Orchestrator) RestoreDocument(ctx context.Context, documentID string) error {
	if err := o.docAPI.Restore(ctx, documentID); err != nil {
		o.notice(libSvc.NoticeError, "failed to restore document", documentID)
		return err
	}
	o.logger.Info("document restored", "document_id", documentID)

	o.mu.Lock()
	criteria := o.criteria
	o.mu.Unlock()
	if err := o.LoadDocuments(ctx, criteria); err != nil {
		return err
	}
	return o.LoadTree(ctx)
}

// PurgeDocument permanently deletes a trashed document. The active list
// is unaffected; trashed items are not part of it.
func (o *Orchestrator) PurgeDocument(ctx context.Context, documentID string) error {
	if err := o.docAPI.Purge(ctx, documentID); err != nil {
		o.notice(libSvc.NoticeError, "failed to delete document permanently", documentID)
		return err
	}
	o.logger.Info("document purged", "document_id", documentID)
	return nil
}

// RegisterUpload inserts a pending placeholder for an accepted upload.
// The placeholder carries a client-generated id until the authoritative
// reload replaces it; status transitions are driven by push events.
func (o *Orchestrator) RegisterUpload(filename string, size int64, folderID *string) *models.LibraryItem {
	item := models.LibraryItem{
		ID:        uuid.NewString(),
		Filename:  filename,
		FileSize:  size,
		Status:    models.StatusUploading,
		CreatedAt: time.Now(),
	}
	item.DocumentID = item.ID
	if folderID != nil {
		fid := *folderID
		item.FolderID = &fid
	}

	o.mu.Lock()
	page := clonePage(o.docs.Data())
	if page == nil {
		page = &models.DocumentPage{}
	}
	page.Items = append([]models.LibraryItem{item}, page.Items...)
	page.Total++
	o.docs = o.docs.ToLoaded(page)
	if forest := o.tree.Data(); forest != nil {
		o.tree = o.tree.ToLoaded(PropagateDocumentDelta(forest, folderID, +1))
	}
	o.mu.Unlock()

	o.notifier.publish(libSvc.Change{Kind: libSvc.ChangeDocuments})
	o.notifier.publish(libSvc.Change{Kind: libSvc.ChangeTree})
	o.logger.Info("upload registered", "filename", filename, "placeholder_id", item.ID)
	return &item
}

// HandleProcessingEvent merges one push event into the tracker and the
// document list. A terminal event schedules the delayed authoritative
// reload that covers eventual-consistency lag behind the event stream.
func (o *Orchestrator) HandleProcessingEvent(ev models.ProcessingEvent) {
	finished := o.tracker.Observe(ev)

	touched := false
	o.mu.Lock()
	if current := o.docs.Data(); current != nil {
		for i := range current.Items {
			if current.Items[i].DocumentID != ev.DocumentID {
				continue
			}
			page := clonePage(current)
			page.Items[i].Status = statusForStage(ev)
			if ev.Stage == models.StageError {
				page.Items[i].ErrorMessage = "processing failed"
			}
			o.docs = o.docs.ToLoaded(page)
			touched = true
			break
		}
	}
	o.mu.Unlock()

	o.notifier.publish(libSvc.Change{Kind: libSvc.ChangeProcessing})
	if touched {
		o.notifier.publish(libSvc.Change{Kind: libSvc.ChangeDocuments})
	}
	if finished {
		o.scheduleCompletionReload()
	}
}

// Consume pumps events from a channel until it closes or ctx ends.
func (o *Orchestrator) Consume(ctx context.Context, events <-chan models.ProcessingEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			o.HandleProcessingEvent(ev)
		}
	}
}

// IsProcessing reports whether the document has a live tracker entry.
func (o *Orchestrator) IsProcessing(documentID string) bool {
	return o.tracker.IsProcessing(documentID)
}

// ProgressOf returns the live tracker entry for a document, if any.
func (o *Orchestrator) ProgressOf(documentID string) (models.StatusEntry, bool) {
	return o.tracker.ProgressOf(documentID)
}

// Subscribe registers a change observer.
func (o *Orchestrator) Subscribe(fn func(libSvc.Change)) string {
	return o.notifier.subscribe(fn)
}

// Unsubscribe removes a change observer.
func (o *Orchestrator) Unsubscribe(handle string) {
	o.notifier.unsubscribe(handle)
}

// Close stops pending timers. The engine must not be used afterwards.
func (o *Orchestrator) Close() {
	o.timerMu.Lock()
	defer o.timerMu.Unlock()
	o.closed = true
	if o.searchTimer != nil {
		o.searchTimer.Stop()
		o.searchTimer = nil
	}
	if o.reloadTimer != nil {
		o.reloadTimer.Stop()
		o.reloadTimer = nil
	}
}

// scheduleCompletionReload arms (or re-arms, coalescing bursts) the
// delayed document reload that follows a processing completion.
func (o *Orchestrator) scheduleCompletionReload() {
	o.timerMu.Lock()
	defer o.timerMu.Unlock()
	if o.closed {
		return
	}
	if o.reloadTimer != nil {
		o.reloadTimer.Stop()
	}
	o.reloadTimer = time.AfterFunc(o.reloadDelay, func() {
		o.timerMu.Lock()
		o.reloadTimer = nil
		closed := o.closed
		o.timerMu.Unlock()
		if closed {
			return
		}
		o.mu.Lock()
		criteria := o.criteria
		o.mu.Unlock()
		_ = o.LoadDocuments(context.Background(), criteria)
	})
}

// notice raises a user-facing notification.
func (o *Orchestrator) notice(level libSvc.NoticeLevel, message, documentID string) {
	o.notifier.publish(libSvc.Change{
		Kind: libSvc.ChangeNotice,
		Notice: &libSvc.Notice{
			Level:      level,
			Message:    message,
			DocumentID: documentID,
		},
	})
}

// statusForStage maps a push-event stage onto the item lifecycle.
func statusForStage(ev models.ProcessingEvent) models.DocumentStatus {
	switch {
	case ev.Stage == models.StageError:
		return models.StatusFailed
	case ev.Stage == models.StageCompleted || ev.Progress >= 100:
		return models.StatusCompleted
	default:
		return models.StatusProcessing
	}
}

// clonePage shallow-copies a document page so published snapshots are
// never mutated in place. Item structs are values; the copied slice is
// safe to edit.
func clonePage(p *models.DocumentPage) *models.DocumentPage {
	if p == nil {
		return nil
	}
	c := *p
	c.Items = make([]models.LibraryItem, len(p.Items))
	copy(c.Items, p.Items)
	return &c
}
