package library

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"libris/internal/domain"
	models "libris/internal/domain/models/library"
	repo "libris/internal/domain/repositories/library"
	libSvc "libris/internal/domain/services/library"
	"libris/internal/httputil"
	"libris/internal/swatch"
)

type fakeTree struct {
	mu     sync.Mutex
	forest func() *models.FolderForest
	err    error
	calls  int
}

func (f *fakeTree) FetchTree(ctx context.Context) (*models.FolderForest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.forest(), nil
}

func (f *fakeTree) fetchCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeFolders struct {
	mu       sync.Mutex
	createFn func(repo.CreateFolderPayload) (*models.FolderNode, error)
	updateFn func(string, repo.UpdateFolderPayload) (*models.FolderNode, error)
	deleteFn func(string) (*models.FolderNode, error)
	assignFn func(string, []string) error
	creates  int
	updates  int
}

func (f *fakeFolders) Create(ctx context.Context, payload repo.CreateFolderPayload) (*models.FolderNode, error) {
	f.mu.Lock()
	f.creates++
	f.mu.Unlock()
	if f.createFn == nil {
		return nil, errors.New("unexpected Create")
	}
	return f.createFn(payload)
}

func (f *fakeFolders) Update(ctx context.Context, folderID string, payload repo.UpdateFolderPayload) (*models.FolderNode, error) {
	f.mu.Lock()
	f.updates++
	f.mu.Unlock()
	if f.updateFn == nil {
		return nil, errors.New("unexpected Update")
	}
	return f.updateFn(folderID, payload)
}

func (f *fakeFolders) Delete(ctx context.Context, folderID string) (*models.FolderNode, error) {
	if f.deleteFn == nil {
		return nil, errors.New("unexpected Delete")
	}
	return f.deleteFn(folderID)
}

func (f *fakeFolders) AssignDocuments(ctx context.Context, folderID string, documentIDs []string) error {
	if f.assignFn == nil {
		return errors.New("unexpected AssignDocuments")
	}
	return f.assignFn(folderID, documentIDs)
}

func (f *fakeFolders) createCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creates
}

func (f *fakeFolders) updateCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updates
}

type fakeDocs struct {
	mu         sync.Mutex
	listFn     func(models.ListCriteria) (*models.DocumentPage, error)
	listCalls  []models.ListCriteria
	listed     chan struct{}
	trashErr   error
	restoreErr error
	purgeErr   error
	trashed    []string
	restored   []string
	purged     []string
}

func (f *fakeDocs) List(ctx context.Context, criteria models.ListCriteria) (*models.DocumentPage, error) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, criteria)
	f.mu.Unlock()
	if f.listed != nil {
		select {
		case f.listed <- struct{}{}:
		default:
		}
	}
	if f.listFn == nil {
		return &models.DocumentPage{}, nil
	}
	return f.listFn(criteria)
}

func (f *fakeDocs) Trash(ctx context.Context, documentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trashed = append(f.trashed, documentID)
	return f.trashErr
}

func (f *fakeDocs) Restore(ctx context.Context, documentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.restored = append(f.restored, documentID)
	return f.restoreErr
}

func (f *fakeDocs) Purge(ctx context.Context, documentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purged = append(f.purged, documentID)
	return f.purgeErr
}

func (f *fakeDocs) criteria() []models.ListCriteria {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.ListCriteria, len(f.listCalls))
	copy(out, f.listCalls)
	return out
}

type fakeOrganize struct {
	suggestFn func() (*models.OrganizeSuggestions, error)
	applyFn   func([]models.FolderAssignment) (*models.OrganizeResult, error)
}

func (f *fakeOrganize) Suggestions(ctx context.Context) (*models.OrganizeSuggestions, error) {
	if f.suggestFn == nil {
		return nil, errors.New("unexpected Suggestions")
	}
	return f.suggestFn()
}

func (f *fakeOrganize) Apply(ctx context.Context, assignments []models.FolderAssignment) (*models.OrganizeResult, error) {
	if f.applyFn == nil {
		return nil, errors.New("unexpected Apply")
	}
	return f.applyFn(assignments)
}

func newTestEngine(t *testing.T, tree *fakeTree, folders *fakeFolders, docs *fakeDocs, org *fakeOrganize, opts Options) *Orchestrator {
	t.Helper()
	registry, err := swatch.NewRegistry()
	if err != nil {
		t.Fatalf("failed to load swatch catalog: %v", err)
	}
	engine := NewOrchestrator(Deps{
		Tree:      tree,
		Folders:   folders,
		Documents: docs,
		Organize:  org,
		Swatches:  registry,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, opts)
	t.Cleanup(engine.Close)
	return engine
}

// fixturePage holds doc-a filed under misc and doc-b unfiled.
func fixturePage() *models.DocumentPage {
	misc := "misc"
	return &models.DocumentPage{
		Items: []models.LibraryItem{
			{ID: "doc-a", DocumentID: "doc-a", Filename: "a.pdf", Status: models.StatusCompleted, FolderID: &misc},
			{ID: "doc-b", DocumentID: "doc-b", Filename: "b.pdf", Status: models.StatusCompleted},
		},
		Total: 2,
	}
}

func loadFixtures(t *testing.T, engine *Orchestrator) {
	t.Helper()
	if err := engine.LoadTree(context.Background()); err != nil {
		t.Fatalf("LoadTree failed: %v", err)
	}
	if err := engine.LoadDocuments(context.Background(), models.ListCriteria{}); err != nil {
		t.Fatalf("LoadDocuments failed: %v", err)
	}
}

func TestLoadTree_FailureKeepsPreviousForest(t *testing.T) {
	tree := &fakeTree{forest: fixtureForest}
	engine := newTestEngine(t, tree, &fakeFolders{}, &fakeDocs{}, &fakeOrganize{}, Options{})

	if err := engine.LoadTree(context.Background()); err != nil {
		t.Fatalf("first load failed: %v", err)
	}
	if !engine.Tree().IsLoaded() {
		t.Fatal("expected loaded tree")
	}

	tree.err = errors.New("gateway timeout")
	if err := engine.LoadTree(context.Background()); err == nil {
		t.Fatal("expected second load to fail")
	}
	snapshot := engine.Tree()
	if !snapshot.IsError() {
		t.Error("expected error state")
	}
	if snapshot.Data() == nil || snapshot.Data().TotalFolderCount != 3 {
		t.Error("expected previous forest to stay readable during error")
	}
}

func TestCreateFolder_InsertsAcknowledgedNode(t *testing.T) {
	tree := &fakeTree{forest: fixtureForest}
	folders := &fakeFolders{
		createFn: func(p repo.CreateFolderPayload) (*models.FolderNode, error) {
			return &models.FolderNode{ID: "projects", Name: p.Name, Color: p.Color, ParentID: p.ParentID}, nil
		},
	}
	engine := newTestEngine(t, tree, folders, &fakeDocs{listFn: func(models.ListCriteria) (*models.DocumentPage, error) {
		return fixturePage(), nil
	}}, &fakeOrganize{}, Options{})
	loadFixtures(t, engine)

	node, err := engine.CreateFolder(context.Background(), &libSvc.CreateFolderRequest{
		Name:     "Projects",
		Color:    "blue",
		ParentID: strPtr("reports"),
	})
	if err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}
	if node.ID != "projects" {
		t.Errorf("unexpected node %+v", node)
	}

	forest := engine.Tree().Data()
	if forest.TotalFolderCount != 4 {
		t.Errorf("expected 4 folders, got %d", forest.TotalFolderCount)
	}
	parent := FindNode(forest, "reports")
	if parent.ChildrenCount != 2 {
		t.Errorf("expected reports to gain a child, got %d", parent.ChildrenCount)
	}
	if parent.DocumentCount != 3 {
		t.Errorf("empty folder must not change document counts, got %d", parent.DocumentCount)
	}
	checkInvariants(t, forest)
}

func TestCreateFolder_ValidationStopsBeforeRemoteCall(t *testing.T) {
	folders := &fakeFolders{}
	engine := newTestEngine(t, &fakeTree{forest: fixtureForest}, folders, &fakeDocs{}, &fakeOrganize{}, Options{})

	cases := []struct {
		name string
		req  *libSvc.CreateFolderRequest
	}{
		{"empty name", &libSvc.CreateFolderRequest{Name: "", Color: "blue"}},
		{"slash in name", &libSvc.CreateFolderRequest{Name: "a/b", Color: "blue"}},
		{"unknown color", &libSvc.CreateFolderRequest{Name: "ok", Color: "neon"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.CreateFolder(context.Background(), tc.req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
	if folders.createCalls() != 0 {
		t.Errorf("invalid requests must never reach the collaborator, got %d calls", folders.createCalls())
	}
}

func TestUpdateFolder_MoveToRootConservesCounts(t *testing.T) {
	folders := &fakeFolders{
		updateFn: func(id string, p repo.UpdateFolderPayload) (*models.FolderNode, error) {
			if !p.ParentID.Present || p.ParentID.Value != nil {
				t.Errorf("expected explicit null parent on the wire, got %+v", p.ParentID)
			}
			return &models.FolderNode{ID: id, Name: "2024", Color: "slate", DocumentCount: 3}, nil
		},
	}
	engine := newTestEngine(t, &fakeTree{forest: fixtureForest}, folders, &fakeDocs{}, &fakeOrganize{}, Options{})
	if err := engine.LoadTree(context.Background()); err != nil {
		t.Fatal(err)
	}

	if _, err := engine.MoveFolder(context.Background(), "y2024", nil); err != nil {
		t.Fatalf("MoveFolder failed: %v", err)
	}

	forest := engine.Tree().Data()
	if len(forest.Folders) != 3 {
		t.Errorf("expected 3 roots after move, got %d", len(forest.Folders))
	}
	if FindNode(forest, "reports").DocumentCount != 0 {
		t.Errorf("old ancestor must lose the subtree docs, got %d", FindNode(forest, "reports").DocumentCount)
	}
	if FindNode(forest, "y2024").DocumentCount != 3 {
		t.Errorf("moved subtree keeps its docs, got %d", FindNode(forest, "y2024").DocumentCount)
	}
	if forest.TotalDocumentCount != 6 {
		t.Errorf("move must conserve the total, got %d", forest.TotalDocumentCount)
	}
	checkInvariants(t, forest)
}

func TestUpdateFolder_CycleRejectedAtInputBoundary(t *testing.T) {
	folders := &fakeFolders{}
	engine := newTestEngine(t, &fakeTree{forest: fixtureForest}, folders, &fakeDocs{}, &fakeOrganize{}, Options{})
	if err := engine.LoadTree(context.Background()); err != nil {
		t.Fatal(err)
	}

	if _, err := engine.MoveFolder(context.Background(), "reports", strPtr("reports")); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("self-parent must be rejected, got %v", err)
	}
	if _, err := engine.MoveFolder(context.Background(), "reports", strPtr("y2024")); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("move into own subtree must be rejected, got %v", err)
	}
	if folders.updateCalls() != 0 {
		t.Errorf("cycle requests must never reach the collaborator, got %d calls", folders.updateCalls())
	}
}

func TestUpdateFolder_LateAckForDeletedFolderIsNoOp(t *testing.T) {
	// A folder can be deleted while a move for it is still in flight.
	// The late acknowledgment must not resurrect the node or corrupt
	// counts; resolution happens against the tree at ack time.
	folders := &fakeFolders{
		deleteFn: func(id string) (*models.FolderNode, error) {
			return &models.FolderNode{ID: id, Name: "Reports"}, nil
		},
		updateFn: func(id string, p repo.UpdateFolderPayload) (*models.FolderNode, error) {
			return &models.FolderNode{ID: id, Name: "Reports", ParentID: strPtr("misc"), DocumentCount: 3}, nil
		},
	}
	engine := newTestEngine(t, &fakeTree{forest: fixtureForest}, folders, &fakeDocs{}, &fakeOrganize{}, Options{})
	if err := engine.LoadTree(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := engine.DeleteFolder(context.Background(), "reports"); err != nil {
		t.Fatalf("DeleteFolder failed: %v", err)
	}
	if _, err := engine.UpdateFolder(context.Background(), "reports", &libSvc.UpdateFolderRequest{
		ParentID: httputil.Set(strPtr("misc")),
	}); err != nil {
		t.Fatalf("late move ack must not error: %v", err)
	}

	forest := engine.Tree().Data()
	if FindNode(forest, "reports") != nil {
		t.Error("deleted folder must not be resurrected by a late ack")
	}
	if forest.TotalFolderCount != 1 || FindNode(forest, "misc").DocumentCount != 2 {
		t.Errorf("counts corrupted by late ack: %+v", forest)
	}
	checkInvariants(t, forest)
}

func TestDeleteFolder_RemovesSubtreeAsUnit(t *testing.T) {
	folders := &fakeFolders{
		deleteFn: func(id string) (*models.FolderNode, error) {
			return &models.FolderNode{ID: id, Name: "Reports"}, nil
		},
	}
	engine := newTestEngine(t, &fakeTree{forest: fixtureForest}, folders, &fakeDocs{}, &fakeOrganize{}, Options{})
	if err := engine.LoadTree(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := engine.DeleteFolder(context.Background(), "reports"); err != nil {
		t.Fatalf("DeleteFolder failed: %v", err)
	}

	forest := engine.Tree().Data()
	if forest.TotalFolderCount != 1 {
		t.Errorf("expected only misc left, got %d folders", forest.TotalFolderCount)
	}
	if forest.TotalDocumentCount != 3 {
		t.Errorf("expected total to drop by the subtree's 3 docs, got %d", forest.TotalDocumentCount)
	}
	checkInvariants(t, forest)
}

func TestAssignDocuments_MovesItemAndCounts(t *testing.T) {
	folders := &fakeFolders{
		assignFn: func(folderID string, ids []string) error { return nil },
	}
	engine := newTestEngine(t, &fakeTree{forest: fixtureForest}, folders, &fakeDocs{listFn: func(models.ListCriteria) (*models.DocumentPage, error) {
		return fixturePage(), nil
	}}, &fakeOrganize{}, Options{})
	loadFixtures(t, engine)

	if err := engine.AssignDocuments(context.Background(), "reports", []string{"doc-a"}); err != nil {
		t.Fatalf("AssignDocuments failed: %v", err)
	}

	page := engine.Documents().Data()
	if page.Items[0].FolderID == nil || *page.Items[0].FolderID != "reports" {
		t.Errorf("expected doc-a refiled to reports, got %+v", page.Items[0].FolderID)
	}

	forest := engine.Tree().Data()
	if FindNode(forest, "misc").DocumentCount != 1 {
		t.Errorf("expected misc at 1, got %d", FindNode(forest, "misc").DocumentCount)
	}
	if FindNode(forest, "reports").DocumentCount != 4 {
		t.Errorf("expected reports at 4, got %d", FindNode(forest, "reports").DocumentCount)
	}
	if forest.TotalDocumentCount != 6 {
		t.Errorf("refiling must conserve the total, got %d", forest.TotalDocumentCount)
	}
	checkInvariants(t, forest)
}

func TestParentChoices_ExcludesOwnSubtree(t *testing.T) {
	engine := newTestEngine(t, &fakeTree{forest: fixtureForest}, &fakeFolders{}, &fakeDocs{}, &fakeOrganize{}, Options{})
	if err := engine.LoadTree(context.Background()); err != nil {
		t.Fatal(err)
	}

	choices := engine.ParentChoices("reports")
	for _, c := range choices {
		if c.ID == "reports" || c.ID == "y2024" {
			t.Errorf("picker offered a cycle candidate %s", c.ID)
		}
	}
	if len(choices) != 1 || choices[0].ID != "misc" {
		t.Errorf("unexpected choices %+v", choices)
	}
}

func TestSearch_DebouncesAndCollapsesDuplicates(t *testing.T) {
	docs := &fakeDocs{listed: make(chan struct{}, 8)}
	engine := newTestEngine(t, &fakeTree{forest: fixtureForest}, &fakeFolders{}, docs, &fakeOrganize{}, Options{
		SearchDebounce: 10 * time.Millisecond,
	})

	ctx := context.Background()
	engine.Search(ctx, "r")
	engine.Search(ctx, "re")
	engine.Search(ctx, "rep")

	select {
	case <-docs.listed:
	case <-time.After(time.Second):
		t.Fatal("debounced search never fired")
	}

	calls := docs.criteria()
	if len(calls) != 1 {
		t.Fatalf("expected a single collapsed load, got %d", len(calls))
	}
	if calls[0].Search != "rep" {
		t.Errorf("expected final query, got %q", calls[0].Search)
	}

	// Re-issuing the value that already ran must not load again.
	engine.Search(ctx, "rep")
	time.Sleep(100 * time.Millisecond)
	if got := len(docs.criteria()); got != 1 {
		t.Errorf("duplicate query retriggered a load, %d calls", got)
	}
}

func TestLoadMore_AppendsNextPage(t *testing.T) {
	docs := &fakeDocs{}
	docs.listFn = func(c models.ListCriteria) (*models.DocumentPage, error) {
		if c.Offset == 0 {
			return &models.DocumentPage{
				Items: []models.LibraryItem{
					{ID: "d1", DocumentID: "d1"},
					{ID: "d2", DocumentID: "d2"},
				},
				Total: 4, Offset: 0, HasMore: true,
			}, nil
		}
		if c.Offset != 2 {
			t.Errorf("expected offset 2 for next page, got %d", c.Offset)
		}
		return &models.DocumentPage{
			Items: []models.LibraryItem{
				{ID: "d3", DocumentID: "d3"},
				{ID: "d4", DocumentID: "d4"},
			},
			Total: 4, Offset: 2, HasMore: false,
		}, nil
	}
	engine := newTestEngine(t, &fakeTree{forest: fixtureForest}, &fakeFolders{}, docs, &fakeOrganize{}, Options{PageSize: 2})

	if err := engine.LoadDocuments(context.Background(), models.ListCriteria{}); err != nil {
		t.Fatal(err)
	}
	if err := engine.LoadMore(context.Background()); err != nil {
		t.Fatalf("LoadMore failed: %v", err)
	}

	page := engine.Documents().Data()
	if len(page.Items) != 4 || page.HasMore {
		t.Errorf("expected 4 accumulated items and exhaustion, got %d items HasMore=%v", len(page.Items), page.HasMore)
	}

	// Exhausted list makes further calls no-ops.
	before := len(docs.criteria())
	if err := engine.LoadMore(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(docs.criteria()) != before {
		t.Error("LoadMore on exhausted list must not hit the collaborator")
	}
}

func TestApplyOrganization_PartialFailureCommitsTheRest(t *testing.T) {
	org := &fakeOrganize{
		applyFn: func(assignments []models.FolderAssignment) (*models.OrganizeResult, error) {
			return &models.OrganizeResult{
				OrganizedCount: 1,
				Errors:         []models.OrganizeError{{DocumentID: "doc-b", Message: "document has no tags"}},
			}, nil
		},
	}
	engine := newTestEngine(t, &fakeTree{forest: fixtureForest}, &fakeFolders{}, &fakeDocs{listFn: func(models.ListCriteria) (*models.DocumentPage, error) {
		return fixturePage(), nil
	}}, org, Options{})
	loadFixtures(t, engine)

	var notices []libSvc.Notice
	engine.Subscribe(func(c libSvc.Change) {
		if c.Kind == libSvc.ChangeNotice && c.Notice != nil {
			notices = append(notices, *c.Notice)
		}
	})

	result, err := engine.ApplyOrganization(context.Background(), []models.FolderAssignment{
		{DocumentID: "doc-a", FolderID: "reports"},
		{DocumentID: "doc-b", FolderID: "reports"},
	})
	if err != nil {
		t.Fatalf("ApplyOrganization failed: %v", err)
	}
	if result.OrganizedCount != 1 {
		t.Errorf("expected 1 organized, got %d", result.OrganizedCount)
	}

	page := engine.Documents().Data()
	if page.Items[0].FolderID == nil || *page.Items[0].FolderID != "reports" {
		t.Error("successful assignment must stay committed")
	}
	if page.Items[1].FolderID != nil {
		t.Error("failed assignment must leave the item untouched")
	}

	if len(notices) != 1 || notices[0].DocumentID != "doc-b" || notices[0].Level != libSvc.NoticeError {
		t.Errorf("expected one per-document failure notice, got %+v", notices)
	}
	checkInvariants(t, engine.Tree().Data())
}

func TestTrashDocument_RemovesItemAndDecrementsChain(t *testing.T) {
	docs := &fakeDocs{listFn: func(models.ListCriteria) (*models.DocumentPage, error) {
		return fixturePage(), nil
	}}
	engine := newTestEngine(t, &fakeTree{forest: fixtureForest}, &fakeFolders{}, docs, &fakeOrganize{}, Options{})
	loadFixtures(t, engine)

	if err := engine.TrashDocument(context.Background(), "doc-a"); err != nil {
		t.Fatalf("TrashDocument failed: %v", err)
	}

	page := engine.Documents().Data()
	if len(page.Items) != 1 || page.Items[0].DocumentID != "doc-b" {
		t.Errorf("expected only doc-b left, got %+v", page.Items)
	}
	if page.Total != 1 {
		t.Errorf("expected total 1, got %d", page.Total)
	}

	forest := engine.Tree().Data()
	if FindNode(forest, "misc").DocumentCount != 1 {
		t.Errorf("expected misc decremented, got %d", FindNode(forest, "misc").DocumentCount)
	}
	if forest.TotalDocumentCount != 5 {
		t.Errorf("expected total 5, got %d", forest.TotalDocumentCount)
	}
	checkInvariants(t, forest)
}

func TestRestoreDocument_ReloadsBothContainers(t *testing.T) {
	docs := &fakeDocs{listFn: func(models.ListCriteria) (*models.DocumentPage, error) {
		return fixturePage(), nil
	}}
	tree := &fakeTree{forest: fixtureForest}
	engine := newTestEngine(t, tree, &fakeFolders{}, docs, &fakeOrganize{}, Options{})
	loadFixtures(t, engine)

	listsBefore := len(docs.criteria())
	treeBefore := tree.fetchCalls()

	if err := engine.RestoreDocument(context.Background(), "doc-z"); err != nil {
		t.Fatalf("RestoreDocument failed: %v", err)
	}
	if len(docs.restored) != 1 || docs.restored[0] != "doc-z" {
		t.Errorf("expected restore call for doc-z, got %v", docs.restored)
	}
	if len(docs.criteria()) != listsBefore+1 {
		t.Error("expected a document reload after restore")
	}
	if tree.fetchCalls() != treeBefore+1 {
		t.Error("expected a tree reload after restore")
	}
}

func TestRegisterUpload_PrependsPlaceholder(t *testing.T) {
	engine := newTestEngine(t, &fakeTree{forest: fixtureForest}, &fakeFolders{}, &fakeDocs{listFn: func(models.ListCriteria) (*models.DocumentPage, error) {
		return fixturePage(), nil
	}}, &fakeOrganize{}, Options{})
	loadFixtures(t, engine)

	item := engine.RegisterUpload("notes.md", 1024, strPtr("misc"))
	if item.Status != models.StatusUploading || item.ID == "" {
		t.Errorf("unexpected placeholder %+v", item)
	}

	page := engine.Documents().Data()
	if page.Items[0].Filename != "notes.md" {
		t.Error("placeholder must lead the list")
	}
	if page.Total != 3 {
		t.Errorf("expected total 3, got %d", page.Total)
	}

	forest := engine.Tree().Data()
	if FindNode(forest, "misc").DocumentCount != 3 {
		t.Errorf("expected misc at 3, got %d", FindNode(forest, "misc").DocumentCount)
	}
	checkInvariants(t, forest)
}

func TestHandleProcessingEvent_UpdatesItemStatus(t *testing.T) {
	engine := newTestEngine(t, &fakeTree{forest: fixtureForest}, &fakeFolders{}, &fakeDocs{listFn: func(models.ListCriteria) (*models.DocumentPage, error) {
		return fixturePage(), nil
	}}, &fakeOrganize{}, Options{})
	loadFixtures(t, engine)

	engine.HandleProcessingEvent(models.ProcessingEvent{DocumentID: "doc-a", Stage: models.StageExtracting, Progress: 10})
	if got := engine.Documents().Data().Items[0].Status; got != models.StatusProcessing {
		t.Errorf("expected processing, got %s", got)
	}
	if !engine.IsProcessing("doc-a") {
		t.Error("expected live tracker entry")
	}

	engine.HandleProcessingEvent(models.ProcessingEvent{DocumentID: "doc-a", Stage: models.StageError, Progress: 40})
	item := engine.Documents().Data().Items[0]
	if item.Status != models.StatusFailed || item.ErrorMessage == "" {
		t.Errorf("expected failed item with message, got %+v", item)
	}
	if engine.IsProcessing("doc-a") {
		t.Error("terminal event must clear the tracker entry")
	}
}

func TestHandleProcessingEvent_CompletionSchedulesDelayedReload(t *testing.T) {
	docs := &fakeDocs{listed: make(chan struct{}, 8)}
	docs.listFn = func(models.ListCriteria) (*models.DocumentPage, error) {
		return fixturePage(), nil
	}
	engine := newTestEngine(t, &fakeTree{forest: fixtureForest}, &fakeFolders{}, docs, &fakeOrganize{}, Options{
		CompletionReloadDelay: 20 * time.Millisecond,
	})
	loadFixtures(t, engine)
	<-docs.listed // drain the initial load's signal

	engine.HandleProcessingEvent(models.ProcessingEvent{DocumentID: "doc-a", Stage: models.StageCompleted, Progress: 100})

	select {
	case <-docs.listed:
	case <-time.After(time.Second):
		t.Fatal("completion never triggered the delayed reload")
	}
	if got := len(docs.criteria()); got != 2 {
		t.Errorf("expected exactly one reload, got %d loads", got)
	}
}

func TestSubscribe_NotifiesInRegistrationOrder(t *testing.T) {
	engine := newTestEngine(t, &fakeTree{forest: fixtureForest}, &fakeFolders{}, &fakeDocs{}, &fakeOrganize{}, Options{})

	var order []string
	engine.Subscribe(func(c libSvc.Change) {
		if c.Kind == libSvc.ChangeTree {
			order = append(order, "first")
		}
	})
	handle := engine.Subscribe(func(c libSvc.Change) {
		if c.Kind == libSvc.ChangeTree {
			order = append(order, "second")
		}
	})

	if err := engine.LoadTree(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(order) < 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("unexpected notification order %v", order)
	}

	engine.Unsubscribe(handle)
	order = nil
	if err := engine.LoadTree(context.Background()); err != nil {
		t.Fatal(err)
	}
	for _, who := range order {
		if who == "second" {
			t.Error("unsubscribed observer still notified")
		}
	}
}
