package library

import (
	"log/slog"
	"sync"

	models "libris/internal/domain/models/library"
)

// ProcessingTracker maintains the ephemeral map from document id to
// processing progress, driven by the push-event stream. Entries are
// deleted on terminal events; the map is reconstructible from the next
// event or from LibraryItem.Status, so nothing here is persisted.
type ProcessingTracker struct {
	entries map[string]models.StatusEntry
	mu      sync.RWMutex
	logger  *slog.Logger
}

// NewProcessingTracker creates an empty tracker.
func NewProcessingTracker(logger *slog.Logger) *ProcessingTracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProcessingTracker{
		entries: make(map[string]models.StatusEntry),
		logger:  logger,
	}
}

// Observe merges one push event. Terminal events (completed, error, or
// progress >= 100) remove the entry; anything else inserts or overwrites
// it. The return value reports whether processing finished with this
// event, which is the orchestrator's cue to schedule a delayed reload.
func (t *ProcessingTracker) Observe(ev models.ProcessingEvent) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if ev.Terminal() {
		delete(t.entries, ev.DocumentID)
		t.logger.Debug("processing finished",
			"document_id", ev.DocumentID,
			"stage", ev.Stage,
		)
		return true
	}

	t.entries[ev.DocumentID] = models.StatusEntry{
		Stage:    ev.Stage,
		Progress: ev.Progress,
	}
	return false
}

// IsProcessing reports whether the document has a live entry.
func (t *ProcessingTracker) IsProcessing(documentID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.entries[documentID]
	return ok
}

// ProgressOf returns the current entry for a document, if any.
func (t *ProcessingTracker) ProgressOf(documentID string) (models.StatusEntry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	entry, ok := t.entries[documentID]
	return entry, ok
}

// Len returns the number of documents currently processing.
func (t *ProcessingTracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
