package library

// ProcessingStage is one step of the remote summarization pipeline.
type ProcessingStage string

const (
	StagePreparing   ProcessingStage = "preparing"
	StageExtracting  ProcessingStage = "extracting"
	StageEmbedding   ProcessingStage = "embedding"
	StageSummarizing ProcessingStage = "summarizing"
	StageTagging     ProcessingStage = "tagging"
	StageCompleted   ProcessingStage = "completed"
	StageError       ProcessingStage = "error"
)

// ProcessingEvent is one record from the push-event channel. Events
// arrive unordered relative to HTTP responses.
type ProcessingEvent struct {
	DocumentID string          `json:"document_id"`
	Stage      ProcessingStage `json:"stage"`
	Progress   int             `json:"progress"`
}

// Terminal reports whether this event ends processing for the document,
// successfully or not.
func (e ProcessingEvent) Terminal() bool {
	return e.Stage == StageCompleted || e.Stage == StageError || e.Progress >= 100
}

// StatusEntry is the ephemeral per-document progress kept by the
// processing tracker. Not persisted; reconstructible from the next push
// event or from LibraryItem.Status.
type StatusEntry struct {
	Stage    ProcessingStage `json:"stage"`
	Progress int             `json:"progress"`
}
