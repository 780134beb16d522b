package library

import "time"

// DocumentStatus is the lifecycle state of a library item. Transitions
// from uploading onward are driven exclusively by push events.
type DocumentStatus string

const (
	StatusPending    DocumentStatus = "pending"
	StatusUploading  DocumentStatus = "uploading"
	StatusProcessing DocumentStatus = "processing"
	StatusCompleted  DocumentStatus = "completed"
	StatusFailed     DocumentStatus = "failed"
)

// LibraryItem is a document together with its derived summary.
type LibraryItem struct {
	ID           string         `json:"id"`
	DocumentID   string         `json:"document_id"`
	Filename     string         `json:"filename"`
	FileSize     int64          `json:"file_size"`
	SummaryText  string         `json:"summary_text,omitempty"`
	WordCount    int            `json:"word_count"`
	Status       DocumentStatus `json:"status"`
	FolderID     *string        `json:"folder_id,omitempty"` // nil = unfiled
	ErrorMessage string         `json:"error_message,omitempty"`
	Tags         []Tag          `json:"tags,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// DocumentPage is one page of the paginated document list.
type DocumentPage struct {
	Items   []LibraryItem `json:"items"`
	Total   int           `json:"total"`
	Offset  int           `json:"offset"`
	HasMore bool          `json:"has_more"`
}

// ListCriteria selects which documents to fetch.
type ListCriteria struct {
	Search   string
	FolderID *string
	Unfiled  bool
	Limit    int
	Offset   int
}
