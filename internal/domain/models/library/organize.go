package library

// OrganizeSuggestion proposes a folder for one unfiled document based on
// tag similarity, computed by the remote organize service.
type OrganizeSuggestion struct {
	DocumentID        string   `json:"document_id"`
	SuggestedFolderID string   `json:"suggested_folder_id"`
	SimilarityScore   float64  `json:"similarity_score"`
	MatchingTags      []string `json:"matching_tags"`
}

// OrganizeSuggestions is the full suggestion response.
type OrganizeSuggestions struct {
	Suggestions   []OrganizeSuggestion `json:"suggestions"`
	TotalUnfiled  int                  `json:"total_unfiled"`
	TotalWithTags int                  `json:"total_with_tags"`
}

// FolderAssignment files one document into one folder.
type FolderAssignment struct {
	DocumentID string `json:"document_id"`
	FolderID   string `json:"folder_id"`
}

// OrganizeError reports a single failed assignment within a batch.
type OrganizeError struct {
	DocumentID string `json:"document_id"`
	Message    string `json:"message"`
}

// OrganizeResult is the outcome of applying a batch of assignments.
// Assignments not listed in Errors are committed.
type OrganizeResult struct {
	OrganizedCount int             `json:"organized_count"`
	Errors         []OrganizeError `json:"errors,omitempty"`
}
