package library

import "time"

// Tag is a lightweight reference to a tag entity owned by the remote
// collaborator. Folders and documents carry tag references only.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FolderNode is one folder in the library tree.
//
// Children is exclusively owned by the parent: a node never appears as a
// child of two parents, and the set of nodes always forms a forest.
// DocumentCount is a subtree total (documents filed directly here plus
// the DocumentCount of every descendant), not a direct count.
type FolderNode struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Color       string        `json:"color"`
	ParentID    *string       `json:"folder_id"` // nil = root level
	Children    []*FolderNode `json:"folders"`
	// ChildrenCount must equal len(Children).
	ChildrenCount int `json:"children_count"`
	// DocumentCount is the subtree document total.
	DocumentCount int       `json:"document_count"`
	Tags          []Tag     `json:"tags,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FolderForest is the aggregate root for the folder tree.
// Invariant: TotalDocumentCount equals the sum of root-level
// DocumentCount values plus UnfiledDocumentCount.
type FolderForest struct {
	Folders              []*FolderNode `json:"folders"`
	TotalFolderCount     int           `json:"total_folder_count"`
	UnfiledDocumentCount int           `json:"unfiled_count"`
	TotalDocumentCount   int           `json:"total_document_count"`
}
