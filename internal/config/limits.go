package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 to match the collaborator's VARCHAR(255) columns
	// and provide reasonable UX (names should be short and descriptive).
	MaxFolderNameLength = 255

	// MaxFolderDescriptionLength is the maximum length for folder
	// descriptions shown in detail views.
	MaxFolderDescriptionLength = 1000

	// MaxFolderDepth bounds how deep the picker will offer parents.
	// Deeper hierarchies indicate an anti-pattern and render poorly.
	MaxFolderDepth = 10

	// DefaultPageSize is the document-list page size when the caller
	// does not specify one.
	DefaultPageSize = 50

	// MaxPageSize caps a single document-list request.
	MaxPageSize = 200
)
