package library

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"libris/internal/config"
	libSvc "libris/internal/domain/services/library"
	"libris/internal/swatch"
)

var folderNamePattern = regexp.MustCompile(`^[^/]+$`)

// RequestValidator validates folder mutation requests before they reach
// the remote collaborator.
type RequestValidator struct {
	swatches *swatch.Registry
}

// NewRequestValidator creates a validator backed by the swatch catalog.
func NewRequestValidator(swatches *swatch.Registry) *RequestValidator {
	return &RequestValidator{swatches: swatches}
}

// ValidateCreate validates a folder creation request.
func (v *RequestValidator) ValidateCreate(req *libSvc.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
			validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
		),
		validation.Field(&req.Description,
			validation.Length(0, config.MaxFolderDescriptionLength),
		),
		validation.Field(&req.Color,
			validation.Required,
			validation.By(v.knownSwatch),
		),
	)
}

// ValidateUpdate validates a folder update request. At least one field
// must be provided; present fields follow the creation rules.
func (v *RequestValidator) ValidateUpdate(req *libSvc.UpdateFolderRequest) error {
	if req.Name == nil && req.Description == nil && req.Color == nil &&
		!req.ParentID.Present && req.Tags == nil {
		return fmt.Errorf("at least one field must be provided")
	}

	var rules []*validation.FieldRules
	if req.Name != nil {
		rules = append(rules,
			validation.Field(&req.Name,
				validation.Required,
				validation.Length(1, config.MaxFolderNameLength),
				validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
			),
		)
	}
	if req.Description != nil {
		rules = append(rules,
			validation.Field(&req.Description,
				validation.Length(0, config.MaxFolderDescriptionLength),
			),
		)
	}
	if req.Color != nil {
		rules = append(rules,
			validation.Field(&req.Color,
				validation.Required,
				validation.By(v.knownSwatch),
			),
		)
	}
	return validation.ValidateStruct(req, rules...)
}

// knownSwatch rejects colors missing from the embedded catalog.
func (v *RequestValidator) knownSwatch(value interface{}) error {
	var name string
	switch c := value.(type) {
	case string:
		name = c
	case *string:
		if c != nil {
			name = *c
		}
	}
	if name == "" {
		return nil // Required handles empties
	}
	if !v.swatches.Valid(name) {
		return fmt.Errorf("unknown color %q", name)
	}
	return nil
}
