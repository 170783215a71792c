package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDocumentNotFound  = errors.New("document not found")
	ErrDraftNotFound     = errors.New("draft not found")
	ErrKeyNotFound       = errors.New("key not found")
	ErrInvalidKind       = errors.New("unsupported document kind")
	ErrValidation        = errors.New("validation failed")
	ErrDuplicateDocument = errors.New("document for this client and company already exists")
	ErrNoCurrentDocument = errors.New("no generated document to act on")
	ErrNothingToExport   = errors.New("no documents to export")
	ErrStorage           = errors.New("storage failure")
	ErrExport            = errors.New("export failure")
	ErrDraftEmpty        = errors.New("draft has neither company nor client name")
)

// DuplicateError reports the saved document that blocks a save.
type DuplicateError struct {
	Existing *Document
}

func (e *DuplicateError) Error() string {
	if e.Existing == nil {
		return ErrDuplicateDocument.Error()
	}
	return fmt.Sprintf("%s: %s %s for %s <%s>", ErrDuplicateDocument.Error(),
		e.Existing.Kind, e.Existing.DocumentNo, e.Existing.CompanyName, e.Existing.ClientEmail)
}

// Unwrap lets errors.Is match ErrDuplicateDocument.
func (e *DuplicateError) Unwrap() error {
	return ErrDuplicateDocument
}
