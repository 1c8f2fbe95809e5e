package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrInvalidQuery is returned when a search request cannot be accepted
	// (for example a name search with neither text nor filters).
	ErrInvalidQuery = errors.New("invalid query")

	// ErrDocumentNotFound is returned when an exact-id lookup finds nothing.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrDatasetMissing is returned when a required source dataset file is
	// absent or unreadable at build time. This aborts the whole build.
	ErrDatasetMissing = errors.New("dataset missing")
)

// InvalidQueryError carries the reason a search request was rejected.
type InvalidQueryError struct {
	Message string
}

func (e *InvalidQueryError) Error() string {
	return "invalid query: " + e.Message
}

func (e *InvalidQueryError) Is(target error) bool {
	return target == ErrInvalidQuery
}

// NewInvalidQueryError creates a new InvalidQueryError
func NewInvalidQueryError(message string) *InvalidQueryError {
	return &InvalidQueryError{Message: message}
}

// DocumentNotFoundError identifies which document was missing from which index.
type DocumentNotFoundError struct {
	DocumentID string
	IndexName  string
}

func (e *DocumentNotFoundError) Error() string {
	if e.IndexName != "" {
		return fmt.Sprintf("document with ID '%s' not found in index '%s'", e.DocumentID, e.IndexName)
	}
	return fmt.Sprintf("document with ID '%s' not found", e.DocumentID)
}

func (e *DocumentNotFoundError) Is(target error) bool {
	return target == ErrDocumentNotFound
}

// NewDocumentNotFoundError creates a new DocumentNotFoundError
func NewDocumentNotFoundError(documentID string, indexName ...string) *DocumentNotFoundError {
	err := &DocumentNotFoundError{DocumentID: documentID}
	if len(indexName) > 0 {
		err.IndexName = indexName[0]
	}
	return err
}

// DatasetMissingError identifies the unreadable dataset file.
type DatasetMissingError struct {
	Path  string
	Cause error
}

func (e *DatasetMissingError) Error() string {
	return fmt.Sprintf("required dataset '%s' is missing or unreadable: %v", e.Path, e.Cause)
}

func (e *DatasetMissingError) Is(target error) bool {
	return target == ErrDatasetMissing
}

func (e *DatasetMissingError) Unwrap() error {
	return e.Cause
}

// NewDatasetMissingError creates a new DatasetMissingError
func NewDatasetMissingError(path string, cause error) *DatasetMissingError {
	return &DatasetMissingError{Path: path, Cause: cause}
}
