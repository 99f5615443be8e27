// Package errors provides common domain error types for the natlas service.
//
// This package defines sentinel errors for the conditions the core surfaces to
// callers. Using typed errors enables consistent handling with errors.Is()
// checks across the pipeline, the API layer, and the CLI.
//
// Usage:
//
//	import naterrors "github.com/natlasdev/natlas/pkg/errors"
//
//	// Return a domain error with context
//	return nil, fmt.Errorf("duplicate user id %d: %w", id, naterrors.ErrInvalidInput)
//
//	// Check for domain errors
//	if naterrors.IsInvalidInput(err) {
//	    // reject the request
//	}
package errors

import "errors"

// Domain errors - common sentinel errors for domain conditions.
var (
	// ErrInvalidInput indicates malformed or contradictory request data
	// (duplicate user IDs, empty required fields, empty search query).
	ErrInvalidInput = errors.New("invalid input")

	// ErrExtraction indicates audio extraction from a video failed
	// (missing file, unreadable container, no audio stream).
	ErrExtraction = errors.New("audio extraction failed")

	// ErrTranscription indicates the ASR model failed to produce a transcript.
	ErrTranscription = errors.New("transcription failed")

	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = errors.New("not found")
)

// IsInvalidInput reports whether any error in err's chain is ErrInvalidInput.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsExtraction reports whether any error in err's chain is ErrExtraction.
func IsExtraction(err error) bool {
	return errors.Is(err, ErrExtraction)
}

// IsTranscription reports whether any error in err's chain is ErrTranscription.
func IsTranscription(err error) bool {
	return errors.Is(err, ErrTranscription)
}

// IsNotFound reports whether any error in err's chain is ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
