package statement

import (
	"errors"
	"fmt"
)

var (
	ErrStatementNotFound = errors.New("pay statement not found")
	ErrUnresolvedPeriod  = errors.New("pay period could not be resolved")
	ErrPayeeNameRequired = errors.New("payee name is required")
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrUnsupportedPreset = errors.New("unsupported export preset")
	ErrNothingToExport   = errors.New("either a saved statement key or a statement is required")
	ErrInvalidTransition = errors.New("invalid statement draft transition")
	ErrDraftNotFound     = errors.New("statement draft not found")
)

// CollaboratorError wraps a failure reported by storage, rendering or upload.
// The core never retries; the caller sees the underlying message.
type CollaboratorError struct {
	Collaborator string
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Collaborator, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// Collaborator names used in CollaboratorError.
const (
	CollaboratorStore      = "statement store"
	CollaboratorDirectory  = "contractor directory"
	CollaboratorRenderer   = "renderer"
	CollaboratorUploadSink = "upload target"
)
