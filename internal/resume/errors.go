// Package resume provides the resume service layer: lifecycle, versioning,
// duplication, and slug management over a pluggable store.
package resume

import (
	"fmt"

	"github.com/google/uuid"
)

// NotFoundError indicates a resume or version snapshot does not exist.
type NotFoundError struct {
	Kind string // "resume" or "version"
	ID   uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// InvalidStatusError indicates a status value outside the allowed enum.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid status %q: must be one of draft, published, archived", e.Status)
}
