package subject

import (
	"errors"
	"fmt"
)

// ErrMissingData is matched by every *MissingDataError via errors.Is.
var ErrMissingData = errors.New("missing subject data")

// MissingDataError is returned when a field is requested from a subject
// variant that does not carry it.
type MissingDataError struct {
	ID    int
	Kind  Kind
	Field string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("subject %d (%s) has no %s", e.ID, e.Kind, e.Field)
}

func (e *MissingDataError) Unwrap() error { return ErrMissingData }

func missing(s *Subject, field string) error {
	return &MissingDataError{ID: s.ID, Kind: s.Kind, Field: field}
}
