package data

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAccession = errors.New("invalid accession")
	ErrInvalidRelatives = errors.New("invalid clade relatives mode")
	ErrMissingField     = errors.New("missing field")
	ErrRecordNotFound   = errors.New("record not found")
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
)

// MissingFieldError reports a coding sequence lacking a field the output needs.
// Null is set when the key was present but held JSON null.
type MissingFieldError struct {
	Accession string
	Index     int
	Field     string
	Null      bool
}

func NewMissingFieldError(accession string, index int, field string, value Field) *MissingFieldError {
	return &MissingFieldError{Accession: accession, Index: index, Field: field, Null: value.IsNull()}
}

func (e *MissingFieldError) Error() string {
	if e.Null {
		return fmt.Sprintf("%s coding sequence %d: %s %q (null)", e.Accession, e.Index, ErrMissingField, e.Field)
	}
	return fmt.Sprintf("%s coding sequence %d: %s %q", e.Accession, e.Index, ErrMissingField, e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}
