package models

import (
	"errors"
	"strings"

	"github.com/fathima-sithara/uriel-service/internal/utils"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("media not found")
	ErrInvalidID        = errors.New("invalid id")
	ErrStoreUnavailable = errors.New("database not configured")
)

// ValidationError carries per-field failures. errors.Is(err, ErrValidation) holds for it.
type ValidationError struct {
	Fields []utils.ValidationError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// FieldInvalid builds a single-field ValidationError.
func FieldInvalid(field, tag, msg string) *ValidationError {
	return &ValidationError{Fields: []utils.ValidationError{{Field: field, Tag: tag, Message: msg}}}
}
