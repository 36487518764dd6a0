// Package errors holds the sentinel errors returned when converting execution
// plans to and from their wire representation.
//
// Callers match on the sentinels with [errors.Is]; the concrete error message
// carries the diagnostic detail (offending type, node snapshot, field name).
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyPlan              = errors.New("physical plan node has no type set")
	ErrMissingField           = errors.New("missing required field")
	ErrUnsupportedPlanType    = errors.New("unsupported physical plan type")
	ErrUnsupportedExpression  = errors.New("unsupported physical expression")
	ErrProjectionConstruction = errors.New("failed to create projection")
	ErrLimitConstruction      = errors.New("failed to create limit")
	ErrWireDecoding           = errors.New("failed to decode physical plan node")
	ErrWireEncoding           = errors.New("failed to encode physical plan node")
)

// MissingFieldError reports a structurally required wire field that was not
// set.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField, e.Field)
}

// Is reports whether target is [ErrMissingField].
func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// MissingField returns a [MissingFieldError] for field.
func MissingField(field string) error {
	return &MissingFieldError{Field: field}
}
