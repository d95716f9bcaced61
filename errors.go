package crs

import (
	"errors"
	"fmt"
)

// Common errors returned by this package.
var (
	ErrInvalidKind         = errors.New("crs: invalid reference system kind")
	ErrMismatchedDimension = errors.New("crs: mismatched dimension")
	ErrIllegalState        = errors.New("crs: illegal state")
	ErrEmptyCompound       = errors.New("crs: compound CRS needs at least one component")
	ErrMissingName         = errors.New("crs: missing name")
	ErrInvalidParameter    = errors.New("crs: invalid parameter")
	ErrAlreadyRegistered   = errors.New("crs: key already registered")
)

// KindError reports a component whose kind does not fit the object being
// constructed, such as a vertical datum given to a geographic CRS.
type KindError struct {
	Object   string // What was being constructed (e.g. "geographic CRS")
	Property string // Offending property (e.g. "datum")
	Expected string
	Actual   string
}

func (e *KindError) Error() string {
	return fmt.Sprintf("crs: %s of %s must be %s, got %s", e.Property, e.Object, e.Expected, e.Actual)
}

func (e *KindError) Is(target error) bool {
	return target == ErrInvalidKind
}

// DimensionError reports two dimensions that were expected to match.
type DimensionError struct {
	What     string
	Expected int
	Actual   int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("crs: mismatched dimension for %s: expected %d, got %d", e.What, e.Expected, e.Actual)
}

func (e *DimensionError) Is(target error) bool {
	return target == ErrMismatchedDimension
}

func kindError(object, property, expected, actual string) error {
	return &KindError{Object: object, Property: property, Expected: expected, Actual: actual}
}
