package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrMissingColumn     = errors.New("missing required column")
	ErrInvalidValue      = errors.New("invalid value")
	ErrOutOfRange        = errors.New("percentage out of range")
	ErrNoData            = errors.New("dataset has no header row")

	// ErrNotLoaded is reported by consumers started without a dataset.
	ErrNotLoaded = errors.New("dataset not loaded")
)

// RowError reports a value that could not be loaded.
type RowError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %s: %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
