package services

import (
	"errors"
	"fmt"
)

var (
	ErrSheetNotFound       = errors.New("sheet not found")
	ErrNoValidYears        = errors.New("dataset has no valid year values")
	ErrInvalidSortKey      = errors.New("invalid sort key")
	ErrInvalidSortOrder    = errors.New("invalid sort order")
	ErrInvalidPreset       = errors.New("invalid year preset")
	ErrInvalidParameter    = errors.New("invalid parameter")
	ErrUnsupportedFormat   = errors.New("unsupported export format")
	ErrMailerNotConfigured = errors.New("smtp not configured (SMTP_HOST/SMTP_FROM)")
)

// LoadError reports a dataset that could not be loaded. It is fatal for the session.
type LoadError struct {
	Path  string
	Sheet string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dataset %s (sheet %q): %v", e.Path, e.Sheet, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ExportError reports a failure to serialize a view in one format.
type ExportError struct {
	Format ExportFormat
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("%s export failed: %v", e.Format, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
