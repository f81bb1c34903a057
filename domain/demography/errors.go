package demography

import (
	"errors"
	"fmt"
)

var (
	// ErrLoad marks a table that could not be read or decoded.
	ErrLoad = errors.New("load error")

	// ErrAmbiguousOrMissingLocation is matched by both lookup failures below.
	ErrAmbiguousOrMissingLocation = errors.New("ambiguous or missing location")
	ErrLocationNotFound           = fmt.Errorf("location not found: %w", ErrAmbiguousOrMissingLocation)
	ErrAmbiguousLocation          = fmt.Errorf("location matches several rows: %w", ErrAmbiguousOrMissingLocation)

	ErrInsufficientData = errors.New("insufficient data")
	ErrMissingYear      = errors.New("year column missing")
	ErrUnknownIndicator = errors.New("unknown indicator")
	ErrNoReference      = errors.New("catalog has no reference indicator")
)

// LoadError reports a table that failed to load. It matches ErrLoad.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() []error { return []error{ErrLoad, e.Err} }

// ErrDuplicateName rejects tables whose Name column repeats a municipality.
var ErrDuplicateName = errors.New("duplicate municipality name")
