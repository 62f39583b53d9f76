package pkgmap

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying parse and write failures. Wrap-aware
// callers test them with errors.Is.
var (
	// ErrMissingPackageName marks a line whose first byte is the ':'
	// separator.
	ErrMissingPackageName = errors.New("missing package name")
	// ErrMissingSeparator marks a non-comment, non-blank line without a
	// ':' separator.
	ErrMissingSeparator = errors.New("missing ':' separator")
	// ErrInvalidPackageName marks a name rejected by the validator.
	ErrInvalidPackageName = errors.New("invalid package name")
	// ErrDuplicatePackageName marks a name that is already mapped.
	ErrDuplicatePackageName = errors.New("duplicate package name")
	// ErrInvalidLocation marks a location value the URI parser rejected.
	ErrInvalidLocation = errors.New("invalid location reference")
	// ErrInvalidBaseURI marks a write base URI that is not absolute.
	ErrInvalidBaseURI = errors.New("base URI is not absolute")
	// ErrForbiddenScheme marks a location using the "package" scheme,
	// which a map file must never contain.
	ErrForbiddenScheme = errors.New(`location must not use the "package" scheme`)
)

// ParseError reports a malformed line in a package map file. Offset is
// the byte offset of the offending line's start; Token carries the
// offending name or location text when one exists.
type ParseError struct {
	Offset int
	Token  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("offset %d: %v: %q", e.Offset, e.Err, e.Token)
	}
	return fmt.Sprintf("offset %d: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports a mapping value the serializer refuses to
// write. The sink may already hold partial output; nothing is rolled
// back.
type ValidationError struct {
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Err }
