// write.go implements the package map serializer.
package pkgmap

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/FocuswithJustin/pkgmap/core/pkgname"
	"github.com/FocuswithJustin/pkgmap/core/uri"
)

// WriteOptions controls Write output. The zero value writes absolute
// locations with a generated-at header comment.
type WriteOptions struct {
	// Base, when set, must be absolute; locations are relativized
	// against it for compact output.
	Base uri.URI

	// Comment replaces the default header. It is split on '\n', a final
	// empty line from a trailing newline is dropped, and each line is
	// written prefixed with "# ".
	Comment string

	// Now supplies the timestamp for the default header comment.
	// nil means time.Now.
	Now func() time.Time

	URIs      uri.Parser
	ValidName NameValidator
}

// Write renders m to w in the line format, entries in map order. It
// fails with a *ValidationError when Base is not absolute, a name fails
// the validator, or a location uses the "package" scheme. Validation is
// per entry and fail-fast: output already written stays in the sink.
func Write(w io.Writer, m *Map, opts WriteOptions) error {
	uris := opts.URIs
	if uris == nil {
		uris = uri.Std{}
	}
	valid := opts.ValidName
	if valid == nil {
		valid = pkgname.IsValid
	}
	if opts.Base != nil && !opts.Base.IsAbsolute() {
		return &ValidationError{Value: opts.Base.String(), Err: ErrInvalidBaseURI}
	}

	if opts.Comment != "" {
		lines := strings.Split(opts.Comment, "\n")
		if lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		for _, line := range lines {
			if _, err := fmt.Fprintf(w, "# %s\n", line); err != nil {
				return err
			}
		}
	} else {
		now := opts.Now
		if now == nil {
			now = time.Now
		}
		if _, err := fmt.Fprintf(w, "# Generated by pkgmap at %s\n", now().Format(time.RFC3339)); err != nil {
			return err
		}
	}

	for _, e := range m.entries {
		if !valid(e.Name) {
			return &ValidationError{Value: e.Name, Err: ErrInvalidPackageName}
		}
		if e.Location.Scheme() == "package" {
			return &ValidationError{Value: e.Location.String(), Err: ErrForbiddenScheme}
		}
		location := e.Location
		if opts.Base != nil {
			location = uri.Relativize(location, opts.Base, uris)
		}
		if !strings.HasSuffix(location.Path(), "/") {
			location = location.WithPath(location.Path() + "/")
		}
		if _, err := fmt.Fprintf(w, "%s:%s\n", e.Name, location); err != nil {
			return err
		}
	}
	return nil
}
