// parse.go implements the line-oriented package map parser: a single
// forward pass over the raw bytes, no backtracking.
package pkgmap

import (
	"strings"

	"github.com/FocuswithJustin/pkgmap/core/pkgname"
	"github.com/FocuswithJustin/pkgmap/core/uri"
)

// ParseOptions supplies the collaborators Parse depends on. The zero
// value selects pkgname.IsValid and the net/url-backed URI parser.
type ParseOptions struct {
	URIs      uri.Parser
	ValidName NameValidator
}

// Parse scans src into a package map. base is the map file's own
// location, an absolute URI: relative location values are resolved
// against it. The first malformed line aborts the parse with a
// *ParseError carrying the line's byte offset; no partial map is
// returned.
//
// Line terminators are CR and LF, each recognized on its own, so a CRLF
// pair scans as a terminator followed by an empty line, which is
// skipped like any blank line. A line starting with '#' is a comment
// regardless of its other contents. On an entry line the first ':'
// splits name from location value; the value's path is coerced to a
// trailing slash before resolution, so a bare path names a directory
// root, never a document.
func Parse(src []byte, base uri.URI, opts ParseOptions) (*Map, error) {
	uris := opts.URIs
	if uris == nil {
		uris = uri.Std{}
	}
	valid := opts.ValidName
	if valid == nil {
		valid = pkgname.IsValid
	}

	m := NewMap()
	for i := 0; i < len(src); {
		start := i
		c := src[i]
		if c == '\r' || c == '\n' {
			i++
			continue
		}

		// Scan to the terminator, remembering the first separator.
		sep := -1
		if c == ':' {
			sep = i
		}
		end := len(src)
		j := i + 1
		for ; j < len(src); j++ {
			b := src[j]
			if b == ':' && sep < 0 {
				sep = j
			} else if b == '\r' || b == '\n' {
				end = j
				break
			}
		}
		i = j
		if i < len(src) {
			i++ // consume the terminator
		}

		if c == '#' {
			continue
		}
		if sep == start {
			return nil, &ParseError{Offset: start, Err: ErrMissingPackageName}
		}
		if sep < 0 {
			return nil, &ParseError{Offset: start, Err: ErrMissingSeparator}
		}

		name := string(src[start:sep])
		if !valid(name) {
			return nil, &ParseError{Offset: start, Token: name, Err: ErrInvalidPackageName}
		}

		value := string(src[sep+1 : end])
		ref, err := uris.Parse(value)
		if err != nil {
			return nil, &ParseError{Offset: start, Token: value, Err: ErrInvalidLocation}
		}
		if !strings.HasSuffix(ref.Path(), "/") {
			ref = ref.WithPath(ref.Path() + "/")
		}
		location := base.Resolve(ref)

		if m.Has(name) {
			return nil, &ParseError{Offset: start, Token: name, Err: ErrDuplicatePackageName}
		}
		m.index[name] = len(m.entries)
		m.entries = append(m.entries, Entry{Name: name, Location: location})
	}
	return m, nil
}
