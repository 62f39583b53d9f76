// Package pkgmap parses and serializes package-location map files: a
// line-oriented text format associating package names with base directory
// locations expressed as URIs. Lines have the form "name:location" with
// '#' comment lines; relative locations are resolved against the map
// file's own location, and every location is coerced to directory form
// (trailing slash).
//
// The codec holds no state between calls; maps are transient values built
// per parse and discarded by the caller. The package-name validity
// predicate and the URI implementation are injected through
// ParseOptions/WriteOptions and default to pkgname.IsValid and uri.Std.
package pkgmap

import (
	"github.com/FocuswithJustin/pkgmap/core/uri"
)

// NameValidator reports whether a package name is acceptable.
type NameValidator func(name string) bool

// Entry is one package-name→location pair.
type Entry struct {
	Name     string
	Location uri.URI
}

// Map is an insertion-ordered package-name→location mapping. Names are
// unique; iteration order is the construction order and drives the
// serialized output order.
type Map struct {
	entries []Entry
	index   map[string]int
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{index: make(map[string]int)}
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.entries) }

// Has reports whether name is already mapped.
func (m *Map) Has(name string) bool {
	_, ok := m.index[name]
	return ok
}

// Lookup returns the location mapped to name.
func (m *Map) Lookup(name string) (uri.URI, bool) {
	i, ok := m.index[name]
	if !ok {
		return nil, false
	}
	return m.entries[i].Location, true
}

// Add appends a name→location pair, preserving encounter order. It fails
// with ErrDuplicatePackageName when name is already present.
func (m *Map) Add(name string, location uri.URI) error {
	if m.Has(name) {
		return &ValidationError{Value: name, Err: ErrDuplicatePackageName}
	}
	if m.index == nil {
		m.index = make(map[string]int)
	}
	m.index[name] = len(m.entries)
	m.entries = append(m.entries, Entry{Name: name, Location: location})
	return nil
}

// Entries returns the entries in insertion order. The slice is a copy;
// the locations are shared.
func (m *Map) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}
