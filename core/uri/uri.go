// Package uri defines the URI capability the package-map codec depends on,
// a net/url-backed implementation of it, and the relativization algorithm
// used to shorten absolute locations when writing map files.
//
// The codec packages are written against the URI and Parser interfaces so
// they stay portable and testable without a concrete URI library baked in;
// Std is the production implementation.
package uri

// URI is an immutable URI reference, absolute or relative. The With* and
// Normalize* methods return modified copies and leave the receiver intact.
type URI interface {
	// Scheme returns the URI scheme, or "" for a relative reference.
	Scheme() string

	// IsAbsolute reports whether the URI carries a scheme.
	IsAbsolute() bool

	// HasAuthority reports whether the URI carries an authority component,
	// even an empty one (file:///x has an empty authority, file:/x none).
	HasAuthority() bool

	// UserInfo returns the authority's userinfo subcomponent, or "".
	UserInfo() string

	// Host returns the authority's host without the port, or "".
	Host() string

	// Port returns the authority's port as written, or "".
	Port() string

	// Path returns the (decoded) path component.
	Path() string

	// HasQuery reports whether a query component is present.
	HasQuery() bool

	// HasFragment reports whether a fragment component is present.
	HasFragment() bool

	// WithPath returns a copy with the path component replaced.
	WithPath(path string) URI

	// WithoutQueryFragment returns a copy with no query and no fragment.
	WithoutQueryFragment() URI

	// NormalizePath returns a copy with "." and ".." path segments
	// resolved. A trailing slash survives normalization.
	NormalizePath() URI

	// Resolve resolves ref against this URI per RFC 3986 section 5.
	Resolve(ref URI) URI

	// String returns the textual form of the URI.
	String() string
}

// Parser turns text into URIs. Ref builds a relative reference carrying
// only a path, the shape Relativize returns for shortened locations.
type Parser interface {
	Parse(s string) (URI, error)
	Ref(path string) URI
}
