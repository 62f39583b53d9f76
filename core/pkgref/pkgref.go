// Package pkgref parses and resolves package: references.
//
// A reference names a package and an optional path inside it, like
// package:foo/src/util.ext. Resolution turns a reference into a concrete
// location by looking the package name up in a mapping and joining the
// inner path onto the package root.
package pkgref

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/pkgmap/core/pkgmap"
	"github.com/FocuswithJustin/pkgmap/core/pkgname"
	"github.com/FocuswithJustin/pkgmap/core/uri"
)

var (
	// ErrInvalidRef reports a string that is not a package: reference.
	ErrInvalidRef = errors.New("invalid package reference")

	// ErrUnknownPackage reports a reference to a package the mapping
	// does not contain.
	ErrUnknownPackage = errors.New("unknown package")

	// ErrNotInPackage reports a location that lies under no mapped
	// package root.
	ErrNotInPackage = errors.New("location not in any mapped package")
)

// Ref is a parsed package: reference.
type Ref struct {
	// Name is the package name, the first path segment of the reference.
	Name string

	// Path is the path inside the package, empty for the package root.
	// A trailing slash is preserved.
	Path string
}

// refGrammar is the participle grammar for package: references.
// Examples: "package:foo", "package:foo/", "package:foo/src/util.ext"
type refGrammar struct {
	Scheme string   `parser:"@Segment \":\""`
	Name   string   `parser:"@Segment"`
	Path   []string `parser:"( @\"/\" ( @Segment )? )*"`
}

// refLexer defines the lexer for package: references. Segments stop at
// the URI delimiters, so query or fragment parts fail to lex.
var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Segment", Pattern: `[^ \t:/?#\r\n]+`},
	{Name: "Punct", Pattern: `[:/]`},
})

// refParser is the participle parser for package: references.
var refParser = participle.MustBuild[refGrammar](
	participle.Lexer(refLexer),
)

// ParseRef parses a package: reference string.
// Supported formats:
//   - "package:foo" (package root)
//   - "package:foo/" (package root)
//   - "package:foo/src/util.ext" (file inside the package)
//   - "package:foo/src/" (directory inside the package)
func ParseRef(s string) (*Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty reference string", ErrInvalidRef)
	}

	parsed, err := refParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidRef, s, err)
	}

	if !strings.EqualFold(parsed.Scheme, "package") {
		return nil, fmt.Errorf("%w: %q: scheme must be package", ErrInvalidRef, s)
	}
	if !pkgname.IsValid(parsed.Name) {
		return nil, fmt.Errorf("%w: %q: bad package name %q", ErrInvalidRef, s, parsed.Name)
	}

	p := strings.TrimPrefix(strings.Join(parsed.Path, ""), "/")
	if strings.HasPrefix(p, "/") || strings.Contains(p, "//") {
		return nil, fmt.Errorf("%w: %q: empty path segment", ErrInvalidRef, s)
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "." || seg == ".." {
			return nil, fmt.Errorf("%w: %q: dot segment %q", ErrInvalidRef, s, seg)
		}
	}

	return &Ref{Name: parsed.Name, Path: p}, nil
}

// String returns the canonical reference form. The package root is
// rendered with a trailing slash, so ParseRef("package:foo").String()
// is "package:foo/".
func (r *Ref) String() string {
	return "package:" + r.Name + "/" + r.Path
}

// Resolve turns the reference into a concrete location using the
// package roots in m. The inner path is joined onto the root, so the
// root's trailing slash does the directory arithmetic.
func (r *Ref) Resolve(m *pkgmap.Map, uris uri.Parser) (uri.URI, error) {
	if uris == nil {
		uris = uri.Std{}
	}
	root, ok := m.Lookup(r.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPackage, r.Name)
	}
	if r.Path == "" {
		return root, nil
	}
	return root.Resolve(uris.Ref(r.Path)), nil
}

// FromLocation inverts Resolve: it finds the mapped package whose root
// prefixes the location and returns the reference for it. When roots
// nest, the longest one wins. Query and fragment parts are dropped, as
// they are when locations are relativized.
func FromLocation(u uri.URI, m *pkgmap.Map) (*Ref, error) {
	if u.HasQuery() || u.HasFragment() {
		u = u.WithoutQueryFragment()
	}
	s := u.String()
	best := -1
	var ref *Ref
	for _, e := range m.Entries() {
		root := e.Location.String()
		if len(root) > best && strings.HasPrefix(s, root) {
			best = len(root)
			ref = &Ref{Name: e.Name, Path: s[len(root):]}
		}
	}
	if ref == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotInPackage, s)
	}
	return ref, nil
}
