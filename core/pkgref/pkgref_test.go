package pkgref

import (
	"errors"
	"testing"

	"github.com/FocuswithJustin/pkgmap/core/pkgmap"
	"github.com/FocuswithJustin/pkgmap/core/uri"
)

func mustURI(t *testing.T, s string) uri.URI {
	t.Helper()
	u, err := uri.Parse(s)
	if err != nil {
		t.Fatalf("uri.Parse(%q) failed: %v", s, err)
	}
	return u
}

func testMap(t *testing.T) *pkgmap.Map {
	t.Helper()
	m := pkgmap.NewMap()
	roots := []struct{ name, root string }{
		{"foo", "file:///proj/lib/"},
		{"foo.sub", "file:///proj/lib/sub/"},
		{"web", "http://example.com/pkg/"},
	}
	for _, r := range roots {
		if err := m.Add(r.name, mustURI(t, r.root)); err != nil {
			t.Fatalf("Add(%q) failed: %v", r.name, err)
		}
	}
	return m
}

func TestParseRef(t *testing.T) {
	tests := []struct {
		input    string
		wantName string
		wantPath string
	}{
		{"package:foo", "foo", ""},
		{"package:foo/", "foo", ""},
		{"package:foo/util.ext", "foo", "util.ext"},
		{"package:foo/src/util.ext", "foo", "src/util.ext"},
		{"package:foo/src/", "foo", "src/"},
		{"package:foo.sub/x", "foo.sub", "x"},
		{"  package:foo/x  ", "foo", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ref, err := ParseRef(tt.input)
			if err != nil {
				t.Fatalf("ParseRef(%q) failed: %v", tt.input, err)
			}
			if ref.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", ref.Name, tt.wantName)
			}
			if ref.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", ref.Path, tt.wantPath)
			}
		})
	}
}

func TestParseRefInvalid(t *testing.T) {
	tests := []string{
		"",
		"foo/bar",
		"http:foo/bar",
		"package:",
		"package:1foo/x",
		"package:foo//x",
		"package:foo/x//y",
		"package:foo/../x",
		"package:foo/./x",
		"package:foo/x?q=1",
		"package:foo/x#frag",
		"package:foo bar/x",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseRef(input); !errors.Is(err, ErrInvalidRef) {
				t.Errorf("ParseRef(%q) error = %v, want %v", input, err, ErrInvalidRef)
			}
		})
	}
}

func TestRefString(t *testing.T) {
	tests := []struct {
		ref  Ref
		want string
	}{
		{Ref{Name: "foo"}, "package:foo/"},
		{Ref{Name: "foo", Path: "util.ext"}, "package:foo/util.ext"},
		{Ref{Name: "foo", Path: "src/"}, "package:foo/src/"},
	}

	for _, tt := range tests {
		if got := tt.ref.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	m := testMap(t)
	tests := []struct {
		input string
		want  string
	}{
		{"package:foo", "file:///proj/lib/"},
		{"package:foo/util.ext", "file:///proj/lib/util.ext"},
		{"package:foo/src/util.ext", "file:///proj/lib/src/util.ext"},
		{"package:web/a/b", "http://example.com/pkg/a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ref, err := ParseRef(tt.input)
			if err != nil {
				t.Fatalf("ParseRef failed: %v", err)
			}
			loc, err := ref.Resolve(m, nil)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if loc.String() != tt.want {
				t.Errorf("Resolve = %q, want %q", loc, tt.want)
			}
		})
	}
}

func TestResolveUnknown(t *testing.T) {
	ref := &Ref{Name: "absent", Path: "x"}
	if _, err := ref.Resolve(testMap(t), nil); !errors.Is(err, ErrUnknownPackage) {
		t.Errorf("Resolve error = %v, want %v", err, ErrUnknownPackage)
	}
}

func TestFromLocation(t *testing.T) {
	m := testMap(t)
	tests := []struct {
		location string
		want     string
	}{
		{"file:///proj/lib/util.ext", "package:foo/util.ext"},
		{"file:///proj/lib/", "package:foo/"},
		{"file:///proj/lib/sub/x.ext", "package:foo.sub/x.ext"},
		{"http://example.com/pkg/a", "package:web/a"},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			ref, err := FromLocation(mustURI(t, tt.location), m)
			if err != nil {
				t.Fatalf("FromLocation failed: %v", err)
			}
			if got := ref.String(); got != tt.want {
				t.Errorf("FromLocation = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromLocationMiss(t *testing.T) {
	_, err := FromLocation(mustURI(t, "file:///elsewhere/x"), testMap(t))
	if !errors.Is(err, ErrNotInPackage) {
		t.Errorf("FromLocation error = %v, want %v", err, ErrNotInPackage)
	}
}

func TestResolveFromLocationRoundTrip(t *testing.T) {
	m := testMap(t)
	refs := []string{
		"package:foo/util.ext",
		"package:foo/src/util.ext",
		"package:foo.sub/x.ext",
		"package:web/a/b",
	}

	for _, s := range refs {
		t.Run(s, func(t *testing.T) {
			ref, err := ParseRef(s)
			if err != nil {
				t.Fatalf("ParseRef failed: %v", err)
			}
			loc, err := ref.Resolve(m, nil)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			back, err := FromLocation(loc, m)
			if err != nil {
				t.Fatalf("FromLocation failed: %v", err)
			}
			if back.String() != s {
				t.Errorf("round trip = %q, want %q", back.String(), s)
			}
		})
	}
}
