package uri

import "testing"

func mustParse(t *testing.T, s string) URI {
	t.Helper()
	u, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", s, err)
	}
	return u
}

func TestRelativize(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		base string
		want string
	}{
		{"child dir", "file:///x/y/", "file:///x/", "y"},
		{"same dir", "file:///x/", "file:///x/", "./"},
		{"grandchild of base file", "file:///x/y/z/", "file:///x/f", "y/z"},
		{"sibling via parent", "file:///a/b/", "file:///a/c/d", "../b"},
		{"deeper sibling", "file:///a/x/c/", "file:///a/b/f", "../x/c"},
		{"up only", "file:///a/", "file:///a/b/f", "../"},
		{"no common prefix", "file:///z/", "file:///x/y", "file:///z/"},
		{"root base", "file:///y/", "file:///", "y"},
		{"target is root", "file:///", "file:///x", "./"},
		{"different scheme", "http://h/a/", "file:///a/", "http://h/a/"},
		{"authority vs none", "file:///a/", "file:/a/", "file:///a/"},
		{"host differs", "http://other/a/", "http://h/a/", "http://other/a/"},
		{"host case-insensitive", "http://EXAMPLE.com/a/b/", "http://example.COM/a/", "b"},
		{"port differs", "http://h:8080/a/", "http://h/a/", "http://h:8080/a/"},
		{"userinfo differs", "http://u@h/a/", "http://h/a/", "http://u@h/a/"},
		{"query stripped before shortening", "file:///x/y/?q=1", "file:///x/", "y"},
		{"fragment stripped before shortening", "file:///x/y/#f", "file:///x/", "y"},
		{"query stripped on unchanged result", "http://h/p?q=1", "file:///x/", "http://h/p"},
		{"dot segments normalized", "file:///x/a/../y/", "file:///x/", "y"},
		{"relative input unchanged", "a/b", "file:///x/", "a/b"},
	}

	refs := Std{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := mustParse(t, tt.uri)
			base := mustParse(t, tt.base)
			got := Relativize(u, base, refs)
			if got.String() != tt.want {
				t.Errorf("Relativize(%q, %q) = %q, want %q", tt.uri, tt.base, got, tt.want)
			}
		})
	}
}

// Resolving a relativized reference against the base must reproduce the
// original path.
func TestRelativizeResolvesBack(t *testing.T) {
	tests := []struct {
		uri  string
		base string
	}{
		{"file:///a/b/c", "file:///a/b/f"},
		{"file:///a/x/c", "file:///a/b/f"},
		{"file:///a/b/c/d", "file:///a/f"},
		{"http://h/p/q", "http://h/p/f"},
		{"http://h/z", "http://h/p/f"},
	}

	refs := Std{}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			u := mustParse(t, tt.uri)
			base := mustParse(t, tt.base)
			rel := Relativize(u, base, refs)
			back := base.Resolve(rel)
			if back.Path() != u.Path() {
				t.Errorf("Resolve(Relativize(%q, %q)) path = %q, want %q",
					tt.uri, tt.base, back.Path(), u.Path())
			}
		})
	}
}

func TestPathSegments(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"", nil},
		{"/", []string{""}},
		{"/a/b", []string{"a", "b"}},
		{"/a/b/", []string{"a", "b", ""}},
		{"a/b", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := pathSegments(tt.path)
			if len(got) != len(tt.want) {
				t.Fatalf("pathSegments(%q) = %v, want %v", tt.path, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("pathSegments(%q)[%d] = %q, want %q", tt.path, i, got[i], tt.want[i])
				}
			}
		})
	}
}
