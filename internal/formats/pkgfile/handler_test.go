package pkgfile

import (
	"strings"
	"testing"

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

func TestDetect(t *testing.T) {
	h := &Handler{}
	tests := []struct {
		name     string
		filename string
		data     string
		want     bool
	}{
		{"conventional file name", "/proj/.packages", "", true},
		{"parseable content", "pkgfile", "foo:lib/\nbar:../bar/\n", true},
		{"comment only", "notes", "# nothing here\n", false},
		{"plain text", "readme", "hello world\n", false},
		{"json document", "config.json", `{"configVersion":2,"packages":[]}`, false},
		{"binary content", "blob", "\x00\x01\x02a:b\x03", false},
		{"empty", "empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := h.Detect(tt.filename, []byte(tt.data))
			if err != nil {
				t.Fatalf("Detect failed: %v", err)
			}
			if res.Detected != tt.want {
				t.Errorf("Detected = %v (%s), want %v", res.Detected, res.Reason, tt.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	h := &Handler{}
	m, err := h.Decode([]byte("foo:lib/\nbar:../bar/\n"), mustURI(t, "file:///proj/pkgfile"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	loc, ok := m.Lookup("foo")
	if !ok || loc.String() != "file:///proj/lib/" {
		t.Errorf("foo = %q, %v; want file:///proj/lib/", loc, ok)
	}
	loc, ok = m.Lookup("bar")
	if !ok || loc.String() != "file:///bar/" {
		t.Errorf("bar = %q, %v; want file:///bar/", loc, ok)
	}
}

func TestEncode(t *testing.T) {
	h := &Handler{}
	base := mustURI(t, "file:///x/")
	m, err := h.Decode([]byte("a:y/\n"), base)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	out, err := h.Encode(m, base, "test")
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := "# test\na:y/\n"
	if string(out) != want {
		t.Errorf("Encode = %q, want %q", out, want)
	}
}

func TestEncodeDefaultHeader(t *testing.T) {
	h := &Handler{}
	m, err := h.Decode([]byte("a:y/\n"), mustURI(t, "file:///x/"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	out, err := h.Encode(m, nil, "")
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.HasPrefix(string(out), "# Generated by pkgmap at ") {
		t.Errorf("Encode output %q lacks the default header", out)
	}
}
