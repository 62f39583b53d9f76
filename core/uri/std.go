package uri

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Std implements Parser on top of net/url.
type Std struct{}

// Parse parses s as a URI reference.
func (Std) Parse(s string) (URI, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	return stdURI{u}, nil
}

// Ref returns a relative reference carrying only the given path.
func (Std) Ref(p string) URI {
	return stdURI{&url.URL{Path: p}}
}

// Parse parses s with the standard net/url-backed implementation.
func Parse(s string) (URI, error) {
	return Std{}.Parse(s)
}

// FromFilePath converts a filesystem path into an absolute file: URI.
// Relative paths are resolved against the working directory.
func FromFilePath(p string) (URI, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return nil, err
	}
	return stdURI{&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}}, nil
}

// stdURI adapts *url.URL to the URI interface. The wrapped URL is treated
// as immutable; every mutation copies it first.
type stdURI struct {
	u *url.URL
}

func (s stdURI) Scheme() string   { return s.u.Scheme }
func (s stdURI) IsAbsolute() bool { return s.u.IsAbs() }

func (s stdURI) HasAuthority() bool {
	if s.u.Host != "" || s.u.User != nil {
		return true
	}
	// An absolute URI written with "//" has an empty authority; net/url
	// records its absence in OmitHost (file:/x) or Opaque (mailto:x).
	return s.u.Scheme != "" && s.u.Opaque == "" && !s.u.OmitHost
}

func (s stdURI) UserInfo() string {
	if s.u.User == nil {
		return ""
	}
	return s.u.User.String()
}

func (s stdURI) Host() string { return s.u.Hostname() }
func (s stdURI) Port() string { return s.u.Port() }
func (s stdURI) Path() string { return s.u.Path }

func (s stdURI) HasQuery() bool    { return s.u.ForceQuery || s.u.RawQuery != "" }
func (s stdURI) HasFragment() bool { return s.u.Fragment != "" }

func (s stdURI) WithPath(p string) URI {
	u2 := *s.u
	u2.Path = p
	u2.RawPath = ""
	return stdURI{&u2}
}

func (s stdURI) WithoutQueryFragment() URI {
	u2 := *s.u
	u2.ForceQuery = false
	u2.RawQuery = ""
	u2.Fragment = ""
	u2.RawFragment = ""
	return stdURI{&u2}
}

func (s stdURI) NormalizePath() URI {
	np := normalizePath(s.u.Path)
	if np == s.u.Path {
		return s
	}
	u2 := *s.u
	u2.Path = np
	u2.RawPath = ""
	return stdURI{&u2}
}

func (s stdURI) Resolve(ref URI) URI {
	r, ok := ref.(stdURI)
	if !ok {
		parsed, err := url.Parse(ref.String())
		if err != nil {
			return ref
		}
		r = stdURI{parsed}
	}
	return stdURI{s.u.ResolveReference(r.u)}
}

func (s stdURI) String() string { return s.u.String() }

// normalizePath resolves "." and ".." segments. path.Clean drops the
// trailing slash, which carries directory semantics here, so it is
// restored afterwards.
func normalizePath(p string) string {
	if p == "" {
		return p
	}
	np := path.Clean(p)
	if strings.HasSuffix(p, "/") && !strings.HasSuffix(np, "/") {
		np += "/"
	}
	return np
}
