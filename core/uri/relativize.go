package uri

import "strings"

// Relativize computes a minimal relative reference for u against base,
// such that resolving the result against base reproduces u's path. base
// must be absolute. When no shortening is safely possible the returned
// URI is u itself, still absolute (normalized, and stripped of any query
// or fragment).
//
// A query or fragment on u is dropped before relativizing and is not
// restored on the result. Callers that need them preserved must carry
// them separately.
func Relativize(u, base URI, refs Parser) URI {
	if u.HasQuery() || u.HasFragment() {
		u = u.WithoutQueryFragment()
	}
	// A relative reference is assumed to already be anchored to base.
	if !u.IsAbsolute() {
		return u
	}
	if u.Scheme() != base.Scheme() {
		return u
	}
	// Removing the scheme when authorities differ would change what the
	// reference resolves to, so only same-authority URIs are shortened.
	if u.HasAuthority() != base.HasAuthority() {
		return u
	}
	if u.HasAuthority() {
		if u.UserInfo() != base.UserInfo() ||
			!strings.EqualFold(u.Host(), base.Host()) ||
			u.Port() != base.Port() {
			return u
		}
	}

	base = base.NormalizePath()
	u = u.NormalizePath()

	// The base's last segment is its "file" position, not part of the
	// matchable directory prefix. The target's trailing empty segment is
	// the directory slash; the serializer restores it on output.
	baseSegs := pathSegments(base.Path())
	if len(baseSegs) > 0 {
		baseSegs = baseSegs[:len(baseSegs)-1]
	}
	targetSegs := pathSegments(u.Path())
	if n := len(targetSegs); n > 0 && targetSegs[n-1] == "" {
		targetSegs = targetSegs[:n-1]
	}

	common := 0
	for common < len(baseSegs) && common < len(targetSegs) &&
		baseSegs[common] == targetSegs[common] {
		common++
	}

	switch {
	case common == len(baseSegs):
		if common == len(targetSegs) {
			return refs.Ref("./")
		}
		return refs.Ref(strings.Join(targetSegs[common:], "/"))
	case common > 0:
		up := strings.Repeat("../", len(baseSegs)-common)
		return refs.Ref(up + strings.Join(targetSegs[common:], "/"))
	default:
		return u
	}
}

// pathSegments splits a URI path into segments: the leading slash of a
// rooted path produces no segment, a trailing slash produces a final
// empty segment. An empty path has no segments.
func pathSegments(p string) []string {
	if p == "" {
		return nil
	}
	p = strings.TrimPrefix(p, "/")
	return strings.Split(p, "/")
}
