// Package pkgname validates package names for package-location maps.
package pkgname

// IsValid reports whether name is a valid package name: one or more
// dot-separated segments, each starting with an ASCII letter or
// underscore, followed by letters, digits, underscores, or hyphens.
// This keeps names free of the map file's structural bytes (':', '#',
// CR, LF) and of anything a URI path would need escaping for.
func IsValid(name string) bool {
	segStart := true
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case segStart:
			if !isAlpha(c) && c != '_' {
				return false
			}
			segStart = false
		case c == '.':
			segStart = true
		default:
			if !isAlpha(c) && !isDigit(c) && c != '_' && c != '-' {
				return false
			}
		}
	}
	// Empty names and trailing dots leave an unstarted segment behind.
	return !segStart
}

func isAlpha(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
