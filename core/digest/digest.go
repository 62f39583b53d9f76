// Package digest computes a canonical fingerprint for a package mapping.
//
// The fingerprint covers the resolved name/location pairs and nothing
// else: comments, entry order, and the textual form the mapping was
// read from do not affect it. Two files that resolve to the same
// mapping hash the same.
package digest

import (
	"bytes"
	"encoding/hex"
	"sort"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/pkgmap/core/pkgmap"
)

// Sum returns the hex BLAKE3 digest of the mapping's canonical form.
// Entries are hashed in name order as name NUL location LF. Names
// cannot contain NUL and locations cannot contain a raw LF.
func Sum(m *pkgmap.Map) string {
	entries := m.Entries()
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	var buf bytes.Buffer
	for _, e := range entries {
		buf.WriteString(e.Name)
		buf.WriteByte(0)
		buf.WriteString(e.Location.String())
		buf.WriteByte('\n')
	}

	h := blake3.Sum256(buf.Bytes())
	return hex.EncodeToString(h[:])
}
