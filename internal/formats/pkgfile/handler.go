// Package pkgfile provides the handler for the line-oriented package
// mapping format, the plain name:location file.
package pkgfile

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/FocuswithJustin/pkgmap/core/formats"
	"github.com/FocuswithJustin/pkgmap/core/pkgmap"
	"github.com/FocuswithJustin/pkgmap/core/uri"
	"github.com/FocuswithJustin/pkgmap/internal/validation"
)

// FormatID identifies this handler in the format registry.
const FormatID = "pkgfile"

// probeBase anchors the parse attempt Detect makes. Any absolute URI
// would do, the probe result is discarded.
const probeBase = "file:///"

// Handler implements formats.Handler for the line format.
type Handler struct{}

// Register registers this handler with the format registry.
func Register() {
	formats.Register(&Handler{})
}

// ID implements formats.Handler.ID.
func (h *Handler) ID() string { return FormatID }

// Detect implements formats.Handler.Detect. The line format has no
// magic bytes, so detection is the conventional file name, or a text
// screen followed by a parse attempt that yields at least one entry.
func (h *Handler) Detect(filename string, data []byte) (*formats.DetectResult, error) {
	if filepath.Base(filename) == ".packages" {
		return &formats.DetectResult{
			Detected: true,
			Format:   FormatID,
			Reason:   "conventional mapping file name",
		}, nil
	}

	if !validation.IsLikelyText(data) {
		return &formats.DetectResult{
			Detected: false,
			Reason:   "not text content",
		}, nil
	}

	base, err := uri.Parse(probeBase)
	if err != nil {
		return nil, err
	}
	m, err := pkgmap.Parse(data, base, pkgmap.ParseOptions{})
	if err != nil {
		return &formats.DetectResult{
			Detected: false,
			Reason:   fmt.Sprintf("not a mapping file: %v", err),
		}, nil
	}
	if m.Len() == 0 {
		return &formats.DetectResult{
			Detected: false,
			Reason:   "no entries",
		}, nil
	}
	return &formats.DetectResult{
		Detected: true,
		Format:   FormatID,
		Reason:   fmt.Sprintf("parsed %d entries", m.Len()),
	}, nil
}

// Decode implements formats.Handler.Decode.
func (h *Handler) Decode(data []byte, base uri.URI) (*pkgmap.Map, error) {
	return pkgmap.Parse(data, base, pkgmap.ParseOptions{})
}

// Encode implements formats.Handler.Encode.
func (h *Handler) Encode(m *pkgmap.Map, base uri.URI, comment string) ([]byte, error) {
	var buf bytes.Buffer
	if err := pkgmap.Write(&buf, m, pkgmap.WriteOptions{Base: base, Comment: comment}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
