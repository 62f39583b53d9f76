// Package formats defines the codec surface for package mapping files.
// Handlers for concrete formats are compiled into the binary and
// register themselves here, so callers can decode, encode, and sniff
// files without knowing which formats exist.
package formats

import (
	"errors"
	"fmt"

	"github.com/FocuswithJustin/pkgmap/core/pkgmap"
	"github.com/FocuswithJustin/pkgmap/core/uri"
)

var (
	// ErrUnknownFormat reports a format ID no handler registered for.
	ErrUnknownFormat = errors.New("unknown format")

	// ErrEncodeUnsupported reports a handler that can only decode.
	ErrEncodeUnsupported = errors.New("format does not support encoding")
)

// DetectResult reports whether a handler claims a file.
type DetectResult struct {
	Detected bool   `json:"detected"`
	Format   string `json:"format,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// Handler is the interface a mapping format implements.
type Handler interface {
	// ID returns the format identifier (e.g. "pkgfile").
	ID() string

	// Detect checks whether the named file content is in this format.
	Detect(filename string, data []byte) (*DetectResult, error)

	// Decode parses the file content into a mapping, resolving
	// relative locations against base.
	Decode(data []byte, base uri.URI) (*pkgmap.Map, error)

	// Encode serializes the mapping. Handlers for read-only formats
	// return ErrEncodeUnsupported.
	Encode(m *pkgmap.Map, base uri.URI, comment string) ([]byte, error)
}

// registry holds all registered handlers. order keeps registration
// order, which is also sniffing order.
var (
	registry = make(map[string]Handler)
	order    []string
)

// Register adds a handler by its format ID. Re-registering an ID
// replaces the handler but keeps its position in sniffing order.
func Register(h Handler) {
	id := h.ID()
	if _, ok := registry[id]; !ok {
		order = append(order, id)
	}
	registry[id] = h
}

// Get returns the handler for a format ID.
func Get(id string) (Handler, error) {
	h, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, id)
	}
	return h, nil
}

// Has checks if a handler with the given format ID exists.
func Has(id string) bool {
	_, ok := registry[id]
	return ok
}

// List returns all registered format IDs in registration order.
func List() []string {
	ids := make([]string, len(order))
	copy(ids, order)
	return ids
}

// Clear unregisters all handlers (for testing).
func Clear() {
	registry = make(map[string]Handler)
	order = nil
}

// Sniff asks each handler in registration order whether it claims the
// file and returns the first that does. A handler error counts as a
// non-claim. When nothing claims the file the returned handler is nil.
func Sniff(filename string, data []byte) (Handler, *DetectResult) {
	for _, id := range order {
		h := registry[id]
		res, err := h.Detect(filename, data)
		if err != nil {
			continue
		}
		if res != nil && res.Detected {
			return h, res
		}
	}
	return nil, &DetectResult{Detected: false, Reason: "no registered format claimed the file"}
}
