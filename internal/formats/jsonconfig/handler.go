// Package jsonconfig provides the handler for the JSON package
// configuration format, the structured successor of the line format.
package jsonconfig

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/FocuswithJustin/pkgmap/core/formats"
	"github.com/FocuswithJustin/pkgmap/core/pkgmap"
	"github.com/FocuswithJustin/pkgmap/core/pkgname"
	"github.com/FocuswithJustin/pkgmap/core/uri"
)

// FormatID identifies this handler in the format registry.
const FormatID = "jsonconfig"

// configVersion is the only document version this handler reads and
// the version it writes.
const configVersion = 2

// document is the on-disk JSON shape.
type document struct {
	ConfigVersion int        `json:"configVersion"`
	Generated     string     `json:"generated,omitempty"`
	Generator     string     `json:"generator,omitempty"`
	Comment       string     `json:"comment,omitempty"`
	Packages      []pkgEntry `json:"packages"`
}

type pkgEntry struct {
	Name    string `json:"name"`
	RootURI string `json:"rootUri"`
}

// Handler implements formats.Handler for the JSON format.
type Handler struct {
	// Now stamps the generated field on encode. Nil means time.Now.
	Now func() time.Time
}

// Register registers this handler with the format registry.
func Register() {
	formats.Register(&Handler{})
}

// ID implements formats.Handler.ID.
func (h *Handler) ID() string { return FormatID }

// Detect implements formats.Handler.Detect.
func (h *Handler) Detect(filename string, data []byte) (*formats.DetectResult, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return &formats.DetectResult{
			Detected: false,
			Reason:   "not valid JSON",
		}, nil
	}
	if doc.ConfigVersion != configVersion {
		return &formats.DetectResult{
			Detected: false,
			Reason:   fmt.Sprintf("configVersion %d, want %d", doc.ConfigVersion, configVersion),
		}, nil
	}
	return &formats.DetectResult{
		Detected: true,
		Format:   FormatID,
		Reason:   "JSON package configuration detected",
	}, nil
}

// Decode implements formats.Handler.Decode. Root URIs follow the same
// rules as line-format locations: coerced to directories, resolved
// against base, names validated, duplicates rejected.
func (h *Handler) Decode(data []byte, base uri.URI) (*pkgmap.Map, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing JSON configuration: %w", err)
	}
	if doc.ConfigVersion != configVersion {
		return nil, fmt.Errorf("unsupported configVersion %d, want %d", doc.ConfigVersion, configVersion)
	}

	m := pkgmap.NewMap()
	for _, p := range doc.Packages {
		if !pkgname.IsValid(p.Name) {
			return nil, &pkgmap.ValidationError{Value: p.Name, Err: pkgmap.ErrInvalidPackageName}
		}
		ref, err := uri.Parse(p.RootURI)
		if err != nil {
			return nil, &pkgmap.ValidationError{Value: p.RootURI, Err: pkgmap.ErrInvalidLocation}
		}
		if !strings.HasSuffix(ref.Path(), "/") {
			ref = ref.WithPath(ref.Path() + "/")
		}
		location := ref
		if base != nil {
			location = base.Resolve(ref)
		}
		if err := m.Add(p.Name, location); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Encode implements formats.Handler.Encode. The package: scheme is as
// forbidden here as in the line format, and locations relativize
// against base the same way.
func (h *Handler) Encode(m *pkgmap.Map, base uri.URI, comment string) ([]byte, error) {
	if base != nil && !base.IsAbsolute() {
		return nil, &pkgmap.ValidationError{Value: base.String(), Err: pkgmap.ErrInvalidBaseURI}
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	doc := document{
		ConfigVersion: configVersion,
		Generated:     now().Format(time.RFC3339),
		Generator:     "pkgmap",
		Comment:       comment,
		Packages:      []pkgEntry{},
	}

	for _, e := range m.Entries() {
		if !pkgname.IsValid(e.Name) {
			return nil, &pkgmap.ValidationError{Value: e.Name, Err: pkgmap.ErrInvalidPackageName}
		}
		location := e.Location
		if location.Scheme() == "package" {
			return nil, &pkgmap.ValidationError{Value: location.String(), Err: pkgmap.ErrForbiddenScheme}
		}
		if base != nil {
			location = uri.Relativize(location, base, uri.Std{})
		}
		if !strings.HasSuffix(location.Path(), "/") {
			location = location.WithPath(location.Path() + "/")
		}
		doc.Packages = append(doc.Packages, pkgEntry{Name: e.Name, RootURI: location.String()})
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing JSON configuration: %w", err)
	}
	return append(out, '\n'), nil
}
