// Package xmlcatalog provides the read-only handler for XML catalog
// files that map package names to root URIs.
package xmlcatalog

import (
	"strings"

	"github.com/FocuswithJustin/pkgmap/core/formats"
	"github.com/FocuswithJustin/pkgmap/core/pkgmap"
	"github.com/FocuswithJustin/pkgmap/core/pkgname"
	"github.com/FocuswithJustin/pkgmap/core/uri"
	"github.com/FocuswithJustin/pkgmap/core/xmldoc"
)

// FormatID identifies this handler in the format registry.
const FormatID = "xmlcatalog"

// uriElements selects the mapping entries regardless of catalog
// namespace.
const uriElements = `//*[local-name()='uri']`

// Handler implements formats.Handler for XML catalogs. Encoding is not
// supported.
type Handler struct{}

// Register registers this handler with the format registry.
func Register() {
	formats.Register(&Handler{})
}

// ID implements formats.Handler.ID.
func (h *Handler) ID() string { return FormatID }

// Detect implements formats.Handler.Detect. A claim requires
// well-formed XML with a catalog root element.
func (h *Handler) Detect(filename string, data []byte) (*formats.DetectResult, error) {
	if err := xmldoc.WellFormed(data); err != nil {
		return &formats.DetectResult{
			Detected: false,
			Reason:   "not well-formed XML",
		}, nil
	}
	doc, err := xmldoc.Parse(data)
	if err != nil {
		return &formats.DetectResult{
			Detected: false,
			Reason:   "not parseable XML",
		}, nil
	}
	root := doc.Root()
	if root == nil || root.Name() != "catalog" {
		return &formats.DetectResult{
			Detected: false,
			Reason:   "root element is not catalog",
		}, nil
	}
	return &formats.DetectResult{
		Detected: true,
		Format:   FormatID,
		Reason:   "XML catalog detected",
	}, nil
}

// Decode implements formats.Handler.Decode. Entries follow the same
// rules as line-format locations: coerced to directories, resolved
// against base, names validated, duplicates rejected.
func (h *Handler) Decode(data []byte, base uri.URI) (*pkgmap.Map, error) {
	doc, err := xmldoc.Parse(data)
	if err != nil {
		return nil, err
	}

	nodes, err := doc.XPath(uriElements)
	if err != nil {
		return nil, err
	}

	m := pkgmap.NewMap()
	for _, n := range nodes {
		name := n.Attr("name")
		value := n.Attr("uri")
		if !pkgname.IsValid(name) {
			return nil, &pkgmap.ValidationError{Value: name, Err: pkgmap.ErrInvalidPackageName}
		}
		ref, err := uri.Parse(value)
		if err != nil {
			return nil, &pkgmap.ValidationError{Value: value, Err: pkgmap.ErrInvalidLocation}
		}
		if !strings.HasSuffix(ref.Path(), "/") {
			ref = ref.WithPath(ref.Path() + "/")
		}
		location := ref
		if base != nil {
			location = base.Resolve(ref)
		}
		if err := m.Add(name, location); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Encode implements formats.Handler.Encode. Catalogs are read-only
// here.
func (h *Handler) Encode(m *pkgmap.Map, base uri.URI, comment string) ([]byte, error) {
	return nil, formats.ErrEncodeUnsupported
}
