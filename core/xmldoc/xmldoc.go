// Package xmldoc wraps XML parsing and XPath querying for catalog
// readers. It keeps format handlers off the underlying libraries and
// pins parser behavior in one place.
//
// Entity expansion is disabled during well-formedness checks, so
// external entities are never fetched.
package xmldoc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Document represents a parsed XML document.
type Document struct {
	root *xmlquery.Node
}

// Node represents an element in a parsed document.
type Node struct {
	node *xmlquery.Node
}

// Parse parses XML data and returns a Document.
func Parse(data []byte) (*Document, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return &Document{root: root}, nil
}

// WellFormed checks that the data tokenizes as XML. Entity expansion
// is disabled.
func WellFormed(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Root returns the document's root element, or nil for an empty
// document.
func (d *Document) Root() *Node {
	for child := d.root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return &Node{node: child}
		}
	}
	return nil
}

// XPath executes an XPath query over the document and returns the
// matching nodes.
func (d *Document) XPath(expr string) ([]*Node, error) {
	if _, err := xpath.Compile(expr); err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}
	nodes, err := xmlquery.QueryAll(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query failed: %w", err)
	}
	result := make([]*Node, len(nodes))
	for i, n := range nodes {
		result[i] = &Node{node: n}
	}
	return result, nil
}

// Name returns the element name without its namespace prefix.
func (n *Node) Name() string {
	return n.node.Data
}

// Attr returns the value of an attribute, or "" when absent.
func (n *Node) Attr(name string) string {
	return n.node.SelectAttr(name)
}

// Text returns the text content of the node and its descendants.
func (n *Node) Text() string {
	return n.node.InnerText()
}
