// Package htmldoc wraps HTML parsing behind a small queryable-tree
// surface so the crawl and extraction code does not depend on a specific
// markup library.
package htmldoc

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document is a parsed HTML page that can be searched by CSS selector.
type Document struct {
	doc *goquery.Document
}

// Node is a single element within a Document.
type Node struct {
	sel *goquery.Selection
}

// Parse builds a Document from raw HTML.
func Parse(html string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return &Document{doc: doc}, nil
}

// FindFirst returns the first node matching the selector, or false when
// the document has none.
func (d *Document) FindFirst(selector string) (Node, bool) {
	sel := d.doc.Find(selector).First()
	if sel.Length() == 0 {
		return Node{}, false
	}

	return Node{sel: sel}, true
}

// FindAll returns every node matching the selector in document order.
func (d *Document) FindAll(selector string) []Node {
	var nodes []Node

	d.doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		nodes = append(nodes, Node{sel: sel})
	})

	return nodes
}

// Text returns the visible text of the node and its descendants.
func (n Node) Text() string {
	return n.sel.Text()
}

// TrimmedText returns the node text with surrounding whitespace removed.
func (n Node) TrimmedText() string {
	return strings.TrimSpace(n.sel.Text())
}

// Attr returns the value of the named attribute, and whether it exists.
func (n Node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}
