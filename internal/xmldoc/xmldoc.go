// Package xmldoc provides typed, failing accessors over a parsed XML document.
//
// Doxygen XML is navigated by element name: take the first child with a given
// name, then step through its siblings with the same name. Every accessor that
// can come up empty returns an error wrapping ErrMissingElement or
// ErrMissingAttr so callers can decide whether the absence is fatal.
package xmldoc

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
)

var (
	// ErrMissingElement is returned when a required child element is absent.
	ErrMissingElement = errors.New("xmldoc: missing element")
	// ErrMissingAttr is returned when a required attribute is absent.
	ErrMissingAttr = errors.New("xmldoc: missing attribute")
)

// Document is a parsed XML file.
type Document struct {
	path string
	doc  *etree.Document
}

// Element wraps a single XML element of a Document.
type Element struct {
	path string
	el   *etree.Element
}

// Content is one piece of mixed element content: either text or an element.
type Content struct {
	Text string
	Elem *Element
}

// Open reads and parses the XML file at path.
func Open(path string) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &Document{path: path, doc: doc}, nil
}

// Parse reads an XML document from r. The name is only used in error messages.
func Parse(name string, r io.Reader) (*Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return &Document{path: name, doc: doc}, nil
}

// Path returns the file path (or name) the document was read from.
func (d *Document) Path() string {
	return d.path
}

// FirstChildElement returns the first top-level element with the given name.
func (d *Document) FirstChildElement(name string) (*Element, error) {
	el := d.doc.SelectElement(name)
	if el == nil {
		return nil, fmt.Errorf("%w: <%s> in %s", ErrMissingElement, name, d.path)
	}
	return &Element{path: d.path, el: el}, nil
}

// Name returns the element tag.
func (e *Element) Name() string {
	return e.el.Tag
}

// FirstChildElement returns the first child element with the given name.
func (e *Element) FirstChildElement(name string) (*Element, error) {
	el := e.el.SelectElement(name)
	if el == nil {
		return nil, fmt.Errorf("%w: <%s> in <%s> of %s", ErrMissingElement, name, e.el.Tag, e.path)
	}
	return &Element{path: e.path, el: el}, nil
}

// NextSiblingElement returns the next sibling element with the given name.
func (e *Element) NextSiblingElement(name string) (*Element, error) {
	parent := e.el.Parent()
	if parent != nil {
		for _, tok := range parent.Child[e.el.Index()+1:] {
			if sib, ok := tok.(*etree.Element); ok && sib.Tag == name {
				return &Element{path: e.path, el: sib}, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: sibling <%s> after <%s> in %s", ErrMissingElement, name, e.el.Tag, e.path)
}

// ChildElements returns all child elements with the given name in document order.
func (e *Element) ChildElements(name string) []*Element {
	var out []*Element
	for _, el := range e.el.SelectElements(name) {
		out = append(out, &Element{path: e.path, el: el})
	}
	return out
}

// Children returns all child elements in document order.
func (e *Element) Children() []*Element {
	var out []*Element
	for _, el := range e.el.ChildElements() {
		out = append(out, &Element{path: e.path, el: el})
	}
	return out
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, error) {
	attr := e.el.SelectAttr(name)
	if attr == nil {
		return "", fmt.Errorf("%w: %s on <%s> in %s", ErrMissingAttr, name, e.el.Tag, e.path)
	}
	return attr.Value, nil
}

// AttrOr returns the value of the named attribute or def when it is absent.
func (e *Element) AttrOr(name, def string) string {
	return e.el.SelectAttrValue(name, def)
}

// Text returns the concatenated character data of the element and all of its
// descendants, with surrounding whitespace trimmed.
func (e *Element) Text() string {
	var b strings.Builder
	collectText(&b, e.el)
	return strings.TrimSpace(b.String())
}

// ChildText returns the text of the first child element with the given name,
// or an empty string when there is none.
func (e *Element) ChildText(name string) string {
	child, err := e.FirstChildElement(name)
	if err != nil {
		return ""
	}
	return child.Text()
}

// Content returns the mixed content of the element in document order.
func (e *Element) Content() []Content {
	var out []Content
	for _, tok := range e.el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			out = append(out, Content{Text: t.Data})
		case *etree.Element:
			out = append(out, Content{Elem: &Element{path: e.path, el: t}})
		}
	}
	return out
}

func collectText(b *strings.Builder, el *etree.Element) {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			collectText(b, t)
		}
	}
}
