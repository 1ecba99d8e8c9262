package xmldoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnreadable is returned when a file is not well-formed XML.
var ErrUnreadable = errors.New("unreadable xml")

// Document is a parsed XML file.
type Document struct {
	Root *Element
}

// Element is an XML element with its attributes, child elements and full
// text content (all descendant character data in document order).
type Element struct {
	Name     string
	Attrs    map[string]string
	Children []*Element
	text     strings.Builder
}

// Load decodes raw bytes (see Decode) and parses the result.
func Load(raw []byte) (*Document, error) {
	return Parse(Decode(raw))
}

// Parse parses already decoded text. Any structural error is reported as
// ErrUnreadable.
func Parse(text string) (*Document, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	dec.Strict = true
	// The text is already UTF-8 whatever the prolog says.
	dec.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) { return r, nil }

	var (
		root  *Element
		stack []*Element
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name.Local, Attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				el.Attrs[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: multiple root elements", ErrUnreadable)
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			for _, open := range stack {
				open.text.Write(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrUnreadable)
	}
	return &Document{Root: root}, nil
}

// Text returns the element's text content.
func (e *Element) Text() string {
	return e.text.String()
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

// Find returns the first descendant of e named tag, in document order.
// e itself is not considered.
func (e *Element) Find(tag string) *Element {
	for _, c := range e.Children {
		if c.Name == tag {
			return c
		}
		if found := c.Find(tag); found != nil {
			return found
		}
	}
	return nil
}

// Value returns the trimmed text of the first descendant named tag, or "".
func (e *Element) Value(tag string) string {
	if found := e.Find(tag); found != nil {
		return strings.TrimSpace(found.Text())
	}
	return ""
}

// Find returns the first element named tag anywhere in the document,
// including the root.
func (d *Document) Find(tag string) *Element {
	if d.Root.Name == tag {
		return d.Root
	}
	return d.Root.Find(tag)
}

// Value returns the trimmed text of the first element named tag, or "".
func (d *Document) Value(tag string) string {
	if found := d.Find(tag); found != nil {
		return strings.TrimSpace(found.Text())
	}
	return ""
}

// FindAll returns every element whose name is one of tags, in document
// order, the root included.
func (d *Document) FindAll(tags ...string) []*Element {
	want := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		want[t] = struct{}{}
	}
	var out []*Element
	var walk func(*Element)
	walk = func(el *Element) {
		if _, ok := want[el.Name]; ok {
			out = append(out, el)
		}
		for _, c := range el.Children {
			walk(c)
		}
	}
	walk(d.Root)
	return out
}
