package xmldoc

import "strings"

type lookupKind int

const (
	lookupTag lookupKind = iota
	lookupAttr
	lookupSelf
)

// Lookup is one alternative in a first-match chain: a descendant element,
// an attribute, or the element's own text.
type Lookup struct {
	kind lookupKind
	name string
}

// Tag looks up the first descendant element with the given name.
func Tag(name string) Lookup { return Lookup{kind: lookupTag, name: name} }

// Attr looks up an attribute of the element itself.
func Attr(name string) Lookup { return Lookup{kind: lookupAttr, name: name} }

// Self reads the element's own text content.
func Self() Lookup { return Lookup{kind: lookupSelf} }

// TagOrAttr expands each name into a Tag then an Attr alternative.
func TagOrAttr(names ...string) []Lookup {
	out := make([]Lookup, 0, len(names)*2)
	for _, n := range names {
		out = append(out, Tag(n), Attr(n))
	}
	return out
}

// FirstOf evaluates lookups in order against e and returns the first
// non-empty trimmed value.
func (e *Element) FirstOf(lookups ...Lookup) string {
	for _, l := range lookups {
		var v string
		switch l.kind {
		case lookupTag:
			v = e.Value(l.name)
		case lookupAttr:
			v, _ = e.Attr(l.name)
		case lookupSelf:
			v = e.Text()
		}
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// FirstOf evaluates lookups against the whole document: tags are searched
// everywhere, attributes and Self apply to the root element.
func (d *Document) FirstOf(lookups ...Lookup) string {
	for _, l := range lookups {
		var v string
		if l.kind == lookupTag {
			v = d.Value(l.name)
		} else {
			v = d.Root.FirstOf(l)
		}
		if v != "" {
			return v
		}
	}
	return ""
}
