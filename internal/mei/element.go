package mei

import (
	"strings"
)

// Attr is one XML attribute. Order of definition is serialization order.
type Attr struct {
	Name  string
	Value string
}

// Element is a mutable XML element node.
type Element struct {
	name     string
	attrs    []Attr
	children []*Element
	text     string
}

func newElement(name string) *Element {
	return &Element{name: name}
}

// set adds or replaces an attribute, keeping first-set order.
func (e *Element) set(name, value string) *Element {
	for i := range e.attrs {
		if e.attrs[i].Name == name {
			e.attrs[i].Value = value
			return e
		}
	}
	e.attrs = append(e.attrs, Attr{Name: name, Value: value})
	return e
}

// child appends a new empty child element and returns it.
func (e *Element) child(name string) *Element {
	c := newElement(name)
	e.children = append(e.children, c)
	return c
}

// adopt appends an existing element as the last child.
func (e *Element) adopt(c *Element) {
	e.children = append(e.children, c)
}

func (e *Element) write(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent)
	b.WriteByte('<')
	b.WriteString(e.name)
	for _, attr := range e.attrs {
		b.WriteByte(' ')
		b.WriteString(attr.Name)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(attr.Value))
		b.WriteByte('"')
	}

	if len(e.children) == 0 && e.text == "" {
		b.WriteString("/>\n")
		return
	}

	b.WriteByte('>')
	if len(e.children) == 0 {
		b.WriteString(escapeText(e.text))
		b.WriteString("</")
		b.WriteString(e.name)
		b.WriteString(">\n")
		return
	}

	b.WriteByte('\n')
	for _, c := range e.children {
		c.write(b, depth+1)
	}
	b.WriteString(indent)
	b.WriteString("</")
	b.WriteString(e.name)
	b.WriteString(">\n")
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

func escapeAttr(s string) string { return attrEscaper.Replace(s) }

func escapeText(s string) string { return textEscaper.Replace(s) }
