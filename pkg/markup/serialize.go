package markup

import (
	"fmt"
	"html"
	"io"
	"strings"
)

// Mode selects how void elements are closed.
type Mode int

const (
	ModeHTML Mode = iota
	ModeXHTML
)

// Serializer writes nodes. With Raw set, text nodes and attribute values are
// written without escaping; this reproduces legacy output and is unsafe for
// untrusted values.
type Serializer struct {
	Mode Mode
	Raw  bool
}

// Render writes nodes with escaping enabled.
func Render(w io.Writer, mode Mode, nodes ...Node) error {
	return Serializer{Mode: mode}.Write(w, nodes...)
}

// String renders nodes to a string with escaping enabled.
func String(mode Mode, nodes ...Node) string {
	return Serializer{Mode: mode}.String(nodes...)
}

// String renders nodes to a string.
func (s Serializer) String(nodes ...Node) string {
	var b strings.Builder
	for _, node := range nodes {
		s.write(&b, node)
	}
	return b.String()
}

// Write renders nodes to w.
func (s Serializer) Write(w io.Writer, nodes ...Node) error {
	if _, err := io.WriteString(w, s.String(nodes...)); err != nil {
		return fmt.Errorf("markup: write: %w", err)
	}
	return nil
}

func (s Serializer) write(b *strings.Builder, node Node) {
	switch node.Kind {
	case KindRaw:
		b.WriteString(node.Text)
	case KindText:
		b.WriteString(s.escape(node.Text))
	default:
		if node.Tag == "" {
			for _, child := range node.Children {
				s.write(b, child)
			}
			return
		}
		b.WriteByte('<')
		b.WriteString(node.Tag)
		for _, attr := range node.Attrs {
			b.WriteByte(' ')
			b.WriteString(attr.Name)
			if attr.Bool {
				continue
			}
			b.WriteString(`="`)
			b.WriteString(s.escape(attr.Value))
			b.WriteByte('"')
		}
		if node.Void {
			if s.Mode == ModeXHTML {
				b.WriteString(" />")
			} else {
				b.WriteByte('>')
			}
			return
		}
		b.WriteByte('>')
		for _, child := range node.Children {
			s.write(b, child)
		}
		b.WriteString("</")
		b.WriteString(node.Tag)
		b.WriteByte('>')
	}
}

func (s Serializer) escape(v string) string {
	if s.Raw {
		return v
	}
	return html.EscapeString(v)
}

// Fragment groups nodes without emitting an element of its own.
func Fragment(children ...Node) Node {
	return Node{Kind: KindElement, Children: children}
}
