// Package markup is the structured intermediate representation the renderer
// builds before serializing. Attribute order is explicit, so output is stable.
package markup

// Kind distinguishes element, text and raw nodes.
type Kind int

const (
	KindElement Kind = iota
	// KindText is escaped on output unless the serializer runs in raw mode.
	KindText
	// KindRaw is always written verbatim.
	KindRaw
)

// Attr is one attribute. Bool attributes serialize as the bare name.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
	Bool  bool   `json:"bool,omitempty"`
}

// Node is an element, a text run or a raw passthrough fragment.
type Node struct {
	Kind     Kind   `json:"kind"`
	Tag      string `json:"tag,omitempty"`
	Attrs    []Attr `json:"attrs,omitempty"`
	Children []Node `json:"children,omitempty"`
	Void     bool   `json:"void,omitempty"`
	Text     string `json:"text,omitempty"`
}

// Element builds an element node.
func Element(tag string, attrs []Attr, children ...Node) Node {
	return Node{Kind: KindElement, Tag: tag, Attrs: attrs, Children: children}
}

// VoidElement builds an element without children or a closing tag.
func VoidElement(tag string, attrs []Attr) Node {
	return Node{Kind: KindElement, Tag: tag, Attrs: attrs, Void: true}
}

// Text builds an escaped text node.
func Text(s string) Node {
	return Node{Kind: KindText, Text: s}
}

// Raw builds a verbatim fragment.
func Raw(s string) Node {
	return Node{Kind: KindRaw, Text: s}
}

// Attribute returns the value of the named attribute.
func (n Node) Attribute(name string) (string, bool) {
	for _, attr := range n.Attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// HasAttribute reports whether the named attribute is present.
func (n Node) HasAttribute(name string) bool {
	_, ok := n.Attribute(name)
	return ok
}

// Attrs accumulates attributes in order.
type Attrs []Attr

// Set appends name=value.
func (a *Attrs) Set(name, value string) *Attrs {
	*a = append(*a, Attr{Name: name, Value: value})
	return a
}

// SetNonEmpty appends name=value only when value is non-empty.
func (a *Attrs) SetNonEmpty(name, value string) *Attrs {
	if value != "" {
		a.Set(name, value)
	}
	return a
}

// Flag appends a boolean attribute when on is true.
func (a *Attrs) Flag(name string, on bool) *Attrs {
	if on {
		*a = append(*a, Attr{Name: name, Bool: true})
	}
	return a
}

// List returns the accumulated attributes.
func (a Attrs) List() []Attr {
	return []Attr(a)
}
