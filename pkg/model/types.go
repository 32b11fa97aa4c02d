package model

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FieldType identifies how a field is rendered. Any value not listed below is
// treated as a text-like input and emitted as <input type="...">.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypeURL      FieldType = "url"
	FieldTypeNumber   FieldType = "number"
	FieldTypeRange    FieldType = "range"
	FieldTypePassword FieldType = "password"
	FieldTypeHidden   FieldType = "hidden"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeDropdown FieldType = "dropdown"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeFlags    FieldType = "flags"
	FieldTypeHTML     FieldType = "html"
	FieldTypeTitle    FieldType = "title"
	FieldTypeSubmit   FieldType = "submit"
)

// IsSelect reports whether the type renders a <select> control.
func (t FieldType) IsSelect() bool {
	return t == FieldTypeSelect || t == FieldTypeDropdown
}

// IsChoice reports whether the type is a radio or checkbox.
func (t FieldType) IsChoice() bool {
	return t == FieldTypeRadio || t == FieldTypeCheckbox
}

// IsTextLike reports whether an external value may replace the field value
// verbatim. Structural types and option-driven controls are excluded.
func (t FieldType) IsTextLike() bool {
	switch t {
	case FieldTypeHTML, FieldTypeTitle, FieldTypeRadio, FieldTypeCheckbox,
		FieldTypeSelect, FieldTypeDropdown, FieldTypeSubmit:
		return false
	default:
		return true
	}
}

// Option is one entry of an ordered option list. Value is the submitted key,
// Label the caption shown to the user.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Options preserves insertion order, which is also the display order.
type Options []Option

// Keys returns the option values in order.
func (o Options) Keys() []string {
	keys := make([]string, 0, len(o))
	for _, opt := range o {
		keys = append(keys, opt.Value)
	}
	return keys
}

// Clone returns an independent copy.
func (o Options) Clone() Options {
	if o == nil {
		return nil
	}
	out := make(Options, len(o))
	copy(out, o)
	return out
}

// UnmarshalYAML accepts either a sequence of {value,label} pairs or a mapping
// of value -> label. Mappings keep document order.
func (o *Options) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		out := make(Options, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			out = append(out, Option{Value: node.Content[i].Value, Label: node.Content[i+1].Value})
		}
		*o = out
		return nil
	case yaml.SequenceNode:
		var list []Option
		if err := node.Decode(&list); err != nil {
			return fmt.Errorf("model: decode options: %w", err)
		}
		*o = list
		return nil
	default:
		return fmt.Errorf("model: options must be a mapping or a sequence, got %q", node.Tag)
	}
}

// ClassList is a set of CSS class tokens.
type ClassList []string

// ParseClassList splits a whitespace separated class attribute.
func ParseClassList(raw string) ClassList {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil
	}
	return ClassList(fields)
}

// String joins the tokens with single spaces.
func (c ClassList) String() string {
	return strings.Join(c, " ")
}

// UnmarshalYAML accepts a scalar ("a b") or a sequence.
func (c *ClassList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*c = ParseClassList(node.Value)
		return nil
	}
	var list []string
	if err := node.Decode(&list); err != nil {
		return fmt.Errorf("model: decode class list: %w", err)
	}
	*c = list
	return nil
}

// Attributes is the permissive attribute bag callers hand to the normalizer.
// Keys follow the snake_case names of FieldSpec.
type Attributes map[string]any

// FieldSpec is the complete description of one form control. Every field of
// the default attribute table is always present.
type FieldSpec struct {
	Type  FieldType `json:"type" yaml:"type"`
	Name  string    `json:"name" yaml:"name"`
	ID    string    `json:"id" yaml:"id"`
	Label string    `json:"label" yaml:"label"`
	Value string    `json:"value" yaml:"value"`

	Options  Options `json:"options,omitempty" yaml:"options,omitempty"`
	Selected string  `json:"selected,omitempty" yaml:"selected,omitempty"`
	Checked  bool    `json:"checked" yaml:"checked"`

	AddLabel        bool `json:"add_label" yaml:"add_label"`
	RequestPopulate bool `json:"request_populate" yaml:"request_populate"`

	Required    bool   `json:"required" yaml:"required"`
	Autofocus   bool   `json:"autofocus" yaml:"autofocus"`
	Pattern     string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Min         string `json:"min,omitempty" yaml:"min,omitempty"`
	Max         string `json:"max,omitempty" yaml:"max,omitempty"`
	Step        string `json:"step,omitempty" yaml:"step,omitempty"`
	Size        string `json:"size,omitempty" yaml:"size,omitempty"`
	MaxLength   string `json:"maxlength,omitempty" yaml:"maxlength,omitempty"`
	ValidateAs  string `json:"validateas,omitempty" yaml:"validateas,omitempty"`

	Class      ClassList `json:"class,omitempty" yaml:"class,omitempty"`
	WrapClass  ClassList `json:"wrap_class" yaml:"wrap_class"`
	WrapTag    string    `json:"wrap_tag" yaml:"wrap_tag"`
	WrapID     string    `json:"wrap_id,omitempty" yaml:"wrap_id,omitempty"`
	WrapStyle  string    `json:"wrap_style,omitempty" yaml:"wrap_style,omitempty"`
	BeforeHTML string    `json:"before_html,omitempty" yaml:"before_html,omitempty"`
	AfterHTML  string    `json:"after_html,omitempty" yaml:"after_html,omitempty"`

	// Group names the section the client script clusters this field under.
	Group string `json:"group,omitempty" yaml:"group,omitempty"`
	// MapsTo is the lower-case bound-data key for table-driven fields.
	MapsTo string `json:"maps_to,omitempty" yaml:"maps_to,omitempty"`

	// Extra keeps caller supplied attributes the normalizer does not know.
	Extra map[string]any `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// HasOptions reports whether the field carries an option list.
func (f FieldSpec) HasOptions() bool {
	return len(f.Options) > 0
}

// Clone returns a deep copy so callers can modify the result freely.
func (f FieldSpec) Clone() FieldSpec {
	out := f
	out.Options = f.Options.Clone()
	if f.Class != nil {
		out.Class = append(ClassList(nil), f.Class...)
	}
	if f.WrapClass != nil {
		out.WrapClass = append(ClassList(nil), f.WrapClass...)
	}
	if f.Extra != nil {
		out.Extra = make(map[string]any, len(f.Extra))
		for key, value := range f.Extra {
			out.Extra[key] = value
		}
	}
	return out
}
