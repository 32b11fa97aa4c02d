package components

import (
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/flags"
	"github.com/goliatone/go-formbuilder/pkg/markup"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// components.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(NameInput, Descriptor{Renderer: inputRenderer})
	registry.MustRegister(NameTextarea, Descriptor{Renderer: textareaRenderer})
	registry.MustRegister(NameSelect, Descriptor{Renderer: selectRenderer})
	registry.MustRegister(NameFlags, Descriptor{Renderer: flagsRenderer})
	registry.MustRegister(NameChoice, Descriptor{Renderer: choiceRenderer})
	registry.MustRegister(NameHTML, Descriptor{Renderer: htmlRenderer})
	registry.MustRegister(NameTitle, Descriptor{Renderer: titleRenderer})

	return registry
}

func inputRenderer(field model.FieldSpec, data Data) (Output, error) {
	checked := data.Effective.Checked

	var attrs markup.Attrs
	attrs.Set("type", string(field.Type))
	attrs.SetNonEmpty("id", field.ID)
	attrs.Set("name", field.Name)
	attrs.Set("value", data.Effective.Value)
	if field.Type == model.FieldTypeRange || field.Type == model.FieldTypeNumber {
		attrs.SetNonEmpty("min", field.Min)
		attrs.SetNonEmpty("max", field.Max)
		attrs.SetNonEmpty("step", field.Step)
	}
	attrs.SetNonEmpty("class", field.Class.String())
	attrs.SetNonEmpty("validateas", field.ValidateAs)
	attrs.SetNonEmpty("pattern", field.Pattern)
	attrs.SetNonEmpty("size", field.Size)
	attrs.SetNonEmpty("maxlength", field.MaxLength)
	attrs.SetNonEmpty("placeholder", field.Placeholder)
	attrs.Flag("checked", checked)
	attrs.Flag("required", field.Required)
	attrs.Flag("autofocus", field.Autofocus)

	return Output{Control: []markup.Node{markup.VoidElement("input", attrs.List())}}, nil
}

func textareaRenderer(field model.FieldSpec, data Data) (Output, error) {
	attrs := controlAttrs(field)
	attrs.SetNonEmpty("placeholder", field.Placeholder)
	attrs.SetNonEmpty("maxlength", field.MaxLength)
	return Output{Control: []markup.Node{
		markup.Element("textarea", attrs.List(), markup.Text(data.Effective.Value)),
	}}, nil
}

func selectRenderer(field model.FieldSpec, data Data) (Output, error) {
	attrs := controlAttrs(field)
	attrs.SetNonEmpty("selvalue", data.Effective.Value)

	options := make([]markup.Node, 0, len(field.Options))
	for _, opt := range field.Options {
		var optAttrs markup.Attrs
		optAttrs.Set("value", opt.Value)
		optAttrs.Flag("selected", data.Effective.IsSelected(opt.Value))
		options = append(options, markup.Element("option", optAttrs.List(), markup.Text(opt.Label)))
	}
	return Output{Control: []markup.Node{markup.Element("select", attrs.List(), options...)}}, nil
}

func flagsRenderer(field model.FieldSpec, data Data) (Output, error) {
	entry, err := flags.NewEntry(field.ID, field.Name, flags.FromOptions(field.Options))
	if err != nil {
		return Output{}, fmt.Errorf("components: flags %q: %w", field.Name, err)
	}

	var attrs markup.Attrs
	attrs.SetNonEmpty("id", field.ID)
	attrs.Set("name", field.Name)
	attrs.SetNonEmpty("class", field.Class.String())

	value := flags.ParseValue(data.Effective.Value)
	return Output{
		Control: []markup.Node{markup.Element("div", attrs.List(), markup.Text(fmt.Sprint(value)))},
		Flag:    &entry,
	}, nil
}

func choiceRenderer(field model.FieldSpec, data Data) (Output, error) {
	nodes := make([]markup.Node, 0, len(field.Options)*2)
	for _, opt := range field.Options {
		slug := model.Slugify(opt.Label)

		var attrs markup.Attrs
		attrs.Set("type", string(field.Type))
		attrs.Set("name", field.Name+"[]")
		attrs.Set("value", opt.Value)
		attrs.SetNonEmpty("id", slug)
		attrs.SetNonEmpty("class", field.Class.String())
		attrs.Flag("checked", data.Effective.IsSelected(opt.Value))
		attrs.Flag("required", field.Required)

		nodes = append(nodes,
			markup.VoidElement("input", attrs.List()),
			markup.Text(" "),
			markup.Element("label", []markup.Attr{{Name: "for", Value: slug}}, markup.Text(opt.Label)),
		)
	}

	header := markup.Element("div", []markup.Attr{{Name: "class", Value: "checkbox_header"}}, markup.Text(field.Label))
	return Output{Control: nodes, Header: []markup.Node{header}}, nil
}

func htmlRenderer(field model.FieldSpec, _ Data) (Output, error) {
	return Output{Control: []markup.Node{markup.Raw(field.Label)}}, nil
}

func titleRenderer(field model.FieldSpec, _ Data) (Output, error) {
	return Output{Control: []markup.Node{markup.Element("h3", nil, markup.Text(field.Label))}}, nil
}

// controlAttrs returns the id/name/class/flag attributes shared by textarea
// and select.
func controlAttrs(field model.FieldSpec) *markup.Attrs {
	attrs := &markup.Attrs{}
	attrs.SetNonEmpty("id", field.ID)
	attrs.Set("name", field.Name)
	attrs.SetNonEmpty("class", field.Class.String())
	attrs.Flag("autofocus", field.Autofocus)
	attrs.Flag("required", field.Required)
	return attrs
}
