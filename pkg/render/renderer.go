package render

import (
	"context"
	"fmt"
	"io"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/flags"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/markup"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/randid"
	"github.com/goliatone/go-formbuilder/pkg/render/components"
	"github.com/goliatone/go-formbuilder/pkg/script"
	"github.com/goliatone/go-formbuilder/pkg/values"
)

const (
	// NonceFieldName is the hidden field carrying the anti-forgery token.
	NonceFieldName = "_nonce"

	HoneypotName = "honeypot"
	HoneypotID   = "form_honeypot"
)

// Result is the outcome of one render pass. Flags is the registry handed to
// the companion script; it belongs to this result only.
type Result struct {
	HTML      string
	Nodes     []markup.Node
	Flags     flags.Entries
	ScriptID  string
	HasSubmit bool
}

// WriteTo implements io.WriterTo.
func (r Result) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.HTML)
	return int64(n), err
}

// Renderer turns form settings and field specs into markup. A Renderer keeps
// no per-render state and is safe for concurrent use once configured.
type Renderer struct {
	logger     *zap.Logger
	registry   *components.Registry
	translator Translator
	onMissing  MissingTranslationHandler
	locale     string
	tokens     TokenSource
	ids        randid.Generator
	script     script.Builder
	noScript   bool
	rawValues  bool
	sanitizer  *bluemonday.Policy
}

// New constructs a Renderer with the default component registry and the
// embedded companion script.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		logger:    zap.NewNop(),
		registry:  components.NewDefaultRegistry(),
		onMissing: missingTranslationDefault,
		ids:       randid.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.script == nil && !r.noScript {
		builder, err := script.Default()
		if err != nil {
			r.logger.Error("companion script unavailable", zap.Error(err))
			r.noScript = true
		} else {
			r.script = builder
		}
	}
	return r
}

// RenderForm renders f. The form's bound record is consulted after
// opts.Values.
func (r *Renderer) RenderForm(ctx context.Context, f *form.Form, opts RenderOptions) (Result, error) {
	if f == nil {
		return Result{}, fmt.Errorf("render: form is nil")
	}
	src := values.Chain(opts.Values, values.FromMap(f.Data()))
	opts.Values = src
	return r.Render(ctx, f.Config(), f.Inputs(), opts)
}

// Render produces the markup for cfg and specs. specs are not modified.
func (r *Renderer) Render(ctx context.Context, cfg form.Config, specs []model.FieldSpec, opts RenderOptions) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("render: %w", err)
	}

	locale := opts.Locale
	if locale == "" {
		locale = r.locale
	}
	src := opts.Values
	if src == nil {
		src = values.Empty
	}

	// Synthesized fields live only in this list, never in the stored form.
	list := make([]model.FieldSpec, 0, len(specs)+2)
	for _, spec := range specs {
		list = append(list, spec.Clone())
	}
	if cfg.AddHoneypot {
		list = append(list, r.honeypot(locale))
	}
	if nonce, ok := r.nonce(ctx, cfg); ok {
		list = append(list, nonce)
	}

	var (
		result Result
		body   []markup.Node
	)
	for _, spec := range list {
		nodes, entry, err := r.field(spec, cfg, src, locale)
		if err != nil {
			return Result{}, err
		}
		body = append(body, nodes...)
		if entry != nil {
			result.Flags = append(result.Flags, *entry)
		}
		if spec.Type == model.FieldTypeSubmit {
			result.HasSubmit = true
		}
	}

	if !result.HasSubmit && cfg.AddSubmit {
		body = append(body, r.autoSubmit(locale))
	}

	var nodes []markup.Node
	if cfg.FormElement {
		nodes = append(nodes, markup.Element("form", formAttrs(cfg), body...))
	} else {
		nodes = append(nodes, body...)
	}

	if !r.noScript && r.script != nil {
		result.ScriptID = r.ids.ID()
		js, err := r.script.Build(result.Flags, result.ScriptID, cfg.ID)
		if err != nil {
			r.logger.Error("companion script skipped", zap.String("form", cfg.ID), zap.Error(err))
			result.ScriptID = ""
		} else {
			nodes = append(nodes, markup.Element("script", nil, markup.Raw(js)))
		}
	}

	result.Nodes = nodes
	result.HTML = r.serializer(cfg).String(nodes...)
	return result, nil
}

func (r *Renderer) serializer(cfg form.Config) markup.Serializer {
	mode := markup.ModeHTML
	if cfg.XHTML() {
		mode = markup.ModeXHTML
	}
	return markup.Serializer{Mode: mode, Raw: r.rawValues}
}

func formAttrs(cfg form.Config) []markup.Attr {
	var attrs markup.Attrs
	attrs.Set("method", cfg.Method)
	attrs.SetNonEmpty("enctype", cfg.Enctype)
	attrs.SetNonEmpty("action", cfg.Action)
	attrs.SetNonEmpty("id", cfg.ID)
	attrs.SetNonEmpty("class", cfg.Class.String())
	attrs.Flag("novalidate", cfg.Novalidate)
	return attrs.List()
}

func (r *Renderer) honeypot(locale string) model.FieldSpec {
	return model.Normalize(model.Attributes{
		"name":             HoneypotName,
		"id":               HoneypotID,
		"wrap_tag":         "div",
		"wrap_class":       model.ClassList{model.DefaultWrapClass, "hidden"},
		"wrap_id":          "",
		"wrap_style":       "display: none",
		"request_populate": false,
	}, r.caption(locale, KeyHoneypot), HoneypotName)
}

func (r *Renderer) nonce(ctx context.Context, cfg form.Config) (model.FieldSpec, bool) {
	action, ok := cfg.NonceAction()
	if !ok || r.tokens == nil {
		return model.FieldSpec{}, false
	}
	token, err := r.tokens.Token(ctx, action)
	if err != nil {
		r.logger.Warn("nonce field skipped", zap.String("action", action), zap.Error(err))
		return model.FieldSpec{}, false
	}
	return model.Normalize(model.Attributes{
		"type":             model.FieldTypeHidden,
		"value":            token,
		"add_label":        false,
		"request_populate": false,
	}, "Nonce", NonceFieldName), true
}

func (r *Renderer) autoSubmit(locale string) markup.Node {
	var attrs markup.Attrs
	attrs.Set("type", "submit")
	attrs.Set("value", r.caption(locale, KeySubmit))
	attrs.Set("name", "submit")
	return markup.Element("div", []markup.Attr{{Name: "class", Value: model.DefaultWrapClass}},
		markup.VoidElement("input", attrs.List()))
}

// field renders one spec with its label and wrapper.
func (r *Renderer) field(spec model.FieldSpec, cfg form.Config, src values.Source, locale string) ([]markup.Node, *flags.Entry, error) {
	if key, ok := spec.Extra[LabelKeyAttribute].(string); ok {
		spec.Label = r.translate(locale, key, spec.Label)
	}

	name := components.ComponentFor(spec)
	descriptor, ok := r.registry.Descriptor(name)
	if !ok {
		r.logger.Warn("unknown component, falling back to input",
			zap.String("component", name), zap.String("field", spec.Name))
		if descriptor, ok = r.registry.Descriptor(components.NameInput); !ok {
			return nil, nil, fmt.Errorf("render: no component %q for field %q", name, spec.Name)
		}
	}

	eff := values.Resolve(spec, src)
	out, err := descriptor.Renderer(spec, components.Data{Effective: eff, Form: cfg})
	if err != nil {
		return nil, nil, fmt.Errorf("render: component %q for field %q: %w", descriptor.Name, spec.Name, err)
	}

	control := r.sanitize(out.Control)
	var inner []markup.Node
	switch {
	case len(out.Header) > 0:
		inner = append(append(inner, out.Header...), control...)
	case wantsLabel(spec):
		label := r.label(spec, locale)
		if spec.Type == model.FieldTypeCheckbox {
			inner = append(append(inner, control...), label)
		} else {
			inner = append(append(inner, label), control...)
		}
	default:
		inner = control
	}

	if spec.Type == model.FieldTypeHidden || spec.Type == model.FieldTypeHTML {
		return inner, out.Flag, nil
	}
	return r.wrap(spec, inner), out.Flag, nil
}

func wantsLabel(spec model.FieldSpec) bool {
	if !spec.AddLabel {
		return false
	}
	switch spec.Type {
	case model.FieldTypeHidden, model.FieldTypeSubmit, model.FieldTypeTitle, model.FieldTypeHTML:
		return false
	default:
		return true
	}
}

func (r *Renderer) label(spec model.FieldSpec, locale string) markup.Node {
	children := []markup.Node{markup.Text(spec.Label)}
	if spec.Required {
		children = append(children,
			markup.Text(" "),
			markup.Element("strong", nil, markup.Text(r.caption(locale, KeyRequired))))
	}
	return markup.Element("label", []markup.Attr{{Name: "for", Value: spec.ID}}, children...)
}

func (r *Renderer) wrap(spec model.FieldSpec, inner []markup.Node) []markup.Node {
	var out []markup.Node
	if spec.BeforeHTML != "" {
		out = append(out, r.raw(spec.BeforeHTML))
	}
	if spec.WrapTag == "" {
		out = append(out, inner...)
	} else {
		var attrs markup.Attrs
		attrs.SetNonEmpty("class", spec.WrapClass.String())
		attrs.SetNonEmpty("style", spec.WrapStyle)
		attrs.SetNonEmpty("id", spec.WrapID)
		attrs.SetNonEmpty("group", spec.Group)
		out = append(out, markup.Element(spec.WrapTag, attrs.List(), inner...))
	}
	if spec.AfterHTML != "" {
		out = append(out, r.raw(spec.AfterHTML))
	}
	return out
}

func (r *Renderer) raw(fragment string) markup.Node {
	if r.sanitizer != nil {
		fragment = r.sanitizer.Sanitize(fragment)
	}
	return markup.Raw(fragment)
}

// sanitize filters raw fragments produced by components.
func (r *Renderer) sanitize(nodes []markup.Node) []markup.Node {
	if r.sanitizer == nil {
		return nodes
	}
	out := make([]markup.Node, len(nodes))
	for i, node := range nodes {
		switch node.Kind {
		case markup.KindRaw:
			out[i] = r.raw(node.Text)
		case markup.KindElement:
			node.Children = r.sanitize(node.Children)
			out[i] = node
		default:
			out[i] = node
		}
	}
	return out
}
