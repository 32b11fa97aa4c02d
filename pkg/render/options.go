package render

import (
	"context"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/randid"
	"github.com/goliatone/go-formbuilder/pkg/render/components"
	"github.com/goliatone/go-formbuilder/pkg/script"
	"github.com/goliatone/go-formbuilder/pkg/values"
)

// RenderOptions describe per-request data that customise output without
// touching the stored form.
type RenderOptions struct {
	// Values is the external value source, usually request data. RenderForm
	// chains the form's bound record behind it.
	Values values.Source
	// Locale selects translations for synthesized captions and label keys.
	Locale string
}

// TokenSource issues anti-forgery tokens for an action.
type TokenSource interface {
	Token(ctx context.Context, action string) (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context, action string) (string, error)

// Token implements TokenSource.
func (f TokenFunc) Token(ctx context.Context, action string) (string, error) {
	return f(ctx, action)
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used for recovered conditions.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRegistry replaces the component registry.
func WithRegistry(registry *components.Registry) Option {
	return func(r *Renderer) {
		if registry != nil {
			r.registry = registry
		}
	}
}

// WithTranslator enables translated captions.
func WithTranslator(t Translator) Option {
	return func(r *Renderer) {
		r.translator = t
	}
}

// WithLocale sets the locale used when RenderOptions.Locale is empty.
func WithLocale(locale string) Option {
	return func(r *Renderer) {
		r.locale = locale
	}
}

// WithMissingTranslationHandler overrides the fallback used for missing keys.
func WithMissingTranslationHandler(h MissingTranslationHandler) Option {
	return func(r *Renderer) {
		if h != nil {
			r.onMissing = h
		}
	}
}

// WithTokenSource enables the nonce field for forms requesting one.
func WithTokenSource(src TokenSource) Option {
	return func(r *Renderer) {
		r.tokens = src
	}
}

// WithIDGenerator sets the source of script scoping identifiers.
func WithIDGenerator(gen randid.Generator) Option {
	return func(r *Renderer) {
		if gen != nil {
			r.ids = gen
		}
	}
}

// WithScriptBuilder replaces the companion script builder.
func WithScriptBuilder(b script.Builder) Option {
	return func(r *Renderer) {
		if b != nil {
			r.script = b
		}
	}
}

// WithoutScript suppresses the companion script block.
func WithoutScript() Option {
	return func(r *Renderer) {
		r.noScript = true
	}
}

// WithRawValues disables escaping of attribute values and text. This matches
// legacy output byte for byte and must only be used with trusted values.
func WithRawValues() Option {
	return func(r *Renderer) {
		r.rawValues = true
	}
}

// WithRawSanitizer filters raw fragments (html fields, before_html and
// after_html) through policy.
func WithRawSanitizer(policy *bluemonday.Policy) Option {
	return func(r *Renderer) {
		r.sanitizer = policy
	}
}
