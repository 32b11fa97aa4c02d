// Package formbuilder is the convenience entry point: build a form, add
// fields, render it to HTML. The subpackages hold the pieces for callers that
// need finer control.
package formbuilder

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/definition"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/tablesource"
)

// Form aliases form.Form.
type Form = form.Form

// Input aliases form.Input for bulk additions.
type Input = form.Input

// Attributes aliases model.Attributes.
type Attributes = model.Attributes

// RenderOptions aliases render.RenderOptions.
type RenderOptions = render.RenderOptions

// Result aliases render.Result.
type Result = render.Result

// New creates a form posting to action. See form.New for the accepted
// settings.
func New(action string, attrs map[string]any, opts ...form.Option) *Form {
	return form.New(action, attrs, opts...)
}

// NewRenderer exposes the renderer constructor from the module root.
func NewRenderer(opts ...render.Option) *render.Renderer {
	return render.New(opts...)
}

// Render renders f with a renderer built from opts.
func Render(ctx context.Context, f *Form, values RenderOptions, opts ...render.Option) (string, error) {
	result, err := render.New(opts...).RenderForm(ctx, f, values)
	if err != nil {
		return "", err
	}
	return result.HTML, nil
}

// RenderDefinition loads the definition file at path and renders it.
func RenderDefinition(ctx context.Context, path string, values RenderOptions, opts ...render.Option) (string, error) {
	def, err := definition.Load(path)
	if err != nil {
		return "", err
	}
	return Render(ctx, def.NewForm(), values, opts...)
}

// FromTable builds a form from the field rows of formID. record is bound
// before the rows are read so maps-to values resolve.
func FromTable(ctx context.Context, ds tablesource.DataSource, formID int64, record map[string]any, opts ...form.Option) (*Form, error) {
	f := form.New("", nil, opts...)
	if len(record) > 0 {
		f.LetData(record)
	}
	if err := tablesource.Load(ctx, ds, formID, f); err != nil {
		return nil, fmt.Errorf("formbuilder: %w", err)
	}
	return f, nil
}
