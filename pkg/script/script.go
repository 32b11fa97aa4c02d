// Package script renders the companion script appended after a form. The
// script groups fields sharing a "group" attribute into fieldsets and expands
// flags containers into checkboxes feeding one hidden bitmask input.
package script

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/flags"
	rendertemplate "github.com/goliatone/go-formbuilder/pkg/render/template"
	"github.com/goliatone/go-formbuilder/pkg/render/template/gotemplate"
)

//go:embed assets/*.tpl
var assets embed.FS

// TemplateName is the embedded script template.
const TemplateName = "formbuilder.js"

// Builder renders the script body. Implementations must not keep references
// to the entries.
type Builder interface {
	Build(entries flags.Entries, objectID, formID string) (string, error)
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(entries flags.Entries, objectID, formID string) (string, error)

// Build implements Builder.
func (f BuilderFunc) Build(entries flags.Entries, objectID, formID string) (string, error) {
	return f(entries, objectID, formID)
}

// TemplateBuilder renders the embedded script through a template engine.
type TemplateBuilder struct {
	engine rendertemplate.TemplateRenderer
	name   string
}

// NewTemplateBuilder uses engine to render the template called name. Passing a
// nil engine selects the embedded template.
func NewTemplateBuilder(engine rendertemplate.TemplateRenderer, name string) (*TemplateBuilder, error) {
	if engine == nil {
		var err error
		if engine, err = embeddedEngine(); err != nil {
			return nil, err
		}
		name = TemplateName
	}
	if name == "" {
		name = TemplateName
	}
	return &TemplateBuilder{engine: engine, name: name}, nil
}

// Build implements Builder.
func (b *TemplateBuilder) Build(entries flags.Entries, objectID, formID string) (string, error) {
	payload, err := entries.JSON()
	if err != nil {
		return "", fmt.Errorf("script: %w", err)
	}
	out, err := b.engine.RenderTemplate(b.name, map[string]any{
		"flags":   payload,
		"object":  objectID,
		"form_id": formID,
	})
	if err != nil {
		return "", fmt.Errorf("script: render %q: %w", b.name, err)
	}
	return out, nil
}

var (
	defaultOnce    sync.Once
	defaultBuilder *TemplateBuilder
	defaultErr     error
)

// Default returns the shared builder backed by the embedded template.
func Default() (*TemplateBuilder, error) {
	defaultOnce.Do(func() {
		defaultBuilder, defaultErr = NewTemplateBuilder(nil, "")
	})
	return defaultBuilder, defaultErr
}

// TemplatesFS exposes the embedded templates so callers can layer overrides
// on top of them.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		return assets
	}
	return sub
}

func embeddedEngine() (*gotemplate.Engine, error) {
	engine, err := gotemplate.New(gotemplate.WithFS(TemplatesFS()))
	if err != nil {
		return nil, fmt.Errorf("script: template engine: %w", err)
	}
	return engine, nil
}

// FromDir returns a builder that looks for the script template in dir first
// and falls back to the embedded copy, so a directory holding only
// formbuilder.js.tpl replaces the script without touching anything else.
func FromDir(dir string) (*TemplateBuilder, error) {
	engine, err := gotemplate.New(
		gotemplate.WithDir(dir),
		gotemplate.WithFS(TemplatesFS()),
	)
	if err != nil {
		return nil, fmt.Errorf("script: template engine: %w", err)
	}
	return NewTemplateBuilder(engine, TemplateName)
}

// Source returns the raw embedded template, for tooling that ships the
// script separately.
func Source() (string, error) {
	data, err := assets.ReadFile("assets/" + TemplateName + ".tpl")
	if err != nil {
		return "", fmt.Errorf("script: read template: %w", err)
	}
	return string(data), nil
}
