package gotemplate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formbuilder/pkg/render/template"
)

// Extension is appended to template names that do not already carry it.
const Extension = ".tpl"

// ErrNoLoaders is returned by New when neither a directory nor a filesystem
// was configured.
var ErrNoLoaders = errors.New("gotemplate: no template source configured")

// Option configures an Engine.
type Option func(*config)

type config struct {
	loaders []pongo2.TemplateLoader
	errs    []error
}

// WithDir adds a directory on disk to the lookup chain. Sources are searched
// in the order they are added, so an earlier source shadows a later one.
func WithDir(dir string) Option {
	return func(cfg *config) {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			return
		}
		loader, err := pongo2.NewLocalFileSystemLoader(dir)
		if err != nil {
			cfg.errs = append(cfg.errs, fmt.Errorf("gotemplate: template dir %q: %w", dir, err))
			return
		}
		cfg.loaders = append(cfg.loaders, loader)
	}
}

// WithFS adds files to the lookup chain.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.loaders = append(cfg.loaders, pongo2.NewFSLoader(files))
		}
	}
}

// Engine renders named pongo2 templates. Parsed templates are cached.
type Engine struct {
	mu    sync.RWMutex
	set   *pongo2.TemplateSet
	cache map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an Engine from the configured sources.
func New(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if err := errors.Join(cfg.errs...); err != nil {
		return nil, err
	}
	if len(cfg.loaders) == 0 {
		return nil, ErrNoLoaders
	}
	registerFilters()
	return &Engine{
		set:   pongo2.NewSet("formbuilder", cfg.loaders...),
		cache: make(map[string]*pongo2.Template),
	}, nil
}

// RenderTemplate executes the template called name with data and copies the
// result to every writer in out.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	if !strings.HasSuffix(name, Extension) {
		name += Extension
	}
	tmpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("gotemplate: execute %q: %w", name, err)
	}
	for _, w := range out {
		if _, err := w.Write(buf.Bytes()); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func (e *Engine) lookup(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[name]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load %q: %w", name, err)
	}
	e.cache[name] = tmpl
	return tmpl, nil
}

// toContext accepts a map directly and round-trips anything else through
// JSON so struct tags decide the template keys.
func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		return pongo2.Context(v), nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	ctx := pongo2.Context{}
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return nil, err
	}
	return ctx, nil
}

var filtersOnce sync.Once

func registerFilters() {
	filtersOnce.Do(func() {
		if !pongo2.FilterExists("jsident") {
			_ = pongo2.RegisterFilter("jsident", filterJSIdent)
		}
	})
}

// filterJSIdent drops every rune that cannot appear in a JavaScript
// identifier and prefixes a leading digit with an underscore.
func filterJSIdent(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var b strings.Builder
	for _, r := range in.String() {
		switch {
		case r == '_' || r == '$',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		return pongo2.AsValue("_"), nil
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return pongo2.AsValue(out), nil
}
