// Package values resolves the effective display state of a field from an
// explicit external value source (request data or a bound record).
package values

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Source supplies raw external values keyed by field name.
type Source interface {
	Lookup(key string) ([]string, bool)
}

// Empty never has a value.
var Empty Source = emptySource{}

type emptySource struct{}

func (emptySource) Lookup(string) ([]string, bool) { return nil, false }

type requestSource url.Values

// FromRequest wraps submitted form values. A key is also looked up with the
// "[]" suffix used by multi-value groups.
func FromRequest(v url.Values) Source {
	if v == nil {
		return Empty
	}
	return requestSource(v)
}

func (r requestSource) Lookup(key string) ([]string, bool) {
	if vals, ok := r[key]; ok {
		return vals, true
	}
	if !strings.HasSuffix(key, "[]") {
		if vals, ok := r[key+"[]"]; ok {
			return vals, true
		}
	}
	return nil, false
}

type mapSource map[string][]string

// FromMap wraps a bound record. Keys are matched case-insensitively, scalars
// are stringified and slices become multi-values. Nil entries are skipped.
func FromMap(record map[string]any) Source {
	if len(record) == 0 {
		return Empty
	}
	out := make(mapSource, len(record))
	for key, raw := range record {
		if raw == nil {
			continue
		}
		out[strings.ToLower(key)] = toStrings(raw)
	}
	return out
}

func (m mapSource) Lookup(key string) ([]string, bool) {
	vals, ok := m[strings.ToLower(key)]
	return vals, ok
}

func toStrings(raw any) []string {
	switch v := raw.(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, model.AsString(item))
		}
		return out
	default:
		return []string{model.AsString(v)}
	}
}

type chain []Source

// Chain consults sources in order; the first one holding the key wins.
func Chain(sources ...Source) Source {
	out := make(chain, 0, len(sources))
	for _, src := range sources {
		if src != nil {
			out = append(out, src)
		}
	}
	return out
}

func (c chain) Lookup(key string) ([]string, bool) {
	for _, src := range c {
		if vals, ok := src.Lookup(key); ok {
			return vals, true
		}
	}
	return nil, false
}
