// Package form holds one form being built: its validated settings, the
// ordered field collection and the optional bound-data record.
package form

import (
	"fmt"
	"maps"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/randid"
)

// Input is one bulk-add entry.
type Input struct {
	Label      string           `json:"label" yaml:"label"`
	Attributes model.Attributes `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Slug       string           `json:"slug,omitempty" yaml:"slug,omitempty"`
}

// Form is not safe for concurrent use. Each request builds its own.
type Form struct {
	config Config
	order  []string
	fields map[string]model.FieldSpec
	data   map[string]any

	logger *zap.Logger
	ids    randid.Generator
}

// New builds a form. attrs are applied over DefaultConfig; a rejected value
// falls back to the default for that key and unknown keys are dropped.
func New(action string, attrs map[string]any, opts ...Option) *Form {
	f := &Form{
		fields: make(map[string]model.FieldSpec),
		logger: zap.NewNop(),
		ids:    randid.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}

	f.config = DefaultConfig(action, f.ids.ID())

	merged := make(map[string]any, len(attrs))
	for key, value := range attrs {
		merged[strings.ToLower(strings.TrimSpace(key))] = value
	}
	if _, ok := merged["action"]; !ok {
		merged["action"] = action
	}

	known := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		known[key] = struct{}{}
		value, ok := merged[key]
		if !ok {
			continue
		}
		// Set leaves the config untouched on rejection, so the default stays.
		if err := f.config.Set(key, value); err != nil {
			f.logger.Warn("form attribute rejected, using default",
				zap.String("key", key), zap.Any("value", value), zap.Error(err))
		}
	}

	unknown := make([]string, 0)
	for key := range merged {
		if _, ok := known[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		f.logger.Warn("unknown form attribute dropped", zap.String("key", key))
	}
	return f
}

// Config returns a copy of the current settings.
func (f *Form) Config() Config {
	return f.config.Clone()
}

// Set applies one form setting through the validator.
func (f *Form) Set(key string, value any) error {
	if err := f.config.Set(key, value); err != nil {
		f.logger.Debug("form attribute rejected", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// SetAttribute is the boolean form of Set.
func (f *Form) SetAttribute(key string, value any) bool {
	return f.Set(key, value) == nil
}

// AddInput normalizes and stores a field. The slug defaults to the slugified
// label; re-adding a slug replaces the stored field in place.
func (f *Form) AddInput(label string, attrs model.Attributes, slug string) model.FieldSpec {
	if slug == "" {
		slug = model.Slugify(label)
	}
	spec := model.Normalize(attrs, label, slug)
	if _, exists := f.fields[slug]; !exists {
		f.order = append(f.order, slug)
	}
	f.fields[slug] = spec
	return spec.Clone()
}

// AddInputs adds entries in order. It accepts []Input, [][]any or []any of
// [label, attributes?, slug?] tuples. A malformed entry stops processing;
// entries added before it are kept.
func (f *Form) AddInputs(v any) error {
	switch list := v.(type) {
	case []Input:
		for _, in := range list {
			f.AddInput(in.Label, in.Attributes, in.Slug)
		}
		return nil
	case [][]any:
		for idx, tuple := range list {
			if err := f.addTuple(idx, tuple); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for idx, item := range list {
			switch entry := item.(type) {
			case []any:
				if err := f.addTuple(idx, entry); err != nil {
					return err
				}
			case Input:
				f.AddInput(entry.Label, entry.Attributes, entry.Slug)
			default:
				return f.malformed(idx, item)
			}
		}
		return nil
	default:
		f.logger.Warn("bulk input is not a sequence", zap.String("type", fmt.Sprintf("%T", v)))
		return fmt.Errorf("form: add inputs %T: %w", v, ErrMalformedBulkInput)
	}
}

func (f *Form) addTuple(idx int, tuple []any) error {
	if len(tuple) == 0 || len(tuple) > 3 {
		return f.malformed(idx, tuple)
	}
	label, ok := tuple[0].(string)
	if !ok {
		return f.malformed(idx, tuple)
	}

	var attrs model.Attributes
	if len(tuple) > 1 && tuple[1] != nil {
		switch a := tuple[1].(type) {
		case model.Attributes:
			attrs = a
		case map[string]any:
			attrs = model.Attributes(a)
		default:
			return f.malformed(idx, tuple)
		}
	}

	var slug string
	if len(tuple) > 2 && tuple[2] != nil {
		if slug, ok = tuple[2].(string); !ok {
			return f.malformed(idx, tuple)
		}
	}

	f.AddInput(label, attrs, slug)
	return nil
}

func (f *Form) malformed(idx int, entry any) error {
	f.logger.Warn("malformed bulk input entry", zap.Int("index", idx), zap.Any("entry", entry))
	return fmt.Errorf("form: entry %d: %w", idx, ErrMalformedBulkInput)
}

// Input returns the stored field for slug.
func (f *Form) Input(slug string) (model.FieldSpec, bool) {
	spec, ok := f.fields[slug]
	if !ok {
		return model.FieldSpec{}, false
	}
	return spec.Clone(), true
}

// Inputs returns copies of the stored fields in insertion order.
func (f *Form) Inputs() []model.FieldSpec {
	out := make([]model.FieldSpec, 0, len(f.order))
	for _, slug := range f.order {
		out = append(out, f.fields[slug].Clone())
	}
	return out
}

// Len reports the number of stored fields.
func (f *Form) Len() int {
	return len(f.order)
}

// LetData binds a record used as the secondary value source. Keys are
// lower-cased.
func (f *Form) LetData(record map[string]any) {
	f.data = make(map[string]any, len(record))
	for key, value := range record {
		f.data[strings.ToLower(key)] = value
	}
}

// DataValue returns the bound value for key, matched case-insensitively.
func (f *Form) DataValue(key string) (any, bool) {
	value, ok := f.data[strings.ToLower(key)]
	return value, ok
}

// Data returns a copy of the bound record.
func (f *Form) Data() map[string]any {
	return maps.Clone(f.data)
}
