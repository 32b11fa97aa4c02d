// Package definition reads form definitions from YAML, TOML or JSON files.
// Documents are checked against an embedded JSON schema before they are
// decoded.
package definition

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Format names a definition encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

var (
	// ErrInvalidDefinition wraps schema violations.
	ErrInvalidDefinition = errors.New("definition: invalid definition")
	// ErrUnknownFormat is returned for unsupported file extensions.
	ErrUnknownFormat = errors.New("definition: unknown format")
)

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

// FieldDefinition is one field entry.
type FieldDefinition struct {
	Label      string           `yaml:"label" toml:"label" json:"label"`
	Slug       string           `yaml:"slug" toml:"slug" json:"slug,omitempty"`
	Attributes model.Attributes `yaml:"attributes" toml:"attributes" json:"attributes,omitempty"`
}

// UnmarshalYAML keeps the document order of option mappings.
func (f *FieldDefinition) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Label      string               `yaml:"label"`
		Slug       string               `yaml:"slug"`
		Attributes map[string]yaml.Node `yaml:"attributes"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	f.Label = raw.Label
	f.Slug = raw.Slug
	f.Attributes = nil
	if len(raw.Attributes) == 0 {
		return nil
	}

	f.Attributes = make(model.Attributes, len(raw.Attributes))
	for key, value := range raw.Attributes {
		if strings.EqualFold(key, "options") {
			var opts model.Options
			if err := value.Decode(&opts); err != nil {
				return fmt.Errorf("definition: field %q options: %w", raw.Label, err)
			}
			f.Attributes[key] = opts
			continue
		}
		var v any
		if err := value.Decode(&v); err != nil {
			return fmt.Errorf("definition: field %q attribute %q: %w", raw.Label, key, err)
		}
		f.Attributes[key] = v
	}
	return nil
}

// Definition describes one form: its settings, optional bound data and fields.
type Definition struct {
	// Name is the file stem when loaded from disk.
	Name   string            `yaml:"-" toml:"-" json:"-"`
	Action string            `yaml:"action" toml:"action" json:"action,omitempty"`
	Form   map[string]any    `yaml:"form" toml:"form" json:"form,omitempty"`
	Data   map[string]any    `yaml:"data" toml:"data" json:"data,omitempty"`
	Fields []FieldDefinition `yaml:"fields" toml:"fields" json:"fields"`
}

// FormatFromPath infers the format from the file extension.
func FormatFromPath(p string) (Format, error) {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("definition: %q: %w", p, ErrUnknownFormat)
	}
}

// Load reads and parses the definition at path.
func Load(p string) (*Definition, error) {
	format, err := FormatFromPath(p)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("definition: read %q: %w", p, err)
	}
	def, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("definition: %q: %w", p, err)
	}
	def.Name = stem(p)
	return def, nil
}

// LoadDir parses every definition file at the root of fsys, keyed by file
// stem. Files with other extensions are ignored.
func LoadDir(fsys fs.FS) (map[string]*Definition, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("definition: read dir: %w", err)
	}
	out := make(map[string]*Definition)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		format, err := FormatFromPath(entry.Name())
		if err != nil {
			continue
		}
		data, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("definition: read %q: %w", entry.Name(), err)
		}
		def, err := Parse(data, format)
		if err != nil {
			return nil, fmt.Errorf("definition: %q: %w", entry.Name(), err)
		}
		def.Name = stem(entry.Name())
		if _, dup := out[def.Name]; dup {
			return nil, fmt.Errorf("definition: duplicate definition %q", def.Name)
		}
		out[def.Name] = def
	}
	return out, nil
}

// Parse validates and decodes data.
func Parse(data []byte, format Format) (*Definition, error) {
	doc, err := decodeGeneric(data, format)
	if err != nil {
		return nil, err
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}

	var def Definition
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &def)
	case FormatTOML:
		err = toml.Unmarshal(data, &def)
	case FormatJSON:
		err = json.Unmarshal(data, &def)
	}
	if err != nil {
		return nil, fmt.Errorf("definition: decode %s: %w", format, err)
	}
	return &def, nil
}

func decodeGeneric(data []byte, format Format) (map[string]any, error) {
	doc := map[string]any{}
	var err error
	switch format {
	case FormatYAML:
		err = yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("definition: %q: %w", format, ErrUnknownFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("definition: parse %s: %w", format, err)
	}
	return stringKeys(doc).(map[string]any), nil
}

// stringKeys rewrites YAML mappings with non-string keys so the document can
// be handed to the JSON schema validator.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for key, value := range t {
			t[key] = stringKeys(value)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for key, value := range t {
			out[fmt.Sprint(key)] = stringKeys(value)
		}
		return out
	case []any:
		for i, value := range t {
			t[i] = stringKeys(value)
		}
		return t
	default:
		return v
	}
}

// Validate checks a generic document against the definition schema.
func Validate(doc any) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}
	result, err := s.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("definition: validate: %w", err)
	}
	if result.Valid() {
		return nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	sort.Strings(problems)
	return fmt.Errorf("%w: %s", ErrInvalidDefinition, strings.Join(problems, "; "))
}

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
		if schemaErr != nil {
			schemaErr = fmt.Errorf("definition: compile schema: %w", schemaErr)
		}
	})
	return schema, schemaErr
}

// NewForm builds a fresh form from the definition.
func (d *Definition) NewForm(opts ...form.Option) *form.Form {
	f := form.New(d.Action, d.Form, opts...)
	d.apply(f)
	return f
}

// ErrNilForm is returned by Apply when no form is given.
var ErrNilForm = errors.New("definition: form is required")

// Apply binds the definition data and adds its fields to f, in order.
func (d *Definition) Apply(f *form.Form) error {
	if f == nil {
		return ErrNilForm
	}
	d.apply(f)
	return nil
}

func (d *Definition) apply(f *form.Form) {
	if len(d.Data) > 0 {
		f.LetData(d.Data)
	}
	for _, field := range d.Fields {
		f.AddInput(field.Label, field.Attributes, field.Slug)
	}
}

func stem(p string) string {
	base := path.Base(filepath.ToSlash(p))
	return strings.TrimSuffix(base, path.Ext(base))
}
