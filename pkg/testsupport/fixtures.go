// Package testsupport holds fixture and golden-file helpers shared by package
// tests. Set UPDATE_GOLDENS=1 to rewrite goldens from the current output.
package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/form"
)

// FieldFixture is one field entry of a YAML form fixture.
type FieldFixture struct {
	Label      string         `yaml:"label"`
	Slug       string         `yaml:"slug"`
	Attributes map[string]any `yaml:"attributes"`
}

// FormFixture is a minimal YAML form description used by render tests.
type FormFixture struct {
	Action string         `yaml:"action"`
	Form   map[string]any `yaml:"form"`
	Data   map[string]any `yaml:"data"`
	Fields []FieldFixture `yaml:"fields"`
}

// MustLoadForm reads a YAML fixture and builds the form it describes.
func MustLoadForm(t *testing.T, path string, opts ...form.Option) *form.Form {
	t.Helper()

	f, err := LoadForm(path, opts...)
	if err != nil {
		t.Fatalf("load form fixture: %v", err)
	}
	return f
}

// LoadForm builds a form from a YAML fixture, returning an error for callers
// managing setup outside of *testing.T.
func LoadForm(path string, opts ...form.Option) (*form.Form, error) {
	if path == "" {
		return nil, errors.New("testsupport: fixture path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read fixture: %w", err)
	}
	var fixture FormFixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("testsupport: unmarshal fixture: %w", err)
	}

	f := form.New(fixture.Action, fixture.Form, opts...)
	if len(fixture.Data) > 0 {
		f.LetData(fixture.Data)
	}
	for _, field := range fixture.Fields {
		f.AddInput(field.Label, field.Attributes, field.Slug)
	}
	return f, nil
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

// MustParseHTML parses markup as an HTML fragment inside <body>.
func MustParseHTML(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// FindAll returns every element node matching tag, optionally filtered by an
// attribute predicate, in document order.
func FindAll(root *html.Node, tag string, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag && (match == nil || match(n)) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// Attr returns the value of the named attribute and whether it is present.
func Attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// AttrEquals builds a FindAll predicate matching name=value.
func AttrEquals(name, value string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		v, ok := Attr(n, name)
		return ok && v == value
	}
}
