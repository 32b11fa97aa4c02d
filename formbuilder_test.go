package formbuilder

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/tablesource"
	"github.com/goliatone/go-formbuilder/pkg/values"
)

func TestRenderBuildsDocument(t *testing.T) {
	f := New("/signup", map[string]any{"id": "signup"})
	f.AddInput("Email", Attributes{"type": "email", "required": true}, "")

	html, err := Render(context.Background(), f, RenderOptions{
		Values: values.FromMap(map[string]any{"email": "ada@example.com"}),
	}, render.WithoutScript())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{`id="signup"`, `type="email"`, `value="ada@example.com"`, `required`} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in %s", want, html)
		}
	}
}

func TestRenderDefinition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poll.json")
	doc := `{"action": "/poll", "fields": [{"label": "Answer"}]}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	html, err := RenderDefinition(context.Background(), path, RenderOptions{}, render.WithoutScript())
	if err != nil {
		t.Fatalf("render definition: %v", err)
	}
	if !strings.Contains(html, `name="answer"`) {
		t.Fatalf("expected answer field in %s", html)
	}
}

type rowsOnly tablesource.Rows

func (r rowsOnly) FormRows(context.Context, int64) (tablesource.Rows, error) {
	return tablesource.Rows(r), nil
}

func (rowsOnly) Query(context.Context, string) (tablesource.Rows, error) {
	return nil, nil
}

func TestFromTable(t *testing.T) {
	ds := rowsOnly{tablesource.NewRow(map[string]string{
		"orderby": "1", "caption": "City", "fieldname": "city", "mapsto": "City", "formaction": "/where",
	})}
	f, err := FromTable(context.Background(), ds, 1, map[string]any{"city": "Lima"})
	if err != nil {
		t.Fatalf("from table: %v", err)
	}
	spec, ok := f.Input("city")
	if !ok || spec.Value != "Lima" || !spec.Autofocus {
		t.Fatalf("unexpected spec %+v", spec)
	}
	if f.Config().Action != "/where" {
		t.Fatalf("expected action from row, got %q", f.Config().Action)
	}
}

func TestScriptTemplatesFS(t *testing.T) {
	data, err := fs.ReadFile(ScriptTemplatesFS(), "formbuilder.js.tpl")
	if err != nil {
		t.Fatalf("read script template: %v", err)
	}
	if !strings.Contains(string(data), "{{") {
		t.Fatalf("expected template placeholders")
	}
}
