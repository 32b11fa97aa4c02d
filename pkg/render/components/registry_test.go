package components

import (
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/markup"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/values"
)

func TestRegistryCloneIsolatesRegistrations(t *testing.T) {
	reg := NewDefaultRegistry()
	clone := reg.Clone()

	custom := func(model.FieldSpec, Data) (Output, error) { return Output{}, nil }
	clone.MustRegister("Stars", Descriptor{Renderer: custom})

	if _, ok := reg.Descriptor("stars"); ok {
		t.Fatalf("registration leaked into the original registry")
	}
	if desc, ok := clone.Descriptor("STARS"); !ok || desc.Name != "stars" {
		t.Fatalf("expected normalized custom descriptor, got %+v %v", desc, ok)
	}
}

func TestRegisterRejectsInvalidDescriptors(t *testing.T) {
	reg := New()
	if err := reg.Register(" ", Descriptor{Renderer: inputRenderer}); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if err := reg.Register("x", Descriptor{}); err == nil {
		t.Fatalf("expected error for nil renderer")
	}
}

func TestDefaultRegistryNames(t *testing.T) {
	got := NewDefaultRegistry().Names()
	want := []string{NameChoice, NameFlags, NameHTML, NameInput, NameSelect, NameTextarea, NameTitle}
	if len(got) != len(want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names = %v, want %v", got, want)
		}
	}
}

func TestComponentFor(t *testing.T) {
	opts := model.Attributes{"options": map[string]string{"a": "A"}}
	cases := []struct {
		attrs model.Attributes
		want  string
	}{
		{model.Attributes{"type": "email"}, NameInput},
		{model.Attributes{"type": "dropdown"}, NameSelect},
		{model.Attributes{"type": "checkbox"}, NameInput},
		{model.Attributes{"type": "radio", "options": opts["options"]}, NameChoice},
		{model.Attributes{"type": "flags"}, NameFlags},
		{model.Attributes{"type": "html"}, NameHTML},
		{model.Attributes{"type": "title"}, NameTitle},
		{model.Attributes{"type": "textarea"}, NameTextarea},
		{model.Attributes{"component": "Stars"}, "stars"},
	}
	for _, tc := range cases {
		spec := model.Normalize(tc.attrs, "Field", "")
		if got := ComponentFor(spec); got != tc.want {
			t.Fatalf("ComponentFor(%v) = %q, want %q", tc.attrs, got, tc.want)
		}
	}
}

func TestInputRendererAttributeOrder(t *testing.T) {
	spec := model.Normalize(model.Attributes{
		"type":        "number",
		"min":         1,
		"max":         9,
		"step":        "",
		"class":       "narrow",
		"placeholder": "qty",
		"required":    true,
	}, "Qty", "")

	out, err := inputRenderer(spec, Data{Effective: values.Effective{Value: "3"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := markup.String(markup.ModeHTML, out.Control...)
	want := `<input type="number" id="qty" name="qty" value="3" min="1" max="9" class="narrow" placeholder="qty" required>`
	if got != want {
		t.Fatalf("input mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestSelectRendererMarksSelection(t *testing.T) {
	spec := model.Normalize(model.Attributes{
		"type":    "select",
		"options": model.Options{{Value: "a", Label: "Alpha"}, {Value: "b", Label: "Beta"}},
	}, "Letter", "")

	eff := values.Effective{Value: "b", Selected: map[string]bool{"b": true}}
	out, _ := selectRenderer(spec, Data{Effective: eff})
	got := markup.String(markup.ModeHTML, out.Control...)
	want := `<select id="letter" name="letter" selvalue="b"><option value="a">Alpha</option><option value="b" selected>Beta</option></select>`
	if got != want {
		t.Fatalf("select mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestChoiceRendererEmitsGroup(t *testing.T) {
	spec := model.Normalize(model.Attributes{
		"type":    "checkbox",
		"options": model.Options{{Value: "r", Label: "Red"}, {Value: "g", Label: "Green"}},
	}, "Colors", "")

	eff := values.Effective{Selected: map[string]bool{"r": true}}
	out, _ := choiceRenderer(spec, Data{Effective: eff})

	got := markup.String(markup.ModeXHTML, out.Control...)
	want := `<input type="checkbox" name="colors[]" value="r" id="red" checked /> <label for="red">Red</label>` +
		`<input type="checkbox" name="colors[]" value="g" id="green" /> <label for="green">Green</label>`
	if got != want {
		t.Fatalf("choice mismatch\n got: %s\nwant: %s", got, want)
	}
	if header := markup.String(markup.ModeHTML, out.Header...); header != `<div class="checkbox_header">Colors</div>` {
		t.Fatalf("header = %s", header)
	}
}

func TestFlagsRendererRecordsEntry(t *testing.T) {
	spec := model.Normalize(model.Attributes{
		"type":    "flags",
		"options": model.Options{{Value: "1", Label: "Read"}, {Value: "x", Label: "Bad"}, {Value: "2", Label: "Write"}},
	}, "Perms", "")

	out, err := flagsRenderer(spec, Data{Effective: values.Effective{Value: "3"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := markup.String(markup.ModeHTML, out.Control...); got != `<div id="perms" name="perms">3</div>` {
		t.Fatalf("container = %s", got)
	}
	if out.Flag == nil || out.Flag.Values != `[{"value":1,"caption":"Read"},{"value":2,"caption":"Write"}]` {
		t.Fatalf("unexpected flag entry %+v", out.Flag)
	}
}
