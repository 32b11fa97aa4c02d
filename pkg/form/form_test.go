package form

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/randid"
)

func TestNewAppliesDefaultsAndFallsBack(t *testing.T) {
	f := New("/submit", map[string]any{
		"method":     "put",
		"markup":     "xhtml",
		"add_submit": "no",
		"bogus":      true,
	}, WithIDGenerator(randid.Static("form1")))

	want := DefaultConfig("/submit", "form1")
	want.Markup = MarkupXHTML
	if diff := cmp.Diff(want, f.Config()); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestNewGeneratesRandomID(t *testing.T) {
	f := New("", nil)
	if len(f.Config().ID) != randid.DefaultLength {
		t.Fatalf("expected generated id, got %q", f.Config().ID)
	}
}

func TestAddInputPreservesOrderAndReplacesInPlace(t *testing.T) {
	f := New("", nil)
	f.AddInput("First", nil, "")
	f.AddInput("Second", nil, "")
	f.AddInput("First", model.Attributes{"type": "email"}, "")

	inputs := f.Inputs()
	if len(inputs) != 2 {
		t.Fatalf("expected 2 inputs, got %d", len(inputs))
	}
	if inputs[0].Name != "first" || inputs[0].Type != model.FieldTypeEmail || inputs[1].Name != "second" {
		t.Fatalf("unexpected inputs: %+v", inputs)
	}
}

func TestInputsReturnsCopies(t *testing.T) {
	f := New("", nil)
	f.AddInput("Color", model.Attributes{"options": map[string]string{"r": "Red"}}, "")

	inputs := f.Inputs()
	inputs[0].Options[0].Label = "changed"

	stored, _ := f.Input("color")
	if stored.Options[0].Label != "Red" {
		t.Fatalf("stored spec mutated through Inputs()")
	}
}

func TestAddInputsAcceptsTuples(t *testing.T) {
	f := New("", nil)
	err := f.AddInputs([]any{
		[]any{"Name"},
		[]any{"Email", map[string]any{"type": "email"}},
		[]any{"Notes", nil, "comments"},
	})
	if err != nil {
		t.Fatalf("add inputs: %v", err)
	}
	var names []string
	for _, in := range f.Inputs() {
		names = append(names, in.Name)
	}
	if diff := cmp.Diff([]string{"name", "email", "comments"}, names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestAddInputsStopsAtMalformedEntry(t *testing.T) {
	f := New("", nil)
	err := f.AddInputs([][]any{{"Kept"}, {42}, {"Never"}})
	if !errors.Is(err, ErrMalformedBulkInput) {
		t.Fatalf("expected ErrMalformedBulkInput, got %v", err)
	}
	if f.Len() != 1 {
		t.Fatalf("expected entries before the failure to stay, got %d", f.Len())
	}
}

func TestAddInputsRejectsNonSequence(t *testing.T) {
	f := New("", nil)
	if err := f.AddInputs(map[string]any{"x": 1}); !errors.Is(err, ErrMalformedBulkInput) {
		t.Fatalf("expected ErrMalformedBulkInput, got %v", err)
	}
	if f.Len() != 0 {
		t.Fatalf("no input should be added")
	}
}

func TestAddInputsTyped(t *testing.T) {
	f := New("", nil)
	if err := f.AddInputs([]Input{{Label: "Age", Attributes: model.Attributes{"type": "number"}}}); err != nil {
		t.Fatalf("add inputs: %v", err)
	}
	spec, ok := f.Input("age")
	if !ok || spec.Type != model.FieldTypeNumber {
		t.Fatalf("unexpected spec %+v", spec)
	}
}

func TestLetDataLowercasesKeys(t *testing.T) {
	f := New("", nil)
	f.LetData(map[string]any{"UserName": "ada"})
	if v, ok := f.DataValue("USERNAME"); !ok || v != "ada" {
		t.Fatalf("DataValue = %v, %v", v, ok)
	}
	if _, ok := f.Data()["username"]; !ok {
		t.Fatalf("Data() should expose lower-case keys")
	}
}
