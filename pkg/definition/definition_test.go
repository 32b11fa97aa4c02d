package definition

import (
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

func TestLoadYAMLKeepsOptionOrder(t *testing.T) {
	def, err := Load("testdata/forms/contact.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if def.Name != "contact" || def.Action != "/contact" {
		t.Fatalf("unexpected header: %+v", def)
	}

	f := def.NewForm()
	topic, ok := f.Input("topic")
	if !ok {
		t.Fatalf("topic missing")
	}
	want := model.Options{
		{Value: "sales", Label: "Sales"},
		{Value: "support", Label: "Support"},
		{Value: "billing", Label: "Billing"},
	}
	if diff := cmp.Diff(want, topic.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if v, _ := f.DataValue("topic"); v != "billing" {
		t.Fatalf("expected bound data, got %v", v)
	}
	if f.Config().ID != "contact" {
		t.Fatalf("expected form id contact, got %q", f.Config().ID)
	}
}

func TestApplyBindsExistingForm(t *testing.T) {
	def, err := Load("testdata/forms/contact.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := def.Apply(nil); !errors.Is(err, ErrNilForm) {
		t.Fatalf("expected ErrNilForm, got %v", err)
	}

	f := form.New("/elsewhere", nil)
	if err := def.Apply(f); err != nil {
		t.Fatalf("apply: %v", err)
	}
	want, _ := def.NewForm().Input("topic")
	got, ok := f.Input("topic")
	if !ok {
		t.Fatalf("topic missing after apply")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("applied field differs from NewForm (-want +got):\n%s", diff)
	}
	if v, _ := f.DataValue("topic"); v != "billing" {
		t.Fatalf("expected bound data, got %v", v)
	}
}

func TestLoadTOML(t *testing.T) {
	def, err := Load("testdata/forms/signup.toml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f := def.NewForm()
	if action, ok := f.Config().NonceAction(); !ok || action != "signup" {
		t.Fatalf("expected nonce action signup, got %q %v", action, ok)
	}
	email, _ := f.Input("email")
	if email.Type != model.FieldTypeEmail || !email.Required {
		t.Fatalf("unexpected email: %+v", email)
	}
	plan, _ := f.Input("plan")
	if got := plan.Options.Keys(); !cmp.Equal(got, []string{"free", "pro"}) {
		t.Fatalf("unexpected plan options %v", got)
	}
}

func TestLoadDir(t *testing.T) {
	defs, err := LoadDir(os.DirFS("testdata/forms"))
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if len(defs) != 3 {
		t.Fatalf("expected 3 definitions, got %d", len(defs))
	}
	feedback := defs["feedback"]
	if feedback == nil || len(feedback.Fields) != 2 {
		t.Fatalf("unexpected feedback definition: %+v", feedback)
	}
	rating, _ := feedback.NewForm().Input("rating")
	if got := rating.Options.Keys(); !cmp.Equal(got, []string{"5", "1"}) {
		t.Fatalf("unexpected rating options %v", got)
	}
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	cases := map[string]string{
		"missing fields":  "action: /x\n",
		"unknown key":     "fields: []\nbogus: 1\n",
		"bad method":      "form:\n  method: put\nfields: []\n",
		"field no label":  "fields:\n  - attributes: {type: text}\n",
		"attributes type": "fields:\n  - label: A\n    attributes: [1, 2]\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc), FormatYAML)
			if !errors.Is(err, ErrInvalidDefinition) {
				t.Fatalf("expected ErrInvalidDefinition, got %v", err)
			}
		})
	}
}

func TestParseAcceptsNumericOptionKeys(t *testing.T) {
	doc := "fields:\n  - label: Perms\n    attributes:\n      type: flags\n      options:\n        1: Read\n        2: Write\n"
	def, err := Parse([]byte(doc), FormatYAML)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	opts := def.Fields[0].Attributes["options"].(model.Options)
	if got := opts.Keys(); !cmp.Equal(got, []string{"1", "2"}) {
		t.Fatalf("unexpected keys %v", got)
	}
}

func TestFormatFromPath(t *testing.T) {
	if _, err := FormatFromPath("form.xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if f, err := FormatFromPath("A.YML"); err != nil || f != FormatYAML {
		t.Fatalf("expected yaml, got %q %v", f, err)
	}
}
