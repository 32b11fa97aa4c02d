package model

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeAppliesDefaults(t *testing.T) {
	got := Normalize(nil, "Email Address", "")

	want := Defaults()
	want.Name = "email-address"
	want.ID = "email-address"
	want.Label = "Email Address"

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeOverridesOnlyProvidedKeys(t *testing.T) {
	overrides := Attributes{
		"type":        "EMAIL",
		"required":    "1",
		"placeholder": "you@example.com",
		"maxlength":   64,
		"wrap_class":  "form_field_wrap wide",
		"add_label":   false,
		"maps_to":     "UserEmail",
		"data-track":  "signup",
	}

	got := Normalize(overrides, "Email", "")

	want := Defaults()
	want.Name = "email"
	want.ID = "email"
	want.Label = "Email"
	want.Type = FieldTypeEmail
	want.Required = true
	want.Placeholder = "you@example.com"
	want.MaxLength = "64"
	want.WrapClass = ClassList{"form_field_wrap", "wide"}
	want.AddLabel = false
	want.MapsTo = "useremail"
	want.Extra = map[string]any{"data-track": "signup"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeExplicitSlugSeedsNameAndID(t *testing.T) {
	got := Normalize(Attributes{"slug": "ignored"}, "Favourite Colour", "colour")
	if got.Name != "colour" || got.ID != "colour" {
		t.Fatalf("expected slug to seed name and id, got name=%q id=%q", got.Name, got.ID)
	}
	if _, ok := got.Extra["slug"]; ok {
		t.Fatalf("slug key should not leak into Extra: %#v", got.Extra)
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	options := []any{
		map[string]any{"value": "a", "label": "Alpha"},
	}
	attrs := Attributes{"options": options, "class": []string{"x"}}

	spec := Normalize(attrs, "Pick", "")
	spec.Options[0].Label = "changed"
	spec.Class[0] = "changed"

	first := options[0].(map[string]any)
	if first["label"] != "Alpha" {
		t.Fatalf("input option mutated: %#v", first)
	}
	if attrs["class"].([]string)[0] != "x" {
		t.Fatalf("input class slice mutated: %#v", attrs["class"])
	}
}

func TestAsOptionsShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  any
		want Options
	}{
		{
			name: "sorted map",
			raw:  map[string]string{"b": "Beta", "a": "Alpha"},
			want: Options{{Value: "a", Label: "Alpha"}, {Value: "b", Label: "Beta"}},
		},
		{
			name: "value caption maps",
			raw: []any{
				map[string]any{"Value": 1, "caption": "One"},
				map[string]any{"key": "2", "label": "Two"},
			},
			want: Options{{Value: "1", Label: "One"}, {Value: "2", Label: "Two"}},
		},
		{
			name: "pairs",
			raw:  []any{[]any{"r", "Red"}, []any{"g"}},
			want: Options{{Value: "r", Label: "Red"}, {Value: "g", Label: "g"}},
		},
		{
			name: "int keyed map",
			raw:  map[int]string{4: "Exec", 1: "Read", 2: "Write"},
			want: Options{{Value: "1", Label: "Read"}, {Value: "2", Label: "Write"}, {Value: "4", Label: "Exec"}},
		},
		{
			name: "int64 keyed map",
			raw:  map[int64]string{16: "Admin", 2: "Write"},
			want: Options{{Value: "2", Label: "Write"}, {Value: "16", Label: "Admin"}},
		},
		{
			name: "int keyed generic map",
			raw:  map[int]any{2: "M", 1: "S"},
			want: Options{{Value: "1", Label: "S"}, {Value: "2", Label: "M"}},
		},
		{
			name: "int64 keyed generic map",
			raw:  map[int64]any{8: 8, 1: "One"},
			want: Options{{Value: "1", Label: "One"}, {Value: "8", Label: "8"}},
		},
		{
			name: "numeric string keys",
			raw:  map[string]string{"16": "Admin", "1": "Read", "2": "Write", "4": "Exec", "8": "Delete"},
			want: Options{
				{Value: "1", Label: "Read"},
				{Value: "2", Label: "Write"},
				{Value: "4", Label: "Exec"},
				{Value: "8", Label: "Delete"},
				{Value: "16", Label: "Admin"},
			},
		},
		{
			name: "mixed string keys stay lexical",
			raw:  map[string]any{"10": "Ten", "9": "Nine", "x": "Ex"},
			want: Options{{Value: "10", Label: "Ten"}, {Value: "9", Label: "Nine"}, {Value: "x", Label: "Ex"}},
		},
		{
			name: "option sources",
			raw:  []bitOption{{bit: 2, caption: "Write"}, {bit: 1, caption: "Read"}},
			want: Options{{Value: "2", Label: "Write"}, {Value: "1", Label: "Read"}},
		},
		{
			name: "option sources in generic slice",
			raw:  []any{bitOption{bit: 4, caption: "Exec"}},
			want: Options{{Value: "4", Label: "Exec"}},
		},
		{
			name: "malformed",
			raw:  42,
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, AsOptions(tc.raw)); diff != "" {
				t.Fatalf("options mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeSelectedFalseMeansNothing(t *testing.T) {
	spec := Normalize(Attributes{"selected": false}, "Country", "")
	if spec.Selected != "" {
		t.Fatalf("expected empty selection, got %q", spec.Selected)
	}
}

type bitOption struct {
	bit     int
	caption string
}

func (o bitOption) AsOption() Option {
	return Option{Value: strconv.Itoa(o.bit), Label: o.caption}
}
