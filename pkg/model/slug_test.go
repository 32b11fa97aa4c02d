package model

import "testing"

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Email":              "email",
		"First Name":         "first-name",
		`Bob's "quoted" one`: "bobs-quoted-one",
		"snake_case_field":   "snake-case-field",
		"a/b.c":              "a-b-c",
		"already-slug":       "already-slug",
		"Café":               "caf-",
		"naïve user":         "na-ve-user",
	}
	for input, want := range cases {
		if got := Slugify(input); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"Email", "Hello, World!", "x__y", "Ünïcode Label", "  spaced  ", "MiXeD_Case-99"}
	for _, input := range inputs {
		once := Slugify(input)
		if twice := Slugify(once); twice != once {
			t.Fatalf("Slugify not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}
