package flags

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEntryRoundTrip(t *testing.T) {
	entry, err := NewEntry("perms", "perms", permissions[:2])
	if err != nil {
		t.Fatalf("new entry: %v", err)
	}
	if entry.Values != `[{"value":1,"caption":"Read"},{"value":2,"caption":"Write"}]` {
		t.Fatalf("unexpected encoded values: %s", entry.Values)
	}

	decoded, err := entry.Options()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(permissions[:2], decoded); diff != "" {
		t.Fatalf("decoded mismatch (-want +got):\n%s", diff)
	}
}

func TestEntriesJSON(t *testing.T) {
	var empty Entries
	got, err := empty.JSON()
	if err != nil || got != "[]" {
		t.Fatalf("empty registry = %q, %v", got, err)
	}

	entry, _ := NewEntry("a", "field_a", nil)
	got, err = Entries{entry}.JSON()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `[{"id":"a","name":"field_a","values":"[]"}]`
	if got != want {
		t.Fatalf("registry = %s, want %s", got, want)
	}
}
