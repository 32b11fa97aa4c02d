package values

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromMapStringifies(t *testing.T) {
	src := FromMap(map[string]any{"Age": 42, "Tags": []any{"a", 1}, "Gone": nil})

	if vals, ok := src.Lookup("age"); !ok || vals[0] != "42" {
		t.Fatalf("age lookup = %v, %v", vals, ok)
	}
	vals, _ := src.Lookup("TAGS")
	if diff := cmp.Diff([]string{"a", "1"}, vals); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
	if _, ok := src.Lookup("gone"); ok {
		t.Fatalf("nil entries should be skipped")
	}
}

func TestChainOrder(t *testing.T) {
	src := Chain(nil, FromRequest(url.Values{"k": {"request"}}), FromMap(map[string]any{"k": "bound", "only": "bound"}))
	if vals, _ := src.Lookup("k"); vals[0] != "request" {
		t.Fatalf("first source should win, got %v", vals)
	}
	if vals, _ := src.Lookup("only"); vals[0] != "bound" {
		t.Fatalf("later sources should be consulted, got %v", vals)
	}
	if _, ok := Chain().Lookup("k"); ok {
		t.Fatalf("empty chain should miss")
	}
}
