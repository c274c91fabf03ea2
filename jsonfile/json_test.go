package jsonfile

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/minios-linux/transmerge/tree"
)

func TestDecode_PreservesOrder(t *testing.T) {
	data := []byte(`{
  "zebra": "Z",
  "apple": "A",
  "nav": {"home": "Home", "about": "About"},
  "mid": "M"
}`)
	tr, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}

	want := []string{"zebra", "apple", "nav", "mid"}
	if diff := cmp.Diff(want, tr.Keys()); diff != "" {
		t.Fatalf("Keys() mismatch (-want +got):\n%s", diff)
	}
	nav, _ := tr.Get("nav")
	if !nav.IsNode() {
		t.Fatal("nav should be a node")
	}
	if diff := cmp.Diff([]string{"home", "about"}, nav.Tree().Keys()); diff != "" {
		t.Fatalf("nav keys mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_Scalars(t *testing.T) {
	tr, err := Decode([]byte(`{"i": 42, "f": 1.5, "b": true, "n": null, "s": "x", "l": [1, "two"]}`))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	want := []tree.Pair{
		{Path: "i", Value: int64(42)},
		{Path: "f", Value: json.Number("1.5")},
		{Path: "b", Value: true},
		{Path: "n", Value: nil},
		{Path: "s", Value: "x"},
		{Path: "l", Value: []any{int64(1), "two"}},
	}
	if diff := cmp.Diff(want, tr.Flatten()); diff != "" {
		t.Fatalf("Flatten() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_EmptyInput(t *testing.T) {
	tr, err := Decode([]byte("  \n"))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if tr.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", tr.Len())
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := map[string]string{
		"array root":    `["a"]`,
		"unterminated":  `{"a": "b"`,
		"trailing data": `{"a": "b"} {}`,
		"bad token":     `{"a": b}`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode([]byte(data)); err == nil {
				t.Fatalf("Decode(%s) expected error", data)
			}
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	src := `{
  "title": "Tom & Jerry <3",
  "nav": {
    "home": "Home",
    "empty": {}
  },
  "count": 2,
  "tags": [
    "a",
    "b"
  ]
}
`
	tr, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	out, err := Encode(tr)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if diff := cmp.Diff(src, string(out)); diff != "" {
		t.Fatalf("Encode() mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_NumbersVerbatim(t *testing.T) {
	src := `{
  "ratio": 1.0,
  "limit": 1e3,
  "id": 12345678901234567890,
  "list": [
    2.50,
    7
  ]
}
`
	tr, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	out, err := Encode(tr)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if diff := cmp.Diff(src, string(out)); diff != "" {
		t.Fatalf("Encode() mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_Empty(t *testing.T) {
	out, err := Encode(tree.New())
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(out)) != "{}" {
		t.Fatalf("Encode(empty) = %q, want {}", out)
	}
}
