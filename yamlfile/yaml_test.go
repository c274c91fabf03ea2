// Package yamlfile tests.
package yamlfile

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/minios-linux/transmerge/tree"
)

// ---------------------------------------------------------------------------
// Decode
// ---------------------------------------------------------------------------

func TestDecode_Nested(t *testing.T) {
	data := []byte(`nav:
  home: Home
  about: About
footer:
  copyright: Copyright
`)
	tr, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	want := []tree.Pair{
		{Path: "nav.home", Value: "Home"},
		{Path: "nav.about", Value: "About"},
		{Path: "footer.copyright", Value: "Copyright"},
	}
	if diff := cmp.Diff(want, tr.Flatten()); diff != "" {
		t.Fatalf("Flatten() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_ScalarTypes(t *testing.T) {
	data := []byte(`count: 42
enabled: true
ratio: 3.14
nothing: ~
label: Hello
items:
  - one
  - 2
`)
	tr, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	want := []tree.Pair{
		{Path: "count", Value: int64(42)},
		{Path: "enabled", Value: true},
		{Path: "ratio", Value: 3.14},
		{Path: "nothing", Value: nil},
		{Path: "label", Value: "Hello"},
		{Path: "items", Value: []any{"one", int64(2)}},
	}
	if diff := cmp.Diff(want, tr.Flatten()); diff != "" {
		t.Fatalf("Flatten() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_Alias(t *testing.T) {
	data := []byte(`base: &b
  ok: OK
dialog: *b
`)
	tr, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	v, _ := tr.Get("dialog")
	if !v.IsNode() {
		t.Fatal("aliased mapping should decode as a node")
	}
}

func TestDecode_EmptyFile(t *testing.T) {
	for _, data := range []string{"", "~\n"} {
		tr, err := Decode([]byte(data))
		if err != nil {
			t.Fatalf("Decode(%q) error: %v", data, err)
		}
		if tr.Len() != 0 {
			t.Fatalf("Decode(%q) Len() = %d, want 0", data, tr.Len())
		}
	}
}

func TestDecode_Errors(t *testing.T) {
	if _, err := Decode([]byte("- a\n- b\n")); err == nil {
		t.Fatal("expected error for sequence root")
	}
	if _, err := Decode([]byte("a: [unclosed\n")); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

// ---------------------------------------------------------------------------
// Encode
// ---------------------------------------------------------------------------

func TestEncode_PreservesOrder(t *testing.T) {
	nav := tree.New()
	nav.SetLeaf("home", "Startseite")
	nav.SetLeaf("about", "")

	tr := tree.New()
	tr.SetLeaf("zebra", "Z")
	tr.Set("nav", tree.Node(nav))
	tr.SetLeaf("apple", int64(1))

	out, err := Encode(tr)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	want := `zebra: Z
nav:
  home: Startseite
  about: ""
apple: 1
`
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("Encode() mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	src := []byte(`title: Привет
dialog:
  ok: OK
  cancel: Abbrechen
`)
	tr, err := Decode(src)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Encode(tr)
	if err != nil {
		t.Fatal(err)
	}
	again, err := Decode(out)
	if err != nil {
		t.Fatalf("re-parse error: %v", err)
	}
	if diff := cmp.Diff(tr.Flatten(), again.Flatten()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(string(out), "title:") {
		t.Fatalf("output should start with title, got %q", out)
	}
}

func TestEncode_JSONNumbers(t *testing.T) {
	tr := tree.New()
	tr.SetLeaf("ratio", json.Number("1.0"))
	tr.SetLeaf("limit", json.Number("1e3"))
	tr.SetLeaf("list", []any{json.Number("2.50"), "x"})

	out, err := Encode(tr)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	for _, want := range []string{"ratio: 1.0\n", "limit: 1e3\n", "- 2.50\n"} {
		if !strings.Contains(string(out), want) {
			t.Fatalf("Encode() = %q, want it to contain %q", out, want)
		}
	}
}

// ---------------------------------------------------------------------------
// EncodeOver
// ---------------------------------------------------------------------------

func TestEncodeOver_KeepsCommentsAndStyles(t *testing.T) {
	original := []byte(`# header

title: 'Hello' # greeting
count: 1.0
nav:
  # nav comment
  home: Home
`)
	tr, err := Decode(original)
	if err != nil {
		t.Fatal(err)
	}
	nav, _ := tr.Get("nav")
	nav.Tree().SetLeaf("about", "About")
	tr.SetLeaf("farewell", "Bye")

	out, err := EncodeOver(tr, original)
	if err != nil {
		t.Fatalf("EncodeOver error: %v", err)
	}
	for _, want := range []string{
		"# header",
		"title: 'Hello' # greeting",
		"count: 1.0",
		"# nav comment",
		"about: About",
		"farewell: Bye",
	} {
		if !strings.Contains(string(out), want) {
			t.Fatalf("EncodeOver() = %q, want it to contain %q", out, want)
		}
	}

	again, err := Decode(out)
	if err != nil {
		t.Fatalf("re-parse error: %v", err)
	}
	if diff := cmp.Diff(tr.Flatten(), again.Flatten()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeOver_ChangedValueKeepsQuoting(t *testing.T) {
	original := []byte("title: 'Hello' # greeting\n")
	tr := tree.New()
	tr.SetLeaf("title", "Hallo")

	out, err := EncodeOver(tr, original)
	if err != nil {
		t.Fatalf("EncodeOver error: %v", err)
	}
	if want := "title: 'Hallo' # greeting\n"; string(out) != want {
		t.Fatalf("EncodeOver() = %q, want %q", out, want)
	}
}

func TestEncodeOver_UnusableOriginal(t *testing.T) {
	tr := tree.New()
	tr.SetLeaf("a", "b")
	want, err := Encode(tr)
	if err != nil {
		t.Fatal(err)
	}
	for _, original := range []string{"", "- a\n", "a: [unclosed\n"} {
		out, err := EncodeOver(tr, []byte(original))
		if err != nil {
			t.Fatalf("EncodeOver(%q) error: %v", original, err)
		}
		if diff := cmp.Diff(string(want), string(out)); diff != "" {
			t.Fatalf("EncodeOver(%q) mismatch (-want +got):\n%s", original, diff)
		}
	}
}
