// Package jsonfile implements reading and writing of nested JSON translation
// files while preserving key order.
//
// The expected file format is a JSON object whose values are strings, other
// scalars, arrays, or nested objects:
//
//	{
//	  "greeting": "Hello",
//	  "nav": {
//	    "home": "Home",
//	    "about": "About"
//	  }
//	}
//
// Objects become tree nodes. Arrays are kept as opaque leaves.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minios-linux/transmerge/tree"
)

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// Decode parses JSON data into a tree, preserving key order.
// Empty (or whitespace-only) input yields an empty tree.
func Decode(data []byte) (*tree.Tree, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return tree.New(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	// Expect opening '{'
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("parsing JSON: root must be an object, got %v", tok)
	}

	t, err := decodeObject(dec, "")
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing JSON: unexpected data after top-level object")
	}
	return t, nil
}

// decodeObject reads key/value pairs up to and including the closing '}'.
func decodeObject(dec *json.Decoder, prefix string) (*tree.Tree, error) {
	t := tree.New()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %T", keyTok)
		}

		path := tree.JoinPath(prefix, key)
		v, err := decodeValue(dec, path)
		if err != nil {
			return nil, err
		}
		t.Set(key, v)
	}
	// Closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return t, nil
}

func decodeValue(dec *json.Decoder, path string) (tree.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return tree.Value{}, fmt.Errorf("value for %q: %w", path, err)
	}
	switch d := tok.(type) {
	case json.Delim:
		switch d {
		case '{':
			sub, err := decodeObject(dec, path)
			if err != nil {
				return tree.Value{}, err
			}
			return tree.Node(sub), nil
		case '[':
			list, err := decodeArray(dec, path)
			if err != nil {
				return tree.Value{}, err
			}
			return tree.Leaf(list), nil
		}
		return tree.Value{}, fmt.Errorf("unexpected %v at %q", d, path)
	default:
		return tree.Leaf(scalar(tok)), nil
	}
}

// decodeArray reads array elements. Objects inside arrays lose their key
// order; arrays are opaque to the merge logic.
func decodeArray(dec *json.Decoder, path string) ([]any, error) {
	out := []any{}
	for dec.More() {
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("array element in %q: %w", path, err)
		}
		out = append(out, normalize(raw))
	}
	// Closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

// scalar converts a decoder token into a leaf payload.
func scalar(tok json.Token) any {
	if n, ok := tok.(json.Number); ok {
		return number(n)
	}
	return tok
}

// number returns n as int64 when it is an integer that fits. Anything else
// (1.0, 1e3, big integers) stays a json.Number so Encode writes it verbatim.
func number(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	return n
}

func normalize(v any) any {
	switch x := v.(type) {
	case json.Number:
		return number(x)
	case []any:
		for i := range x {
			x[i] = normalize(x[i])
		}
		return x
	case map[string]any:
		for k := range x {
			x[k] = normalize(x[k])
		}
		return x
	}
	return v
}

// ---------------------------------------------------------------------------
// Writing
// ---------------------------------------------------------------------------

// Encode serialises t as JSON with 2-space indentation, preserving key order.
// HTML characters are not escaped. The output ends with a newline.
func Encode(t *tree.Tree) ([]byte, error) {
	var b strings.Builder
	if err := writeObject(&b, t, 0); err != nil {
		return nil, err
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

func writeObject(b *strings.Builder, t *tree.Tree, depth int) error {
	keys := t.Keys()
	if len(keys) == 0 {
		b.WriteString("{}")
		return nil
	}

	indent := strings.Repeat("  ", depth+1)
	b.WriteString("{\n")
	for i, k := range keys {
		v, _ := t.Get(k)
		key, err := marshal(k)
		if err != nil {
			return err
		}
		b.WriteString(indent)
		b.Write(key)
		b.WriteString(": ")
		if v.IsNode() {
			if err := writeObject(b, v.Tree(), depth+1); err != nil {
				return err
			}
		} else {
			data, err := marshalIndent(v.Scalar(), indent)
			if err != nil {
				return fmt.Errorf("encoding %q: %w", k, err)
			}
			b.Write(data)
		}
		if i < len(keys)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteByte('}')
	return nil
}

// marshal encodes v without HTML escaping and without the trailing newline
// json.Encoder adds.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func marshalIndent(v any, prefix string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(prefix, "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
