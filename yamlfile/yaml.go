// Package yamlfile implements reading and writing of nested YAML translation
// files while preserving key order.
//
// The expected file format is a nested YAML map:
//
//	greeting: Hello
//	nav:
//	  home: Home
//	  about: About
//
// Mappings become tree nodes. Scalars keep their decoded type (string, int64,
// float64, bool, null); sequences are kept as opaque leaves.
//
// EncodeOver rewrites an existing file and keeps its comments, key order
// hints and scalar styles where the values still line up.
package yamlfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"

	"github.com/minios-linux/transmerge/tree"
)

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// Decode parses YAML data into a tree. An empty document yields an empty tree.
func Decode(data []byte) (*tree.Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	// yaml.Unmarshal wraps the document in a DocumentNode.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return tree.New(), nil
	}

	root := resolveAlias(doc.Content[0])
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return tree.New(), nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing YAML: root must be a mapping, got kind %d", root.Kind)
	}
	return decodeMapping(root, "")
}

// decodeMapping walks a mapping node and builds the tree level by level.
func decodeMapping(node *yaml.Node, prefix string) (*tree.Tree, error) {
	t := tree.New()
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valNode := resolveAlias(node.Content[i+1])

		key := keyNode.Value
		path := tree.JoinPath(prefix, key)

		switch valNode.Kind {
		case yaml.MappingNode:
			sub, err := decodeMapping(valNode, path)
			if err != nil {
				return nil, err
			}
			t.Set(key, tree.Node(sub))
		default:
			var v any
			if err := valNode.Decode(&v); err != nil {
				return nil, fmt.Errorf("parsing YAML value for %q: %w", path, err)
			}
			t.Set(key, tree.Leaf(normalize(v)))
		}
	}
	return t, nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// normalize maps yaml.v3's int to int64 so YAML and JSON leaves compare equal.
func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
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

// Encode serialises t as YAML with 2-space indentation, preserving key order.
func Encode(t *tree.Tree) ([]byte, error) {
	root, err := encodeMapping(t, nil)
	if err != nil {
		return nil, err
	}
	return marshal(root)
}

// EncodeOver serialises t like Encode, taking comments and scalar styles from
// original, the previous contents of the file being rewritten. A leaf whose
// value is unchanged keeps its original node verbatim ('quoted', 1.0, line
// comment). If original is not a YAML mapping it is ignored.
func EncodeOver(t *tree.Tree, original []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(original, &doc); err != nil || doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return Encode(t)
	}
	prev := resolveAlias(doc.Content[0])
	if prev.Kind != yaml.MappingNode {
		return Encode(t)
	}

	root, err := encodeMapping(t, prev)
	if err != nil {
		return nil, err
	}
	return marshal(&yaml.Node{
		Kind:        yaml.DocumentNode,
		HeadComment: doc.HeadComment,
		LineComment: doc.LineComment,
		FootComment: doc.FootComment,
		Content:     []*yaml.Node{root},
	})
}

func marshal(node *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// encodeMapping builds a mapping node for t. prev, when non-nil, is the
// mapping at the same position in the file being rewritten.
func encodeMapping(t *tree.Tree, prev *yaml.Node) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if prev != nil {
		node.Style = prev.Style
		copyComments(node, prev)
	}
	for _, k := range t.Keys() {
		v, _ := t.Get(k)
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		prevKey, prevVal := lookup(prev, k)
		if prevKey != nil {
			keyNode.Style = prevKey.Style
			copyComments(keyNode, prevKey)
		}

		var valNode *yaml.Node
		var err error
		if v.IsNode() {
			var sub *yaml.Node
			if prevVal != nil {
				if r := resolveAlias(prevVal); r.Kind == yaml.MappingNode {
					sub = r
				}
			}
			valNode, err = encodeMapping(v.Tree(), sub)
			if err == nil && sub != nil && sub != prevVal {
				// Aliased mapping: keep the comments on the alias itself.
				copyComments(valNode, prevVal)
			}
		} else {
			valNode, err = encodeLeaf(v.Scalar(), prevVal)
		}
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", k, err)
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// encodeLeaf builds the node for a leaf payload, reusing prev when it holds
// the same value.
func encodeLeaf(v any, prev *yaml.Node) (*yaml.Node, error) {
	n, err := scalarNode(v)
	if err != nil || prev == nil {
		return n, err
	}
	src := resolveAlias(prev)
	if src.Kind == yaml.ScalarNode {
		var old any
		if src.Decode(&old) == nil && reflect.DeepEqual(normalize(old), v) {
			kept := *src
			kept.Anchor = ""
			n = &kept
		} else if n.Kind == src.Kind && n.Tag == src.Tag {
			n.Style = src.Style
		}
	}
	copyComments(n, prev)
	return n, nil
}

func scalarNode(v any) (*yaml.Node, error) {
	if num, ok := v.(json.Number); ok {
		return numberNode(num), nil
	}
	n := &yaml.Node{}
	if err := n.Encode(yamlValue(v)); err != nil {
		return nil, err
	}
	return n, nil
}

// numberNode emits a JSON number as written. It is left untagged so the
// encoder prints it plain instead of quoting it as a string.
func numberNode(num json.Number) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: num.String()}
}

// yamlValue replaces json.Number values nested in lists and objects.
func yamlValue(v any) any {
	switch x := v.(type) {
	case json.Number:
		return numberNode(x)
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = yamlValue(x[i])
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k := range x {
			out[k] = yamlValue(x[k])
		}
		return out
	}
	return v
}

// lookup returns the key and value nodes for key in mapping m.
func lookup(m *yaml.Node, key string) (*yaml.Node, *yaml.Node) {
	if m == nil {
		return nil, nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i], m.Content[i+1]
		}
	}
	return nil, nil
}

func copyComments(dst, src *yaml.Node) {
	dst.HeadComment = src.HeadComment
	dst.LineComment = src.LineComment
	dst.FootComment = src.FootComment
}
