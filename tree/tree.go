// Package tree implements the ordered, nested translation tree shared by
// every file format and by the merge engine.
//
// A Tree maps string keys to Values. A Value is either a Leaf (a scalar or an
// opaque list) or a Node (another Tree). Key order is the insertion order and
// is preserved on every operation:
//
//	greeting: Hello
//	nav:
//	  home: Home
//	  about: About
package tree

import (
	"fmt"
	"reflect"
	"sort"
)

// ---------------------------------------------------------------------------
// Values
// ---------------------------------------------------------------------------

// Kind tells a leaf from a nested tree.
type Kind int

const (
	// KindLeaf is a scalar (string, number, bool, null) or an opaque list.
	KindLeaf Kind = iota
	// KindNode is a nested Tree.
	KindNode
)

func (k Kind) String() string {
	if k == KindNode {
		return "node"
	}
	return "leaf"
}

// Value is a tagged variant: Leaf(payload) or Node(*Tree).
type Value struct {
	kind Kind
	leaf any
	node *Tree
}

// Leaf wraps a scalar payload.
func Leaf(v any) Value {
	return Value{kind: KindLeaf, leaf: v}
}

// Node wraps a nested tree. A nil tree is replaced by an empty one.
func Node(t *Tree) Value {
	if t == nil {
		t = New()
	}
	return Value{kind: KindNode, node: t}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsNode reports whether v holds a nested tree.
func (v Value) IsNode() bool { return v.kind == KindNode }

// Tree returns the nested tree, or nil for leaves.
func (v Value) Tree() *Tree { return v.node }

// Scalar returns the leaf payload, or nil for nodes.
func (v Value) Scalar() any { return v.leaf }

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	if v.kind == KindNode {
		return Node(v.node.Clone())
	}
	return Leaf(cloneScalar(v.leaf))
}

func (v Value) String() string {
	if v.kind == KindNode {
		return fmt.Sprintf("{%d keys}", v.node.Len())
	}
	return fmt.Sprint(v.leaf)
}

func cloneScalar(v any) any {
	switch s := v.(type) {
	case []any:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = cloneScalar(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(s))
		for k, e := range s {
			out[k] = cloneScalar(e)
		}
		return out
	}
	return v
}

// ---------------------------------------------------------------------------
// Tree
// ---------------------------------------------------------------------------

// Tree is an ordered mapping from keys to Values. The zero value is not
// usable; create trees with New.
type Tree struct {
	// keys preserves insertion order.
	keys   []string
	values map[string]Value
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{values: make(map[string]Value)}
}

// Len returns the number of keys at this level.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Keys returns the keys of this level in their stored order.
// The returned slice is a copy.
func (t *Tree) Keys() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Get returns the value stored under key.
func (t *Tree) Get(key string) (Value, bool) {
	if t == nil {
		return Value{}, false
	}
	v, ok := t.values[key]
	return v, ok
}

// Has reports whether key is present at this level.
func (t *Tree) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// Set stores v under key. A new key is appended; an existing key keeps its
// position and gets the new value.
func (t *Tree) Set(key string, v Value) {
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] = v
}

// SetLeaf is shorthand for Set(key, Leaf(v)).
func (t *Tree) SetLeaf(key string, v any) {
	t.Set(key, Leaf(v))
}

// Delete removes key. It is a no-op when the key is absent.
func (t *Tree) Delete(key string) {
	if _, ok := t.values[key]; !ok {
		return
	}
	delete(t.values, key)
	for i, k := range t.keys {
		if k == key {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
}

// Clone returns a deep copy of t.
func (t *Tree) Clone() *Tree {
	out := New()
	if t == nil {
		return out
	}
	for _, k := range t.keys {
		out.Set(k, t.values[k].Clone())
	}
	return out
}

// ---------------------------------------------------------------------------
// Comparison
// ---------------------------------------------------------------------------

// Equal reports whether a and b hold the same keys with the same values at
// every level. Key order is ignored. A nil tree equals an empty one.
func Equal(a, b *Tree) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, k := range a.Keys() {
		av, _ := a.Get(k)
		bv, ok := b.Get(k)
		if !ok || av.kind != bv.kind {
			return false
		}
		if av.kind == KindNode {
			if !Equal(av.node, bv.node) {
				return false
			}
			continue
		}
		if !reflect.DeepEqual(av.leaf, bv.leaf) {
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// Flattening
// ---------------------------------------------------------------------------

// Pair is one leaf addressed by its dot-joined key path (e.g. "nav.home").
type Pair struct {
	Path  string
	Value any
}

// Flatten returns every leaf of t in document order.
func (t *Tree) Flatten() []Pair {
	var out []Pair
	t.walk("", func(path string, v any) {
		out = append(out, Pair{Path: path, Value: v})
	})
	return out
}

// LeafCount returns the number of leaves at all levels.
func (t *Tree) LeafCount() int {
	n := 0
	t.walk("", func(string, any) { n++ })
	return n
}

func (t *Tree) walk(prefix string, fn func(path string, v any)) {
	if t == nil {
		return
	}
	for _, k := range t.keys {
		v := t.values[k]
		path := JoinPath(prefix, k)
		if v.kind == KindNode {
			v.node.walk(path, fn)
			continue
		}
		fn(path, v.leaf)
	}
}

// JoinPath appends key to a dot-joined path.
func JoinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
