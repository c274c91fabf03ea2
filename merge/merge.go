// Package merge implements the ordered three-way merge of translation trees.
//
// A base tree (the reference locale) defines key order and structure. New
// values (from a report) are layered over old values (the existing
// destination file):
//
//	base: {a: {x, y}, b}
//	new:  {a: {y: 20}, c: 4}
//	old:  {a: {x: 100}, b: 30, d: 5}
//	→     {a: {x: 100, y: 20}, b: 30, d: 5, c: 4}
//
// Output order at every level is base keys (those with a value), then keys
// only the old tree knows, then keys only the new tree knows.
package merge

import (
	"errors"
	"fmt"

	"github.com/minios-linux/transmerge/tree"
)

// ErrStructuralMismatch is matched by MismatchError via errors.Is.
var ErrStructuralMismatch = errors.New("structural mismatch")

// MismatchError reports a key that is a nested tree in one input and a
// leaf in another.
type MismatchError struct {
	Path     string
	Expected tree.Kind
	Found    tree.Kind
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("structural mismatch at %q: expected %s, found %s", e.Path, e.Expected, e.Found)
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrStructuralMismatch
}

// Notifier receives every leaf taken from the new tree.
type Notifier interface {
	OnAdd(path string, value any)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(path string, value any)

func (f NotifierFunc) OnAdd(path string, value any) { f(path, value) }

// Merge returns a fresh tree combining newTree and oldTree in the key order
// of base. prefix is the dotted path of these trees, used in notifications
// and errors. None of the inputs is modified. n may be nil.
func Merge(prefix string, base, newTree, oldTree *tree.Tree, n Notifier) (*tree.Tree, error) {
	result := tree.New()

	// Keys defined by base, in base order. Keys neither source provides are dropped.
	for _, key := range base.Keys() {
		baseVal, _ := base.Get(key)
		v, ok, err := resolve(prefix, key, &baseVal, newTree, oldTree, n)
		if err != nil {
			return nil, err
		}
		if ok {
			result.Set(key, v)
		}
	}

	// Keys only the existing destination knows, in its order.
	for _, key := range oldTree.Keys() {
		if result.Has(key) || base.Has(key) {
			continue
		}
		v, _, err := resolve(prefix, key, nil, newTree, oldTree, n)
		if err != nil {
			return nil, err
		}
		result.Set(key, v)
	}

	// Keys only the new tree knows, in its order.
	for _, key := range newTree.Keys() {
		if result.Has(key) || base.Has(key) {
			continue
		}
		v, _, err := resolve(prefix, key, nil, newTree, nil, n)
		if err != nil {
			return nil, err
		}
		result.Set(key, v)
	}

	return result, nil
}

// resolve picks the value for key: the new value when present, else the old
// one. Nested trees are merged recursively against baseVal (or an empty base
// when baseVal is nil). The second result is false when neither source holds
// the key.
func resolve(prefix, key string, baseVal *tree.Value, newTree, oldTree *tree.Tree, n Notifier) (tree.Value, bool, error) {
	path := tree.JoinPath(prefix, key)

	newVal, inNew := newTree.Get(key)
	oldVal, inOld := oldTree.Get(key)
	if !inNew && !inOld {
		return tree.Value{}, false, nil
	}

	candidate := oldVal
	if inNew {
		candidate = newVal
	}

	if baseVal != nil && baseVal.Kind() != candidate.Kind() {
		return tree.Value{}, false, &MismatchError{Path: path, Expected: baseVal.Kind(), Found: candidate.Kind()}
	}
	if inNew && inOld && newVal.Kind() != oldVal.Kind() {
		return tree.Value{}, false, &MismatchError{Path: path, Expected: oldVal.Kind(), Found: newVal.Kind()}
	}

	if !candidate.IsNode() {
		if inNew && n != nil {
			n.OnAdd(path, candidate.Scalar())
		}
		return candidate.Clone(), true, nil
	}

	var subBase, subNew, subOld *tree.Tree
	if baseVal != nil {
		subBase = baseVal.Tree()
	}
	if inNew {
		subNew = newVal.Tree()
	}
	if inOld {
		subOld = oldVal.Tree()
	}
	merged, err := Merge(path, subBase, subNew, subOld, n)
	if err != nil {
		return tree.Value{}, false, err
	}
	return tree.Node(merged), true, nil
}
