package flights

import "encoding/json"

// node wraps one value of the untyped response tree. The payload layout is
// reverse-engineered and shifts without notice, so every accessor degrades to
// "absent" instead of failing: a missing index, a null, a non-array parent,
// and a type mismatch all look the same to the caller. This keeps positional
// access contained here instead of scattering index arithmetic through the
// extractor.
//
// Numbers are json.Number values (the tree is decoded with UseNumber), so
// integer fields survive untruncated.
type node struct {
	v any
}

// at returns the child at idx, or ok=false when the node is not an array or
// idx is out of range.
func (n node) at(idx int) (node, bool) {
	arr, ok := n.v.([]any)
	if !ok || idx < 0 || idx >= len(arr) {
		return node{}, false
	}
	return node{v: arr[idx]}, true
}

// arr returns the node's elements when it is an array.
func (n node) arr() ([]any, bool) {
	arr, ok := n.v.([]any)
	return arr, ok
}

// str returns the child at idx as a string.
func (n node) str(idx int) (string, bool) {
	child, ok := n.at(idx)
	if !ok {
		return "", false
	}
	s, ok := child.v.(string)
	return s, ok
}

// int64At returns the child at idx as an int64. Non-integer numbers are
// treated as absent.
func (n node) int64At(idx int) (int64, bool) {
	child, ok := n.at(idx)
	if !ok {
		return 0, false
	}
	num, ok := child.v.(json.Number)
	if !ok {
		return 0, false
	}
	i, err := num.Int64()
	if err != nil {
		return 0, false
	}
	return i, true
}

// intAt is int64At narrowed to int, for calendar fields and durations.
func (n node) intAt(idx int) (int, bool) {
	i, ok := n.int64At(idx)
	if !ok {
		return 0, false
	}
	return int(i), true
}
