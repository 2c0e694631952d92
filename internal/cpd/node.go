package cpd

import (
	"strconv"
)

// Key is a CPD mapping key. It keeps the source text so that labels render
// exactly as written (`0`, `No`, `RAIN`).
type Key struct {
	text  string
	index bool
}

// IndexKey returns a key for an integer outcome index.
func IndexKey(i int) Key {
	return Key{text: strconv.Itoa(i), index: true}
}

// NumberKey returns a key for a numeric literal whose source text is known.
func NumberKey(text string) Key {
	return Key{text: text, index: true}
}

// NameKey returns a key for an outcome label or a parent variable name.
func NameKey(s string) Key {
	return Key{text: s}
}

// String returns the key's source text.
func (k Key) String() string {
	return k.text
}

// IsIndex reports whether the key was written as a number.
func (k Key) IsIndex() bool {
	return k.index
}

// Entry is one key/value pair of a Branch.
type Entry struct {
	Key  Key
	Node Node
}

// Node is either a Leaf probability or a Branch of ordered entries.
type Node struct {
	branch  bool
	value   float64
	entries []Entry
}

// Leaf returns a terminal probability node.
func Leaf(p float64) Node {
	return Node{value: p}
}

// Branch returns a mapping node. Entry order is preserved and is
// significant: it determines row and column placement downstream.
func Branch(entries ...Entry) Node {
	return Node{branch: true, entries: entries}
}

// IsLeaf reports whether n is a terminal probability.
func (n Node) IsLeaf() bool {
	return !n.branch
}

// Value returns the probability of a Leaf. It is zero for a Branch.
func (n Node) Value() float64 {
	return n.value
}

// Entries returns the ordered entries of a Branch.
func (n Node) Entries() []Entry {
	return n.entries
}

// Keys returns the top-level keys of a Branch in order.
func (n Node) Keys() []Key {
	keys := make([]Key, len(n.entries))
	for i, e := range n.entries {
		keys[i] = e.Key
	}
	return keys
}

// Cardinality is the number of top-level keys, i.e. the number of outcomes
// of the variable whose CPD n is.
func Cardinality(n Node) int {
	if n.IsLeaf() {
		return 0
	}
	return len(n.entries)
}
