// Package tree materializes a pull-parser's event stream into an
// indexed node graph: an arena of nodes with interned names and
// parent/child/sibling links by arena index, plus read-only traversal
// handles over it.
package tree

import "github.com/scigolib/fbxcel/internal/parser"

// Symbol is an interned node-name reference, scoped to exactly one
// Tree; the same byte sequence always resolves to the same Symbol
// within that tree (spec.md §3, "Node name symbols compare by
// identity").
type Symbol int

const noIndex = -1

type node struct {
	name        Symbol
	attrs       []parser.AttributeValue
	parent      int
	firstChild  int
	lastChild   int
	prevSibling int
	nextSibling int
}

// Tree is the materialized node graph a tree loader produces. It is
// immutable once LoadTree returns; handles (Node) borrow it by index.
type Tree struct {
	names    []string
	bySymbol map[string]Symbol
	nodes    []node
}

func newTree() *Tree {
	t := &Tree{bySymbol: make(map[string]Symbol)}
	root := t.intern("")
	t.nodes = append(t.nodes, node{
		name:        root,
		parent:      noIndex,
		firstChild:  noIndex,
		lastChild:   noIndex,
		prevSibling: noIndex,
		nextSibling: noIndex,
	})
	return t
}

func (t *Tree) intern(name string) Symbol {
	if s, ok := t.bySymbol[name]; ok {
		return s
	}
	s := Symbol(len(t.names))
	t.names = append(t.names, name)
	t.bySymbol[name] = s
	return s
}

func (t *Tree) appendChild(parentIdx int, name string, attrs []parser.AttributeValue) int {
	sym := t.intern(name)
	idx := len(t.nodes)
	t.nodes = append(t.nodes, node{
		name:        sym,
		attrs:       attrs,
		parent:      parentIdx,
		firstChild:  noIndex,
		lastChild:   noIndex,
		prevSibling: noIndex,
		nextSibling: noIndex,
	})

	parent := &t.nodes[parentIdx]
	if parent.lastChild == noIndex {
		parent.firstChild = idx
	} else {
		t.nodes[parent.lastChild].nextSibling = idx
		t.nodes[idx].prevSibling = parent.lastChild
	}
	parent.lastChild = idx
	return idx
}

// Root returns a handle to the tree's implicit synthetic root node: an
// unnamed, attribute-less node whose children are the file's top-level
// nodes.
func (t *Tree) Root() Node {
	return Node{t: t, idx: 0}
}

// Len reports the total number of nodes in the tree, including the
// synthetic root.
func (t *Tree) Len() int {
	return len(t.nodes)
}
