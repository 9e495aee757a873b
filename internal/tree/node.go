package tree

import "github.com/scigolib/fbxcel/internal/parser"

// Node is a read-only handle into a Tree's node arena (spec.md §4.6,
// "handles carry a borrow over the arena"). The zero Node is invalid;
// obtain one from Tree.Root or a traversal method.
type Node struct {
	t   *Tree
	idx int
}

// Name returns the node's interned name. The root node's name is
// always "".
func (n Node) Name() string {
	return n.t.names[n.t.nodes[n.idx].name]
}

// Symbol returns the node's interned name symbol.
func (n Node) Symbol() Symbol {
	return n.t.nodes[n.idx].name
}

// Attributes returns the node's attribute values in document order.
func (n Node) Attributes() []parser.AttributeValue {
	return n.t.nodes[n.idx].attrs
}

func (n Node) handle(idx int) (Node, bool) {
	if idx == noIndex {
		return Node{}, false
	}
	return Node{t: n.t, idx: idx}, true
}

// Parent returns the node's parent, or ok=false for the root.
func (n Node) Parent() (Node, bool) {
	return n.handle(n.t.nodes[n.idx].parent)
}

// FirstChild returns the node's first child, or ok=false if it has none.
func (n Node) FirstChild() (Node, bool) {
	return n.handle(n.t.nodes[n.idx].firstChild)
}

// LastChild returns the node's last child, or ok=false if it has none.
func (n Node) LastChild() (Node, bool) {
	return n.handle(n.t.nodes[n.idx].lastChild)
}

// PrevSibling returns the node immediately before this one in its
// parent's child list, or ok=false if this is the first child.
func (n Node) PrevSibling() (Node, bool) {
	return n.handle(n.t.nodes[n.idx].prevSibling)
}

// NextSibling returns the node immediately after this one in its
// parent's child list, or ok=false if this is the last child.
func (n Node) NextSibling() (Node, bool) {
	return n.handle(n.t.nodes[n.idx].nextSibling)
}

// Children returns every direct child, in document order.
func (n Node) Children() []Node {
	var out []Node
	for child, ok := n.FirstChild(); ok; child, ok = child.NextSibling() {
		out = append(out, child)
	}
	return out
}

// ChildrenNamed returns every direct child whose name equals name, in
// document order. Children are matched by interned Symbol.
func (n Node) ChildrenNamed(name string) []Node {
	sym, found := n.t.bySymbol[name]
	if !found {
		return nil
	}
	var out []Node
	for child, ok := n.FirstChild(); ok; child, ok = child.NextSibling() {
		if child.Symbol() == sym {
			out = append(out, child)
		}
	}
	return out
}
