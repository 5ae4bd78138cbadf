// Package htmltree implements the HTML5 tree-construction stage: the
// insertion-mode state machine (spec §4.3) that turns tokenizer output into
// a stream of signals. A Node is emitted the moment its place in the
// document is decided: Start_element when it is created and pushed onto the
// stack of open elements, End_element when it is popped, text/comment/
// doctype signals as soon as they are attached to their parent. This keeps
// emission order equal to document order for the overwhelmingly common
// case. The node tree itself still exists only to give the adoption-agency
// and foster-parenting algorithms (spec §4.3) somewhere to relocate and
// clone nodes that were misnested in the source; builder.go's adoption.go
// re-emits Start_element for any clone it creates, since a clone is, from
// the stream's point of view, a new element instance.
//
// The parser struct, nodeStack and scope-tracking helpers below are adapted
// from the tree-construction algorithm golang.org/x/net/html implements and
// the teacher package's own copy of it (chtml/html/parse.go, node.go): same
// shape, generalized from building a persistent *html.Node document into
// emitting bounded signals as construction proceeds instead.
package htmltree

import (
	"github.com/dpotapov/go-markup/internal/htmltok"
	a "golang.org/x/net/html/atom"
)

// NodeType tags the variant of a buffered Node.
type NodeType int

const (
	DocumentNode NodeType = iota
	ElementNode
	TextNode
	CommentNode
	DoctypeNode
	scopeMarkerNode
)

// Node is a tree node of the document being built. Like
// golang.org/x/net/html.Node it stays linked to its parent and children, and
// so reachable from the builder's root, for the whole parse; its signals
// leave the queue when it is pushed and popped (see the package doc).
type Node struct {
	Type      NodeType
	Namespace string
	DataAtom  a.Atom
	Data      string
	Attr      []htmltok.Attribute
	Loc       htmltok.Location

	ForceQuirks bool // DoctypeNode only
	PublicID    string
	SystemID    string

	Parent, FirstChild, LastChild, PrevSibling, NextSibling *Node
}

var scopeMarker = &Node{Type: scopeMarkerNode}

func (n *Node) AppendChild(c *Node) {
	if c.Parent != nil || c.PrevSibling != nil || c.NextSibling != nil {
		panic("htmltree: AppendChild called on an already-attached node")
	}
	last := n.LastChild
	if last != nil {
		last.NextSibling = c
	} else {
		n.FirstChild = c
	}
	n.LastChild = c
	c.Parent = n
	c.PrevSibling = last
}

func (n *Node) RemoveChild(c *Node) {
	if c.Parent != n {
		panic("htmltree: RemoveChild called on a non-child Node")
	}
	if n.FirstChild == c {
		n.FirstChild = c.NextSibling
	}
	if c.NextSibling != nil {
		c.NextSibling.PrevSibling = c.PrevSibling
	}
	if n.LastChild == c {
		n.LastChild = c.PrevSibling
	}
	if c.PrevSibling != nil {
		c.PrevSibling.NextSibling = c.NextSibling
	}
	c.Parent = nil
	c.PrevSibling = nil
	c.NextSibling = nil
}

func (n *Node) InsertBefore(c, old *Node) {
	if old == nil {
		n.AppendChild(c)
		return
	}
	if c.Parent != nil || c.PrevSibling != nil || c.NextSibling != nil {
		panic("htmltree: InsertBefore called on an already-attached node")
	}
	if old.Parent != n {
		panic("htmltree: InsertBefore called for a non-child old Node")
	}
	prev := old.PrevSibling
	if prev != nil {
		prev.NextSibling = c
	} else {
		n.FirstChild = c
	}
	c.PrevSibling = prev
	c.NextSibling = old
	old.PrevSibling = c
	c.Parent = n
}

func cloneNode(n *Node) *Node {
	c := &Node{Type: n.Type, Namespace: n.Namespace, DataAtom: n.DataAtom, Data: n.Data, Loc: n.Loc}
	c.Attr = append([]htmltok.Attribute(nil), n.Attr...)
	return c
}

// reparentChildren moves every child of src to be a child of dst, in order.
func reparentChildren(dst, src *Node) {
	for {
		c := src.FirstChild
		if c == nil {
			break
		}
		src.RemoveChild(c)
		dst.AppendChild(c)
	}
}

// nodeStack is a stack of nodes supporting the random-access operations the
// adoption-agency algorithm needs (insert-before-index, remove-by-identity),
// addressed by identity rather than by live pointer per spec §9.
type nodeStack []*Node

func (s *nodeStack) pop() *Node {
	i := len(*s) - 1
	n := (*s)[i]
	*s = (*s)[:i]
	return n
}

func (s *nodeStack) top() *Node {
	if i := len(*s); i > 0 {
		return (*s)[i-1]
	}
	return nil
}

func (s *nodeStack) index(n *Node) int {
	for i := len(*s) - 1; i >= 0; i-- {
		if (*s)[i] == n {
			return i
		}
	}
	return -1
}

func (s *nodeStack) contains(at a.Atom) bool {
	for _, n := range *s {
		if n.DataAtom == at {
			return true
		}
	}
	return false
}

func (s *nodeStack) insert(i int, n *Node) {
	(*s) = append(*s, nil)
	copy((*s)[i+1:], (*s)[i:])
	(*s)[i] = n
}

func (s *nodeStack) remove(n *Node) {
	i := s.index(n)
	if i == -1 {
		return
	}
	copy((*s)[i:], (*s)[i+1:])
	j := len(*s) - 1
	(*s)[j] = nil
	*s = (*s)[:j]
}
