package htmltree

import (
	a "golang.org/x/net/html/atom"

	"github.com/dpotapov/go-markup/internal/htmltok"
)

// adoptionAgency implements the adoption agency algorithm (spec §4.3,
// "adoption agency algorithm"): up to 8 outer iterations, each running the
// 3-step-bounded inner loop that walks the stack of open elements between
// the formatting element and the furthest block, relocating and cloning
// nodes along the way. Adapted line-for-line from the teacher's
// inBodyEndTagFormatting (chtml/html/parse.go), generalized from
// *html.Node to this package's Node.
func (b *Builder) adoptionAgency(tagAtom a.Atom, tagName string) {
	// Steps 1-2.
	if current := b.top(); current.Data == tagName && b.afe.index(current) == -1 {
		b.pop()
		return
	}

	for i := 0; i < 8; i++ {
		// Step 6.
		var formattingElement *Node
		for j := len(b.afe) - 1; j >= 0; j-- {
			if b.afe[j].Type == scopeMarkerNode {
				break
			}
			if b.afe[j].DataAtom == tagAtom {
				formattingElement = b.afe[j]
				break
			}
		}
		if formattingElement == nil {
			b.anyOtherEndTag(tagAtom, tagName)
			return
		}

		// Step 7.
		feIndex := b.oe.index(formattingElement)
		if feIndex == -1 {
			b.afe.remove(formattingElement)
			return
		}
		// Step 8.
		if !b.elementInScope(defaultScope, tagAtom) {
			return
		}

		// Steps 10-11.
		var furthestBlock *Node
		for _, e := range b.oe[feIndex:] {
			if isSpecialElement(e) {
				furthestBlock = e
				break
			}
		}
		if furthestBlock == nil {
			for {
				e := b.oe.pop()
				done := e == formattingElement
				b.emitEnd(e)
				if done {
					break
				}
			}
			b.afe.remove(formattingElement)
			return
		}

		b.reportError(htmltok.KindMisnestedTag, tagName)

		// Steps 12-13.
		commonAncestor := b.root
		if feIndex > 0 {
			commonAncestor = b.oe[feIndex-1]
		}
		bookmark := b.afe.index(formattingElement)

		// Step 14, the inner loop.
		lastNode := furthestBlock
		node := furthestBlock
		x := b.oe.index(node)
		j := 0
		for {
			j++
			x--
			node = b.oe[x]
			if node == formattingElement {
				break
			}
			if ni := b.afe.index(node); j > 3 && ni > -1 {
				b.afe.remove(node)
				if ni <= bookmark {
					bookmark--
				}
				continue
			}
			if b.afe.index(node) == -1 {
				// node is discarded without ever closing normally; its
				// Start_element already reached the stream when it was
				// first opened, so emit the matching End here.
				b.emitEnd(node)
				b.oe.remove(node)
				continue
			}
			clone := cloneNode(node)
			b.afe[b.afe.index(node)] = clone
			b.oe[b.oe.index(node)] = clone
			b.emitStart(clone)
			node = clone
			if lastNode == furthestBlock {
				bookmark = b.afe.index(node) + 1
			}
			if lastNode.Parent != nil {
				lastNode.Parent.RemoveChild(lastNode)
			}
			node.AppendChild(lastNode)
			lastNode = node
		}

		// Step 15.
		if lastNode.Parent != nil {
			lastNode.Parent.RemoveChild(lastNode)
		}
		switch commonAncestor.DataAtom {
		case a.Table, a.Tbody, a.Tfoot, a.Thead, a.Tr:
			b.fosterParent(lastNode)
		default:
			commonAncestor.AppendChild(lastNode)
		}

		// Steps 16-18. The original formatting element closes here and a
		// clone reopens inside furthestBlock, holding what used to be
		// furthestBlock's children — matching the spec's own description of
		// this step as a close-and-reopen.
		b.emitEnd(formattingElement)
		clone := cloneNode(formattingElement)
		reparentChildren(clone, furthestBlock)
		furthestBlock.AppendChild(clone)
		b.emitStart(clone)

		// Step 19.
		if oldLoc := b.afe.index(formattingElement); oldLoc != -1 && oldLoc < bookmark {
			bookmark--
		}
		b.afe.remove(formattingElement)
		b.afe.insert(bookmark, clone)

		// Step 20.
		b.oe.remove(formattingElement)
		b.oe.insert(b.oe.index(furthestBlock)+1, clone)
	}
}

// anyOtherEndTag is the "any other end tag" handling used both as the
// adoption agency's fallback and directly from inBodyModeFn's default case
// (spec §4.3).
func (b *Builder) anyOtherEndTag(tagAtom a.Atom, tagName string) {
	for i := len(b.oe) - 1; i >= 0; i-- {
		if (b.oe[i].DataAtom == tagAtom) && ((tagAtom != 0) || (b.oe[i].Data == tagName)) {
			b.popTo(i)
			return
		}
		if isSpecialElement(b.oe[i]) {
			b.reportError(htmltok.KindUnmatchedEndTag, tagName)
			return
		}
	}
	b.reportError(htmltok.KindUnmatchedEndTag, tagName)
}
