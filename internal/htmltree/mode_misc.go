package htmltree

import (
	"github.com/dpotapov/go-markup/internal/htmltok"
	a "golang.org/x/net/html/atom"
)

// templateIMStack records the insertion mode saved for each open <template>
// so inTemplateModeFn's end-tag handling knows what to resume (spec §4.3
// "stack of template insertion modes"). Indexed in parallel with the
// <template> elements found in b.oe.
type templateIMStack []insertionModeKind

func (b *Builder) pushTemplateIM(m insertionModeKind) { b.templateIMs = append(b.templateIMs, m) }

func (b *Builder) popTemplateIM() insertionModeKind {
	n := len(b.templateIMs) - 1
	m := b.templateIMs[n]
	b.templateIMs = b.templateIMs[:n]
	return m
}

func inTemplateModeFn(b *Builder) bool {
	switch b.cur.Type {
	case htmltok.CharToken, htmltok.CommentToken, htmltok.DoctypeToken:
		return inBodyModeFn(b)
	case htmltok.StartTagToken:
		switch b.cur.Data {
		case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title":
			return inHeadModeFn(b)
		case "caption", "colgroup", "tbody", "tfoot", "thead":
			b.popTemplateIM()
			b.pushTemplateIM(inTableIM)
			b.im = inTableIM
			return false
		case "col":
			b.popTemplateIM()
			b.pushTemplateIM(inColumnGroupIM)
			b.im = inColumnGroupIM
			return false
		case "tr":
			b.popTemplateIM()
			b.pushTemplateIM(inTableBodyIM)
			b.im = inTableBodyIM
			return false
		case "td", "th":
			b.popTemplateIM()
			b.pushTemplateIM(inRowIM)
			b.im = inRowIM
			return false
		default:
			b.popTemplateIM()
			b.pushTemplateIM(inBodyIM)
			b.im = inBodyIM
			return false
		}
	case htmltok.EndTagToken:
		if b.cur.Data == "template" {
			return inHeadModeFn(b)
		}
		return true
	case htmltok.EOFToken:
		if !b.oe.contains(a.Template) {
			return true
		}
		b.generateImpliedEndTags()
		b.popUntil(defaultScope, a.Template)
		b.clearActiveFormattingElements()
		b.im = b.popTemplateIM()
		return false
	}
	return true
}

func afterBodyModeFn(b *Builder) bool {
	switch b.cur.Type {
	case htmltok.EOFToken:
		return true
	case htmltok.CharToken:
		if isAllWhitespace(b.cur.Data) {
			return inBodyModeFn(b)
		}
	case htmltok.StartTagToken:
		if b.cur.Data == "html" {
			return inBodyModeFn(b)
		}
	case htmltok.EndTagToken:
		if b.cur.Data == "html" {
			b.im = afterAfterBodyIM
			return true
		}
	case htmltok.CommentToken:
		if len(b.oe) < 1 || b.oe[0].DataAtom != a.Html {
			return true
		}
		n := &Node{Type: CommentNode, Data: b.cur.Data, Loc: b.cur.Loc}
		b.oe[0].AppendChild(n)
		b.emitLeaf(n)
		return true
	case htmltok.DoctypeToken:
		return true
	}
	b.im = inBodyIM
	return false
}

func inFramesetModeFn(b *Builder) bool {
	switch b.cur.Type {
	case htmltok.CommentToken:
		b.addComment()
		return true
	case htmltok.DoctypeToken:
		return true
	case htmltok.CharToken:
		if isAllWhitespace(b.cur.Data) {
			b.addText(b.cur.Data)
		}
		return true
	case htmltok.StartTagToken:
		switch b.cur.Data {
		case "html":
			return inBodyModeFn(b)
		case "frameset":
			b.addElement()
			return true
		case "frame":
			b.addElement()
			b.pop()
			b.acknowledgeSelfClosingTag()
			return true
		case "noframes":
			return inHeadModeFn(b)
		}
	case htmltok.EndTagToken:
		if b.cur.Data == "frameset" {
			if b.top().DataAtom == a.Html {
				return true
			}
			b.pop()
			if b.top().DataAtom != a.Frameset {
				b.im = afterFramesetIM
			}
			return true
		}
	case htmltok.EOFToken:
		return true
	}
	return true
}

func afterFramesetModeFn(b *Builder) bool {
	switch b.cur.Type {
	case htmltok.CommentToken:
		b.addComment()
		return true
	case htmltok.DoctypeToken:
		return true
	case htmltok.CharToken:
		if isAllWhitespace(b.cur.Data) {
			b.addText(b.cur.Data)
		}
		return true
	case htmltok.StartTagToken:
		switch b.cur.Data {
		case "html":
			return inBodyModeFn(b)
		case "noframes":
			return inHeadModeFn(b)
		}
	case htmltok.EndTagToken:
		if b.cur.Data == "html" {
			b.im = afterAfterFramesetIM
			return true
		}
	case htmltok.EOFToken:
		return true
	}
	return true
}

func afterAfterBodyModeFn(b *Builder) bool {
	switch b.cur.Type {
	case htmltok.EOFToken:
		return true
	case htmltok.CommentToken:
		n := &Node{Type: CommentNode, Data: b.cur.Data, Loc: b.cur.Loc}
		b.root.AppendChild(n)
		b.emitLeaf(n)
		return true
	case htmltok.DoctypeToken:
		return inBodyModeFn(b)
	case htmltok.CharToken:
		if isAllWhitespace(b.cur.Data) {
			return inBodyModeFn(b)
		}
	case htmltok.StartTagToken:
		if b.cur.Data == "html" {
			return inBodyModeFn(b)
		}
	}
	b.im = inBodyIM
	return false
}

func afterAfterFramesetModeFn(b *Builder) bool {
	switch b.cur.Type {
	case htmltok.EOFToken:
		return true
	case htmltok.CommentToken:
		n := &Node{Type: CommentNode, Data: b.cur.Data, Loc: b.cur.Loc}
		b.root.AppendChild(n)
		b.emitLeaf(n)
		return true
	case htmltok.DoctypeToken:
		return true
	case htmltok.CharToken:
		if isAllWhitespace(b.cur.Data) {
			return inBodyModeFn(b)
		}
	case htmltok.StartTagToken:
		switch b.cur.Data {
		case "html":
			return inBodyModeFn(b)
		case "noframes":
			return inHeadModeFn(b)
		}
	}
	return true
}

// resetInsertionModeAppropriately implements spec §4.3's algorithm of the
// same name, run after a <select>/<table> is closed out from under a
// context that needs to recover its enclosing mode.
func (b *Builder) resetInsertionModeAppropriately() {
	for i := len(b.oe) - 1; i >= 0; i-- {
		n := b.oe[i]
		last := i == 0
		if last && b.context != nil {
			n = b.context
		}
		switch n.DataAtom {
		case a.Select:
			for j := i; j > 0; j-- {
				switch b.oe[j-1].DataAtom {
				case a.Template:
					b.im = inSelectIM
					return
				case a.Table:
					b.im = inSelectInTableIM
					return
				}
			}
			b.im = inSelectIM
			return
		case a.Td, a.Th:
			if !last {
				b.im = inCellIM
				return
			}
		case a.Tr:
			b.im = inRowIM
			return
		case a.Tbody, a.Thead, a.Tfoot:
			b.im = inTableBodyIM
			return
		case a.Caption:
			b.im = inCaptionIM
			return
		case a.Colgroup:
			b.im = inColumnGroupIM
			return
		case a.Table:
			b.im = inTableIM
			return
		case a.Template:
			b.im = b.templateIMs[len(b.templateIMs)-1]
			return
		case a.Head:
			if !last {
				b.im = inHeadIM
				return
			}
		case a.Body:
			b.im = inBodyIM
			return
		case a.Frameset:
			b.im = inFramesetIM
			return
		case a.Html:
			if b.headPointer == nil {
				b.im = beforeHeadIM
			} else {
				b.im = afterHeadIM
			}
			return
		}
		if last {
			b.im = inBodyIM
			return
		}
	}
}
