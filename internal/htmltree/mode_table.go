package htmltree

import (
	"strings"

	"github.com/dpotapov/go-markup/internal/htmltok"
	a "golang.org/x/net/html/atom"
)

// The table family of insertion modes (spec §4.3) has no counterpart in the
// teacher, which only ever parses CHTML template bodies and never needs a
// <table>. These seven mode functions follow the same shape as mode_body.go's
// inBodyModeFn (adapted line-by-line from an x/net/html-shaped parser) but
// are grounded directly on the HTML5 spec algorithm text rather than on
// teacher code, since nothing in the pack implements them.

func clearStackToTableContext(b *Builder) {
	for {
		switch b.top().DataAtom {
		case a.Table, a.Html, a.Template:
			return
		}
		b.pop()
	}
}

func clearStackToTableBodyContext(b *Builder) {
	for {
		switch b.top().DataAtom {
		case a.Tbody, a.Tfoot, a.Thead, a.Template, a.Html:
			return
		}
		b.pop()
	}
}

func clearStackToTableRowContext(b *Builder) {
	for {
		switch b.top().DataAtom {
		case a.Tr, a.Template, a.Html:
			return
		}
		b.pop()
	}
}

func inTableModeFn(b *Builder) bool {
	switch b.cur.Type {
	case htmltok.CharToken:
		switch b.top().DataAtom {
		case a.Table, a.Tbody, a.Tfoot, a.Thead, a.Tr:
			b.pendingTableText = b.pendingTableText[:0]
			b.setOriginalIM()
			b.im = inTableTextIM
			return false
		}
	case htmltok.CommentToken:
		b.addComment()
		return true
	case htmltok.DoctypeToken:
		return true
	case htmltok.StartTagToken:
		switch b.cur.Data {
		case "caption":
			clearStackToTableContext(b)
			b.afe = append(b.afe, scopeMarker)
			b.addElement()
			b.im = inCaptionIM
			return true
		case "colgroup":
			clearStackToTableContext(b)
			b.addElement()
			b.im = inColumnGroupIM
			return true
		case "col":
			clearStackToTableContext(b)
			b.parseImpliedToken(htmltok.StartTagToken, "colgroup")
			return false
		case "tbody", "tfoot", "thead":
			clearStackToTableContext(b)
			b.addElement()
			b.im = inTableBodyIM
			return true
		case "td", "th", "tr":
			clearStackToTableContext(b)
			b.parseImpliedToken(htmltok.StartTagToken, "tbody")
			return false
		case "table":
			if b.popUntil(tableScope, a.Table) {
				b.resetInsertionModeAppropriately()
			}
			return false
		case "style", "script", "template":
			return inHeadModeFn(b)
		case "input":
			for _, t := range b.cur.Attr {
				if t.Name == "type" && strings.EqualFold(t.Value, "hidden") {
					b.addElement()
					b.pop()
					b.acknowledgeSelfClosingTag()
					return true
				}
			}
		case "form":
			if b.form == nil && !b.oe.contains(a.Template) {
				b.addElement()
				b.form = b.top()
				b.pop()
			}
			return true
		}
	case htmltok.EndTagToken:
		switch b.cur.Data {
		case "table":
			if b.popUntil(tableScope, a.Table) {
				b.resetInsertionModeAppropriately()
			}
			return true
		case "body", "caption", "col", "colgroup", "html", "tbody", "td", "tfoot", "th", "thead", "tr":
			return true
		case "template":
			return inHeadModeFn(b)
		}
	case htmltok.EOFToken:
		return inBodyModeFn(b)
	}
	b.fosterParenting = true
	defer func() { b.fosterParenting = false }()
	return inBodyModeFn(b)
}

// inTableTextModeFn implements "in table text" (spec §4.3), buffering char
// tokens so an all-whitespace run can be distinguished from one containing
// non-whitespace (which is foster-parented instead of inserted in place).
func inTableTextModeFn(b *Builder) bool {
	if b.cur.Type == htmltok.CharToken {
		if strings.Contains(b.cur.Data, "\x00") {
			return true
		}
		b.pendingTableText = append(b.pendingTableText, Token{Data: b.cur.Data})
		return true
	}
	anyNonWhitespace := false
	for _, t := range b.pendingTableText {
		if strings.Trim(t.Data, whitespace) != "" {
			anyNonWhitespace = true
			break
		}
	}
	for _, t := range b.pendingTableText {
		if anyNonWhitespace {
			b.fosterParenting = true
			b.addText(t.Data)
			b.fosterParenting = false
		} else {
			b.addText(t.Data)
		}
	}
	b.pendingTableText = b.pendingTableText[:0]
	b.im = b.originalIM
	return false
}

func inCaptionModeFn(b *Builder) bool {
	switch b.cur.Type {
	case htmltok.StartTagToken:
		switch b.cur.Data {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if b.popUntil(tableScope, a.Caption) {
				b.clearActiveFormattingElements()
				b.im = inTableIM
			}
			return false
		}
	case htmltok.EndTagToken:
		switch b.cur.Data {
		case "caption":
			if b.popUntil(tableScope, a.Caption) {
				b.clearActiveFormattingElements()
				b.im = inTableIM
			}
			return true
		case "table":
			if b.popUntil(tableScope, a.Caption) {
				b.clearActiveFormattingElements()
				b.im = inTableIM
				return false
			}
			return true
		case "body", "col", "colgroup", "html", "tbody", "td", "tfoot", "th", "thead", "tr":
			return true
		}
	}
	return inBodyModeFn(b)
}

func inColumnGroupModeFn(b *Builder) bool {
	switch b.cur.Type {
	case htmltok.CharToken:
		if isAllWhitespace(b.cur.Data) {
			b.addText(b.cur.Data)
			return true
		}
	case htmltok.CommentToken:
		b.addComment()
		return true
	case htmltok.DoctypeToken:
		return true
	case htmltok.StartTagToken:
		switch b.cur.Data {
		case "html":
			return inBodyModeFn(b)
		case "col":
			b.addElement()
			b.pop()
			b.acknowledgeSelfClosingTag()
			return true
		case "template":
			return inHeadModeFn(b)
		}
	case htmltok.EndTagToken:
		switch b.cur.Data {
		case "colgroup":
			if b.top().DataAtom == a.Colgroup {
				b.pop()
				b.im = inTableIM
			}
			return true
		case "col":
			return true
		case "template":
			return inHeadModeFn(b)
		}
	case htmltok.EOFToken:
		return inBodyModeFn(b)
	}
	if b.top().DataAtom != a.Colgroup {
		return true
	}
	b.pop()
	b.im = inTableIM
	return false
}

func inTableBodyModeFn(b *Builder) bool {
	switch b.cur.Type {
	case htmltok.StartTagToken:
		switch b.cur.Data {
		case "tr":
			clearStackToTableBodyContext(b)
			b.addElement()
			b.im = inRowIM
			return true
		case "th", "td":
			clearStackToTableBodyContext(b)
			b.parseImpliedToken(htmltok.StartTagToken, "tr")
			return false
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead":
			if b.popUntil(tableScope, a.Tbody, a.Thead, a.Tfoot) {
				b.im = inTableIM
				return false
			}
			return true
		}
	case htmltok.EndTagToken:
		switch b.cur.Data {
		case "tbody", "tfoot", "thead":
			tagAtom := a.Lookup([]byte(b.cur.Data))
			if b.elementInScope(tableScope, tagAtom) {
				clearStackToTableBodyContext(b)
				b.pop()
				b.im = inTableIM
			}
			return true
		case "table":
			if b.popUntil(tableScope, a.Tbody, a.Thead, a.Tfoot) {
				b.im = inTableIM
				return false
			}
			return true
		case "body", "caption", "col", "colgroup", "html", "td", "th", "tr":
			return true
		}
	}
	return inTableModeFn(b)
}

func inRowModeFn(b *Builder) bool {
	switch b.cur.Type {
	case htmltok.StartTagToken:
		switch b.cur.Data {
		case "th", "td":
			clearStackToTableRowContext(b)
			b.addElement()
			b.im = inCellIM
			b.afe = append(b.afe, scopeMarker)
			return true
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead", "tr":
			if b.popUntil(tableScope, a.Tr) {
				b.im = inTableBodyIM
				return false
			}
			return true
		}
	case htmltok.EndTagToken:
		switch b.cur.Data {
		case "tr":
			if b.popUntil(tableScope, a.Tr) {
				b.im = inTableBodyIM
			}
			return true
		case "table":
			if b.popUntil(tableScope, a.Tr) {
				b.im = inTableBodyIM
				return false
			}
			return true
		case "tbody", "tfoot", "thead":
			tagAtom := a.Lookup([]byte(b.cur.Data))
			if b.elementInScope(tableScope, tagAtom) {
				if b.popUntil(tableScope, a.Tr) {
					b.im = inTableBodyIM
				}
				return false
			}
			return true
		case "body", "caption", "col", "colgroup", "html", "td", "th":
			return true
		}
	}
	return inTableModeFn(b)
}

func inCellModeFn(b *Builder) bool {
	switch b.cur.Type {
	case htmltok.StartTagToken:
		switch b.cur.Data {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if b.elementInScope(tableScope, a.Td) || b.elementInScope(tableScope, a.Th) {
				b.closeCell()
				return false
			}
			return true
		}
	case htmltok.EndTagToken:
		switch b.cur.Data {
		case "td", "th":
			tagAtom := a.Lookup([]byte(b.cur.Data))
			if b.popUntil(tableScope, tagAtom) {
				b.clearActiveFormattingElements()
				b.im = inRowIM
			}
			return true
		case "body", "caption", "col", "colgroup", "html":
			return true
		case "table", "tbody", "tfoot", "thead", "tr":
			tagAtom := a.Lookup([]byte(b.cur.Data))
			if b.elementInScope(tableScope, tagAtom) {
				b.closeCell()
				return false
			}
			return true
		}
	}
	return inBodyModeFn(b)
}

func (b *Builder) closeCell() {
	if b.popUntil(tableScope, a.Td) || b.popUntil(tableScope, a.Th) {
		b.clearActiveFormattingElements()
		b.im = inRowIM
	}
}
