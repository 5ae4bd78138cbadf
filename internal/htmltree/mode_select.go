package htmltree

import (
	"github.com/dpotapov/go-markup/internal/htmltok"
	a "golang.org/x/net/html/atom"
)

func inSelectModeFn(b *Builder) bool {
	switch b.cur.Type {
	case htmltok.CharToken:
		if b.cur.Data == "\x00" {
			return true
		}
		b.addText(b.cur.Data)
		return true
	case htmltok.CommentToken:
		b.addComment()
		return true
	case htmltok.DoctypeToken:
		return true
	case htmltok.StartTagToken:
		switch b.cur.Data {
		case "html":
			return inBodyModeFn(b)
		case "option":
			if b.top().DataAtom == a.Option {
				b.pop()
			}
			b.addElement()
			return true
		case "optgroup":
			if b.top().DataAtom == a.Option {
				b.pop()
			}
			if b.top().DataAtom == a.Optgroup {
				b.pop()
			}
			b.addElement()
			return true
		case "select":
			b.popUntil(selectScope, a.Select)
			b.resetInsertionModeAppropriately()
			return true
		case "input", "keygen", "textarea":
			if b.elementInScope(selectScope, a.Select) {
				b.popUntil(selectScope, a.Select)
				b.resetInsertionModeAppropriately()
				return false
			}
			return true
		case "script", "template":
			return inHeadModeFn(b)
		}
	case htmltok.EndTagToken:
		switch b.cur.Data {
		case "optgroup":
			if b.top().DataAtom == a.Option {
				if i := len(b.oe) - 2; i >= 0 && b.oe[i].DataAtom == a.Optgroup {
					b.pop()
				}
			}
			if b.top().DataAtom == a.Optgroup {
				b.pop()
			}
			return true
		case "option":
			if b.top().DataAtom == a.Option {
				b.pop()
			}
			return true
		case "select":
			if b.elementInScope(selectScope, a.Select) {
				b.popUntil(selectScope, a.Select)
				b.resetInsertionModeAppropriately()
			}
			return true
		case "template":
			return inHeadModeFn(b)
		}
	case htmltok.EOFToken:
		return inBodyModeFn(b)
	}
	return true
}

// inSelectInTableModeFn implements "in select in table" (spec §4.3): a
// <select> opened inside a table gets closed by any of the table-structure
// tags, which is the only difference from plain inSelectModeFn.
func inSelectInTableModeFn(b *Builder) bool {
	switch b.cur.Data {
	case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
		switch b.cur.Type {
		case htmltok.StartTagToken, htmltok.EndTagToken:
			if b.cur.Type == htmltok.EndTagToken && !b.elementInScope(tableScope, a.Lookup([]byte(b.cur.Data))) {
				return true
			}
			b.popUntil(selectScope, a.Select)
			b.resetInsertionModeAppropriately()
			return false
		}
	}
	return inSelectModeFn(b)
}
