package htmltree

import (
	"strings"

	"github.com/dpotapov/go-markup/internal/htmltok"
)

const whitespace = " \t\r\n\f"

func isAllWhitespace(s string) bool {
	return strings.Trim(s, whitespace) == ""
}

// initialModeFn implements the "initial" insertion mode (spec §4.3).
func initialModeFn(b *Builder) bool {
	switch b.cur.Type {
	case htmltok.CharToken:
		if isAllWhitespace(b.cur.Data) {
			return true
		}
	case htmltok.CommentToken:
		b.addComment()
		return true
	case htmltok.DoctypeToken:
		n := &Node{
			Type:        DoctypeNode,
			Data:        strings.ToLower(b.cur.Doctype.Name),
			PublicID:    b.cur.Doctype.PublicID,
			SystemID:    b.cur.Doctype.SystemID,
			ForceQuirks: b.cur.Doctype.ForceQuirks,
			Loc:         b.cur.Loc,
		}
		b.addChild(n)
		b.quirksMode = quirksModeFor(b.cur.Doctype)
		b.im = beforeHtmlIM
		return true
	}
	b.reportError(htmltok.KindBadDoctype, "missing doctype")
	b.im = beforeHtmlIM
	return false
}

// beforeHtmlModeFn implements "before html" (spec §4.3).
func beforeHtmlModeFn(b *Builder) bool {
	switch b.cur.Type {
	case htmltok.DoctypeToken:
		return true
	case htmltok.CommentToken:
		b.addComment()
		return true
	case htmltok.CharToken:
		if isAllWhitespace(b.cur.Data) {
			return true
		}
	case htmltok.StartTagToken:
		if b.cur.Data == "html" {
			b.addElement()
			b.im = beforeHeadIM
			return true
		}
	case htmltok.EndTagToken:
		switch b.cur.Data {
		case "head", "body", "html", "br":
		default:
			return true
		}
	}
	b.parseImpliedHTML()
	return false
}

func (b *Builder) parseImpliedHTML() {
	real, rsc := b.cur, b.selfClosing
	b.cur = htmltok.Token{Type: htmltok.StartTagToken, Data: "html", Loc: real.Loc}
	b.selfClosing = false
	b.addElement()
	b.im = beforeHeadIM
	b.cur, b.selfClosing = real, rsc
}

// beforeHeadModeFn implements "before head" (spec §4.3).
func beforeHeadModeFn(b *Builder) bool {
	switch b.cur.Type {
	case htmltok.CharToken:
		if isAllWhitespace(b.cur.Data) {
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
		case "head":
			b.addElement()
			b.headPointer = b.oe.top()
			b.im = inHeadIM
			return true
		}
	case htmltok.EndTagToken:
		switch b.cur.Data {
		case "head", "body", "html", "br":
		default:
			return true
		}
	}
	b.parseImpliedToken(htmltok.StartTagToken, "head")
	return false
}
