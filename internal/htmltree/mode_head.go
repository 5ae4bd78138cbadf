package htmltree

import (
	"github.com/dpotapov/go-markup/internal/htmltok"
	a "golang.org/x/net/html/atom"
)

// inHeadModeFn implements "in head" (spec §4.3).
func inHeadModeFn(b *Builder) bool {
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
		case "base", "basefont", "bgsound", "link", "meta":
			b.addElement()
			b.pop()
			b.acknowledgeSelfClosingTag()
			return true
		case "title":
			b.addElement()
			b.tok.SetContentModel(htmltok.RCDATA, "title")
			b.setOriginalIM()
			b.im = textIM
			return true
		case "noscript":
			b.addElement()
			b.im = inHeadNoscriptIM
			return true
		case "noframes", "style":
			b.addElement()
			b.tok.SetContentModel(htmltok.RAWTEXT, b.cur.Data)
			b.setOriginalIM()
			b.im = textIM
			return true
		case "script":
			b.addElement()
			b.tok.SetContentModel(htmltok.ScriptData, "script")
			b.setOriginalIM()
			b.im = textIM
			return true
		case "template":
			b.addElement()
			b.afe = append(b.afe, scopeMarker)
			b.framesetOK = false
			b.pushTemplateIM(inTemplateIM)
			b.im = inTemplateIM
			return true
		case "head":
			return true
		}
	case htmltok.EndTagToken:
		switch b.cur.Data {
		case "head":
			b.pop()
			b.im = afterHeadIM
			return true
		case "template":
			if b.oe.contains(a.Template) {
				b.generateImpliedEndTags()
				b.popUntil(defaultScope, a.Template)
				b.clearActiveFormattingElements()
				b.popTemplateIM()
				b.resetInsertionModeAppropriately()
			}
			return true
		case "body", "html", "br":
			b.pop()
			b.im = afterHeadIM
			return false
		default:
			return true
		}
	}
	b.pop()
	b.im = afterHeadIM
	return false
}

// inHeadNoscriptModeFn implements "in head noscript" (spec §4.3): reached
// only with scripting disabled, since SetContentModel's NextIsNotRawText
// hook keeps <noscript> content as regular markup.
func inHeadNoscriptModeFn(b *Builder) bool {
	switch b.cur.Type {
	case htmltok.DoctypeToken:
		return true
	case htmltok.StartTagToken:
		switch b.cur.Data {
		case "html":
			return inBodyModeFn(b)
		case "basefont", "bgsound", "link", "meta", "noframes", "style":
			return inHeadModeFn(b)
		case "head", "noscript":
			return true
		}
	case htmltok.EndTagToken:
		switch b.cur.Data {
		case "noscript":
			b.pop()
			b.im = inHeadIM
			return true
		case "br":
		default:
			return true
		}
	case htmltok.CharToken:
		if isAllWhitespace(b.cur.Data) {
			return inHeadModeFn(b)
		}
	case htmltok.CommentToken:
		return inHeadModeFn(b)
	}
	b.pop()
	b.im = inHeadIM
	return false
}

// afterHeadModeFn implements "after head" (spec §4.3).
func afterHeadModeFn(b *Builder) bool {
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
		case "body":
			b.addElement()
			b.framesetOK = false
			b.im = inBodyIM
			return true
		case "frameset":
			b.addElement()
			b.im = inFramesetIM
			return true
		case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title":
			b.oe = append(b.oe, b.headPointer)
			defer func() { b.oe.remove(b.headPointer) }()
			return inHeadModeFn(b)
		case "head":
			return true
		}
	case htmltok.EndTagToken:
		switch b.cur.Data {
		case "template":
			return inHeadModeFn(b)
		case "body", "html", "br":
		default:
			return true
		}
	}
	b.parseImpliedToken(htmltok.StartTagToken, "body")
	b.framesetOK = true
	return false
}
