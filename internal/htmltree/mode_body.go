package htmltree

import (
	"strings"

	"github.com/dpotapov/go-markup/internal/htmltok"
	a "golang.org/x/net/html/atom"
)

// inBodyModeFn implements "in body" (spec §4.3), the largest and busiest
// insertion mode. Adapted from the teacher's inBodyIM, generalized from a
// persistent x/net/html.Node tree to this package's Node, whose Start signal
// is queued when it is pushed and whose End signal is queued when it is popped, and
// extended to cover the table/select/frameset branches the teacher's
// CHTML-fragment use case never exercised.
func inBodyModeFn(b *Builder) bool {
	switch b.cur.Type {
	case htmltok.DoctypeToken:
		return true
	case htmltok.CharToken:
		d := b.cur.Data
		switch n := b.top(); n.DataAtom {
		case a.Pre, a.Listing:
			if n.FirstChild == nil {
				if strings.HasPrefix(d, "\r") {
					d = d[1:]
				}
				if strings.HasPrefix(d, "\n") {
					d = d[1:]
				}
			}
		}
		d = strings.ReplaceAll(d, "\x00", "")
		if d == "" {
			return true
		}
		b.reconstructActiveFormattingElements()
		b.addText(d)
		if strings.Trim(d, whitespace) != "" {
			b.framesetOK = false
		}
		return true
	case htmltok.StartTagToken:
		return inBodyStartTag(b)
	case htmltok.EndTagToken:
		return inBodyEndTag(b)
	case htmltok.CommentToken:
		b.addComment()
		return true
	case htmltok.EOFToken:
		return true
	}
	return true
}

func inBodyStartTag(b *Builder) bool {
	switch b.cur.Data {
	case "html":
		return true
	case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title":
		return inHeadModeFn(b)
	case "body":
		return true
	case "frameset":
		return true
	case "address", "article", "aside", "blockquote", "center", "details", "dialog", "dir", "div", "dl",
		"fieldset", "figcaption", "figure", "footer", "header", "hgroup", "main", "menu", "nav", "ol", "p",
		"section", "summary", "ul":
		b.popUntil(buttonScope, a.P)
		b.addElement()
	case "h1", "h2", "h3", "h4", "h5", "h6":
		b.popUntil(buttonScope, a.P)
		switch n := b.top(); n.DataAtom {
		case a.H1, a.H2, a.H3, a.H4, a.H5, a.H6:
			b.pop()
		}
		b.addElement()
	case "pre", "listing":
		b.popUntil(buttonScope, a.P)
		b.addElement()
		b.framesetOK = false
	case "form":
		if b.form != nil && !b.oe.contains(a.Template) {
			return true
		}
		b.popUntil(buttonScope, a.P)
		b.addElement()
		if !b.oe.contains(a.Template) {
			b.form = b.top()
		}
	case "li":
		for i := len(b.oe) - 1; i >= 0; i-- {
			node := b.oe[i]
			switch node.DataAtom {
			case a.Li:
				b.generateImpliedEndTags("li")
				b.popTo(i)
			case a.Address, a.Div, a.P:
				continue
			default:
				if !isSpecialElement(node) {
					continue
				}
			}
			break
		}
		b.popUntil(buttonScope, a.P)
		b.addElement()
	case "dd", "dt":
		for i := len(b.oe) - 1; i >= 0; i-- {
			node := b.oe[i]
			switch node.DataAtom {
			case a.Dd, a.Dt:
				b.generateImpliedEndTags(node.Data)
				b.popTo(i)
			case a.Address, a.Div, a.P:
				continue
			default:
				if !isSpecialElement(node) {
					continue
				}
			}
			break
		}
		b.popUntil(buttonScope, a.P)
		b.addElement()
	case "plaintext":
		b.popUntil(buttonScope, a.P)
		b.addElement()
		b.tok.SetContentModel(htmltok.PLAINTEXT, "")
	case "button":
		b.popUntil(defaultScope, a.Button)
		b.reconstructActiveFormattingElements()
		b.addElement()
		b.framesetOK = false
	case "a":
		for i := len(b.afe) - 1; i >= 0 && b.afe[i].Type != scopeMarkerNode; i-- {
			if n := b.afe[i]; n.Type == ElementNode && n.DataAtom == a.A {
				b.adoptionAgency(a.A, "a")
				b.oe.remove(n)
				b.afe.remove(n)
				break
			}
		}
		b.reconstructActiveFormattingElements()
		b.addFormattingElement()
	case "b", "big", "code", "em", "font", "i", "s", "small", "strike", "strong", "tt", "u":
		b.reconstructActiveFormattingElements()
		b.addFormattingElement()
	case "nobr":
		b.reconstructActiveFormattingElements()
		if b.elementInScope(defaultScope, a.Nobr) {
			b.adoptionAgency(a.Nobr, "nobr")
			b.reconstructActiveFormattingElements()
		}
		b.addFormattingElement()
	case "applet", "marquee", "object":
		b.reconstructActiveFormattingElements()
		b.addElement()
		b.afe = append(b.afe, scopeMarker)
		b.framesetOK = false
	case "table":
		if b.quirksMode != Quirks {
			b.popUntil(buttonScope, a.P)
		}
		b.addElement()
		b.framesetOK = false
		b.im = inTableIM
	case "area", "br", "embed", "img", "keygen", "wbr":
		b.reconstructActiveFormattingElements()
		b.addElement()
		b.pop()
		b.acknowledgeSelfClosingTag()
		b.framesetOK = false
	case "input":
		b.reconstructActiveFormattingElements()
		b.addElement()
		b.pop()
		b.acknowledgeSelfClosingTag()
		for _, t := range b.cur.Attr {
			if t.Name == "type" && strings.EqualFold(t.Value, "hidden") {
				return true
			}
		}
		b.framesetOK = false
	case "param", "source", "track":
		b.addElement()
		b.pop()
		b.acknowledgeSelfClosingTag()
	case "hr":
		b.popUntil(buttonScope, a.P)
		b.addElement()
		b.pop()
		b.acknowledgeSelfClosingTag()
		b.framesetOK = false
	case "image":
		b.cur.Data = "img"
		return false
	case "textarea":
		b.addElement()
		b.tok.SetContentModel(htmltok.RCDATA, "textarea")
		b.setOriginalIM()
		b.framesetOK = false
		b.im = textIM
	case "xmp":
		b.popUntil(buttonScope, a.P)
		b.reconstructActiveFormattingElements()
		b.framesetOK = false
		b.addElement()
		b.tok.SetContentModel(htmltok.RAWTEXT, "xmp")
		b.setOriginalIM()
		b.im = textIM
	case "iframe":
		b.framesetOK = false
		b.addElement()
		b.tok.SetContentModel(htmltok.RAWTEXT, "iframe")
		b.setOriginalIM()
		b.im = textIM
	case "noembed":
		b.addElement()
		b.tok.SetContentModel(htmltok.RAWTEXT, "noembed")
		b.setOriginalIM()
		b.im = textIM
	case "noscript":
		b.reconstructActiveFormattingElements()
		b.addElement()
		b.tok.NextIsNotRawText()
	case "select":
		b.reconstructActiveFormattingElements()
		b.addElement()
		b.framesetOK = false
		switch b.im {
		case inTableIM, inCaptionIM, inTableBodyIM, inRowIM, inCellIM:
			b.im = inSelectInTableIM
		default:
			b.im = inSelectIM
		}
	case "optgroup", "option":
		if b.top().DataAtom == a.Option {
			b.pop()
		}
		b.reconstructActiveFormattingElements()
		b.addElement()
	case "rb", "rtc":
		if b.elementInScope(defaultScope, a.Ruby) {
			b.generateImpliedEndTags()
		}
		b.addElement()
	case "rp", "rt":
		if b.elementInScope(defaultScope, a.Ruby) {
			b.generateImpliedEndTags("rtc")
		}
		b.addElement()
	case "math", "svg":
		b.reconstructActiveFormattingElements()
		if b.cur.Data == "math" {
			adjustAttributeNames(b.cur.Attr, mathMLAttributeAdjustments)
		} else {
			adjustAttributeNames(b.cur.Attr, svgAttributeAdjustments)
		}
		ns := b.cur.Data
		b.addElement()
		b.top().Namespace = ns
		if b.selfClosing {
			b.pop()
			b.acknowledgeSelfClosingTag()
		}
	case "caption", "col", "colgroup", "frame", "head", "tbody", "td", "tfoot", "th", "thead", "tr":
		// Parse error: ignored per "any other start tag" not applying here.
		return true
	default:
		b.reconstructActiveFormattingElements()
		b.addElement()
	}
	return true
}

func inBodyEndTag(b *Builder) bool {
	switch b.cur.Data {
	case "body":
		if b.elementInScope(defaultScope, a.Body) {
			b.im = afterBodyIM
		}
		return true
	case "html":
		if b.elementInScope(defaultScope, a.Body) {
			b.parseImpliedToken(htmltok.EndTagToken, "body")
			return false
		}
		return true
	case "address", "article", "aside", "blockquote", "button", "center", "details", "dialog", "dir", "div",
		"dl", "fieldset", "figcaption", "figure", "footer", "header", "hgroup", "listing", "main", "menu",
		"nav", "ol", "pre", "section", "summary", "ul":
		tagAtom := a.Lookup([]byte(b.cur.Data))
		if !b.popUntil(defaultScope, tagAtom) {
			b.reportError(htmltok.KindUnmatchedEndTag, b.cur.Data)
		}
	case "form":
		if b.oe.contains(a.Template) {
			i := b.indexOfElementInScope(defaultScope, a.Form)
			if i == -1 {
				return true
			}
			b.generateImpliedEndTags()
			if b.oe[i].DataAtom != a.Form {
				return true
			}
			b.popUntil(defaultScope, a.Form)
		} else {
			node := b.form
			b.form = nil
			i := b.indexOfElementInScope(defaultScope, a.Form)
			if node == nil || i == -1 || b.oe[i] != node {
				return true
			}
			b.generateImpliedEndTags()
			b.oe.remove(node)
			b.emitEnd(node)
		}
	case "p":
		if !b.elementInScope(buttonScope, a.P) {
			b.parseImpliedToken(htmltok.StartTagToken, "p")
		}
		b.popUntil(buttonScope, a.P)
	case "li":
		b.popUntil(listItemScope, a.Li)
	case "dd", "dt":
		tagAtom := a.Lookup([]byte(b.cur.Data))
		b.popUntil(defaultScope, tagAtom)
	case "h1", "h2", "h3", "h4", "h5", "h6":
		b.popUntil(defaultScope, a.H1, a.H2, a.H3, a.H4, a.H5, a.H6)
	case "a", "b", "big", "code", "em", "font", "i", "nobr", "s", "small", "strike", "strong", "tt", "u":
		tagAtom := a.Lookup([]byte(b.cur.Data))
		b.adoptionAgency(tagAtom, b.cur.Data)
	case "applet", "marquee", "object":
		tagAtom := a.Lookup([]byte(b.cur.Data))
		if b.popUntil(defaultScope, tagAtom) {
			b.clearActiveFormattingElements()
		}
	case "br":
		b.cur.Type = htmltok.StartTagToken
		return false
	case "template":
		return inHeadModeFn(b)
	default:
		tagAtom := a.Lookup([]byte(b.cur.Data))
		b.anyOtherEndTag(tagAtom, b.cur.Data)
	}
	return true
}

// textModeFn implements the "text" insertion mode used for RCDATA, RAWTEXT
// and script-data elements (spec §4.3).
func textModeFn(b *Builder) bool {
	switch b.cur.Type {
	case htmltok.EOFToken:
		b.pop()
	case htmltok.CharToken:
		d := b.cur.Data
		if n := b.oe.top(); n != nil && n.DataAtom == a.Textarea && n.FirstChild == nil {
			if strings.HasPrefix(d, "\r") {
				d = d[1:]
			}
			if strings.HasPrefix(d, "\n") {
				d = d[1:]
			}
		}
		if d == "" {
			return true
		}
		b.addText(d)
		return true
	case htmltok.EndTagToken:
		b.pop()
	}
	b.im = b.originalIM
	return b.cur.Type == htmltok.EndTagToken
}
