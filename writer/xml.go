package writer

import (
	"bufio"
	"io"
	"strings"
)

// XMLWriter serializes signal-driven calls for the XML writer (spec §4.5).
// Unlike HTML, every element can self-close, so StartElement defers writing
// its closing ">" until either a child arrives (forcing the open form) or
// EndElement arrives immediately after (collapsing to the self-closing
// form), mirroring etree's WriteSettings.UseSelfClosingTags behavior.
type XMLWriter struct {
	w    *bufio.Writer
	err  error
	self bool // whether self-closing form is enabled at all

	// pendingClose is true while a StartElement's ">" has not yet been
	// committed, i.e. we don't yet know if it will self-close.
	pendingClose bool
}

// NewXMLWriter wraps w. If selfClosing is true, an element with no children
// is written as "<name/>" instead of "<name></name>" (spec §4.5).
func NewXMLWriter(w io.Writer, selfClosing bool) *XMLWriter {
	return &XMLWriter{w: bufio.NewWriter(w), self: selfClosing}
}

// Flush flushes buffered output and returns the first write error seen.
func (xw *XMLWriter) Flush() error {
	xw.commit()
	if xw.err != nil {
		return xw.err
	}
	return xw.w.Flush()
}

func (xw *XMLWriter) write(s string) {
	if xw.err != nil {
		return
	}
	_, xw.err = xw.w.WriteString(s)
}

// commit closes a still-open start tag in its non-self-closing form; called
// whenever something other than a matching EndElement follows StartElement.
func (xw *XMLWriter) commit() {
	if xw.pendingClose {
		xw.write(">")
		xw.pendingClose = false
	}
}

// Decl writes the XML declaration.
func (xw *XMLWriter) Decl(version, encoding, standalone string) {
	xw.commit()
	if version == "" {
		version = "1.0"
	}
	xw.write("<?xml version=\"")
	xw.write(version)
	xw.write("\"")
	if encoding != "" {
		xw.write(" encoding=\"")
		xw.write(encoding)
		xw.write("\"")
	}
	if standalone != "" {
		xw.write(" standalone=\"")
		xw.write(standalone)
		xw.write("\"")
	}
	xw.write("?>")
}

// StartElement writes "<name attr="value" ...", leaving the tag open so a
// following EndElement can collapse it to self-closing form.
func (xw *XMLWriter) StartElement(name string, attrs []Attr) {
	xw.commit()
	xw.write("<")
	xw.write(name)
	for _, a := range attrs {
		xw.write(" ")
		xw.write(a.Name)
		xw.write(`="`)
		xw.write(EscapeXMLAttr(a.Value))
		xw.write(`"`)
	}
	xw.pendingClose = true
}

// EndElement writes "/>" if name's StartElement is still pending (no
// children were written) and self-closing is enabled, else "</name>".
func (xw *XMLWriter) EndElement(name string) {
	if xw.pendingClose {
		xw.pendingClose = false
		if xw.self {
			xw.write("/>")
			return
		}
		xw.write(">")
	}
	xw.write("</")
	xw.write(name)
	xw.write(">")
}

// Text writes escaped character data.
func (xw *XMLWriter) Text(s string) {
	xw.commit()
	xw.write(EscapeXMLText(s))
}

// Comment writes "<!--data-->" verbatim.
func (xw *XMLWriter) Comment(data string) {
	xw.commit()
	xw.write("<!--")
	xw.write(data)
	xw.write("-->")
}

// PI writes "<?target data?>".
func (xw *XMLWriter) PI(target, data string) {
	xw.commit()
	xw.write("<?")
	xw.write(target)
	if data != "" {
		xw.write(" ")
		xw.write(data)
	}
	xw.write("?>")
}

// CDATA writes "<![CDATA[data]]>" when data contains characters that would
// be awkward to escape as text (callers decide when to prefer this form;
// the writer itself always defaults to escaped Text).
func (xw *XMLWriter) CDATA(data string) {
	xw.commit()
	xw.write("<![CDATA[")
	xw.write(data)
	xw.write("]]>")
}

var xmlTextEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var xmlAttrEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&apos;",
	"<", "&lt;",
)

// EscapeXMLText escapes '&', '<', '>' for XML character data.
func EscapeXMLText(s string) string {
	return xmlTextEscaper.Replace(s)
}

// EscapeXMLAttr escapes '&', '"', '\'' and '<' for a double-quoted XML
// attribute value (spec §4.5: XML additionally escapes the apostrophe,
// matching etree's attribute-escaping table).
func EscapeXMLAttr(s string) string {
	return xmlAttrEscaper.Replace(s)
}
