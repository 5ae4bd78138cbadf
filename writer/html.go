// Package writer implements the output stage of the parsing system (spec
// §4.5): given structural signals, it emits their canonical textual form.
// It knows nothing about Signal, Location, or any root-package type — it is
// a small set of formatting primitives, keeping only the state they need (a
// raw-text stack, a pending start tag), that the root package's
// WriteHTML/WriteXML drive one signal at a time, the same separation etree
// keeps between its Document tree and its WriteSettings-driven encoder.
package writer

import (
	"bufio"
	"io"
	"strings"
)

// Attr is a single name/value pair to serialize. It carries no namespace
// information for HTML (HTML has none); XML writing resolves Name to its
// prefixed form before calling into this package.
type Attr struct {
	Name  string
	Value string
}

// voidElements lists the HTML elements that never have an end tag (spec
// §4.5). Matches the HTML5 "void elements" list.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// IsVoidElement reports whether name is an HTML void element, for which
// EndElement writes no end tag.
func IsVoidElement(name string) bool {
	return voidElements[strings.ToLower(name)]
}

// rawTextElements never have their character content entity-escaped (spec
// §4.5): whatever text signals arrived between their start and end tags are
// written verbatim.
var rawTextElements = map[string]bool{
	"script": true, "style": true,
}

// IsRawTextElement reports whether name's children should be written
// without entity escaping.
func IsRawTextElement(name string) bool {
	return rawTextElements[strings.ToLower(name)]
}

// HTMLWriter serializes a sequence of signal-driven calls to an
// io.Writer, tracking only the minimal state needed to decide whether the
// element currently open is a raw-text element.
type HTMLWriter struct {
	w       *bufio.Writer
	rawText []bool // parallel to the caller's open-element stack
	err     error
}

// NewHTMLWriter wraps w.
func NewHTMLWriter(w io.Writer) *HTMLWriter {
	return &HTMLWriter{w: bufio.NewWriter(w)}
}

// Flush flushes any buffered output and returns the first error
// encountered by any Write call, if any.
func (hw *HTMLWriter) Flush() error {
	if hw.err != nil {
		return hw.err
	}
	return hw.w.Flush()
}

func (hw *HTMLWriter) write(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = hw.w.WriteString(s)
}

// StartElement writes "<name attr="value" ...>" and, unless name is a void
// element, pushes a raw-text tracking frame the matching EndElement pops.
func (hw *HTMLWriter) StartElement(name string, attrs []Attr) {
	hw.write("<")
	hw.write(name)
	for _, a := range attrs {
		hw.write(" ")
		hw.write(a.Name)
		hw.write(`="`)
		hw.write(EscapeAttr(a.Value))
		hw.write(`"`)
	}
	hw.write(">")
	if !IsVoidElement(name) {
		hw.rawText = append(hw.rawText, IsRawTextElement(name))
	}
}

// EndElement writes "</name>" unless name is a void element, which the
// HTML5 spec forbids from ever having a matching end tag.
func (hw *HTMLWriter) EndElement(name string) {
	if IsVoidElement(name) {
		return
	}
	if n := len(hw.rawText); n > 0 {
		hw.rawText = hw.rawText[:n-1]
	}
	hw.write("</")
	hw.write(name)
	hw.write(">")
}

// Text writes character data, escaping it unless the innermost open element
// is a raw-text element (script/style).
func (hw *HTMLWriter) Text(s string) {
	if len(hw.rawText) > 0 && hw.rawText[len(hw.rawText)-1] {
		hw.write(s)
		return
	}
	hw.write(EscapeText(s))
}

// Comment writes "<!--data-->" verbatim; data is assumed not to contain
// "--", as the tokenizer that produced it would have reported
// BadCharacterReference-adjacent errors for that case on the read side.
func (hw *HTMLWriter) Comment(data string) {
	hw.write("<!--")
	hw.write(data)
	hw.write("-->")
}

// Doctype writes "<!DOCTYPE name>" or the fuller public/system form.
func (hw *HTMLWriter) Doctype(name, publicID, systemID string) {
	hw.write("<!DOCTYPE ")
	hw.write(name)
	switch {
	case publicID != "" && systemID != "":
		hw.write(` PUBLIC "`)
		hw.write(publicID)
		hw.write(`" "`)
		hw.write(systemID)
		hw.write(`"`)
	case publicID != "":
		hw.write(` PUBLIC "`)
		hw.write(publicID)
		hw.write(`"`)
	case systemID != "":
		hw.write(` SYSTEM "`)
		hw.write(systemID)
		hw.write(`"`)
	}
	hw.write(">")
}

var htmlTextEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var htmlAttrEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
)

// EscapeText escapes '&', '<', '>' (spec §4.5).
func EscapeText(s string) string {
	return htmlTextEscaper.Replace(s)
}

// EscapeAttr escapes '&' and '"' (spec §4.5) for a double-quoted attribute
// value.
func EscapeAttr(s string) string {
	return htmlAttrEscaper.Replace(s)
}
