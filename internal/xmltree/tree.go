// Package xmltree implements the XML nesting tracker (spec §4.4): a much
// simpler sibling of htmltree's insertion-mode machine. XML has no content
// model ambiguity and no adoption agency, so well-formedness only requires
// an open-elements stack matched against each end tag; elements never need
// to stay reachable after they're emitted, so Builder emits a signal the
// moment it knows one, exactly mirroring the input order.
package xmltree

import "github.com/dpotapov/go-markup/internal/xmltok"

// Signal mirrors markup.Signal without importing the root package, the same
// cycle-avoidance trick htmltree.Signal uses.
type Signal struct {
	Kind int
	Loc  xmltok.Location
	Name string
	Attr []xmltok.Attribute
	Text string

	PITarget string
	PIData   string

	Version    string
	Encoding   string
	Standalone string

	Error *BuildError
}

// Signal kinds, ordinal-matched against markup.SignalKind.
const (
	SigStartElement = iota
	SigEndElement
	SigText
	SigComment
	SigDoctype
	SigXMLDecl
	SigPI
	SigError
)

// BuildError mirrors markup.ParseError fields.
type BuildError struct {
	Kind   int
	Detail string
	Loc    xmltok.Location
}

type openElement struct {
	name string
	loc  xmltok.Location
}

// Builder matches end tags against the open-elements stack and produces a
// bounded queue of Signals.
type Builder struct {
	tok   *xmltok.Tokenizer
	stack []openElement
	out   []Signal
	done  bool
}

// NewBuilder constructs a Builder over tok.
func NewBuilder(tok *xmltok.Tokenizer) *Builder {
	return &Builder{tok: tok}
}

// Next drains the queue if non-empty, else pulls tokens until at least one
// Signal is produced or the document is fully consumed.
func (b *Builder) Next() (Signal, bool) {
	for len(b.out) == 0 && !b.done {
		b.step()
	}
	if len(b.out) == 0 {
		return Signal{}, false
	}
	s := b.out[0]
	b.out = b.out[1:]
	return s, true
}

func (b *Builder) emit(s Signal) {
	b.out = append(b.out, s)
}

func (b *Builder) reportError(loc xmltok.Location, kind int, detail string) {
	b.emit(Signal{Kind: SigError, Loc: loc, Error: &BuildError{Kind: kind, Detail: detail, Loc: loc}})
}

func (b *Builder) step() {
	tok := b.tok.Next()
	switch tok.Type {
	case xmltok.CharToken:
		b.emit(Signal{Kind: SigText, Loc: tok.Loc, Text: tok.Data})
	case xmltok.CommentToken:
		b.emit(Signal{Kind: SigComment, Loc: tok.Loc, Text: tok.Data})
	case xmltok.DoctypeToken:
		b.emit(Signal{Kind: SigDoctype, Loc: tok.Loc, Name: doctypeName(tok.Data)})
	case xmltok.PIToken:
		b.emit(Signal{Kind: SigPI, Loc: tok.Loc, PITarget: tok.Data, PIData: tok.PIContent})
	case xmltok.XMLDeclToken:
		b.emit(Signal{Kind: SigXMLDecl, Loc: tok.Loc, Version: tok.Version, Encoding: tok.Encoding, Standalone: tok.Standalone})
	case xmltok.StartTagToken:
		b.startElement(tok)
	case xmltok.EndTagToken:
		b.endElement(tok)
	case xmltok.EOFToken:
		b.closeAllAtEOF(tok.Loc)
		b.done = true
	}
}

func (b *Builder) startElement(tok xmltok.Token) {
	b.emit(Signal{Kind: SigStartElement, Loc: tok.Loc, Name: tok.Data, Attr: tok.Attr})
	if tok.SelfClosing {
		b.emit(Signal{Kind: SigEndElement, Loc: tok.Loc, Name: tok.Data})
		return
	}
	b.stack = append(b.stack, openElement{name: tok.Data, loc: tok.Loc})
}

// endElement matches tok against the stack top (spec §4.4). A mismatch
// deeper in the stack synthesizes End_element signals for every element
// still open above the match; a name that never appears in the stack is
// reported and otherwise ignored, since there is nothing to close.
func (b *Builder) endElement(tok xmltok.Token) {
	if len(b.stack) == 0 {
		b.reportError(tok.Loc, xmltok.KindUnmatchedEndTag, tok.Data)
		return
	}
	idx := -1
	for i := len(b.stack) - 1; i >= 0; i-- {
		if b.stack[i].name == tok.Data {
			idx = i
			break
		}
	}
	if idx == -1 {
		b.reportError(tok.Loc, xmltok.KindUnmatchedEndTag, tok.Data)
		return
	}
	if idx != len(b.stack)-1 {
		b.reportError(tok.Loc, xmltok.KindMisnestedTag, tok.Data)
	}
	for i := len(b.stack) - 1; i >= idx; i-- {
		b.emit(Signal{Kind: SigEndElement, Loc: tok.Loc, Name: b.stack[i].name})
	}
	b.stack = b.stack[:idx]
}

func (b *Builder) closeAllAtEOF(loc xmltok.Location) {
	for i := len(b.stack) - 1; i >= 0; i-- {
		b.reportError(loc, xmltok.KindUnmatchedStartTag, b.stack[i].name)
		b.emit(Signal{Kind: SigEndElement, Loc: loc, Name: b.stack[i].name})
	}
	b.stack = nil
}

// doctypeName extracts the root element name from a raw DOCTYPE body (the
// tokenizer keeps the rest, including any internal subset, unparsed).
func doctypeName(body string) string {
	i := 0
	for i < len(body) && !isSpace(body[i]) {
		i++
	}
	return body[:i]
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}
