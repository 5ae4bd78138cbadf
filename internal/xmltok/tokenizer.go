package xmltok

import (
	"strings"

	"github.com/dpotapov/go-markup/internal/streamio"
)

const streamEOF = streamio.EOF

// ErrorSink receives every parse error detected during tokenization.
type ErrorSink func(loc Location, kind int, detail string)

// state is the tokenizer's current scanning context. Unlike htmltok, XML
// needs no content-model-driven states: markup is always recognized, so
// the state machine only tracks where within a tag/markup construct we are.
type state int

const (
	textState state = iota
	tagOpenState
	endTagState
	tagNameState
	beforeAttrNameState
	attrNameState
	beforeAttrValueState
	attrValueDQState
	attrValueSQState
	afterTagState // after a complete start tag's attributes, awaiting '/' or '>'
	markupDeclState
	commentState
	cdataState
	piState
)

// Tokenizer is the XML scalar-level scanner (spec §4.4).
type Tokenizer struct {
	src   *streamio.Stream
	state state

	report  ErrorSink
	pending []Token

	text    strings.Builder
	textLoc Location
	hasText bool

	tagLoc   Location
	tagName  strings.Builder
	tagIsEnd bool
	attrs    []Attribute
	selfClose bool

	attrName  strings.Builder
	attrValue strings.Builder
	attrLoc   Location
	quote     rune

	bogus strings.Builder

	// allowCDATA permits a literal "<![CDATA[" section; XML always allows
	// it (unlike HTML, which restricts it to foreign content), so this is
	// always true but kept for symmetry with htmltok's dispatcher shape.
	allowCDATA bool

	sawXMLDecl bool
	seenAnyTag bool
}

// New constructs a Tokenizer reading scalars from src.
func New(src *streamio.Stream, report ErrorSink) *Tokenizer {
	if report == nil {
		report = func(Location, int, string) {}
	}
	return &Tokenizer{src: src, report: report, state: textState, allowCDATA: true}
}

func (t *Tokenizer) errf(kind int, detail string) {
	t.report(t.here(), kind, detail)
}

func (t *Tokenizer) here() Location {
	l, c := t.src.Location()
	return Location{Line: l, Column: c}
}

func (t *Tokenizer) emit(tok Token) {
	t.pending = append(t.pending, tok)
}

func (t *Tokenizer) startText() {
	if !t.hasText {
		t.hasText = true
		t.textLoc = t.here()
	}
}

func (t *Tokenizer) flushText() {
	if t.hasText && t.text.Len() > 0 {
		t.emit(Token{Type: CharToken, Loc: t.textLoc, Data: t.text.String()})
	}
	t.text.Reset()
	t.hasText = false
}

// Next runs the state machine until it has a token to return.
func (t *Tokenizer) Next() Token {
	for {
		if len(t.pending) > 0 {
			tok := t.pending[0]
			t.pending = t.pending[1:]
			return tok
		}
		if !t.step() {
			return Token{Type: EOFToken, Loc: t.here()}
		}
	}
}

func (t *Tokenizer) step() bool {
	switch t.state {
	case textState:
		return t.stepText()
	case tagOpenState:
		return t.stepTagOpen()
	case endTagState:
		return t.stepEndTag()
	case tagNameState:
		return t.stepTagName()
	case beforeAttrNameState, attrNameState, beforeAttrValueState, attrValueDQState, attrValueSQState, afterTagState:
		return t.stepAttr()
	case markupDeclState:
		return t.stepMarkupDecl()
	case commentState:
		return t.stepComment()
	case cdataState:
		return t.stepCDATA()
	case piState:
		return t.stepPI()
	default:
		return t.stepText()
	}
}

func (t *Tokenizer) stepText() bool {
	c, err := t.src.Next()
	if c == streamEOF {
		t.flushText()
		return err != nil || len(t.pending) > 0
	}
	if c == '&' {
		s, bad := t.consumeCharRef()
		if bad {
			t.errf(KindBadCharacterReference, "")
		}
		t.startText()
		t.text.WriteString(s)
		return true
	}
	if c == '<' {
		t.flushText()
		t.state = tagOpenState
		return true
	}
	t.startText()
	t.text.WriteRune(c)
	return true
}

func (t *Tokenizer) stepTagOpen() bool {
	c, _ := t.src.Next()
	switch {
	case c == '/':
		t.state = endTagState
	case c == '?':
		t.tagLoc = t.here()
		t.bogus.Reset()
		t.state = piState
	case c == '!':
		t.tagLoc = t.here()
		t.state = markupDeclState
	case isNameStart(c):
		t.src.PushBack(c)
		t.tagLoc = t.here()
		t.tagName.Reset()
		t.attrs = nil
		t.selfClose = false
		t.tagIsEnd = false
		t.state = tagNameState
	case c == streamEOF:
		t.startText()
		t.text.WriteRune('<')
		t.flushText()
		t.state = textState
	default:
		t.errf(KindUnexpectedCharacter, "<")
		t.startText()
		t.text.WriteRune('<')
		if c != streamEOF {
			t.src.PushBack(c)
		}
		t.state = textState
	}
	return true
}

func (t *Tokenizer) stepEndTag() bool {
	c, _ := t.src.Next()
	if isNameStart(c) {
		t.src.PushBack(c)
		t.tagLoc = t.here()
		t.tagName.Reset()
		t.tagIsEnd = true
		t.state = tagNameState
		return true
	}
	t.errf(KindUnexpectedCharacter, "bogus end tag")
	if c != streamEOF {
		t.src.PushBack(c)
	}
	t.state = textState
	return true
}

func (t *Tokenizer) stepTagName() bool {
	c, _ := t.src.Next()
	switch {
	case isNameChar(c):
		t.tagName.WriteRune(c)
	case isXMLWhitespace(c):
		if t.tagIsEnd {
			t.state = afterTagState
		} else {
			t.state = beforeAttrNameState
		}
	case c == '/':
		t.selfClose = true
		t.state = afterTagState
	case c == '>':
		t.emitTag()
		t.state = textState
	case c == streamEOF:
		t.errf(KindUnexpectedEOF, "in tag name")
		t.state = textState
	default:
		t.errf(KindUnexpectedCharacter, "in tag name")
	}
	return true
}

func (t *Tokenizer) emitTag() {
	name := t.tagName.String()
	if t.tagIsEnd {
		t.emit(Token{Type: EndTagToken, Loc: t.tagLoc, Data: name})
		return
	}
	t.emit(Token{Type: StartTagToken, Loc: t.tagLoc, Data: name, Attr: t.dedupedAttrs(), SelfClosing: t.selfClose})
	t.seenAnyTag = true
}

func (t *Tokenizer) dedupedAttrs() []Attribute {
	if len(t.attrs) < 2 {
		return t.attrs
	}
	seen := make(map[string]bool, len(t.attrs))
	out := t.attrs[:0:0]
	for _, at := range t.attrs {
		if seen[at.Name] {
			t.errf(KindDuplicateAttribute, at.Name)
			continue
		}
		seen[at.Name] = true
		out = append(out, at)
	}
	return out
}

func isXMLWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// isNameStart and isNameChar approximate the XML 1.0 Name production: ASCII
// letters, ':' and '_' (plus '-', '.' and digits after the first rune), and
// every rune from U+00C0 up, accepted without a Unicode category check.
func isNameStart(r rune) bool {
	switch {
	case r == ':' || r == '_':
		return true
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		return true
	case r >= 0x00C0:
		return true
	}
	return false
}

func isNameChar(r rune) bool {
	if isNameStart(r) {
		return true
	}
	switch {
	case r == '-' || r == '.':
		return true
	case r >= '0' && r <= '9':
		return true
	}
	return false
}
