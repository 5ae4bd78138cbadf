package htmltok

import (
	"strings"

	"github.com/dpotapov/go-markup/internal/streamio"
)

const streamEOF = streamio.EOF

// ErrorSink receives every parse error detected during tokenization,
// mirroring the Reporter shape in the root package without creating an
// import cycle.
type ErrorSink func(loc Location, kind int, detail string)

// Error kind codes, matching markup.ErrorKind's ordinal values one-to-one;
// the root package translates these back into markup.ErrorKind so htmltok
// never has to import it.
const (
	KindBadByteSequence = iota
	KindUnexpectedCharacter
	KindUnexpectedEOF
	KindUnmatchedStartTag
	KindUnmatchedEndTag
	KindMisnestedTag
	KindBadDoctype
	KindDuplicateAttribute
	KindBadCharacterReference
	KindBadNamespace
)

// Tokenizer is the Mealy machine described in spec §4.2: state × scalar →
// (state, emit-list). Mode switches arrive from the tree builder via
// SetContentModel; that coupling is unidirectional (spec §4.2).
type Tokenizer struct {
	src   *streamio.Stream
	state state
	model ContentModel
	// rawtextEndTag is the tag name the RAWTEXT/RCDATA/ScriptData family is
	// watching for to know when an end tag actually closes the element,
	// set by SetContentModel alongside the model itself.
	rawtextEndTag string
	// suppressRawText disables the content-model switch for the very next
	// start tag only (tree builder calls this for <noscript> with
	// scripting disabled, spec reference in chtml/html parse.go).
	suppressRawText bool

	report ErrorSink

	pending []Token

	// scratch accumulates char data between markup boundaries.
	text    strings.Builder
	textLoc Location
	hasText bool

	// scratch for the tag currently being assembled.
	tagLoc      Location
	tagName     strings.Builder
	tagIsEnd    bool
	attrs       []Attribute
	selfClosing bool

	// scratch for bogus comments / comments / doctype, shared across their
	// respective state families.
	bogusLoc Location
	bogus    strings.Builder

	curAttrName  strings.Builder
	curAttrValue strings.Builder
	curAttrLoc   Location
	quote        rune

	doctypeLoc  Location
	doctype     DoctypeData
	doctypeBuf  strings.Builder
}

// New constructs a Tokenizer reading scalars from src.
func New(src *streamio.Stream, report ErrorSink) *Tokenizer {
	if report == nil {
		report = func(Location, int, string) {}
	}
	return &Tokenizer{src: src, report: report, state: dataState}
}

// SetContentModel is called by the tree builder when it opens an element
// whose content model is not Data (script, style, title, textarea, iframe,
// noscript, noframes, plaintext, xmp). endTag is the tag name that must
// match for an end tag to be recognized while in this model.
func (t *Tokenizer) SetContentModel(m ContentModel, endTag string) {
	if t.suppressRawText {
		t.suppressRawText = false
		return
	}
	t.model = m
	t.rawtextEndTag = strings.ToLower(endTag)
	switch m {
	case RCDATA:
		t.state = rcdataState
	case RAWTEXT:
		t.state = rawtextState
	case ScriptData:
		t.state = scriptDataState
	case PLAINTEXT:
		t.state = plaintextState
	default:
		t.state = dataState
	}
}

// NextIsNotRawText suppresses the upcoming SetContentModel call once,
// implementing the "don't let the tokenizer go into raw text mode" rule the
// tree builder applies for <noscript> when scripting is disabled.
func (t *Tokenizer) NextIsNotRawText() {
	t.suppressRawText = true
}

func (t *Tokenizer) errf(kind int, detail string) {
	t.report(t.here(), kind, detail)
}

// Next runs the state machine until it has a token to return, or until the
// input is exhausted (returns an EOFToken exactly once, thereafter keeps
// returning EOFToken).
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

func (t *Tokenizer) appendText(s string) {
	t.startText()
	t.text.WriteString(s)
}

// step executes exactly one state transition, emitting zero or more tokens
// via t.emit, and returns false once EOF has been fully drained.
func (t *Tokenizer) step() bool {
	switch t.state {
	case dataState, rcdataState, rawtextState, scriptDataState, plaintextState:
		return t.stepText()
	case tagOpenState:
		return t.stepTagOpen()
	case endTagOpenState:
		return t.stepEndTagOpen()
	case tagNameState:
		return t.stepTagName()
	case rcdataLessThanSignState, rawtextLessThanSignState, scriptDataLessThanSignState:
		return t.stepLessThanSign()
	case rcdataEndTagOpenState, rawtextEndTagOpenState, scriptDataEndTagOpenState:
		return t.stepEndTagOpenRaw()
	case rcdataEndTagNameState, rawtextEndTagNameState, scriptDataEndTagNameState:
		return t.stepEndTagNameRaw()
	case scriptDataEscapeStartState, scriptDataEscapeStartDashState,
		scriptDataEscapedState, scriptDataEscapedDashState, scriptDataEscapedDashDashState,
		scriptDataEscapedLessThanSignState, scriptDataEscapedEndTagOpenState, scriptDataEscapedEndTagNameState,
		scriptDataDoubleEscapeStartState, scriptDataDoubleEscapedState, scriptDataDoubleEscapedDashState,
		scriptDataDoubleEscapedDashDashState, scriptDataDoubleEscapedLessThanSignState, scriptDataDoubleEscapeEndState:
		return t.stepScriptEscaped()
	case beforeAttributeNameState, attributeNameState, afterAttributeNameState,
		beforeAttributeValueState, attributeValueDoubleQuotedState, attributeValueSingleQuotedState,
		attributeValueUnquotedState, afterAttributeValueQuotedState, selfClosingStartTagState:
		return t.stepAttribute()
	case bogusCommentState:
		return t.stepBogusComment()
	case markupDeclarationOpenState:
		return t.stepMarkupDeclarationOpen()
	case commentStartState, commentStartDashState, commentState,
		commentLessThanSignState, commentLessThanSignBangState, commentLessThanSignBangDashState,
		commentLessThanSignBangDashDashState, commentEndDashState, commentEndState, commentEndBangState:
		return t.stepComment()
	case doctypeState, beforeDoctypeNameState, doctypeNameState, afterDoctypeNameState,
		afterDoctypePublicKeywordState, beforeDoctypePublicIdentifierState,
		doctypePublicIdentifierDoubleQuotedState, doctypePublicIdentifierSingleQuotedState,
		afterDoctypePublicIdentifierState, betweenDoctypePublicAndSystemIdentifiersState,
		afterDoctypeSystemKeywordState, beforeDoctypeSystemIdentifierState,
		doctypeSystemIdentifierDoubleQuotedState, doctypeSystemIdentifierSingleQuotedState,
		afterDoctypeSystemIdentifierState, bogusDoctypeState:
		return t.stepDoctype()
	case cdataSectionState, cdataSectionBracketState, cdataSectionEndState:
		return t.stepCDATA()
	default:
		return t.stepText()
	}
}

// --- Data / RCDATA / RAWTEXT / ScriptData / PLAINTEXT ---

func (t *Tokenizer) stepText() bool {
	c, err := t.src.Next()
	if c == streamEOF {
		t.flushText()
		return err != nil || t.hasMoreAfterEOF()
	}
	if c == 0 {
		if t.state == dataState || t.state == rcdataState {
			t.errf(KindUnexpectedCharacter, "NUL")
			t.appendText("�")
			return true
		}
		// RAWTEXT/ScriptData/PLAINTEXT pass NUL through unmodified.
	}
	if c == '&' && (t.state == dataState || t.state == rcdataState) {
		s, bad := t.consumeCharRef(false)
		if bad {
			t.errf(KindBadCharacterReference, "")
		}
		t.appendText(s)
		return true
	}
	if c == '<' && t.state != plaintextState {
		if t.state == dataState {
			t.flushText()
		}
		switch t.state {
		case dataState:
			t.state = tagOpenState
		case rcdataState:
			t.state = rcdataLessThanSignState
		case rawtextState:
			t.state = rawtextLessThanSignState
		case scriptDataState:
			t.state = scriptDataLessThanSignState
		}
		return true
	}
	t.appendText(string(c))
	return true
}

// hasMoreAfterEOF lets the outer Next loop terminate cleanly: once we've
// flushed any trailing text, there's nothing more this step can produce.
func (t *Tokenizer) hasMoreAfterEOF() bool { return len(t.pending) > 0 }

// --- Tag open / names ---

func (t *Tokenizer) stepTagOpen() bool {
	c, _ := t.src.Next()
	switch {
	case c == '!':
		t.state = markupDeclarationOpenState
	case c == '/':
		t.state = endTagOpenState
	case isASCIIAlpha(c):
		t.src.PushBack(c)
		t.tagLoc = t.here()
		t.tagName.Reset()
		t.attrs = nil
		t.selfClosing = false
		t.state = tagNameState
		t.tagIsEnd = false
	case c == '?':
		t.errf(KindUnexpectedCharacter, "?")
		t.src.PushBack(c)
		t.bogusLoc = t.here()
		t.bogus.Reset()
		t.state = bogusCommentState
	case c == streamEOF:
		t.appendText("<")
		t.flushText()
		t.state = dataState
	default:
		t.errf(KindUnexpectedCharacter, "<")
		t.appendText("<")
		t.src.PushBack(c)
		t.state = dataState
	}
	return true
}

func (t *Tokenizer) stepEndTagOpen() bool {
	c, _ := t.src.Next()
	switch {
	case isASCIIAlpha(c):
		t.src.PushBack(c)
		t.tagLoc = t.here()
		t.tagName.Reset()
		t.attrs = nil
		t.selfClosing = false
		t.tagIsEnd = true
		t.state = tagNameState
	case c == '>':
		t.errf(KindUnexpectedCharacter, ">")
		t.state = dataState
	case c == streamEOF:
		t.appendText("</")
		t.flushText()
		t.state = dataState
	default:
		t.errf(KindUnexpectedCharacter, "bogus end tag")
		t.src.PushBack(c)
		t.bogusLoc = t.here()
		t.bogus.Reset()
		t.state = bogusCommentState
	}
	return true
}

func (t *Tokenizer) stepTagName() bool {
	c, _ := t.src.Next()
	switch {
	case isWhitespace(c):
		t.state = beforeAttributeNameState
	case c == '/':
		t.state = selfClosingStartTagState
	case c == '>':
		t.emitTag()
		t.state = dataState
	case c == streamEOF:
		t.errf(KindUnexpectedEOF, "in tag name")
		t.state = dataState
	default:
		t.tagName.WriteRune(toLowerASCII(c))
	}
	return true
}

func (t *Tokenizer) emitTag() {
	name := t.tagName.String()
	if t.tagIsEnd {
		t.emit(Token{Type: EndTagToken, Loc: t.tagLoc, Data: name})
		return
	}
	t.emit(Token{Type: StartTagToken, Loc: t.tagLoc, Data: name, Attr: t.dedupedAttrs(), SelfClosing: t.selfClosing})
}

func (t *Tokenizer) dedupedAttrs() []Attribute {
	if len(t.attrs) < 2 {
		return t.attrs
	}
	seen := make(map[string]bool, len(t.attrs))
	out := t.attrs[:0:0]
	for _, a := range t.attrs {
		if seen[a.Name] {
			t.errf(KindDuplicateAttribute, a.Name)
			continue
		}
		seen[a.Name] = true
		out = append(out, a)
	}
	return out
}

// --- RCDATA/RAWTEXT/ScriptData "</tag" recognition ---

func (t *Tokenizer) stepLessThanSign() bool {
	c, _ := t.src.Next()
	if c == '/' {
		t.tagName.Reset()
		switch t.state {
		case rcdataLessThanSignState:
			t.state = rcdataEndTagOpenState
		case rawtextLessThanSignState:
			t.state = rawtextEndTagOpenState
		case scriptDataLessThanSignState:
			t.state = scriptDataEndTagOpenState
		}
		return true
	}
	t.appendText("<")
	if c != streamEOF {
		t.src.PushBack(c)
	}
	switch t.state {
	case rcdataLessThanSignState:
		t.state = rcdataState
	case rawtextLessThanSignState:
		t.state = rawtextState
	case scriptDataLessThanSignState:
		t.state = scriptDataState
	}
	return true
}

func (t *Tokenizer) stepEndTagOpenRaw() bool {
	c, _ := t.src.Next()
	if isASCIIAlpha(c) {
		t.src.PushBack(c)
		t.tagLoc = t.here()
		t.tagIsEnd = true
		t.attrs = nil
		t.selfClosing = false
		switch t.state {
		case rcdataEndTagOpenState:
			t.state = rcdataEndTagNameState
		case rawtextEndTagOpenState:
			t.state = rawtextEndTagNameState
		case scriptDataEndTagOpenState:
			t.state = scriptDataEndTagNameState
		}
		return true
	}
	t.appendText("</")
	if c != streamEOF {
		t.src.PushBack(c)
	}
	switch t.state {
	case rcdataEndTagOpenState:
		t.state = rcdataState
	case rawtextEndTagOpenState:
		t.state = rawtextState
	case scriptDataEndTagOpenState:
		t.state = scriptDataState
	}
	return true
}

func (t *Tokenizer) stepEndTagNameRaw() bool {
	c, _ := t.src.Next()
	appropriate := strings.EqualFold(t.tagName.String(), t.rawtextEndTag) && t.rawtextEndTag != ""
	switch {
	case isWhitespace(c) && appropriate:
		t.flushText()
		t.state = beforeAttributeNameState
		return true
	case c == '/' && appropriate:
		t.flushText()
		t.state = selfClosingStartTagState
		return true
	case c == '>' && appropriate:
		t.flushText()
		t.emit(Token{Type: EndTagToken, Loc: t.tagLoc, Data: t.tagName.String()})
		t.state = dataState
		return true
	case isASCIIAlpha(c):
		t.tagName.WriteRune(toLowerASCII(c))
		return true
	default:
		t.appendText("</" + t.tagName.String())
		if c != streamEOF {
			t.src.PushBack(c)
		}
		switch t.state {
		case rcdataEndTagNameState:
			t.state = rcdataState
		case rawtextEndTagNameState:
			t.state = rawtextState
		case scriptDataEndTagNameState:
			t.state = scriptDataState
		}
		return true
	}
}

// stepScriptEscaped implements the script-data-escaped / double-escaped
// family as one collapsed transition: these sub-states only exist to track
// how many consecutive '-' have been seen and whether we are inside a
// nested "<script>" the browser must still recognize, which we track with
// small counters instead of one function per sub-state.
func (t *Tokenizer) stepScriptEscaped() bool {
	c, _ := t.src.Next()
	switch t.state {
	case scriptDataEscapeStartState:
		if c == '-' {
			t.appendText("-")
			t.state = scriptDataEscapeStartDashState
		} else {
			if c != streamEOF {
				t.src.PushBack(c)
			}
			t.state = scriptDataState
		}
	case scriptDataEscapeStartDashState:
		if c == '-' {
			t.appendText("-")
			t.state = scriptDataEscapedDashDashState
		} else {
			if c != streamEOF {
				t.src.PushBack(c)
			}
			t.state = scriptDataState
		}
	case scriptDataEscapedState:
		switch c {
		case '-':
			t.appendText("-")
			t.state = scriptDataEscapedDashState
		case '<':
			t.state = scriptDataEscapedLessThanSignState
		case streamEOF:
			t.errf(KindUnexpectedEOF, "in script data escaped")
		default:
			t.appendText(string(c))
		}
	case scriptDataEscapedDashState:
		switch c {
		case '-':
			t.appendText("-")
			t.state = scriptDataEscapedDashDashState
		case '<':
			t.state = scriptDataEscapedLessThanSignState
		case streamEOF:
			t.errf(KindUnexpectedEOF, "in script data escaped")
		default:
			t.appendText(string(c))
			t.state = scriptDataEscapedState
		}
	case scriptDataEscapedDashDashState:
		switch c {
		case '-':
			t.appendText("-")
		case '<':
			t.state = scriptDataEscapedLessThanSignState
		case '>':
			t.appendText(">")
			t.state = scriptDataState
		case streamEOF:
			t.errf(KindUnexpectedEOF, "in script data escaped")
		default:
			t.appendText(string(c))
			t.state = scriptDataEscapedState
		}
	case scriptDataEscapedLessThanSignState:
		if c == '/' {
			t.tagName.Reset()
			t.state = scriptDataEscapedEndTagOpenState
		} else if isASCIIAlpha(c) {
			t.appendText("<")
			t.tagName.Reset()
			t.src.PushBack(c)
			t.state = scriptDataDoubleEscapeStartState
		} else {
			t.appendText("<")
			if c != streamEOF {
				t.src.PushBack(c)
			}
			t.state = scriptDataEscapedState
		}
	case scriptDataEscapedEndTagOpenState:
		if isASCIIAlpha(c) {
			t.tagLoc = t.here()
			t.tagIsEnd = true
			t.attrs = nil
			t.src.PushBack(c)
			t.state = scriptDataEscapedEndTagNameState
		} else {
			t.appendText("</")
			if c != streamEOF {
				t.src.PushBack(c)
			}
			t.state = scriptDataEscapedState
		}
	case scriptDataEscapedEndTagNameState:
		appropriate := strings.EqualFold(t.tagName.String(), t.rawtextEndTag) && t.rawtextEndTag != ""
		switch {
		case isWhitespace(c) && appropriate:
			t.state = beforeAttributeNameState
		case c == '/' && appropriate:
			t.state = selfClosingStartTagState
		case c == '>' && appropriate:
			t.emit(Token{Type: EndTagToken, Loc: t.tagLoc, Data: t.tagName.String()})
			t.state = dataState
		case isASCIIAlpha(c):
			t.tagName.WriteRune(toLowerASCII(c))
		default:
			t.appendText("</" + t.tagName.String())
			if c != streamEOF {
				t.src.PushBack(c)
			}
			t.state = scriptDataEscapedState
		}
	case scriptDataDoubleEscapeStartState:
		if isWhitespace(c) || c == '/' || c == '>' {
			t.appendText(string(c))
			if strings.EqualFold(t.tagName.String(), "script") {
				t.state = scriptDataDoubleEscapedState
			} else {
				t.state = scriptDataEscapedState
			}
		} else if isASCIIAlpha(c) {
			t.tagName.WriteRune(toLowerASCII(c))
			t.appendText(string(c))
		} else {
			if c != streamEOF {
				t.src.PushBack(c)
			}
			t.state = scriptDataEscapedState
		}
	case scriptDataDoubleEscapedState:
		switch c {
		case '-':
			t.appendText("-")
			t.state = scriptDataDoubleEscapedDashState
		case '<':
			t.appendText("<")
			t.state = scriptDataDoubleEscapedLessThanSignState
		case streamEOF:
			t.errf(KindUnexpectedEOF, "in script data double escaped")
		default:
			t.appendText(string(c))
		}
	case scriptDataDoubleEscapedDashState:
		switch c {
		case '-':
			t.appendText("-")
			t.state = scriptDataDoubleEscapedDashDashState
		case '<':
			t.appendText("<")
			t.state = scriptDataDoubleEscapedLessThanSignState
		default:
			t.appendText(string(c))
			t.state = scriptDataDoubleEscapedState
		}
	case scriptDataDoubleEscapedDashDashState:
		switch c {
		case '-':
			t.appendText("-")
		case '<':
			t.appendText("<")
			t.state = scriptDataDoubleEscapedLessThanSignState
		case '>':
			t.appendText(">")
			t.state = scriptDataState
		default:
			t.appendText(string(c))
			t.state = scriptDataDoubleEscapedState
		}
	case scriptDataDoubleEscapedLessThanSignState:
		if c == '/' {
			t.tagName.Reset()
			t.appendText("/")
			t.state = scriptDataDoubleEscapeEndState
		} else {
			if c != streamEOF {
				t.src.PushBack(c)
			}
			t.state = scriptDataDoubleEscapedState
		}
	case scriptDataDoubleEscapeEndState:
		if isWhitespace(c) || c == '/' || c == '>' {
			t.appendText(string(c))
			if strings.EqualFold(t.tagName.String(), "script") {
				t.state = scriptDataEscapedState
			} else {
				t.state = scriptDataDoubleEscapedState
			}
		} else if isASCIIAlpha(c) {
			t.tagName.WriteRune(toLowerASCII(c))
			t.appendText(string(c))
		} else {
			if c != streamEOF {
				t.src.PushBack(c)
			}
			t.state = scriptDataDoubleEscapedState
		}
	}
	return true
}

func isASCIIAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func toLowerASCII(c rune) rune {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
