// Package xmltok implements the XML 1.0 tokenizer (spec §4.4): a single
// state machine over Unicode scalars, much simpler than htmltok since XML
// has no content-model modes and no character-reference ambiguity rules.
package xmltok

// TokenType tags the variant held by a Token.
type TokenType int

const (
	ErrorToken TokenType = iota
	CharToken
	StartTagToken
	EndTagToken
	CommentToken
	DoctypeToken
	PIToken
	XMLDeclToken
	EOFToken
)

// Attribute is a single raw XML attribute (name preserves case; XML is
// case-sensitive, unlike HTML).
type Attribute struct {
	Name  string
	Value string
	Loc   Location
}

// Location mirrors markup.Location, duplicated here for the same
// cycle-avoidance reason as htmltok.Location.
type Location struct {
	Line   int
	Column int
}

// Token is the tagged variant produced by the tokenizer.
type Token struct {
	Type        TokenType
	Loc         Location
	Data        string // char data, tag/PI target name, comment text
	Attr        []Attribute
	SelfClosing bool

	// Decl fields, set only for XMLDeclToken.
	Version    string
	Encoding   string
	Standalone string

	// PI target/content, set only for PIToken (Data holds the target).
	PIContent string
}

// Error kind codes, ordinal-matched against markup.ErrorKind.
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
