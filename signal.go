package markup

import "fmt"

// Location is a position in the original byte/character stream, used to
// annotate every Signal and every reported parse error. Columns count
// Unicode scalar values, not bytes; tabs advance to the next multiple of 8
// for reporting purposes only (they do not affect byte offsets).
type Location struct {
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Less reports whether l occurs strictly before o, for checking the
// monotonic-location invariant over an emitted signal stream.
func (l Location) Less(o Location) bool {
	if l.Line != o.Line {
		return l.Line < o.Line
	}
	return l.Column < o.Column
}

// Name is a qualified element or attribute name. Space is empty for HTML
// elements in the default (non-foreign) content model and for XML names with
// no namespace binding.
type Name struct {
	Space string // namespace URI, or "" if none
	Local string
}

func (n Name) String() string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + " " + n.Local
}

// Attribute is a single resolved attribute. Attributes are deduplicated by
// the tokenizer: the first occurrence of a given name wins and later
// duplicates raise a DuplicateAttribute parse error instead of appearing here.
type Attribute struct {
	Name  Name
	Value string
}

// Chunk is one contiguous run of text within a Text signal. The parsers
// put exactly one Chunk in each Text signal; text that the tree builder
// emits in several pieces arrives as consecutive Text signals rather than
// as extra chunks. Callers that want one string call Signal.TextString().
type Chunk struct {
	Data string
	Loc  Location
}

// Doctype carries the parsed fields of a DOCTYPE declaration.
type Doctype struct {
	Name     string
	PublicID string
	SystemID string
	// ForceQuirks is true when the parser determined (from PublicID/SystemID
	// or from a malformed DOCTYPE) that the document must render in quirks
	// mode.
	ForceQuirks bool
}

// XMLDecl carries the parsed fields of an XML declaration (<?xml ... ?>).
type XMLDecl struct {
	Version    string
	Encoding   string
	Standalone string // "yes", "no", or "" if absent
}

// PI carries a processing instruction's target and body.
type PI struct {
	Target string
	Body   string
}

// SignalKind identifies which field of Signal is populated.
type SignalKind int

const (
	StartElement SignalKind = iota
	EndElement
	Text
	Comment
	DoctypeSignal
	XMLDeclSignal
	PISignal
)

func (k SignalKind) String() string {
	switch k {
	case StartElement:
		return "StartElement"
	case EndElement:
		return "EndElement"
	case Text:
		return "Text"
	case Comment:
		return "Comment"
	case DoctypeSignal:
		return "Doctype"
	case XMLDeclSignal:
		return "XMLDecl"
	case PISignal:
		return "PI"
	default:
		return "Unknown"
	}
}

// Signal is one structural event in the parsed document. Exactly the field
// matching Kind is meaningful; the rest are zero values.
type Signal struct {
	Kind SignalKind
	Loc  Location

	Name  Name        // StartElement, EndElement
	Attrs []Attribute // StartElement

	Chunks []Chunk // Text

	CommentData string // Comment

	Doctype Doctype // DoctypeSignal
	XMLDecl XMLDecl // XMLDeclSignal
	PI      PI      // PISignal
}

// TextString concatenates the chunks of a Text signal. It is provided for
// convenience; consumers that want to avoid the allocation should iterate
// Chunks directly.
func (s Signal) TextString() string {
	if len(s.Chunks) == 1 {
		return s.Chunks[0].Data
	}
	var n int
	for _, c := range s.Chunks {
		n += len(c.Data)
	}
	buf := make([]byte, 0, n)
	for _, c := range s.Chunks {
		buf = append(buf, c.Data...)
	}
	return string(buf)
}
