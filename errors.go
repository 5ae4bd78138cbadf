package markup

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of parse-error conditions named by the HTML5
// and XML1.0 recovery rules (spec §7). Every ErrorKind is reported with a
// Location through the Config.Report callback; none of them, by themselves,
// terminate parsing.
type ErrorKind int

const (
	// BadByteSequence marks octets that are invalid for the declared or
	// detected encoding; the offending scalar is replaced with U+FFFD.
	BadByteSequence ErrorKind = iota
	// UnexpectedCharacter marks a scalar disallowed in the current
	// tokenizer state.
	UnexpectedCharacter
	// UnexpectedEOF marks end of input reached in a non-terminal tokenizer
	// or tree-construction state.
	UnexpectedEOF
	// UnmatchedStartTag marks a start tag that is still open when its
	// containing context forces it closed, or that is never closed by EOF.
	UnmatchedStartTag
	// UnmatchedEndTag marks an end tag with no corresponding open start tag.
	UnmatchedEndTag
	// MisnestedTag marks an end tag that triggered the adoption agency
	// algorithm because the current node did not match.
	MisnestedTag
	// BadDoctype marks a malformed DOCTYPE declaration.
	BadDoctype
	// DuplicateAttribute marks a second occurrence of an attribute name
	// within one tag; the second occurrence is discarded.
	DuplicateAttribute
	// BadCharacterReference marks an invalid, unterminated, or out-of-range
	// numeric or named character reference.
	BadCharacterReference
	// BadNamespace marks an undeclared namespace prefix (XML only).
	BadNamespace
)

func (k ErrorKind) String() string {
	switch k {
	case BadByteSequence:
		return "bad byte sequence"
	case UnexpectedCharacter:
		return "unexpected character"
	case UnexpectedEOF:
		return "unexpected eof"
	case UnmatchedStartTag:
		return "unmatched start tag"
	case UnmatchedEndTag:
		return "unmatched end tag"
	case MisnestedTag:
		return "misnested tag"
	case BadDoctype:
		return "bad doctype"
	case DuplicateAttribute:
		return "duplicate attribute"
	case BadCharacterReference:
		return "bad character reference"
	case BadNamespace:
		return "bad namespace"
	default:
		return "unknown parse error"
	}
}

// ParseError is the structured error value passed to Config.Report. It
// follows the error-with-Is-method convention used throughout the teacher
// package (UnrecognizedArgumentError, DecodeError in chtml/err.go): Detail
// carries the offending/expected token names that the taxonomy calls for
// ("offending token, expected token, etc.").
type ParseError struct {
	Kind ErrorKind
	Loc  Location
	// Detail is a short human-readable elaboration, e.g. the offending tag
	// name or the expected closing delimiter. It is not part of equality
	// comparisons performed by Is.
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s at %s", e.Kind, e.Loc)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Loc, e.Detail)
}

// Is reports equality by Kind only, so callers can test
// errors.Is(err, &ParseError{Kind: markup.BadDoctype}) without matching
// Location or Detail.
func (e *ParseError) Is(target error) bool {
	var pe *ParseError
	if errors.As(target, &pe) {
		return e.Kind == pe.Kind
	}
	return false
}

// ErrCancelled is the sentinel a Report callback returns (wrapped or bare)
// to unwind the parser early. Stream.Next propagates it verbatim; the
// parser releases the input stream and all stacks on the way out and does
// not catch it internally (spec §5, Cancellation).
var ErrCancelled = errors.New("markup: parsing cancelled by report callback")

// Reporter receives every parse error as it is detected. Returning a non-nil
// error (conventionally ErrCancelled or a wrapper of it) aborts the parse;
// Stream.Next then returns that error. The default Reporter, used when
// Config.Report is nil, ignores every error and returns nil.
type Reporter func(loc Location, kind ErrorKind, detail string) error
