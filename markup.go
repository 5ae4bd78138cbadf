// Package markup implements streaming, lazy, one-pass, error-recovering
// HTML5 and XML 1.0 parsers and their matching serializers. Parsing never
// materializes a document tree; ParseHTML/ParseXML return a pull-based
// Stream that a consumer drains one Signal at a time (spec §5, §6).
package markup

import (
	"errors"
	"io"

	"github.com/dpotapov/go-markup/internal/htmltok"
	"github.com/dpotapov/go-markup/internal/htmltree"
	"github.com/dpotapov/go-markup/internal/streamio"
	"github.com/dpotapov/go-markup/internal/xmltok"
	"github.com/dpotapov/go-markup/internal/xmltree"
	"github.com/dpotapov/go-markup/writer"
)

// NamespaceResolver maps an XML prefix (empty for the default namespace) to
// its bound URI. The default resolver recognizes only the built-in "xml"
// and "xmlns" prefixes, per spec §6.
type NamespaceResolver func(prefix string) (uri string, ok bool)

// EntityResolver resolves an XML external entity reference by name,
// returning its replacement text. Accepted on Config for API completeness
// with spec §6's configuration surface; since DTD declarations are a
// Non-goal, the nesting tracker never parses a general entity declaration
// to call this with, so a zero Config behaves identically to one with
// Entity set (no caller currently consults it).
type EntityResolver func(name string) (replacement string, ok bool)

func defaultNamespaceResolver(prefix string) (string, bool) {
	switch prefix {
	case "xml":
		return "http://www.w3.org/XML/1998/namespace", true
	case "xmlns":
		return "http://www.w3.org/2000/xmlns/", true
	}
	return "", false
}

// Config configures a single parse, following the teacher's struct-of-
// options convention (pages.go's Handler) rather than functional options.
type Config struct {
	// Encoding overrides auto-detection (spec §4.1). Empty means detect.
	Encoding string

	// Namespace resolves XML prefixes; nil uses defaultNamespaceResolver.
	Namespace NamespaceResolver

	// Entity resolves XML external entity references. The parser never
	// calls it (see EntityResolver).
	Entity EntityResolver

	// Context parses an HTML fragment as if inserted into a given element
	// (spec §4.3, fragment parsing algorithm). Empty means parse a full
	// document. XML has no fragment-parsing mode; Context is ignored by
	// ParseXML.
	Context string

	// Report receives every parse error as it is detected (spec §7). A
	// nil Report ignores all errors. Returning a non-nil error (typically
	// ErrCancelled) aborts the parse: Stream.Next then returns that error.
	Report Reporter
}

func (c Config) namespace() NamespaceResolver {
	if c.Namespace != nil {
		return c.Namespace
	}
	return defaultNamespaceResolver
}

func (c Config) report() Reporter {
	if c.Report != nil {
		return c.Report
	}
	return func(Location, ErrorKind, string) error { return nil }
}

// Stream is a lazy sequence of parsed Signals. It is not safe for
// concurrent use (spec §5, "not reentrant").
type Stream struct {
	next      func() (Signal, bool)
	cancelled error
}

// Next returns the next Signal, or io.EOF once the document is exhausted.
// Any other error means the Report callback raised a cancellation sentinel;
// once Next returns a non-nil error it continues to return that same error.
func (s *Stream) Next() (Signal, error) {
	if s.cancelled != nil {
		return Signal{}, s.cancelled
	}
	sig, ok := s.next()
	if !ok {
		if s.cancelled != nil {
			return Signal{}, s.cancelled
		}
		return Signal{}, io.EOF
	}
	return sig, nil
}

// ParseHTML parses r as an HTML5 document (or fragment, if cfg.Context is
// set) and returns a Stream of its structural signals.
func ParseHTML(r io.Reader, cfg Config) (*Stream, error) {
	src, err := streamio.NewStream(r, cfg.Encoding, false)
	if err != nil {
		return nil, err
	}

	s := &Stream{}
	report := cfg.report()
	sink := func(loc htmltok.Location, kind int, detail string) {
		if s.cancelled != nil {
			return
		}
		s.cancelled = report(htmlLocationTok(loc), ErrorKind(kind), detail)
	}

	tok := htmltok.New(src, sink)
	b := htmltree.NewBuilder(tok, cfg.Context)

	s.next = func() (Signal, bool) {
		for {
			if s.cancelled != nil {
				return Signal{}, false
			}
			sig, ok := b.Next()
			if !ok {
				return Signal{}, false
			}
			if sig.Kind == htmltree.SigError {
				if s.cancelled == nil {
					s.cancelled = report(htmlLocationTok(sig.Loc), ErrorKind(sig.Error.Kind), sig.Error.Detail)
				}
				if s.cancelled != nil {
					return Signal{}, false
				}
				continue
			}
			return translateHTMLSignal(sig), true
		}
	}
	return s, nil
}

// ParseXML parses r as an XML 1.0 document and returns a Stream of its
// structural signals.
func ParseXML(r io.Reader, cfg Config) (*Stream, error) {
	src, err := streamio.NewStream(r, cfg.Encoding, true)
	if err != nil {
		return nil, err
	}

	s := &Stream{}
	report := cfg.report()
	sink := func(loc xmltok.Location, kind int, detail string) {
		if s.cancelled != nil {
			return
		}
		s.cancelled = report(xmlLocation(loc), ErrorKind(kind), detail)
	}

	tok := xmltok.New(src, sink)
	b := xmltree.NewBuilder(tok)
	ns := cfg.namespace()

	s.next = func() (Signal, bool) {
		for {
			if s.cancelled != nil {
				return Signal{}, false
			}
			sig, ok := b.Next()
			if !ok {
				return Signal{}, false
			}
			if sig.Kind == xmltree.SigError {
				if s.cancelled == nil {
					s.cancelled = report(xmlLocation(sig.Loc), ErrorKind(sig.Error.Kind), sig.Error.Detail)
				}
				if s.cancelled != nil {
					return Signal{}, false
				}
				continue
			}
			return translateXMLSignal(sig, ns), true
		}
	}
	return s, nil
}

// htmlLocationTok converts an htmltok/htmltree location (a distinct type
// from Location to avoid an import cycle) into the public Location.
func htmlLocationTok(l htmltok.Location) Location { return Location{Line: l.Line, Column: l.Column} }

func xmlLocation(l xmltok.Location) Location { return Location{Line: l.Line, Column: l.Column} }

func translateHTMLSignal(sig htmltree.Signal) Signal {
	out := Signal{Loc: htmlLocationTok(sig.Loc)}
	switch sig.Kind {
	case htmltree.SigStartElement:
		out.Kind = StartElement
		out.Name = Name{Space: sig.NS, Local: sig.Name}
		out.Attrs = make([]Attribute, len(sig.Attr))
		for i, a := range sig.Attr {
			out.Attrs[i] = Attribute{Name: Name{Local: a.Name}, Value: a.Value}
		}
	case htmltree.SigEndElement:
		out.Kind = EndElement
		out.Name = Name{Space: sig.NS, Local: sig.Name}
	case htmltree.SigText:
		out.Kind = Text
		out.Chunks = []Chunk{{Data: sig.Text, Loc: out.Loc}}
	case htmltree.SigComment:
		out.Kind = Comment
		out.CommentData = sig.Text
	case htmltree.SigDoctype:
		out.Kind = DoctypeSignal
		out.Doctype = Doctype{
			Name:        sig.Name,
			PublicID:    sig.PublicID,
			SystemID:    sig.SystemID,
			ForceQuirks: sig.ForceQuirks,
		}
	}
	return out
}

// translateXMLSignal additionally resolves prefixed names to namespace
// URIs via ns, per spec §6's "namespace" config option.
func translateXMLSignal(sig xmltree.Signal, ns NamespaceResolver) Signal {
	out := Signal{Loc: xmlLocation(sig.Loc)}
	switch sig.Kind {
	case xmltree.SigStartElement:
		out.Kind = StartElement
		out.Name = resolveName(sig.Name, ns)
		out.Attrs = make([]Attribute, len(sig.Attr))
		for i, a := range sig.Attr {
			out.Attrs[i] = Attribute{Name: resolveName(a.Name, ns), Value: a.Value}
		}
	case xmltree.SigEndElement:
		out.Kind = EndElement
		out.Name = resolveName(sig.Name, ns)
	case xmltree.SigText:
		out.Kind = Text
		out.Chunks = []Chunk{{Data: sig.Text, Loc: out.Loc}}
	case xmltree.SigComment:
		out.Kind = Comment
		out.CommentData = sig.Text
	case xmltree.SigDoctype:
		out.Kind = DoctypeSignal
		out.Doctype = Doctype{Name: sig.Name}
	case xmltree.SigXMLDecl:
		out.Kind = XMLDeclSignal
		out.XMLDecl = XMLDecl{Version: sig.Version, Encoding: sig.Encoding, Standalone: sig.Standalone}
	case xmltree.SigPI:
		out.Kind = PISignal
		out.PI = PI{Target: sig.PITarget, Body: sig.PIData}
	}
	return out
}

// resolveName splits "prefix:local" and resolves prefix through ns. A name
// whose prefix ns does not resolve keeps the raw "prefix:local" string as
// Local and gets an empty Space. No layer reports BadNamespace for such a
// prefix, and xmlns attributes in the document are not consulted: only ns
// decides.
func resolveName(raw string, ns NamespaceResolver) Name {
	prefix, local, hasPrefix := cut(raw, ':')
	if !hasPrefix {
		return Name{Local: raw}
	}
	uri, ok := ns(prefix)
	if !ok {
		return Name{Local: raw}
	}
	return Name{Space: uri, Local: local}
}

func cut(s string, sep byte) (before, after string, found bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

// WriteHTML drains stream and writes its canonical HTML5 textual form to w
// (spec §4.5). It stops at the first error from either the stream or the
// underlying writer.
func WriteHTML(w io.Writer, stream *Stream) error {
	hw := writer.NewHTMLWriter(w)
	for {
		sig, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		switch sig.Kind {
		case StartElement:
			hw.StartElement(sig.Name.Local, toWriterAttrs(sig.Attrs))
		case EndElement:
			hw.EndElement(sig.Name.Local)
		case Text:
			hw.Text(sig.TextString())
		case Comment:
			hw.Comment(sig.CommentData)
		case DoctypeSignal:
			hw.Doctype(sig.Doctype.Name, sig.Doctype.PublicID, sig.Doctype.SystemID)
		}
	}
	return hw.Flush()
}

// WriteConfig configures WriteXML's output form.
type WriteConfig struct {
	// SelfClosingTags writes an empty element as "<name/>" instead of
	// "<name></name>" (spec §4.5).
	SelfClosingTags bool
}

// WriteXML drains stream and writes its canonical XML 1.0 textual form to w
// (spec §4.5).
func WriteXML(w io.Writer, stream *Stream, cfg WriteConfig) error {
	xw := writer.NewXMLWriter(w, cfg.SelfClosingTags)
	for {
		sig, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		switch sig.Kind {
		case StartElement:
			xw.StartElement(qualifiedName(sig.Name), toXMLAttrs(sig.Attrs))
		case EndElement:
			xw.EndElement(qualifiedName(sig.Name))
		case Text:
			xw.Text(sig.TextString())
		case Comment:
			xw.Comment(sig.CommentData)
		case XMLDeclSignal:
			xw.Decl(sig.XMLDecl.Version, sig.XMLDecl.Encoding, sig.XMLDecl.Standalone)
		case PISignal:
			xw.PI(sig.PI.Target, sig.PI.Body)
		}
	}
	return xw.Flush()
}

// qualifiedName renders a resolved Name back to its serialized form. Since
// this module streams rather than tracking a live prefix-binding table, it
// serializes the Local name as given. A name whose prefix did not resolve
// still carries "prefix:local" in Local and is written back unchanged; a
// name whose prefix resolved carries only the local part, so its prefix is
// not written.
func qualifiedName(n Name) string {
	return n.Local
}

func toWriterAttrs(attrs []Attribute) []writer.Attr {
	out := make([]writer.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = writer.Attr{Name: a.Name.Local, Value: a.Value}
	}
	return out
}

func toXMLAttrs(attrs []Attribute) []writer.Attr {
	out := make([]writer.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = writer.Attr{Name: qualifiedName(a.Name), Value: a.Value}
	}
	return out
}
