package streamio

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// Decoder wraps a golang.org/x/text/encoding.Decoder behind a ReadRune
// interface, along with the label under which it was selected. Using
// x/text's transform-based decoders (rather than hand-rolled charmap
// tables) gives us every encoding named in spec §6 — UTF-8/16, US-ASCII,
// the ISO-8859 family, Windows-1252, MacRoman and the WHATWG alias map —
// for free, matching how zombiezen-go-commonmark and lukehoban-browser pair
// golang.org/x/net/html with golang.org/x/text in the retrieval pack.
type Decoder struct {
	rr    io.RuneReader
	Label string
}

func (d *Decoder) ReadRune() (rune, error) {
	c, _, err := d.rr.ReadRune()
	return c, err
}

var metaCharsetRe = regexp.MustCompile(`(?is)<meta\s+[^>]*charset\s*=\s*["']?([a-zA-Z0-9_\-]+)`)
var xmlDeclRe = regexp.MustCompile(`^<\?xml[^>]*encoding\s*=\s*["']([a-zA-Z0-9_\-]+)["']`)

// detect implements the encoding-detection order of spec §4.1: explicit
// caller-supplied encoding, then BOM, then (for HTML) a <meta charset> or
// <meta http-equiv=content-type> scanned within the first 1024 bytes, then
// (for XML) the XML declaration, then a UTF-8 heuristic fallback.
func detect(br *bufio.Reader, explicit string, xmlMode bool) (*Decoder, error) {
	if explicit != "" {
		return newDecoderForLabel(br, explicit)
	}

	peek, _ := br.Peek(1024)

	if enc, n, ok := detectBOM(peek); ok {
		br.Discard(n)
		return &Decoder{rr: transformReader(br, enc), Label: "bom"}, nil
	}

	if xmlMode {
		if m := xmlDeclRe.FindSubmatch(peek); m != nil {
			return newDecoderForLabel(br, string(m[1]))
		}
		return newDecoderForLabel(br, "utf-8")
	}

	if m := metaCharsetRe.FindSubmatch(peek); m != nil {
		return newDecoderForLabel(br, string(m[1]))
	}

	return newDecoderForLabel(br, "utf-8")
}

func detectBOM(peek []byte) (encoding.Encoding, int, bool) {
	switch {
	case bytes.HasPrefix(peek, []byte{0xEF, 0xBB, 0xBF}):
		return unicode.UTF8, 3, true
	case bytes.HasPrefix(peek, []byte{0xFF, 0xFE}):
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), 2, true
	case bytes.HasPrefix(peek, []byte{0xFE, 0xFF}):
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), 2, true
	}
	return nil, 0, false
}

func newDecoderForLabel(br *bufio.Reader, label string) (*Decoder, error) {
	label = strings.TrimSpace(strings.ToLower(label))
	enc, err := htmlindex.Get(label)
	if err != nil {
		// Heuristic fallback per spec §4.1: unrecognized labels decode as
		// UTF-8 rather than failing the parse outright (no input is a
		// fatal failure, spec §7).
		enc = unicode.UTF8
		label = "utf-8"
	}
	return &Decoder{rr: transformReader(br, enc), Label: label}, nil
}

func transformReader(r io.Reader, enc encoding.Encoding) io.RuneReader {
	return bufio.NewReader(enc.NewDecoder().Reader(r))
}

// Rewind starts a fresh decode of all from byte 0 under label, for the case
// where a <meta> tag names a different encoding than was initially detected
// (HTML only). Per spec §4.1 this is only legal before any non-whitespace
// character has been committed downstream. Rewind does not check that
// itself, and neither tokenizer calls it.
func Rewind(all []byte, label string) (*Decoder, error) {
	br := bufio.NewReader(bytes.NewReader(all))
	d, err := newDecoderForLabel(br, label)
	return d, err
}
