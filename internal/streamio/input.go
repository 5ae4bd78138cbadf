// Package streamio implements the shared byte-to-scalar input stage used by
// both the HTML and XML tokenizers: encoding detection, decoding, newline
// normalization, and a small push-back buffer for bounded lookahead.
package streamio

import (
	"bufio"
	"io"
)

// EOF is returned by Next when the stream is exhausted. It is distinct from
// io.EOF so callers cannot accidentally conflate "no more scalars" with an
// unrelated io.EOF bubbling up from a byte source (Next turns the decoder's
// io.EOF into this value).
const EOF rune = -1

// Stream is a lazy sequence of Unicode scalar values decoded from a byte
// source, with a multi-scalar (LIFO) push-back buffer and line/column tracking. It owns the
// byte source exclusively; only the tokenizer that constructed it calls
// Next/PushBack/Location.
type Stream struct {
	r       *bufio.Reader
	dec     *Decoder
	pending []rune // push-back buffer, most-recently-pushed last
	line    int
	column  int
	lastCR  bool // true if the previous scalar returned was CR, to fold CRLF
	err     error
}

// NewStream detects the encoding of r (in the order detect applies)
// and returns a Stream ready to produce normalized scalars.
func NewStream(r io.Reader, explicit string, xmlMode bool) (*Stream, error) {
	br := bufio.NewReaderSize(r, 4096)
	dec, err := detect(br, explicit, xmlMode)
	if err != nil {
		return nil, err
	}
	return &Stream{r: br, dec: dec, line: 1, column: 1}, nil
}

// Next advances one normalized Unicode scalar. It returns EOF (-1) once the
// underlying decoder is exhausted.
func (s *Stream) Next() (rune, error) {
	var c rune
	if n := len(s.pending); n > 0 {
		c = s.pending[n-1]
		s.pending = s.pending[:n-1]
	} else {
		if s.err != nil {
			return EOF, s.err
		}
		raw, err := s.dec.ReadRune()
		if err == io.EOF {
			return EOF, nil
		}
		if err != nil {
			s.err = err
			return EOF, err
		}
		c = raw
	}

	// Collapse CR and CRLF to LF (spec §4.1 Normalization).
	if c == '\r' {
		s.lastCR = true
		c = '\n'
	} else if c == '\n' && s.lastCR {
		s.lastCR = false
		// The CR already produced the LF for this pair; fetch the scalar
		// that follows it instead of emitting a second line break.
		return s.Next()
	} else {
		s.lastCR = false
	}

	s.advance(c)
	return c, nil
}

func (s *Stream) advance(c rune) {
	if c == '\n' {
		s.line++
		s.column = 1
		return
	}
	if c == '\t' {
		// Tabs advance to the next multiple of 8, for error reporting only.
		s.column += 8 - (s.column-1)%8
		return
	}
	s.column++
}

// PushBack re-inserts a scalar so the next call to Next returns it again.
// Used for one-token lookahead (e.g. distinguishing "--" from "-" in comment
// states) and is not a substitute for full stream rewind.
func (s *Stream) PushBack(c rune) {
	s.pending = append(s.pending, c)
	if c == '\n' {
		s.line--
	} else {
		s.column--
	}
}

// Location returns the position of the next scalar Next will produce.
func (s *Stream) Location() (line, column int) {
	return s.line, s.column
}

// Encoding reports the encoding label chosen during detection.
func (s *Stream) Encoding() string {
	return s.dec.Label
}
