package streamio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, s *Stream) string {
	t.Helper()
	var b strings.Builder
	for {
		c, err := s.Next()
		if c == EOF {
			require.NoError(t, err)
			return b.String()
		}
		b.WriteRune(c)
	}
}

func TestStream_PlainASCII(t *testing.T) {
	s, err := NewStream(strings.NewReader("hello"), "utf-8", false)
	require.NoError(t, err)
	require.Equal(t, "hello", drain(t, s))
}

func TestStream_CRLFAndLoneCRNormalizedToLF(t *testing.T) {
	s, err := NewStream(strings.NewReader("a\r\nb\rc\nd"), "utf-8", false)
	require.NoError(t, err)
	require.Equal(t, "a\nb\nc\nd", drain(t, s))
}

func TestStream_PushBackReplaysScalar(t *testing.T) {
	s, err := NewStream(strings.NewReader("abc"), "utf-8", false)
	require.NoError(t, err)

	c, err := s.Next()
	require.NoError(t, err)
	require.Equal(t, 'a', c)

	c, err = s.Next()
	require.NoError(t, err)
	require.Equal(t, 'b', c)

	s.PushBack(c)

	c, err = s.Next()
	require.NoError(t, err)
	require.Equal(t, 'b', c)

	c, err = s.Next()
	require.NoError(t, err)
	require.Equal(t, 'c', c)
}

func TestStream_MultiRunePushBackReplaysInLIFOOrder(t *testing.T) {
	s, err := NewStream(strings.NewReader("z"), "utf-8", false)
	require.NoError(t, err)

	// Push back two scalars that never came from the source, most recently
	// pushed first out, as the tokenizers rely on when un-reading a word
	// matched via bounded lookahead.
	s.PushBack('2')
	s.PushBack('1')

	c, _ := s.Next()
	require.Equal(t, '1', c)
	c, _ = s.Next()
	require.Equal(t, '2', c)
	c, _ = s.Next()
	require.Equal(t, 'z', c)
}

func TestStream_EOFIsStickyAndDistinctFromIOEOF(t *testing.T) {
	s, err := NewStream(strings.NewReader("x"), "utf-8", false)
	require.NoError(t, err)

	c, err := s.Next()
	require.NoError(t, err)
	require.Equal(t, 'x', c)

	c, err = s.Next()
	require.NoError(t, err)
	require.Equal(t, EOF, c)

	// Calling past EOF keeps returning EOF rather than panicking or erroring.
	c, err = s.Next()
	require.NoError(t, err)
	require.Equal(t, EOF, c)
}

func TestStream_LocationTracksLineAndColumn(t *testing.T) {
	s, err := NewStream(strings.NewReader("ab\ncd"), "utf-8", false)
	require.NoError(t, err)

	line, col := s.Location()
	require.Equal(t, 1, line)
	require.Equal(t, 1, col)

	s.Next() // 'a'
	s.Next() // 'b'
	line, col = s.Location()
	require.Equal(t, 1, line)
	require.Equal(t, 3, col)

	s.Next() // '\n'
	line, col = s.Location()
	require.Equal(t, 2, line)
	require.Equal(t, 1, col)
}

func TestStream_PushBackRewindsLocation(t *testing.T) {
	s, err := NewStream(strings.NewReader("ab"), "utf-8", false)
	require.NoError(t, err)

	c, _ := s.Next()
	require.Equal(t, 'a', c)
	_, col := s.Location()
	require.Equal(t, 2, col)

	s.PushBack(c)
	_, col = s.Location()
	require.Equal(t, 1, col)
}
