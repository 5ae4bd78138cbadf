package streamio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetect_ExplicitLabelWins(t *testing.T) {
	s, err := NewStream(strings.NewReader("hi"), "ISO-8859-1", false)
	require.NoError(t, err)
	require.Equal(t, "iso-8859-1", s.Encoding())
}

func TestDetect_UTF8BOMIsConsumedAndNotEmitted(t *testing.T) {
	input := string([]byte{0xEF, 0xBB, 0xBF}) + "hi"
	s, err := NewStream(strings.NewReader(input), "", false)
	require.NoError(t, err)
	require.Equal(t, "bom", s.Encoding())
	require.Equal(t, "hi", drain(t, s))
}

func TestDetect_UTF16LEBOMDecodesCorrectly(t *testing.T) {
	input := []byte{0xFF, 0xFE, 'h', 0, 'i', 0}
	s, err := NewStream(strings.NewReader(string(input)), "", false)
	require.NoError(t, err)
	require.Equal(t, "bom", s.Encoding())
	require.Equal(t, "hi", drain(t, s))
}

func TestDetect_HTMLMetaCharset(t *testing.T) {
	input := `<html><head><meta charset="iso-8859-1"></head></html>`
	s, err := NewStream(strings.NewReader(input), "", false)
	require.NoError(t, err)
	require.Equal(t, "iso-8859-1", s.Encoding())
}

func TestDetect_XMLDeclEncoding(t *testing.T) {
	input := `<?xml version="1.0" encoding="ISO-8859-1"?><r/>`
	s, err := NewStream(strings.NewReader(input), "", true)
	require.NoError(t, err)
	require.Equal(t, "iso-8859-1", s.Encoding())
}

func TestDetect_XMLModeDefaultsToUTF8WithoutDecl(t *testing.T) {
	s, err := NewStream(strings.NewReader(`<r/>`), "", true)
	require.NoError(t, err)
	require.Equal(t, "utf-8", s.Encoding())
}

func TestDetect_UnrecognizedLabelFallsBackToUTF8(t *testing.T) {
	s, err := NewStream(strings.NewReader("hi"), "not-a-real-encoding", false)
	require.NoError(t, err)
	require.Equal(t, "utf-8", s.Encoding())
	require.Equal(t, "hi", drain(t, s))
}

func TestDetect_NoMetaOrDeclDefaultsToUTF8(t *testing.T) {
	s, err := NewStream(strings.NewReader(`<html></html>`), "", false)
	require.NoError(t, err)
	require.Equal(t, "utf-8", s.Encoding())
}
