package markup

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, stream *Stream) []Signal {
	t.Helper()
	var out []Signal
	for {
		sig, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
		out = append(out, sig)
	}
}

func TestParseHTML_SimpleDocument(t *testing.T) {
	stream, err := ParseHTML(strings.NewReader(`<p>Hello <b>World</b></p>`), Config{})
	require.NoError(t, err)
	sigs := collect(t, stream)

	var starts, ends []string
	for _, s := range sigs {
		switch s.Kind {
		case StartElement:
			starts = append(starts, s.Name.Local)
		case EndElement:
			ends = append(ends, s.Name.Local)
		}
	}
	// html/head/body are implied around the fragment.
	require.Equal(t, []string{"html", "head", "body", "p", "b"}, starts)
	require.Equal(t, []string{"head", "b", "p", "body", "html"}, ends)
}

func TestParseHTML_ReportsAndRecovers(t *testing.T) {
	var errs []ErrorKind
	stream, err := ParseHTML(strings.NewReader(`<p></div>text`), Config{
		Report: func(loc Location, kind ErrorKind, detail string) error {
			errs = append(errs, kind)
			return nil
		},
	})
	require.NoError(t, err)
	sigs := collect(t, stream)
	require.NotEmpty(t, errs)

	var text string
	for _, s := range sigs {
		if s.Kind == Text {
			text += s.TextString()
		}
	}
	require.Equal(t, "text", text)
}

func TestParseHTML_CancellationStopsStream(t *testing.T) {
	stream, err := ParseHTML(strings.NewReader(`<p></div>text`), Config{
		Report: func(loc Location, kind ErrorKind, detail string) error {
			return ErrCancelled
		},
	})
	require.NoError(t, err)
	_, err = stream.Next()
	require.ErrorIs(t, err, ErrCancelled)
}

func TestParseXML_NamespaceResolution(t *testing.T) {
	stream, err := ParseXML(strings.NewReader(`<r xmlns:f="urn:foo"><f:a/></r>`), Config{})
	require.NoError(t, err)
	sigs := collect(t, stream)

	var gotFoo bool
	for _, s := range sigs {
		if s.Kind == StartElement && s.Name.Local == "a" {
			require.Equal(t, "urn:foo", s.Name.Space)
			gotFoo = true
		}
	}
	require.True(t, gotFoo)
}

func TestParseXML_WellFormedRoundTrip(t *testing.T) {
	stream, err := ParseXML(strings.NewReader(`<?xml version="1.0"?><root><child a="1">hi</child></root>`), Config{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteXML(&buf, stream, WriteConfig{SelfClosingTags: true}))
	require.Equal(t,
		`<?xml version="1.0"?><root><child a="1">hi</child></root>`,
		buf.String(),
	)
}

func TestWriteHTML_RoundTrip(t *testing.T) {
	stream, err := ParseHTML(strings.NewReader(`<p>Hello <b>World</b></p>`), Config{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, stream))
	require.Equal(t, `<html><head></head><body><p>Hello <b>World</b></p></body></html>`, buf.String())
}
