package xmltree

import (
	"strings"
	"testing"

	"github.com/dpotapov/go-markup/internal/streamio"
	"github.com/dpotapov/go-markup/internal/xmltok"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, input string) []Signal {
	t.Helper()
	src, err := streamio.NewStream(strings.NewReader(input), "utf-8", true)
	require.NoError(t, err)
	tok := xmltok.New(src, nil)
	b := NewBuilder(tok)
	var out []Signal
	for {
		sig, ok := b.Next()
		if !ok {
			return out
		}
		out = append(out, sig)
	}
}

func names(sigs []Signal, kind int) []string {
	var out []string
	for _, s := range sigs {
		if s.Kind == kind {
			out = append(out, s.Name)
		}
	}
	return out
}

func TestBuilder_WellFormedNesting(t *testing.T) {
	sigs := build(t, `<a><b>text</b></a>`)
	require.Equal(t, []string{"a", "b"}, names(sigs, SigStartElement))
	require.Equal(t, []string{"b", "a"}, names(sigs, SigEndElement))
}

func TestBuilder_SelfClosingElement(t *testing.T) {
	sigs := build(t, `<a><b/></a>`)
	require.Equal(t, []string{"a", "b"}, names(sigs, SigStartElement))
	require.Equal(t, []string{"b", "a"}, names(sigs, SigEndElement))
}

func TestBuilder_MisnestedEndTagSynthesizesIntervening(t *testing.T) {
	// </a> while <b> is still open: both close, plus an error is reported.
	sigs := build(t, `<a><b>x</a>`)
	require.Equal(t, []string{"b", "a"}, names(sigs, SigEndElement))
	var sawError bool
	for _, s := range sigs {
		if s.Kind == SigError {
			sawError = true
			require.Equal(t, xmltok.KindMisnestedTag, s.Error.Kind)
		}
	}
	require.True(t, sawError)
}

func TestBuilder_UnmatchedEndTagIgnored(t *testing.T) {
	sigs := build(t, `<a>x</b></a>`)
	require.Equal(t, []string{"a"}, names(sigs, SigEndElement))
	var kinds []int
	for _, s := range sigs {
		if s.Kind == SigError {
			kinds = append(kinds, s.Error.Kind)
		}
	}
	require.Contains(t, kinds, xmltok.KindUnmatchedEndTag)
}

func TestBuilder_UnclosedElementSynthesizedAtEOF(t *testing.T) {
	sigs := build(t, `<a><b>x`)
	require.Equal(t, []string{"b", "a"}, names(sigs, SigEndElement))
}

func TestBuilder_CDATAIsPlainText(t *testing.T) {
	sigs := build(t, `<a><![CDATA[<foo>]]></a>`)
	var texts []string
	for _, s := range sigs {
		if s.Kind == SigText {
			texts = append(texts, s.Text)
		}
	}
	require.Equal(t, []string{"<foo>"}, texts)
}
