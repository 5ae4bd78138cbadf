package writer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTMLWriter_StartEndElement(t *testing.T) {
	var buf bytes.Buffer
	hw := NewHTMLWriter(&buf)
	hw.StartElement("div", []Attr{{Name: "class", Value: `a "b"`}})
	hw.Text("hello <world>")
	hw.EndElement("div")
	require.NoError(t, hw.Flush())
	require.Equal(t, `<div class="a &quot;b&quot;">hello &lt;world&gt;</div>`, buf.String())
}

func TestHTMLWriter_VoidElementHasNoEndTag(t *testing.T) {
	var buf bytes.Buffer
	hw := NewHTMLWriter(&buf)
	hw.StartElement("br", nil)
	hw.EndElement("br")
	require.NoError(t, hw.Flush())
	require.Equal(t, "<br>", buf.String())
}

func TestHTMLWriter_RawTextNotEscaped(t *testing.T) {
	var buf bytes.Buffer
	hw := NewHTMLWriter(&buf)
	hw.StartElement("script", nil)
	hw.Text("if (1 < 2) { alert('&'); }")
	hw.EndElement("script")
	require.NoError(t, hw.Flush())
	require.Equal(t, `<script>if (1 < 2) { alert('&'); }</script>`, buf.String())
}

func TestHTMLWriter_Doctype(t *testing.T) {
	var buf bytes.Buffer
	hw := NewHTMLWriter(&buf)
	hw.Doctype("html", "", "")
	require.NoError(t, hw.Flush())
	require.Equal(t, "<!DOCTYPE html>", buf.String())
}

func TestIsVoidElement(t *testing.T) {
	require.True(t, IsVoidElement("BR"))
	require.False(t, IsVoidElement("div"))
}
