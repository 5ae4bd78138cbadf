package xmltok

import (
	"strings"
	"testing"

	"github.com/dpotapov/go-markup/internal/streamio"
	"github.com/stretchr/testify/require"
)

func tokenize(t *testing.T, input string) []Token {
	t.Helper()
	src, err := streamio.NewStream(strings.NewReader(input), "utf-8", true)
	require.NoError(t, err)
	tok := New(src, nil)
	var toks []Token
	for {
		tk := tok.Next()
		toks = append(toks, tk)
		if tk.Type == EOFToken {
			return toks
		}
	}
}

func TestTokenizer_SimpleElement(t *testing.T) {
	toks := tokenize(t, `<a href="x">hi</a>`)
	require.Equal(t, StartTagToken, toks[0].Type)
	require.Equal(t, "a", toks[0].Data)
	require.Equal(t, []Attribute{{Name: "href", Value: "x", Loc: toks[0].Attr[0].Loc}}, toks[0].Attr)
	require.Equal(t, CharToken, toks[1].Type)
	require.Equal(t, "hi", toks[1].Data)
	require.Equal(t, EndTagToken, toks[2].Type)
	require.Equal(t, "a", toks[2].Data)
}

func TestTokenizer_SelfClosingTag(t *testing.T) {
	toks := tokenize(t, `<br/>`)
	require.Equal(t, StartTagToken, toks[0].Type)
	require.True(t, toks[0].SelfClosing)
}

func TestTokenizer_XMLDecl(t *testing.T) {
	toks := tokenize(t, `<?xml version="1.0" encoding="UTF-8"?><r/>`)
	require.Equal(t, XMLDeclToken, toks[0].Type)
	require.Equal(t, "1.0", toks[0].Version)
	require.Equal(t, "UTF-8", toks[0].Encoding)
}

func TestTokenizer_ProcessingInstruction(t *testing.T) {
	toks := tokenize(t, `<?xml-stylesheet type="text/xsl" href="x.xsl"?><r/>`)
	require.Equal(t, PIToken, toks[0].Type)
	require.Equal(t, "xml-stylesheet", toks[0].Data)
	require.Equal(t, `type="text/xsl" href="x.xsl"`, toks[0].PIContent)
}

func TestTokenizer_Comment(t *testing.T) {
	toks := tokenize(t, `<!-- hi --><r/>`)
	require.Equal(t, CommentToken, toks[0].Type)
	require.Equal(t, " hi ", toks[0].Data)
}

func TestTokenizer_CDATASection(t *testing.T) {
	toks := tokenize(t, `<r><![CDATA[<foo>]]></r>`)
	require.Equal(t, StartTagToken, toks[0].Type)
	require.Equal(t, CharToken, toks[1].Type)
	require.Equal(t, "<foo>", toks[1].Data)
	require.Equal(t, EndTagToken, toks[2].Type)
}

func TestTokenizer_PredefinedEntities(t *testing.T) {
	toks := tokenize(t, `<r>a &amp; b &lt;c&gt;</r>`)
	require.Equal(t, CharToken, toks[1].Type)
	require.Equal(t, "a & b <c>", toks[1].Data)
}

func TestTokenizer_NumericCharRef(t *testing.T) {
	toks := tokenize(t, `<r>&#65;&#x42;</r>`)
	require.Equal(t, "AB", toks[1].Data)
}

func TestTokenizer_DuplicateAttributeReported(t *testing.T) {
	var kinds []int
	src, err := streamio.NewStream(strings.NewReader(`<a x="1" x="2"/>`), "utf-8", true)
	require.NoError(t, err)
	tok := New(src, func(loc Location, kind int, detail string) {
		kinds = append(kinds, kind)
	})
	tk := tok.Next()
	require.Equal(t, StartTagToken, tk.Type)
	require.Len(t, tk.Attr, 1)
	require.Equal(t, "1", tk.Attr[0].Value)
	require.Contains(t, kinds, KindDuplicateAttribute)
}

func TestTokenizer_Doctype(t *testing.T) {
	toks := tokenize(t, `<!DOCTYPE root SYSTEM "root.dtd"><root/>`)
	require.Equal(t, DoctypeToken, toks[0].Type)
	require.Contains(t, toks[0].Data, "root")
}
