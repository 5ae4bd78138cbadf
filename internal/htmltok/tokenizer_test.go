package htmltok

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
	toks := tokenize(t, `<p class="a">hi</p>`)
	require.Equal(t, StartTagToken, toks[0].Type)
	require.Equal(t, "p", toks[0].Data)
	require.Equal(t, "class", toks[0].Attr[0].Name)
	require.Equal(t, "a", toks[0].Attr[0].Value)
	require.Equal(t, CharToken, toks[1].Type)
	require.Equal(t, "hi", toks[1].Data)
	require.Equal(t, EndTagToken, toks[2].Type)
	require.Equal(t, "p", toks[2].Data)
}

func TestTokenizer_AttributeNamesLowercased(t *testing.T) {
	toks := tokenize(t, `<DIV CLASS="x"></DIV>`)
	require.Equal(t, "div", toks[0].Data)
	require.Equal(t, "class", toks[0].Attr[0].Name)
}

func TestTokenizer_DuplicateAttributeKeepsFirst(t *testing.T) {
	var kinds []int
	src, err := streamio.NewStream(strings.NewReader(`<a x="1" x="2">`), "utf-8", true)
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

func TestTokenizer_Comment(t *testing.T) {
	toks := tokenize(t, `<!-- hi --><p>`)
	require.Equal(t, CommentToken, toks[0].Type)
	require.Equal(t, " hi ", toks[0].Data)
}

func TestTokenizer_Doctype(t *testing.T) {
	toks := tokenize(t, `<!DOCTYPE html><p>`)
	require.Equal(t, DoctypeToken, toks[0].Type)
	require.Equal(t, "html", toks[0].Doctype.Name)
}

func TestTokenizer_NamedCharacterReference(t *testing.T) {
	toks := tokenize(t, `<p>a &amp; b &lt;c&gt;</p>`)
	require.Equal(t, CharToken, toks[1].Type)
	require.Equal(t, "a & b <c>", toks[1].Data)
}

func TestTokenizer_NumericCharacterReference(t *testing.T) {
	toks := tokenize(t, `<p>&#65;&#x42;</p>`)
	require.Equal(t, "AB", toks[1].Data)
}

func TestTokenizer_RawTextElementNotTokenizedAsMarkup(t *testing.T) {
	src, err := streamio.NewStream(strings.NewReader(`<script>if (1<2) {}</script>x`), "utf-8", true)
	require.NoError(t, err)
	tok := New(src, nil)

	tk := tok.Next()
	require.Equal(t, StartTagToken, tk.Type)
	require.Equal(t, "script", tk.Data)

	tok.SetContentModel(ScriptData, "script")

	tk = tok.Next()
	require.Equal(t, CharToken, tk.Type)
	require.Equal(t, "if (1<2) {}", tk.Data)

	tk = tok.Next()
	require.Equal(t, EndTagToken, tk.Type)
	require.Equal(t, "script", tk.Data)

	tk = tok.Next()
	require.Equal(t, CharToken, tk.Type)
	require.Equal(t, "x", tk.Data)
}

func TestTokenizer_SelfClosingVoidTag(t *testing.T) {
	toks := tokenize(t, `<br/>`)
	require.Equal(t, StartTagToken, toks[0].Type)
	require.True(t, toks[0].SelfClosing)
}

func TestTokenizer_BogusCommentOnUnexpectedBang(t *testing.T) {
	src, err := streamio.NewStream(strings.NewReader(`<!not-a-doctype-or-comment><p>`), "utf-8", true)
	require.NoError(t, err)
	tok := New(src, nil)
	tk := tok.Next()
	require.Equal(t, CommentToken, tk.Type)
}
