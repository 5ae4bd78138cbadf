package htmltree

import (
	"strings"
	"testing"

	"github.com/dpotapov/go-markup/internal/htmltok"
	"github.com/dpotapov/go-markup/internal/streamio"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, input string) []Signal {
	t.Helper()
	src, err := streamio.NewStream(strings.NewReader(input), "utf-8", false)
	require.NoError(t, err)
	tok := htmltok.New(src, nil)
	b := NewBuilder(tok, "")
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

func TestBuilder_ImpliedHtmlHeadBody(t *testing.T) {
	sigs := build(t, `<p>hi</p>`)
	require.Equal(t, []string{"html", "head", "body", "p"}, names(sigs, SigStartElement))
	require.Equal(t, []string{"head", "p", "body", "html"}, names(sigs, SigEndElement))
}

func TestBuilder_DocumentOrderHoldsForNestedElements(t *testing.T) {
	// Regression: elements used to emit Start/End only when popped, so an
	// inner element (closed early) could appear in the stream before its
	// still-open parent's own Start signal.
	sigs := build(t, `<div><p>inner</p></div>`)
	var kinds []string
	for _, s := range sigs {
		switch s.Kind {
		case SigStartElement:
			kinds = append(kinds, "start:"+s.Name)
		case SigEndElement:
			kinds = append(kinds, "end:"+s.Name)
		}
	}
	require.Equal(t,
		[]string{"start:html", "start:head", "end:head", "start:body", "start:div", "start:p", "end:p", "end:div", "end:body", "end:html"},
		kinds,
	)
}

func TestBuilder_VoidElementNeverPushedOpen(t *testing.T) {
	sigs := build(t, `<p>a<br>b</p>`)
	starts := names(sigs, SigStartElement)
	ends := names(sigs, SigEndElement)
	require.Equal(t, []string{"html", "head", "body", "p", "br"}, starts)
	require.Equal(t, []string{"head", "br", "p", "body", "html"}, ends)
}

func TestBuilder_TableFosterParentsMisplacedText(t *testing.T) {
	sigs := build(t, `<table>x<tr><td>y</td></tr></table>`)
	var texts []string
	for _, s := range sigs {
		if s.Kind == SigText {
			texts = append(texts, s.Text)
		}
	}
	require.Contains(t, texts, "x")
	require.Contains(t, texts, "y")
	// The foster-parented "x" must not end up inside <table>.
	require.Equal(t, []string{"html", "head", "body", "table", "tbody", "tr", "td"}, names(sigs, SigStartElement))
}

func TestBuilder_MisnestedFormattingRunsAdoptionAgency(t *testing.T) {
	// <p>, a special element, opens between the still-open formatting
	// element <b> and the </b> that should close it: that is the furthest
	// block the adoption agency algorithm clones <b> around.
	sigs := build(t, `<b>bold<p>para</b>after</p>`)
	var sawError bool
	for _, s := range sigs {
		if s.Kind == SigError {
			sawError = true
		}
	}
	require.True(t, sawError)

	starts := names(sigs, SigStartElement)
	ends := names(sigs, SigEndElement)
	// Every element that was opened must eventually be closed: nesting
	// survives the adoption agency's cloning even though this markup is
	// malformed.
	require.Equal(t, len(starts), len(ends))
	require.Contains(t, starts, "b")
	require.Contains(t, starts, "p")
}

func TestBuilder_DoctypeForceQuirksSurfacesOnSignal(t *testing.T) {
	sigs := build(t, `<!doctype html SYSTEM "about:legacy-compat"><p>`)
	require.Equal(t, SigDoctype, sigs[0].Kind)
	require.Equal(t, "html", sigs[0].Name)
	require.False(t, sigs[0].ForceQuirks)
}

func TestBuilder_UnmatchedEndTagReportedAndIgnored(t *testing.T) {
	sigs := build(t, `<p>hi</div>there</p>`)
	var text string
	var sawError bool
	for _, s := range sigs {
		if s.Kind == SigText {
			text += s.Text
		}
		if s.Kind == SigError {
			sawError = true
		}
	}
	require.True(t, sawError)
	require.Contains(t, text, "hi")
	require.Contains(t, text, "there")
}

func TestBuilder_CommentBeforeHtmlAttachesToDocument(t *testing.T) {
	sigs := build(t, `<!-- top --><html><body>hi</body></html>`)
	require.Equal(t, SigComment, sigs[0].Kind)
	require.Equal(t, " top ", sigs[0].Text)
}
