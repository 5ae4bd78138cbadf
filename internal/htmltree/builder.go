package htmltree

import (
	"github.com/dpotapov/go-markup/internal/htmltok"
	a "golang.org/x/net/html/atom"
)

// Signal mirrors markup.Signal without importing the root package (same
// cycle-avoidance trick as htmltok.Location/Kind*, see node.go).
type Signal struct {
	Kind  int
	Loc   htmltok.Location
	Name  string
	NS    string
	Attr  []htmltok.Attribute
	Text  string
	Error *BuildError

	// Doctype fields, set only for SigDoctype.
	PublicID    string
	SystemID    string
	ForceQuirks bool
}

// Signal kinds, ordinal-matched against markup.SignalKind.
const (
	SigStartElement = iota
	SigEndElement
	SigText
	SigComment
	SigDoctype
	SigError
)

// BuildError mirrors markup.ParseError fields.
type BuildError struct {
	Kind   int
	Detail string
	Loc    htmltok.Location
}

// Builder runs the tree-construction algorithm (spec §4.3) over a Tokenizer
// and produces a bounded queue of Signals via Emit. It is the streaming
// generalization of the teacher's *parser: same open-elements/active-
// formatting-elements machinery, but signals leave as the tree is built: an
// element's Start_element is queued on out when it is pushed and its
// End_element when it is popped.
type Builder struct {
	tok *htmltok.Tokenizer

	cur         htmltok.Token
	selfClosing bool

	root *Node // synthetic document node; never flushed itself

	oe, afe     nodeStack
	form        *Node
	headPointer *Node

	im, originalIM insertionModeKind
	templateIMs    templateIMStack

	fosterParenting bool
	framesetOK      bool
	quirksMode      int // 0 = no-quirks, 1 = quirks, 2 = limited-quirks

	// pendingTableText buffers character tokens seen in InTableText mode
	// (spec §4.3, "in table text").
	pendingTableText []Token

	out []Signal

	context *Node // fragment-parsing context element, if any

	done bool
}

// Token is a tiny local alias kept for clarity in pendingTableText; it is
// the same shape as htmltok.Token restricted to char data.
type Token struct {
	Data string
}

// NewBuilder constructs a Builder over tok. If contextName is non-empty,
// parsing runs in the HTML fragment-parsing algorithm (spec §4.4) as if
// contextName were the context element.
func NewBuilder(tok *htmltok.Tokenizer, contextName string) *Builder {
	b := &Builder{tok: tok, root: &Node{Type: DocumentNode}, framesetOK: true}
	if contextName != "" {
		ctx := &Node{Type: ElementNode, Data: contextName, DataAtom: a.Lookup([]byte(contextName))}
		b.context = ctx
		b.oe = append(b.oe, ctx)
		b.resetInsertionModeAppropriately()
		if contextName == "title" || contextName == "textarea" {
			tok.SetContentModel(htmltok.RCDATA, contextName)
		} else if contextName == "style" || contextName == "xmp" || contextName == "iframe" ||
			contextName == "noembed" || contextName == "noframes" || contextName == "script" {
			tok.SetContentModel(htmltok.RAWTEXT, contextName)
		} else if contextName == "plaintext" {
			tok.SetContentModel(htmltok.PLAINTEXT, contextName)
		}
	} else {
		b.im = initialIM
	}
	return b
}

// Next drains the queue if non-empty, else pulls tokens through the
// insertion-mode machine until at least one Signal is produced or the
// document is fully parsed.
func (b *Builder) Next() (Signal, bool) {
	for len(b.out) == 0 && !b.done {
		b.step()
		if b.done {
			b.flushRemaining()
		}
	}
	if len(b.out) == 0 {
		return Signal{}, false
	}
	s := b.out[0]
	b.out = b.out[1:]
	return s, true
}

func (b *Builder) step() {
	b.cur = b.tok.Next()
	if b.cur.Type == htmltok.StartTagToken {
		b.selfClosing = b.cur.SelfClosing
	}
	b.dispatch()
	if b.cur.Type == htmltok.EOFToken {
		b.done = true
	}
}

// dispatch runs the current token through the foreign-content check (spec
// §4.3 "tree construction dispatcher") followed by the active insertion
// mode, repeating until consumed, mirroring the teacher's
// parseCurrentToken/inForeignContent pairing.
func (b *Builder) dispatch() {
	consumed := false
	for !consumed {
		if b.inForeignContent() {
			consumed = b.stepForeignContent()
		} else {
			consumed = b.modeFunc(b.im)(b)
		}
	}
}

func (b *Builder) top() *Node {
	if n := b.oe.top(); n != nil {
		return n
	}
	return b.root
}

// addChild appends n under the current insertion point (honoring foster
// parenting), then emits it immediately: an element gets its Start_element
// signal and a place on the stack of open elements; a text/comment/doctype
// leaf has nothing left to wait for and is emitted in full right away.
func (b *Builder) addChild(n *Node) {
	if b.shouldFosterParent() {
		b.fosterParent(n)
	} else {
		b.top().AppendChild(n)
	}
	if n.Type == ElementNode {
		b.oe = append(b.oe, n)
		b.emitStart(n)
	} else {
		b.emitLeaf(n)
	}
}

func (b *Builder) shouldFosterParent() bool {
	if !b.fosterParenting {
		return false
	}
	switch b.top().DataAtom {
	case a.Table, a.Tbody, a.Tfoot, a.Thead, a.Tr:
		return true
	}
	return false
}

func (b *Builder) fosterParent(n *Node) {
	var table, parent, template *Node
	var i int
	for i = len(b.oe) - 1; i >= 0; i-- {
		if b.oe[i].DataAtom == a.Table {
			table = b.oe[i]
			break
		}
	}
	var j int
	for j = len(b.oe) - 1; j >= 0; j-- {
		if b.oe[j].DataAtom == a.Template {
			template = b.oe[j]
			break
		}
	}
	if template != nil && (table == nil || j > i) {
		template.AppendChild(n)
		return
	}
	if table == nil {
		parent = b.oe[0]
	} else {
		parent = table.Parent
	}
	if parent == nil {
		parent = b.oe[i-1]
	}
	parent.InsertBefore(n, table)
}

// addText emits one Text signal per call rather than coalescing runs into a
// single buffered node: once a signal has been emitted its content can no
// longer grow, and the stack of open elements cannot tell which still-open
// ancestor a later coalesce would belong to. Consumers that need single
// runs should concatenate adjacent Text signals themselves.
func (b *Builder) addText(text string) {
	if text == "" {
		return
	}
	b.addChild(&Node{Type: TextNode, Data: text, Loc: b.cur.Loc})
}

func (b *Builder) addElement() {
	b.addChild(&Node{
		Type:     ElementNode,
		DataAtom: a.Lookup([]byte(b.cur.Data)),
		Data:     b.cur.Data,
		Attr:     b.cur.Attr,
		Loc:      b.cur.Loc,
	})
}

func (b *Builder) addComment() {
	b.addChild(&Node{Type: CommentNode, Data: b.cur.Data, Loc: b.cur.Loc})
}

// addFormattingElement implements the Noah's Ark clause (spec §4.3,
// "push onto the list of active formatting elements"), at most three
// identical entries per family.
func (b *Builder) addFormattingElement() {
	tagAtom, attr := a.Lookup([]byte(b.cur.Data)), b.cur.Attr
	b.addElement()

	identical := 0
findIdentical:
	for i := len(b.afe) - 1; i >= 0; i-- {
		n := b.afe[i]
		if n.Type == scopeMarkerNode {
			break
		}
		if n.Type != ElementNode || n.Namespace != "" || n.DataAtom != tagAtom || len(n.Attr) != len(attr) {
			continue
		}
	compareAttrs:
		for _, t0 := range n.Attr {
			for _, t1 := range attr {
				if t0.Name == t1.Name && t0.Value == t1.Value {
					continue compareAttrs
				}
			}
			continue findIdentical
		}
		identical++
		if identical >= 3 {
			b.afe.remove(n)
		}
	}
	b.afe = append(b.afe, b.top())
}

func (b *Builder) clearActiveFormattingElements() {
	for {
		if n := b.afe.pop(); len(b.afe) == 0 || n.Type == scopeMarkerNode {
			return
		}
	}
}

// reconstructActiveFormattingElements re-opens cloned formatting elements
// that table/foster-parenting closed implicitly (spec §4.3).
func (b *Builder) reconstructActiveFormattingElements() {
	n := b.afe.top()
	if n == nil {
		return
	}
	if n.Type == scopeMarkerNode || b.oe.index(n) != -1 {
		return
	}
	i := len(b.afe) - 1
	for n.Type != scopeMarkerNode && b.oe.index(n) == -1 {
		if i == 0 {
			i = -1
			break
		}
		i--
		n = b.afe[i]
	}
	for {
		i++
		clone := cloneNode(b.afe[i])
		b.addChild(clone)
		b.afe[i] = clone
		if i == len(b.afe)-1 {
			break
		}
	}
}

func (b *Builder) acknowledgeSelfClosingTag() {
	b.selfClosing = false
}

func (b *Builder) setOriginalIM() {
	b.originalIM = b.im
}

// generateImpliedEndTags pops elements whose tag is one of the "implied
// end tag" set (spec §4.3) off the stack of open elements, flushing each as
// it goes.
func (b *Builder) generateImpliedEndTags(exceptions ...string) {
	var i int
loop:
	for i = len(b.oe) - 1; i >= 0; i-- {
		n := b.oe[i]
		if n.Type != ElementNode {
			break
		}
		switch n.DataAtom {
		case a.Dd, a.Dt, a.Li, a.Optgroup, a.Option, a.P, a.Rb, a.Rp, a.Rt, a.Rtc:
			for _, except := range exceptions {
				if n.Data == except {
					break loop
				}
			}
			continue
		}
		break
	}
	b.popTo(i + 1)
}

// popTo truncates the open-elements stack to length n, emitting End_element
// for every popped node (innermost first, which is stack order — and also
// the correct document order, since an inner element always closes before
// the ancestor it is nested in).
func (b *Builder) popTo(n int) {
	for len(b.oe) > n {
		b.emitEnd(b.oe.pop())
	}
}

func (b *Builder) pop() *Node {
	n := b.oe.pop()
	b.emitEnd(n)
	return n
}

// emitStart emits Start_element for n the moment it is created: see node.go's
// doc comment for why emission happens at creation/pop time rather than
// being deferred until some later point.
func (b *Builder) emitStart(n *Node) {
	b.out = append(b.out, Signal{Kind: SigStartElement, Loc: n.Loc, Name: n.Data, NS: n.Namespace, Attr: n.Attr})
}

func (b *Builder) emitEnd(n *Node) {
	b.out = append(b.out, Signal{Kind: SigEndElement, Name: n.Data, NS: n.Namespace})
}

func (b *Builder) emitLeaf(n *Node) {
	switch n.Type {
	case TextNode:
		b.out = append(b.out, Signal{Kind: SigText, Loc: n.Loc, Text: n.Data})
	case CommentNode:
		b.out = append(b.out, Signal{Kind: SigComment, Loc: n.Loc, Text: n.Data})
	case DoctypeNode:
		b.out = append(b.out, Signal{Kind: SigDoctype, Loc: n.Loc, Name: n.Data, PublicID: n.PublicID, SystemID: n.SystemID, ForceQuirks: n.ForceQuirks})
	}
}

// flushRemaining closes whatever is still open at EOF so every element gets
// its End_element signal.
func (b *Builder) flushRemaining() {
	for len(b.oe) > 0 {
		b.pop()
	}
}

func (b *Builder) reportError(kind int, detail string) {
	b.out = append(b.out, Signal{Kind: SigError, Loc: b.cur.Loc, Error: &BuildError{Kind: kind, Detail: detail, Loc: b.cur.Loc}})
}

// scope mirrors the teacher's scope int and defaultScopeStopTags table
// (spec §4.3 "has an element in the specific scope").
type scope int

const (
	defaultScope scope = iota
	listItemScope
	buttonScope
	tableScope
	selectScope
)

var defaultScopeStopTags = map[string][]a.Atom{
	"":     {a.Applet, a.Caption, a.Html, a.Table, a.Td, a.Th, a.Marquee, a.Object, a.Template},
	"math": {a.AnnotationXml, a.Mi, a.Mn, a.Mo, a.Ms, a.Mtext},
	"svg":  {a.Desc, a.ForeignObject, a.Title},
}

func (b *Builder) indexOfElementInScope(s scope, matchTags ...a.Atom) int {
	for i := len(b.oe) - 1; i >= 0; i-- {
		tagAtom := b.oe[i].DataAtom
		if b.oe[i].Namespace == "" {
			for _, t := range matchTags {
				if t == tagAtom {
					return i
				}
			}
			switch s {
			case listItemScope:
				if tagAtom == a.Ol || tagAtom == a.Ul {
					return -1
				}
			case buttonScope:
				if tagAtom == a.Button {
					return -1
				}
			case tableScope:
				if tagAtom == a.Html || tagAtom == a.Table || tagAtom == a.Template {
					return -1
				}
			case selectScope:
				if tagAtom != a.Optgroup && tagAtom != a.Option {
					return -1
				}
			}
		}
		switch s {
		case defaultScope, listItemScope, buttonScope:
			for _, t := range defaultScopeStopTags[b.oe[i].Namespace] {
				if t == tagAtom {
					return -1
				}
			}
		}
	}
	return -1
}

func (b *Builder) elementInScope(s scope, matchTags ...a.Atom) bool {
	return b.indexOfElementInScope(s, matchTags...) != -1
}

// popUntil truncates the stack at the highest matching element within
// scope, flushing everything above (and including) it.
func (b *Builder) popUntil(s scope, matchTags ...a.Atom) bool {
	if i := b.indexOfElementInScope(s, matchTags...); i != -1 {
		b.popTo(i)
		return true
	}
	return false
}

func isSpecialElement(n *Node) bool {
	if n.Namespace != "" {
		return false
	}
	switch n.DataAtom {
	case a.Address, a.Applet, a.Area, a.Article, a.Aside, a.Base, a.Basefont, a.Bgsound,
		a.Blockquote, a.Body, a.Br, a.Button, a.Caption, a.Center, a.Col, a.Colgroup,
		a.Dd, a.Details, a.Dir, a.Div, a.Dl, a.Dt, a.Embed, a.Fieldset, a.Figcaption,
		a.Figure, a.Footer, a.Form, a.Frame, a.Frameset, a.H1, a.H2, a.H3, a.H4, a.H5, a.H6,
		a.Head, a.Header, a.Hgroup, a.Hr, a.Html, a.Iframe, a.Img, a.Input, a.Isindex,
		a.Li, a.Link, a.Listing, a.Main, a.Marquee, a.Menu, a.Meta, a.Nav, a.Noembed,
		a.Noframes, a.Noscript, a.Object, a.Ol, a.P, a.Param, a.Plaintext, a.Pre, a.Script,
		a.Section, a.Select, a.Source, a.Style, a.Summary, a.Table, a.Tbody, a.Td, a.Template,
		a.Textarea, a.Tfoot, a.Th, a.Thead, a.Title, a.Tr, a.Track, a.Ul, a.Wbr, a.Xmp:
		return true
	}
	return false
}

// parseImpliedToken runs t as though it came from the tokenizer, saving and
// restoring the real current token around it (spec's "insert an HTML
// element for a synthetic token" pattern).
func (b *Builder) parseImpliedToken(typ htmltok.TokenType, name string) {
	real, rsc := b.cur, b.selfClosing
	b.cur = htmltok.Token{Type: typ, Data: name, Loc: real.Loc}
	b.selfClosing = false
	b.dispatch()
	b.cur, b.selfClosing = real, rsc
}
