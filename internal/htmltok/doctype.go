package htmltok

func (t *Tokenizer) stepDoctype() bool {
	switch t.state {
	case doctypeState:
		c, _ := t.src.Next()
		if isWhitespace(c) {
			t.state = beforeDoctypeNameState
		} else {
			t.src.PushBack(c)
			t.state = beforeDoctypeNameState
		}
	case beforeDoctypeNameState:
		c, _ := t.src.Next()
		switch {
		case isWhitespace(c):
		case c == '>':
			t.doctype.ForceQuirks = true
			t.errf(KindBadDoctype, "missing name")
			t.emitDoctype()
			t.state = dataState
		case c == streamEOF:
			t.errf(KindUnexpectedEOF, "in doctype")
			t.doctype.ForceQuirks = true
			t.emitDoctype()
			t.state = dataState
		default:
			t.doctypeBuf.Reset()
			t.doctypeBuf.WriteRune(toLowerASCII(c))
			t.state = doctypeNameState
		}
	case doctypeNameState:
		c, _ := t.src.Next()
		switch {
		case isWhitespace(c):
			t.doctype.Name = t.doctypeBuf.String()
			t.state = afterDoctypeNameState
		case c == '>':
			t.doctype.Name = t.doctypeBuf.String()
			t.emitDoctype()
			t.state = dataState
		case c == streamEOF:
			t.errf(KindUnexpectedEOF, "in doctype")
			t.doctype.Name = t.doctypeBuf.String()
			t.doctype.ForceQuirks = true
			t.emitDoctype()
			t.state = dataState
		default:
			t.doctypeBuf.WriteRune(toLowerASCII(c))
		}
	case afterDoctypeNameState:
		t.stepAfterDoctypeName()
	case afterDoctypePublicKeywordState:
		c, _ := t.src.Next()
		switch {
		case isWhitespace(c):
			t.state = beforeDoctypePublicIdentifierState
		case c == '"' || c == '\'':
			t.errf(KindBadDoctype, "missing whitespace before public identifier")
			t.quote = c
			t.doctypeBuf.Reset()
			t.doctype.HasPublicID = true
			t.state = publicIDState(c)
		case c == '>':
			t.errf(KindBadDoctype, "missing public identifier")
			t.doctype.ForceQuirks = true
			t.emitDoctype()
			t.state = dataState
		default:
			t.errf(KindBadDoctype, "missing quote before public identifier")
			t.src.PushBack(c)
			t.doctype.ForceQuirks = true
			t.state = bogusDoctypeState
		}
	case beforeDoctypePublicIdentifierState:
		c, _ := t.src.Next()
		switch {
		case isWhitespace(c):
		case c == '"' || c == '\'':
			t.quote = c
			t.doctypeBuf.Reset()
			t.doctype.HasPublicID = true
			t.state = publicIDState(c)
		case c == '>':
			t.errf(KindBadDoctype, "missing public identifier")
			t.doctype.ForceQuirks = true
			t.emitDoctype()
			t.state = dataState
		default:
			t.errf(KindBadDoctype, "missing quote before public identifier")
			t.doctype.ForceQuirks = true
			t.src.PushBack(c)
			t.state = bogusDoctypeState
		}
	case doctypePublicIdentifierDoubleQuotedState, doctypePublicIdentifierSingleQuotedState:
		c, _ := t.src.Next()
		switch {
		case c == t.quote:
			t.doctype.PublicID = t.doctypeBuf.String()
			t.state = afterDoctypePublicIdentifierState
		case c == '>':
			t.errf(KindBadDoctype, "abrupt doctype public identifier")
			t.doctype.PublicID = t.doctypeBuf.String()
			t.doctype.ForceQuirks = true
			t.emitDoctype()
			t.state = dataState
		case c == streamEOF:
			t.errf(KindUnexpectedEOF, "in doctype")
			t.doctype.PublicID = t.doctypeBuf.String()
			t.doctype.ForceQuirks = true
			t.emitDoctype()
			t.state = dataState
		default:
			t.doctypeBuf.WriteRune(c)
		}
	case afterDoctypePublicIdentifierState:
		c, _ := t.src.Next()
		switch {
		case isWhitespace(c):
			t.state = betweenDoctypePublicAndSystemIdentifiersState
		case c == '>':
			t.emitDoctype()
			t.state = dataState
		case c == '"' || c == '\'':
			t.errf(KindBadDoctype, "missing whitespace between identifiers")
			t.quote = c
			t.doctypeBuf.Reset()
			t.doctype.HasSystemID = true
			t.state = systemIDState(c)
		default:
			t.errf(KindBadDoctype, "missing quote before system identifier")
			t.doctype.ForceQuirks = true
			t.src.PushBack(c)
			t.state = bogusDoctypeState
		}
	case betweenDoctypePublicAndSystemIdentifiersState:
		c, _ := t.src.Next()
		switch {
		case isWhitespace(c):
		case c == '>':
			t.emitDoctype()
			t.state = dataState
		case c == '"' || c == '\'':
			t.quote = c
			t.doctypeBuf.Reset()
			t.doctype.HasSystemID = true
			t.state = systemIDState(c)
		default:
			t.errf(KindBadDoctype, "missing quote before system identifier")
			t.doctype.ForceQuirks = true
			t.src.PushBack(c)
			t.state = bogusDoctypeState
		}
	case afterDoctypeSystemKeywordState:
		c, _ := t.src.Next()
		switch {
		case isWhitespace(c):
			t.state = beforeDoctypeSystemIdentifierState
		case c == '"' || c == '\'':
			t.quote = c
			t.doctypeBuf.Reset()
			t.doctype.HasSystemID = true
			t.state = systemIDState(c)
		case c == '>':
			t.errf(KindBadDoctype, "missing system identifier")
			t.doctype.ForceQuirks = true
			t.emitDoctype()
			t.state = dataState
		default:
			t.errf(KindBadDoctype, "missing quote before system identifier")
			t.doctype.ForceQuirks = true
			t.src.PushBack(c)
			t.state = bogusDoctypeState
		}
	case beforeDoctypeSystemIdentifierState:
		c, _ := t.src.Next()
		switch {
		case isWhitespace(c):
		case c == '"' || c == '\'':
			t.quote = c
			t.doctypeBuf.Reset()
			t.doctype.HasSystemID = true
			t.state = systemIDState(c)
		case c == '>':
			t.errf(KindBadDoctype, "missing system identifier")
			t.doctype.ForceQuirks = true
			t.emitDoctype()
			t.state = dataState
		default:
			t.errf(KindBadDoctype, "missing quote before system identifier")
			t.doctype.ForceQuirks = true
			t.src.PushBack(c)
			t.state = bogusDoctypeState
		}
	case doctypeSystemIdentifierDoubleQuotedState, doctypeSystemIdentifierSingleQuotedState:
		c, _ := t.src.Next()
		switch {
		case c == t.quote:
			t.doctype.SystemID = t.doctypeBuf.String()
			t.state = afterDoctypeSystemIdentifierState
		case c == '>':
			t.errf(KindBadDoctype, "abrupt doctype system identifier")
			t.doctype.SystemID = t.doctypeBuf.String()
			t.doctype.ForceQuirks = true
			t.emitDoctype()
			t.state = dataState
		case c == streamEOF:
			t.errf(KindUnexpectedEOF, "in doctype")
			t.doctype.SystemID = t.doctypeBuf.String()
			t.doctype.ForceQuirks = true
			t.emitDoctype()
			t.state = dataState
		default:
			t.doctypeBuf.WriteRune(c)
		}
	case afterDoctypeSystemIdentifierState:
		c, _ := t.src.Next()
		switch {
		case isWhitespace(c):
		case c == '>':
			t.emitDoctype()
			t.state = dataState
		case c == streamEOF:
			t.errf(KindUnexpectedEOF, "in doctype")
			t.doctype.ForceQuirks = true
			t.emitDoctype()
			t.state = dataState
		default:
			t.errf(KindBadDoctype, "unexpected character after system identifier")
			t.src.PushBack(c)
			t.state = bogusDoctypeState
		}
	case bogusDoctypeState:
		c, _ := t.src.Next()
		switch c {
		case '>':
			t.emitDoctype()
			t.state = dataState
		case streamEOF:
			t.emitDoctype()
			t.state = dataState
		}
	}
	return true
}

func (t *Tokenizer) stepAfterDoctypeName() {
	c, _ := t.src.Next()
	switch {
	case isWhitespace(c):
	case c == '>':
		t.emitDoctype()
		t.state = dataState
	case c == streamEOF:
		t.errf(KindUnexpectedEOF, "in doctype")
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		t.state = dataState
	default:
		// Only the literal keywords PUBLIC/SYSTEM are meaningful here; six
		// scalars is enough lookahead to tell them apart from bogus markup.
		buf := []rune{c}
		for i := 0; i < 5; i++ {
			n, _ := t.src.Next()
			if n == streamEOF {
				break
			}
			buf = append(buf, n)
		}
		word := string(buf)
		switch {
		case len(word) >= 6 && equalFoldASCII(word[:6], "PUBLIC"):
			pushBackTail(t.src, word, 6)
			t.state = afterDoctypePublicKeywordState
		case len(word) >= 6 && equalFoldASCII(word[:6], "SYSTEM"):
			pushBackTail(t.src, word, 6)
			t.state = afterDoctypeSystemKeywordState
		default:
			for i := len(word) - 1; i >= 0; i-- {
				t.src.PushBack(rune(word[i]))
			}
			t.errf(KindBadDoctype, "bogus doctype")
			t.doctype.ForceQuirks = true
			t.state = bogusDoctypeState
		}
	}
}

func publicIDState(quote rune) state {
	if quote == '"' {
		return doctypePublicIdentifierDoubleQuotedState
	}
	return doctypePublicIdentifierSingleQuotedState
}

func systemIDState(quote rune) state {
	if quote == '"' {
		return doctypeSystemIdentifierDoubleQuotedState
	}
	return doctypeSystemIdentifierSingleQuotedState
}

func equalFoldASCII(s, upper string) bool {
	if len(s) != len(upper) {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c != upper[i] {
			return false
		}
	}
	return true
}

func pushBackTail(src interface{ PushBack(rune) }, word string, consumed int) {
	for i := len(word) - 1; i >= consumed; i-- {
		src.PushBack(rune(word[i]))
	}
}

func (t *Tokenizer) emitDoctype() {
	t.emit(Token{Type: DoctypeToken, Loc: t.doctypeLoc, Doctype: t.doctype})
}
