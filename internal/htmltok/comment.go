package htmltok

import "strings"

func (t *Tokenizer) stepBogusComment() bool {
	c, _ := t.src.Next()
	switch c {
	case '>':
		t.emit(Token{Type: CommentToken, Loc: t.bogusLoc, Data: t.bogus.String()})
		t.state = dataState
	case streamEOF:
		t.emit(Token{Type: CommentToken, Loc: t.bogusLoc, Data: t.bogus.String()})
		t.state = dataState
	case 0:
		t.bogus.WriteRune('�')
	default:
		t.bogus.WriteRune(c)
	}
	return true
}

func (t *Tokenizer) stepMarkupDeclarationOpen() bool {
	peek := make([]rune, 0, 7)
	for i := 0; i < 7; i++ {
		c, _ := t.src.Next()
		if c == streamEOF {
			break
		}
		peek = append(peek, c)
	}
	s := string(peek)
	switch {
	case strings.HasPrefix(s, "--"):
		for i := len(s) - 1; i >= 2; i-- {
			t.src.PushBack(rune(s[i]))
		}
		t.bogusLoc = t.here()
		t.bogus.Reset()
		t.state = commentStartState
	case len(s) >= 7 && strings.EqualFold(s[:7], "DOCTYPE"):
		t.doctypeLoc = t.here()
		t.doctype = DoctypeData{}
		t.doctypeBuf.Reset()
		t.state = doctypeState
	case len(s) >= 7 && s[:7] == "[CDATA[":
		t.bogusLoc = t.here()
		t.bogus.Reset()
		t.state = cdataSectionState
	default:
		for i := len(s) - 1; i >= 0; i-- {
			t.src.PushBack(rune(s[i]))
		}
		t.errf(KindUnexpectedCharacter, "bogus markup declaration")
		t.bogusLoc = t.here()
		t.bogus.Reset()
		t.state = bogusCommentState
	}
	return true
}

func (t *Tokenizer) stepComment() bool {
	switch t.state {
	case commentStartState:
		c, _ := t.src.Next()
		switch c {
		case '-':
			t.state = commentStartDashState
		case '>':
			t.errf(KindUnexpectedCharacter, "empty comment")
			t.emitComment()
			t.state = dataState
		default:
			t.src.PushBack(c)
			t.state = commentState
		}
	case commentStartDashState:
		c, _ := t.src.Next()
		switch c {
		case '-':
			t.state = commentEndState
		case '>':
			t.errf(KindUnexpectedCharacter, "abrupt comment close")
			t.emitComment()
			t.state = dataState
		case streamEOF:
			t.errf(KindUnexpectedEOF, "in comment")
			t.emitComment()
			t.state = dataState
		default:
			t.bogus.WriteByte('-')
			t.src.PushBack(c)
			t.state = commentState
		}
	case commentState:
		c, _ := t.src.Next()
		switch c {
		case '<':
			t.bogus.WriteRune(c)
			t.state = commentLessThanSignState
		case '-':
			t.state = commentEndDashState
		case 0:
			t.bogus.WriteRune('�')
		case streamEOF:
			t.errf(KindUnexpectedEOF, "in comment")
			t.emitComment()
			t.state = dataState
		default:
			t.bogus.WriteRune(c)
		}
	case commentLessThanSignState:
		c, _ := t.src.Next()
		switch c {
		case '!':
			t.bogus.WriteRune(c)
			t.state = commentLessThanSignBangState
		case '<':
			t.bogus.WriteRune(c)
		default:
			t.src.PushBack(c)
			t.state = commentState
		}
	case commentLessThanSignBangState:
		c, _ := t.src.Next()
		if c == '-' {
			t.state = commentLessThanSignBangDashState
		} else {
			t.src.PushBack(c)
			t.state = commentState
		}
	case commentLessThanSignBangDashState:
		c, _ := t.src.Next()
		if c == '-' {
			t.state = commentLessThanSignBangDashDashState
		} else {
			t.src.PushBack(c)
			t.state = commentEndDashState
		}
	case commentLessThanSignBangDashDashState:
		c, _ := t.src.Next()
		if c != '>' && c != streamEOF {
			t.errf(KindUnexpectedCharacter, "nested comment")
		}
		t.src.PushBack(c)
		t.state = commentEndState
	case commentEndDashState:
		c, _ := t.src.Next()
		switch c {
		case '-':
			t.state = commentEndState
		case streamEOF:
			t.errf(KindUnexpectedEOF, "in comment")
			t.emitComment()
			t.state = dataState
		default:
			t.bogus.WriteByte('-')
			t.src.PushBack(c)
			t.state = commentState
		}
	case commentEndState:
		c, _ := t.src.Next()
		switch c {
		case '>':
			t.emitComment()
			t.state = dataState
		case '!':
			t.state = commentEndBangState
		case '-':
			t.bogus.WriteByte('-')
		case streamEOF:
			t.errf(KindUnexpectedEOF, "in comment")
			t.emitComment()
			t.state = dataState
		default:
			t.bogus.WriteString("--")
			t.src.PushBack(c)
			t.state = commentState
		}
	case commentEndBangState:
		c, _ := t.src.Next()
		switch c {
		case '-':
			t.bogus.WriteString("--!")
			t.state = commentEndDashState
		case '>':
			t.errf(KindUnexpectedCharacter, "comment ends with bang")
			t.emitComment()
			t.state = dataState
		case streamEOF:
			t.errf(KindUnexpectedEOF, "in comment")
			t.emitComment()
			t.state = dataState
		default:
			t.bogus.WriteString("--!")
			t.src.PushBack(c)
			t.state = commentState
		}
	}
	return true
}

func (t *Tokenizer) emitComment() {
	t.emit(Token{Type: CommentToken, Loc: t.bogusLoc, Data: t.bogus.String()})
}

func (t *Tokenizer) stepCDATA() bool {
	switch t.state {
	case cdataSectionState:
		c, _ := t.src.Next()
		switch c {
		case ']':
			t.state = cdataSectionBracketState
		case streamEOF:
			t.errf(KindUnexpectedEOF, "in CDATA section")
			t.appendText(t.bogus.String())
			t.state = dataState
		default:
			t.bogus.WriteRune(c)
		}
	case cdataSectionBracketState:
		c, _ := t.src.Next()
		if c == ']' {
			t.state = cdataSectionEndState
		} else {
			t.bogus.WriteByte(']')
			t.src.PushBack(c)
			t.state = cdataSectionState
		}
	case cdataSectionEndState:
		c, _ := t.src.Next()
		switch c {
		case '>':
			t.appendText(t.bogus.String())
			t.state = dataState
		case ']':
			t.bogus.WriteByte(']')
		default:
			t.bogus.WriteString("]]")
			t.src.PushBack(c)
			t.state = cdataSectionState
		}
	}
	return true
}
