package xmltok

import "strings"

// stepMarkupDecl dispatches "<!" to comment, CDATA, or DOCTYPE, using
// bounded lookahead the same way htmltok's stepMarkupDeclarationOpen does.
func (t *Tokenizer) stepMarkupDecl() bool {
	c, _ := t.src.Next()
	if c == '-' {
		c2, _ := t.src.Next()
		if c2 == '-' {
			t.bogus.Reset()
			t.state = commentState
			return true
		}
		if c2 != streamEOF {
			t.src.PushBack(c2)
		}
	} else {
		buf := []rune{c}
		for i := 0; i < 6; i++ {
			n, _ := t.src.Next()
			if n == streamEOF {
				break
			}
			buf = append(buf, n)
		}
		word := string(buf)
		if strings.HasPrefix(word, "[CDATA[") {
			pushBackTail(t.src, word, 7)
			t.bogus.Reset()
			t.state = cdataState
			return true
		}
		if len(word) >= 7 && strings.EqualFold(word[:7], "DOCTYPE") {
			pushBackTail(t.src, word, 7)
			t.consumeDoctype()
			t.state = textState
			return true
		}
		for i := len(word) - 1; i >= 0; i-- {
			t.src.PushBack(rune(word[i]))
		}
	}
	t.errf(KindBadDoctype, "bogus markup declaration")
	// Skip to the next '>' to recover.
	for {
		c, _ := t.src.Next()
		if c == '>' || c == streamEOF {
			break
		}
	}
	t.state = textState
	return true
}

func pushBackTail(src interface{ PushBack(rune) }, word string, consumed int) {
	for i := len(word) - 1; i >= consumed; i-- {
		src.PushBack(rune(word[i]))
	}
}

func (t *Tokenizer) stepComment() bool {
	for {
		c, _ := t.src.Next()
		if c == streamEOF {
			t.errf(KindUnexpectedEOF, "in comment")
			t.emit(Token{Type: CommentToken, Loc: t.tagLoc, Data: t.bogus.String()})
			t.state = textState
			return true
		}
		if c == '-' {
			c2, _ := t.src.Next()
			if c2 == '-' {
				c3, _ := t.src.Next()
				if c3 == '>' {
					t.emit(Token{Type: CommentToken, Loc: t.tagLoc, Data: t.bogus.String()})
					t.state = textState
					return true
				}
				t.errf(KindBadDoctype, "-- inside comment")
				t.bogus.WriteByte('-')
				t.bogus.WriteByte('-')
				if c3 != streamEOF {
					t.src.PushBack(c3)
				}
				continue
			}
			t.bogus.WriteByte('-')
			if c2 != streamEOF {
				t.src.PushBack(c2)
			}
			continue
		}
		t.bogus.WriteRune(c)
	}
}

func (t *Tokenizer) stepCDATA() bool {
	for {
		c, _ := t.src.Next()
		if c == streamEOF {
			t.errf(KindUnexpectedEOF, "in CDATA section")
			t.emit(Token{Type: CharToken, Loc: t.tagLoc, Data: t.bogus.String()})
			t.state = textState
			return true
		}
		if c == ']' {
			c2, _ := t.src.Next()
			if c2 == ']' {
				c3, _ := t.src.Next()
				if c3 == '>' {
					t.emit(Token{Type: CharToken, Loc: t.tagLoc, Data: t.bogus.String()})
					t.state = textState
					return true
				}
				t.bogus.WriteByte(']')
				t.bogus.WriteByte(']')
				if c3 != streamEOF {
					t.src.PushBack(c3)
				}
				continue
			}
			t.bogus.WriteByte(']')
			if c2 != streamEOF {
				t.src.PushBack(c2)
			}
			continue
		}
		t.bogus.WriteRune(c)
	}
}

// consumeDoctype skips a DOCTYPE declaration, tracking bracket depth so an
// internal subset's nested '>' (inside <!ELEMENT ...> etc.) doesn't
// terminate the declaration early. DTD validation itself is out of scope
// (spec Non-goals); this only needs to find the matching '>'.
func (t *Tokenizer) consumeDoctype() {
	loc := t.here()
	t.bogus.Reset()
	depth := 0
	for {
		c, _ := t.src.Next()
		if c == streamEOF {
			t.errf(KindUnexpectedEOF, "in doctype")
			break
		}
		if c == '[' {
			depth++
		} else if c == ']' {
			depth--
		} else if c == '>' && depth <= 0 {
			break
		}
		t.bogus.WriteRune(c)
	}
	t.emit(Token{Type: DoctypeToken, Loc: loc, Data: strings.TrimSpace(t.bogus.String())})
}

// stepPI handles "<?target content?>" (spec §4.4), including the special
// "<?xml ...?>" XML declaration that only PIState ever sees once, at the
// very start of the document.
func (t *Tokenizer) stepPI() bool {
	var target strings.Builder
	for {
		c, _ := t.src.Next()
		if c == streamEOF || isXMLWhitespace(c) || c == '?' {
			if c != streamEOF {
				t.src.PushBack(c)
			}
			break
		}
		target.WriteRune(c)
	}
	name := target.String()

	var content strings.Builder
	for {
		c, _ := t.src.Next()
		if c == streamEOF {
			t.errf(KindUnexpectedEOF, "in processing instruction")
			break
		}
		if c == '?' {
			c2, _ := t.src.Next()
			if c2 == '>' {
				break
			}
			content.WriteByte('?')
			if c2 != streamEOF {
				t.src.PushBack(c2)
			}
			continue
		}
		content.WriteRune(c)
	}

	body := content.String()
	if strings.EqualFold(name, "xml") && !t.seenAnyTag && !t.sawXMLDecl {
		t.sawXMLDecl = true
		dec := Token{Type: XMLDeclToken, Loc: t.tagLoc, Version: "1.0", Encoding: "", Standalone: ""}
		dec.Version = declAttr(body, "version")
		dec.Encoding = declAttr(body, "encoding")
		dec.Standalone = declAttr(body, "standalone")
		t.emit(dec)
		return true
	}
	t.emit(Token{Type: PIToken, Loc: t.tagLoc, Data: strings.TrimSpace(name), PIContent: strings.TrimSpace(body)})
	return true
}

func declAttr(body, name string) string {
	i := strings.Index(body, name+"=")
	if i == -1 {
		return ""
	}
	rest := body[i+len(name)+1:]
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return ""
	}
	quote := rest[0]
	if quote != '"' && quote != '\'' {
		return ""
	}
	rest = rest[1:]
	j := strings.IndexByte(rest, quote)
	if j == -1 {
		return rest
	}
	return rest[:j]
}
