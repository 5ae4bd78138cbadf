package xmltok

func (t *Tokenizer) stepAttr() bool {
	switch t.state {
	case beforeAttrNameState:
		c, _ := t.src.Next()
		switch {
		case isXMLWhitespace(c):
		case c == '/':
			t.selfClose = true
			t.state = afterTagState
		case c == '>':
			t.emitTag()
			t.state = textState
		case c == streamEOF:
			t.errf(KindUnexpectedEOF, "in tag")
			t.state = textState
		case isNameStart(c):
			t.src.PushBack(c)
			t.attrLoc = t.here()
			t.attrName.Reset()
			t.state = attrNameState
		default:
			t.errf(KindUnexpectedCharacter, "expected attribute name")
		}
	case attrNameState:
		c, _ := t.src.Next()
		switch {
		case isNameChar(c):
			t.attrName.WriteRune(c)
		case isXMLWhitespace(c):
			t.state = beforeAttrValueState
		case c == '=':
			t.state = beforeAttrValueState
			t.src.PushBack('=')
		case c == streamEOF:
			t.errf(KindUnexpectedEOF, "in attribute name")
			t.state = textState
		default:
			t.errf(KindUnexpectedCharacter, "in attribute name")
		}
	case beforeAttrValueState:
		c, _ := t.src.Next()
		switch {
		case isXMLWhitespace(c):
		case c == '=':
		case c == '"':
			t.attrValue.Reset()
			t.quote = '"'
			t.state = attrValueDQState
		case c == '\'':
			t.attrValue.Reset()
			t.quote = '\''
			t.state = attrValueSQState
		case c == streamEOF:
			t.errf(KindUnexpectedEOF, "in attribute value")
			t.state = textState
		default:
			t.errf(KindUnexpectedCharacter, "expected attribute value")
			t.src.PushBack(c)
			t.state = beforeAttrNameState
		}
	case attrValueDQState, attrValueSQState:
		c, _ := t.src.Next()
		switch {
		case c == t.quote:
			t.attrs = append(t.attrs, Attribute{Name: t.attrName.String(), Value: t.attrValue.String(), Loc: t.attrLoc})
			t.state = beforeAttrNameState
		case c == '&':
			s, bad := t.consumeCharRef()
			if bad {
				t.errf(KindBadCharacterReference, "")
			}
			t.attrValue.WriteString(s)
		case isXMLWhitespace(c):
			t.attrValue.WriteByte(' ')
		case c == '<':
			t.errf(KindUnexpectedCharacter, "< in attribute value")
			t.attrValue.WriteRune(c)
		case c == streamEOF:
			t.errf(KindUnexpectedEOF, "in attribute value")
			t.state = textState
		default:
			t.attrValue.WriteRune(c)
		}
	case afterTagState:
		c, _ := t.src.Next()
		switch {
		case isXMLWhitespace(c):
		case c == '>':
			t.emitTag()
			t.state = textState
		case c == streamEOF:
			t.errf(KindUnexpectedEOF, "in tag")
			t.state = textState
		default:
			t.errf(KindUnexpectedCharacter, "expected '>'")
		}
	}
	return true
}
