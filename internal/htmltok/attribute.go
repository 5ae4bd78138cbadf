package htmltok

func (t *Tokenizer) stepAttribute() bool {
	switch t.state {
	case beforeAttributeNameState:
		c, _ := t.src.Next()
		switch {
		case isWhitespace(c):
			// stay
		case c == '/' || c == '>' || c == streamEOF:
			if c != streamEOF {
				t.src.PushBack(c)
			}
			t.state = afterAttributeNameState
		case c == '=':
			t.errf(KindUnexpectedCharacter, "=")
			t.startAttr()
			t.curAttrName.WriteRune(c)
			t.state = attributeNameState
		default:
			t.startAttr()
			t.src.PushBack(c)
			t.state = attributeNameState
		}
	case attributeNameState:
		c, _ := t.src.Next()
		switch {
		case isWhitespace(c) || c == '/' || c == '>' || c == streamEOF:
			if c != streamEOF {
				t.src.PushBack(c)
			}
			t.state = afterAttributeNameState
		case c == '=':
			t.state = beforeAttributeValueState
		case c == '"' || c == '\'' || c == '<':
			t.errf(KindUnexpectedCharacter, string(c))
			t.curAttrName.WriteRune(c)
		default:
			t.curAttrName.WriteRune(toLowerASCII(c))
		}
	case afterAttributeNameState:
		c, _ := t.src.Next()
		switch {
		case isWhitespace(c):
		case c == '/':
			t.finishAttrNoValue()
			t.state = selfClosingStartTagState
		case c == '=':
			t.state = beforeAttributeValueState
		case c == '>':
			t.finishAttrNoValue()
			t.emitTag()
			t.state = dataState
		case c == streamEOF:
			t.errf(KindUnexpectedEOF, "in tag")
			t.state = dataState
		default:
			t.finishAttrNoValue()
			t.startAttr()
			t.src.PushBack(c)
			t.state = attributeNameState
		}
	case beforeAttributeValueState:
		c, _ := t.src.Next()
		switch {
		case isWhitespace(c):
		case c == '"':
			t.quote = '"'
			t.state = attributeValueDoubleQuotedState
		case c == '\'':
			t.quote = '\''
			t.state = attributeValueSingleQuotedState
		case c == '>':
			t.errf(KindUnexpectedCharacter, ">")
			t.finishAttrNoValue()
			t.emitTag()
			t.state = dataState
		default:
			t.src.PushBack(c)
			t.state = attributeValueUnquotedState
		}
	case attributeValueDoubleQuotedState, attributeValueSingleQuotedState:
		c, _ := t.src.Next()
		switch {
		case c == t.quote:
			t.finishAttrValue()
			t.state = afterAttributeValueQuotedState
		case c == '&':
			s, bad := t.consumeCharRef(true)
			if bad {
				t.errf(KindBadCharacterReference, "")
			}
			t.curAttrValue.WriteString(s)
		case c == streamEOF:
			t.errf(KindUnexpectedEOF, "in attribute value")
			t.finishAttrValue()
			t.state = dataState
		default:
			t.curAttrValue.WriteRune(c)
		}
	case attributeValueUnquotedState:
		c, _ := t.src.Next()
		switch {
		case isWhitespace(c):
			t.finishAttrValue()
			t.state = beforeAttributeNameState
		case c == '&':
			s, bad := t.consumeCharRef(true)
			if bad {
				t.errf(KindBadCharacterReference, "")
			}
			t.curAttrValue.WriteString(s)
		case c == '>':
			t.finishAttrValue()
			t.emitTag()
			t.state = dataState
		case c == streamEOF:
			t.errf(KindUnexpectedEOF, "in attribute value")
			t.finishAttrValue()
			t.state = dataState
		default:
			t.curAttrValue.WriteRune(c)
		}
	case afterAttributeValueQuotedState:
		c, _ := t.src.Next()
		switch {
		case isWhitespace(c):
			t.state = beforeAttributeNameState
		case c == '/':
			t.state = selfClosingStartTagState
		case c == '>':
			t.emitTag()
			t.state = dataState
		case c == streamEOF:
			t.errf(KindUnexpectedEOF, "in tag")
			t.state = dataState
		default:
			t.errf(KindUnexpectedCharacter, "missing whitespace between attributes")
			t.src.PushBack(c)
			t.state = beforeAttributeNameState
		}
	case selfClosingStartTagState:
		c, _ := t.src.Next()
		switch {
		case c == '>':
			t.selfClosing = true
			t.emitTag()
			t.state = dataState
		case c == streamEOF:
			t.errf(KindUnexpectedEOF, "in tag")
			t.state = dataState
		default:
			t.errf(KindUnexpectedCharacter, "/")
			t.src.PushBack(c)
			t.state = beforeAttributeNameState
		}
	}
	return true
}

func (t *Tokenizer) startAttr() {
	t.curAttrLoc = t.here()
	t.curAttrName.Reset()
	t.curAttrValue.Reset()
}

func (t *Tokenizer) finishAttrNoValue() {
	if t.curAttrName.Len() == 0 {
		return
	}
	t.attrs = append(t.attrs, Attribute{Name: t.curAttrName.String(), Loc: t.curAttrLoc})
}

func (t *Tokenizer) finishAttrValue() {
	if t.curAttrName.Len() == 0 {
		return
	}
	t.attrs = append(t.attrs, Attribute{Name: t.curAttrName.String(), Value: t.curAttrValue.String(), Loc: t.curAttrLoc})
}
