package htmltok

import "strings"

// consumeCharRef implements the "character reference in data/attribute"
// bullet of the tokenizer (combines the Character reference, Named
// character reference, Ambiguous ampersand, and the numeric reference
// states into one helper, since all four only ever run back-to-back from
// the '&' that tagOpen-adjacent states push back into). inAttribute
// controls whether an unterminated match consisting solely of alnum
// characters is left alone (legacy attribute-value quirk).
//
// It returns the decoded text to emit in place of the reference and
// whether a BadCharacterReference should be reported.
func (t *Tokenizer) consumeCharRef(inAttribute bool) (string, bool) {
	c, _ := t.src.Next()
	switch {
	case c == streamEOF || isWhitespace(c) || c == '<' || c == '&':
		if c != streamEOF {
			t.src.PushBack(c)
		}
		return "&", false
	case c == '#':
		return t.consumeNumericRef()
	default:
		t.src.PushBack(c)
		return t.consumeNamedRef(inAttribute)
	}
}

func (t *Tokenizer) consumeNamedRef(inAttribute bool) (string, bool) {
	var sb strings.Builder
	sb.WriteByte('&')
	var best string
	var bestRunes [2]rune
	for {
		c, _ := t.src.Next()
		if c == streamEOF {
			break
		}
		if !isAlnum(c) && c != ';' {
			t.src.PushBack(c)
			break
		}
		sb.WriteRune(c)
		cand := sb.String()[1:]
		if v, ok := entities[cand]; ok {
			best = cand
			bestRunes = v
		}
		if c == ';' {
			break
		}
	}
	if best == "" {
		// No match at all: put everything back except the '&'.
		matched := sb.String()[1:]
		for i := len(matched) - 1; i >= 0; i-- {
			t.src.PushBack(rune(matched[i]))
		}
		return "&", false
	}
	// Put back any scalars consumed past the longest match.
	matched := sb.String()[1:]
	if len(matched) > len(best) {
		tail := matched[len(best):]
		for i := len(tail) - 1; i >= 0; i-- {
			t.src.PushBack(rune(tail[i]))
		}
	}
	hadSemi := strings.HasSuffix(best, ";")
	if !hadSemi && inAttribute {
		if next, _ := t.src.Next(); next != streamEOF {
			t.src.PushBack(next)
			if next == '=' || isAlnum(next) {
				// A non-semicolon match immediately followed by '=' or an
				// alphanumeric is left as a literal ampersand in attribute
				// values, so legacy query-string-like values such as
				// "?a&notit=1" are not corrupted.
				for i := len(best) - 1; i >= 0; i-- {
					t.src.PushBack(rune(best[i]))
				}
				return "&", false
			}
		}
	}
	out := string(bestRunes[0])
	if bestRunes[1] != 0 {
		out += string(bestRunes[1])
	}
	return out, !hadSemi
}

func (t *Tokenizer) consumeNumericRef() (string, bool) {
	c, _ := t.src.Next()
	hex := false
	if c == 'x' || c == 'X' {
		hex = true
	} else if c != streamEOF {
		t.src.PushBack(c)
	}

	var digits strings.Builder
	for {
		c, _ := t.src.Next()
		if c == streamEOF {
			break
		}
		if hex && isHexDigit(c) || !hex && isDigit(c) {
			digits.WriteRune(c)
			continue
		}
		if c != ';' {
			t.src.PushBack(c)
		}
		break
	}

	if digits.Len() == 0 {
		return "&#", true
	}

	var v int64
	base := int64(10)
	if hex {
		base = 16
	}
	for _, r := range digits.String() {
		d := hexVal(r)
		v = v*base + int64(d)
		if v > 0x10FFFF {
			v = 0x110000
		}
	}

	if ov, ok := numericOverrides[rune(v)]; ok {
		return string(ov), true
	}
	if v == 0 || (v >= 0xD800 && v <= 0xDFFF) || v > 0x10FFFF {
		return "�", true
	}
	return string(rune(v)), false
}

func hexVal(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	}
	return 0
}

func isDigit(r rune) bool    { return r >= '0' && r <= '9' }
func isHexDigit(r rune) bool { return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F') }
func isAlnum(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f':
		return true
	}
	return false
}
