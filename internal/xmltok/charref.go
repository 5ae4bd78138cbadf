package xmltok

import "strings"

// predefinedEntities holds XML's five built-in entities (spec §4.4). XML,
// unlike HTML, defines no other named references; a DTD could declare more
// but DTD processing is out of scope.
var predefinedEntities = map[string]rune{
	"amp":  '&',
	"lt":   '<',
	"gt":   '>',
	"apos": '\'',
	"quot": '"',
}

// consumeCharRef is called with the leading '&' already consumed. It
// returns the decoded replacement text and whether the reference was
// malformed (in which case the literal "&name;"-ish text already consumed
// is still returned so callers don't lose data, but bad is true so the
// caller can report an error).
func (t *Tokenizer) consumeCharRef() (string, bool) {
	c, _ := t.src.Next()
	if c == '#' {
		return t.consumeNumericCharRef()
	}
	t.src.PushBack(c)

	var name strings.Builder
	for {
		c, _ := t.src.Next()
		if c == ';' {
			break
		}
		if c == streamEOF || isXMLWhitespace(c) || c == '&' || c == '<' {
			if c != streamEOF {
				t.src.PushBack(c)
			}
			return "&" + name.String(), true
		}
		name.WriteRune(c)
	}
	if r, ok := predefinedEntities[name.String()]; ok {
		return string(r), false
	}
	return "&" + name.String() + ";", true
}

func (t *Tokenizer) consumeNumericCharRef() (string, bool) {
	hex := false
	c, _ := t.src.Next()
	if c == 'x' || c == 'X' {
		hex = true
	} else {
		t.src.PushBack(c)
	}

	var digits strings.Builder
	for {
		c, _ := t.src.Next()
		if c == ';' {
			break
		}
		isDigit := c >= '0' && c <= '9'
		isHexDigit := isDigit || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
		if (hex && isHexDigit) || (!hex && isDigit) {
			digits.WriteRune(c)
			continue
		}
		if c != streamEOF {
			t.src.PushBack(c)
		}
		return "&#" + boolPrefix(hex) + digits.String(), true
	}
	if digits.Len() == 0 {
		return "&#" + boolPrefix(hex) + ";", true
	}

	base := 10
	if hex {
		base = 16
	}
	var v int64
	for _, d := range digits.String() {
		var dv int64
		switch {
		case d >= '0' && d <= '9':
			dv = int64(d - '0')
		case d >= 'a' && d <= 'f':
			dv = int64(d-'a') + 10
		case d >= 'A' && d <= 'F':
			dv = int64(d-'A') + 10
		}
		v = v*int64(base) + dv
		if v > 0x10FFFF {
			return "�", true
		}
	}
	if !isValidXMLChar(rune(v)) {
		return "�", true
	}
	return string(rune(v)), false
}

func boolPrefix(hex bool) string {
	if hex {
		return "x"
	}
	return ""
}

// isValidXMLChar implements the XML 1.0 Char production (spec §4.4's data
// model excludes the C0 control characters XML forbids outright).
func isValidXMLChar(r rune) bool {
	switch {
	case r == 0x9, r == 0xA, r == 0xD:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}
