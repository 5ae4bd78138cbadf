package htmltok

// entities is the named-character-reference lookup table (spec §6, Static
// data assets). The full HTML5 table has ~2200 entries; per spec §1 it is
// treated as an external static data asset out of scope for this repo, so
// this is a representative, alphabetically-dense subset covering the common
// prose, markup and math entities (including the legacy no-semicolon names)
// sufficient to exercise the longest-prefix-match algorithm in charref.go.
// A production build would generate this map from the WHATWG entities.json
// asset rather than hand-maintain it.
var entities = map[string][2]rune{
	"amp;":     {'&', 0},
	"amp":      {'&', 0},
	"lt;":      {'<', 0},
	"lt":       {'<', 0},
	"gt;":      {'>', 0},
	"gt":       {'>', 0},
	"quot;":    {'"', 0},
	"quot":     {'"', 0},
	"apos;":    {'\'', 0},
	"nbsp;":    {' ', 0},
	"nbsp":     {' ', 0},
	"copy;":    {'©', 0},
	"copy":     {'©', 0},
	"reg;":     {'®', 0},
	"reg":      {'®', 0},
	"trade;":   {'™', 0},
	"hellip;":  {'…', 0},
	"mdash;":   {'—', 0},
	"ndash;":   {'–', 0},
	"lsquo;":   {'‘', 0},
	"rsquo;":   {'’', 0},
	"ldquo;":   {'“', 0},
	"rdquo;":   {'”', 0},
	"eacute;":  {'é', 0},
	"eacute":   {'é', 0},
	"egrave;":  {'è', 0},
	"agrave;":  {'à', 0},
	"ccedil;":  {'ç', 0},
	"ccedil":   {'ç', 0},
	"uuml;":    {'ü', 0},
	"ouml;":    {'ö', 0},
	"auml;":    {'ä', 0},
	"szlig;":   {'ß', 0},
	"alpha;":   {'α', 0},
	"beta;":    {'β', 0},
	"gamma;":   {'γ', 0},
	"delta;":   {'δ', 0},
	"pi;":      {'π', 0},
	"sigma;":   {'σ', 0},
	"omega;":   {'ω', 0},
	"infin;":   {'∞', 0},
	"ne;":      {'≠', 0},
	"le;":      {'≤', 0},
	"ge;":      {'≥', 0},
	"times;":   {'×', 0},
	"divide;":  {'÷', 0},
	"plusmn;":  {'±', 0},
	"deg;":     {'°', 0},
	"micro;":   {'µ', 0},
	"para;":    {'¶', 0},
	"sect;":    {'§', 0},
	"middot;":  {'·', 0},
	"laquo;":   {'«', 0},
	"raquo;":   {'»', 0},
	"iexcl;":   {'¡', 0},
	"iquest;":  {'¿', 0},
	"euro;":    {'€', 0},
	"cent;":    {'¢', 0},
	"pound;":   {'£', 0},
	"yen;":     {'¥', 0},
	"curren;":  {'¤', 0},
	"bull;":    {'•', 0},
	"dagger;":  {'†', 0},
	"Dagger;":  {'‡', 0},
	"permil;":  {'‰', 0},
	"larr;":    {'←', 0},
	"uarr;":    {'↑', 0},
	"rarr;":    {'→', 0},
	"darr;":    {'↓', 0},
	"harr;":    {'↔', 0},
	"forall;":  {'∀', 0},
	"part;":    {'∂', 0},
	"exist;":   {'∃', 0},
	"empty;":   {'∅', 0},
	"isin;":    {'∈', 0},
	"notin;":   {'∉', 0},
	"sum;":     {'∑', 0},
	"prod;":    {'∏', 0},
	"radic;":   {'√', 0},
	"cap;":     {'∩', 0},
	"cup;":     {'∪', 0},
	"int;":     {'∫', 0},
	"there4;":  {'∴', 0},
	"sim;":     {'∼', 0},
	"cong;":    {'≅', 0},
	"asymp;":   {'≈', 0},
	"equiv;":   {'≡', 0},
	"sub;":     {'⊂', 0},
	"sup;":     {'⊃', 0},
	"nsub;":    {'⊄', 0},
	"sube;":    {'⊆', 0},
	"supe;":    {'⊇', 0},
	"oplus;":   {'⊕', 0},
	"otimes;":  {'⊗', 0},
	"perp;":    {'⊥', 0},
	"sdot;":    {'⋅', 0},
}

// legacyNoSemicolon is the set of names the HTML5 spec grandfathers in
// without a trailing semicolon (e.g. &amp, &copy). Matching one of these
// without a semicolon is tolerated but raises BadCharacterReference (spec
// §4.2, Character references).
var legacyNoSemicolon = map[string]bool{
	"amp": true, "lt": true, "gt": true, "quot": true,
	"nbsp": true, "copy": true, "reg": true, "eacute": true, "ccedil": true,
}

// numericOverrides implements the spec's windows-1252 override table for
// numeric references in the C1 control range (e.g. &#x80; -> U+20AC).
var numericOverrides = map[rune]rune{
	0x80: 0x20AC, 0x82: 0x201A, 0x83: 0x0192, 0x84: 0x201E, 0x85: 0x2026,
	0x86: 0x2020, 0x87: 0x2021, 0x88: 0x02C6, 0x89: 0x2030, 0x8A: 0x0160,
	0x8B: 0x2039, 0x8C: 0x0152, 0x8E: 0x017D, 0x91: 0x2018, 0x92: 0x2019,
	0x93: 0x201C, 0x94: 0x201D, 0x95: 0x2022, 0x96: 0x2013, 0x97: 0x2014,
	0x98: 0x02DC, 0x99: 0x2122, 0x9A: 0x0161, 0x9B: 0x203A, 0x9C: 0x0153,
	0x9E: 0x017E, 0x9F: 0x0178,
}
