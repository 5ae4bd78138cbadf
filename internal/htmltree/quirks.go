package htmltree

import (
	"strings"

	"github.com/dpotapov/go-markup/internal/htmltok"
)

// Quirks mode classification (spec §4.3.1, "quirks mode").
const (
	NoQuirks = iota
	Quirks
	LimitedQuirks
)

// quirksModeFor decides the document's quirks mode from its DOCTYPE, per
// the public-identifier/system-identifier tables in the HTML5 spec. Not
// present in the teacher (CHTML fragments never carry a doctype), so this
// is grounded directly on the spec text rather than adapted code.
func quirksModeFor(d htmltok.DoctypeData) int {
	if d.ForceQuirks || !strings.EqualFold(d.Name, "html") {
		return Quirks
	}
	pub := strings.ToLower(d.PublicID)
	sys := strings.ToLower(d.SystemID)
	switch pub {
	case "-//w3o//dtd w3 html strict 3.0//en//", "-/w3d/dtd html 4.0 transitional/en", "html":
		return Quirks
	}
	if sys == "http://www.ibm.com/data/dtd/v11/ibmxhtml1-transitional.dtd" {
		return Quirks
	}
	for _, p := range quirksPublicPrefixes {
		if strings.HasPrefix(pub, p) {
			return Quirks
		}
	}
	if sys == "" {
		for _, p := range quirksPublicPrefixesNoSystemID {
			if strings.HasPrefix(pub, p) {
				return Quirks
			}
		}
	}
	for _, p := range limitedQuirksPublicPrefixes {
		if strings.HasPrefix(pub, p) {
			return LimitedQuirks
		}
	}
	if sys != "" {
		for _, p := range limitedQuirksPublicPrefixesWithSystemID {
			if strings.HasPrefix(pub, p) {
				return LimitedQuirks
			}
		}
	}
	return NoQuirks
}

var quirksPublicPrefixes = []string{
	"-//advasoft ltd//dtd html 3.0 aswedit + extensions//",
	"-//as//dtd html 3.0 aswedit + extensions//",
	"-//ietf//dtd html 2.0//",
	"-//ietf//dtd html 2.1e//",
	"-//ietf//dtd html 3//",
	"-//ietf//dtd html 3.0//",
	"-//ietf//dtd html 3.2//",
	"-//ietf//dtd html level 0//",
	"-//ietf//dtd html level 1//",
	"-//ietf//dtd html level 2//",
	"-//ietf//dtd html level 3//",
	"-//ietf//dtd html strict level 0//",
	"-//ietf//dtd html strict level 1//",
	"-//ietf//dtd html strict level 2//",
	"-//ietf//dtd html strict level 3//",
	"-//metrius//dtd metrius presentational//",
	"-//microsoft//dtd internet explorer 2.0 html strict//",
	"-//microsoft//dtd internet explorer 2.0 html//",
	"-//microsoft//dtd internet explorer 2.0 tables//",
	"-//microsoft//dtd internet explorer 3.0 html strict//",
	"-//microsoft//dtd internet explorer 3.0 html//",
	"-//microsoft//dtd internet explorer 3.0 tables//",
	"-//netscape comm. corp.//dtd html//",
	"-//netscape comm. corp.//dtd strict html//",
	"-//o'reilly and associates//dtd html 2.0//",
	"-//o'reilly and associates//dtd html extended 1.0//",
	"-//o'reilly and associates//dtd html extended relaxed 1.0//",
	"-//softquad software//dtd hotmetal pro 6.0::19990601::extensions to html 4.0//",
	"-//softquad//dtd hotmetal pro 4.0::19971010::extensions to html 4.0//",
	"-//spyglass//dtd html 2.0 extended//",
	"-//sq//dtd html 2.0 hotmetal + extensions//",
	"-//sun microsystems corp.//dtd hotjava html//",
	"-//sun microsystems corp.//dtd hotjava strict html//",
	"-//w3c//dtd html 3 1995-03-24//",
	"-//w3c//dtd html 3.2 draft//",
	"-//w3c//dtd html 3.2 final//",
	"-//w3c//dtd html 3.2//",
	"-//w3c//dtd html 3.2s draft//",
	"-//w3c//dtd html 4.0 frameset//",
	"-//w3c//dtd html 4.0 transitional//",
	"-//w3c//dtd html experimental 19960712//",
	"-//w3c//dtd html experimental 970421//",
	"-//w3c//dtd w3 html//",
	"-//w3o//dtd w3 html 3.0//",
	"-//webtechs//dtd mozilla html 2.0//",
	"-//webtechs//dtd mozilla html//",
}

var quirksPublicPrefixesNoSystemID = []string{
	"-//w3c//dtd html 4.01 frameset//",
	"-//w3c//dtd html 4.01 transitional//",
}

var limitedQuirksPublicPrefixes = []string{
	"-//w3c//dtd xhtml 1.0 frameset//",
	"-//w3c//dtd xhtml 1.0 transitional//",
}

var limitedQuirksPublicPrefixesWithSystemID = []string{
	"-//w3c//dtd html 4.01 frameset//",
	"-//w3c//dtd html 4.01 transitional//",
}
