package htmltree

import (
	"strings"

	"github.com/dpotapov/go-markup/internal/htmltok"
	a "golang.org/x/net/html/atom"
)

// svgTagNameAdjustments maps a lowercased foreign tag name to its correct
// mixed-case SVG spelling (spec §4.3, "adjust SVG tag names"). The
// tokenizer always lowercases tag names, so this table is the only place
// camelCase SVG elements like foreignObject come back.
var svgTagNameAdjustments = map[string]string{
	"altglyph":            "altGlyph",
	"altglyphdef":         "altGlyphDef",
	"altglyphitem":        "altGlyphItem",
	"animatecolor":        "animateColor",
	"animatemotion":       "animateMotion",
	"animatetransform":    "animateTransform",
	"clippath":            "clipPath",
	"feblend":             "feBlend",
	"fecolormatrix":       "feColorMatrix",
	"fecomponenttransfer": "feComponentTransfer",
	"fecomposite":         "feComposite",
	"feconvolvematrix":    "feConvolveMatrix",
	"fediffuselighting":   "feDiffuseLighting",
	"fedisplacementmap":   "feDisplacementMap",
	"fedistantlight":      "feDistantLight",
	"fedropshadow":        "feDropShadow",
	"feflood":             "feFlood",
	"fefunca":             "feFuncA",
	"fefuncb":             "feFuncB",
	"fefuncg":             "feFuncG",
	"fefuncr":             "feFuncR",
	"fegaussianblur":      "feGaussianBlur",
	"feimage":             "feImage",
	"femerge":             "feMerge",
	"femergenode":         "feMergeNode",
	"femorphology":        "feMorphology",
	"feoffset":            "feOffset",
	"fepointlight":        "fePointLight",
	"fespecularlighting":  "feSpecularLighting",
	"fespotlight":         "feSpotLight",
	"fetile":              "feTile",
	"feturbulence":        "feTurbulence",
	"foreignobject":       "foreignObject",
	"glyphref":            "glyphRef",
	"lineargradient":      "linearGradient",
	"radialgradient":      "radialGradient",
	"textpath":            "textPath",
}

// foreignAttrAdjustment describes one namespaced foreign-attribute rename
// (spec §4.3, "adjust foreign attributes").
type foreignAttrAdjustment struct {
	name, namespace string
}

var foreignAttributeAdjustments = map[string]foreignAttrAdjustment{
	"xlink:actuate": {"actuate", "xlink"},
	"xlink:arcrole": {"arcrole", "xlink"},
	"xlink:href":    {"href", "xlink"},
	"xlink:role":    {"role", "xlink"},
	"xlink:show":    {"show", "xlink"},
	"xlink:title":   {"title", "xlink"},
	"xlink:type":    {"type", "xlink"},
	"xml:lang":      {"lang", "xml"},
	"xml:space":     {"space", "xml"},
	"xmlns":         {"xmlns", "xmlns"},
	"xmlns:xlink":   {"xlink", "xmlns"},
}

// svgAttributeAdjustments maps a lowercased SVG attribute name to its
// correct mixed-case spelling (spec §4.3).
var svgAttributeAdjustments = map[string]string{
	"attributename":       "attributeName",
	"attributetype":       "attributeType",
	"basefrequency":       "baseFrequency",
	"baseprofile":         "baseProfile",
	"calcmode":            "calcMode",
	"clippath":            "clipPath",
	"clippathunits":       "clipPathUnits",
	"diffuseconstant":     "diffuseConstant",
	"edgemode":            "edgeMode",
	"filterunits":         "filterUnits",
	"glyphref":            "glyphRef",
	"gradienttransform":   "gradientTransform",
	"gradientunits":       "gradientUnits",
	"kernelmatrix":        "kernelMatrix",
	"kernelunitlength":    "kernelUnitLength",
	"keypoints":           "keyPoints",
	"keysplines":          "keySplines",
	"keytimes":            "keyTimes",
	"lengthadjust":        "lengthAdjust",
	"limitingconeangle":   "limitingConeAngle",
	"markerheight":        "markerHeight",
	"markerunits":         "markerUnits",
	"markerwidth":         "markerWidth",
	"maskcontentunits":    "maskContentUnits",
	"maskunits":           "maskUnits",
	"numoctaves":          "numOctaves",
	"pathlength":          "pathLength",
	"patterncontentunits": "patternContentUnits",
	"patterntransform":    "patternTransform",
	"patternunits":        "patternUnits",
	"pointsatx":           "pointsAtX",
	"pointsaty":           "pointsAtY",
	"pointsatz":           "pointsAtZ",
	"preservealpha":       "preserveAlpha",
	"preserveaspectratio": "preserveAspectRatio",
	"primitiveunits":      "primitiveUnits",
	"refx":                "refX",
	"refy":                "refY",
	"repeatcount":         "repeatCount",
	"repeatdur":           "repeatDur",
	"requiredextensions":  "requiredExtensions",
	"requiredfeatures":    "requiredFeatures",
	"specularconstant":    "specularConstant",
	"specularexponent":    "specularExponent",
	"spreadmethod":        "spreadMethod",
	"startoffset":         "startOffset",
	"stddeviation":        "stdDeviation",
	"stitchtiles":         "stitchTiles",
	"surfacescale":        "surfaceScale",
	"systemlanguage":      "systemLanguage",
	"tablevalues":         "tableValues",
	"targetx":             "targetX",
	"targety":             "targetY",
	"textlength":          "textLength",
	"viewbox":             "viewBox",
	"viewtarget":          "viewTarget",
	"xchannelselector":    "xChannelSelector",
	"ychannelselector":    "yChannelSelector",
	"zoomandpan":          "zoomAndPan",
}

// mathMLAttributeAdjustments maps a lowercased MathML attribute name to its
// correct mixed-case spelling (spec §4.3). MathML has only one.
var mathMLAttributeAdjustments = map[string]string{
	"definitionurl": "definitionURL",
}

func adjustAttributeNames(attr []htmltok.Attribute, table map[string]string) {
	for i, at := range attr {
		if x, ok := table[at.Name]; ok {
			attr[i].Name = x
		}
	}
}

// foreignAttributeAdjustments is consulted only for documentation here:
// htmltok.Attribute carries a single Name string with no separate
// namespace field, and "xlink:href" etc. already arrive from the tokenizer
// in the colonized spelling foreign content expects, so there is nothing
// left to rewrite before a Signal's Attr reaches the caller.
var _ = foreignAttributeAdjustments

func mathMLTextIntegrationPoint(n *Node) bool {
	if n.Namespace != "math" {
		return false
	}
	switch n.DataAtom {
	case a.Mi, a.Mo, a.Mn, a.Ms, a.Mtext:
		return true
	}
	return false
}

func htmlIntegrationPoint(n *Node) bool {
	if n.Namespace == "" {
		return false
	}
	switch {
	case n.Namespace == "math" && n.DataAtom == a.AnnotationXml:
		for _, at := range n.Attr {
			if at.Name == "encoding" {
				v := strings.ToLower(at.Value)
				if v == "text/html" || v == "application/xhtml+xml" {
					return true
				}
			}
		}
	case n.Namespace == "svg" && (n.Data == "foreignObject" || n.Data == "desc" || n.Data == "title"):
		return true
	}
	return false
}

// inForeignContent decides whether the current token should be routed
// through stepForeignContent instead of the active insertion mode (spec
// §4.3 "tree construction dispatcher").
func (b *Builder) inForeignContent() bool {
	if len(b.oe) == 0 {
		return false
	}
	n := b.oe.top()
	if n.Namespace == "" {
		return false
	}
	if mathMLTextIntegrationPoint(n) {
		if b.cur.Type == htmltok.StartTagToken && b.cur.Data != "mglyph" && b.cur.Data != "malignmark" {
			return false
		}
		if b.cur.Type == htmltok.CharToken {
			return false
		}
	}
	if n.Namespace == "math" && n.DataAtom == a.AnnotationXml && b.cur.Type == htmltok.StartTagToken && b.cur.Data == "svg" {
		return false
	}
	if htmlIntegrationPoint(n) && (b.cur.Type == htmltok.StartTagToken || b.cur.Type == htmltok.CharToken) {
		return false
	}
	return b.cur.Type != htmltok.EOFToken
}

// stepForeignContent implements "the rules for parsing tokens in foreign
// content" (spec §4.3), adapted from the teacher's parseForeignContent.
func (b *Builder) stepForeignContent() bool {
	switch b.cur.Type {
	case htmltok.CharToken:
		b.addText(strings.ReplaceAll(b.cur.Data, "\x00", "�"))
		return true
	case htmltok.CommentToken:
		b.addComment()
		return true
	case htmltok.StartTagToken:
		current := b.oe.top()
		switch current.Namespace {
		case "math":
			adjustAttributeNames(b.cur.Attr, mathMLAttributeAdjustments)
		case "svg":
			if x := svgTagNameAdjustments[b.cur.Data]; x != "" {
				b.cur.Data = x
			}
			adjustAttributeNames(b.cur.Attr, svgAttributeAdjustments)
		}
		namespace := current.Namespace
		b.addElement()
		b.top().Namespace = namespace
		if namespace != "" {
			b.tok.NextIsNotRawText()
		}
		if b.selfClosing {
			b.pop()
			b.acknowledgeSelfClosingTag()
		}
		return true
	case htmltok.EndTagToken:
		for i := len(b.oe) - 1; i >= 0; i-- {
			if b.oe[i].Namespace == "" {
				return b.modeFunc(b.im)(b)
			}
			if strings.EqualFold(b.oe[i].Data, b.cur.Data) {
				b.popTo(i)
				return true
			}
		}
		return true
	default:
		return true
	}
}
