package htmltree

// insertionModeKind names one of the 23 insertion modes (spec §3,
// InsertionMode). Unlike the teacher's package, which only ever needed a
// handful of these because CHTML parses a fixed fragment shape, this
// builder implements the full HTML5 mode machine.
type insertionModeKind int

const (
	initialIM insertionModeKind = iota
	beforeHtmlIM
	beforeHeadIM
	inHeadIM
	inHeadNoscriptIM
	afterHeadIM
	inBodyIM
	textIM
	inTableIM
	inTableTextIM
	inCaptionIM
	inColumnGroupIM
	inTableBodyIM
	inRowIM
	inCellIM
	inSelectIM
	inSelectInTableIM
	inTemplateIM
	afterBodyIM
	inFramesetIM
	afterFramesetIM
	afterAfterBodyIM
	afterAfterFramesetIM
)

// insertionMode is the state-transition function type for tree
// construction (spec §3): it updates builder state from b.cur (an EOF
// token means the document ended) and reports whether the token was
// consumed. A false return means "reprocess this same token under the
// insertion mode b.im now holds", exactly as golang.org/x/net/html's
// insertionMode does.
type insertionMode func(b *Builder) bool

func (b *Builder) modeFunc(k insertionModeKind) insertionMode {
	switch k {
	case initialIM:
		return initialModeFn
	case beforeHtmlIM:
		return beforeHtmlModeFn
	case beforeHeadIM:
		return beforeHeadModeFn
	case inHeadIM:
		return inHeadModeFn
	case inHeadNoscriptIM:
		return inHeadNoscriptModeFn
	case afterHeadIM:
		return afterHeadModeFn
	case inBodyIM:
		return inBodyModeFn
	case textIM:
		return textModeFn
	case inTableIM:
		return inTableModeFn
	case inTableTextIM:
		return inTableTextModeFn
	case inCaptionIM:
		return inCaptionModeFn
	case inColumnGroupIM:
		return inColumnGroupModeFn
	case inTableBodyIM:
		return inTableBodyModeFn
	case inRowIM:
		return inRowModeFn
	case inCellIM:
		return inCellModeFn
	case inSelectIM:
		return inSelectModeFn
	case inSelectInTableIM:
		return inSelectInTableModeFn
	case inTemplateIM:
		return inTemplateModeFn
	case afterBodyIM:
		return afterBodyModeFn
	case inFramesetIM:
		return inFramesetModeFn
	case afterFramesetIM:
		return afterFramesetModeFn
	case afterAfterBodyIM:
		return afterAfterBodyModeFn
	case afterAfterFramesetIM:
		return afterAfterFramesetModeFn
	default:
		return initialModeFn
	}
}
