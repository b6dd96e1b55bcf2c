package editor

// Kind is the type of an element.
type Kind string

// Element kinds understood by the converters.
const (
	Paragraph      Kind = "paragraph"
	Quote          Kind = "quote"
	HorizontalRule Kind = "horizontal_rule"
	HeadingOne     Kind = "heading_one"
	HeadingTwo     Kind = "heading_two"
	HeadingThree   Kind = "heading_three"
	HeadingFour    Kind = "heading_four"
	HeadingFive    Kind = "heading_five"
	HeadingSix     Kind = "heading_six"
	BlockQuote     Kind = "block_quote"
	CodeBlock      Kind = "code_block"
	HTMLBlock      Kind = "html_block"
	HTMLInline     Kind = "html_inline"
	OrderedList    Kind = "ol_list"
	BulletList     Kind = "ul_list"
	ListItem       Kind = "list_item"
	Link           Kind = "link"
)

var headings = [...]Kind{HeadingOne, HeadingTwo, HeadingThree, HeadingFour, HeadingFive, HeadingSix}

// HeadingKind returns the heading kind for a level between 1 and 6.
func HeadingKind(level int) (Kind, bool) {
	if level < 1 || level > len(headings) {
		return "", false
	}
	return headings[level-1], true
}

// HeadingLevel returns the heading level of k, or 0 if k is not a heading.
func (k Kind) HeadingLevel() int {
	for i, h := range headings {
		if k == h {
			return i + 1
		}
	}
	return 0
}

// Object returns the editor object type for elements of this kind.
func (k Kind) Object() string {
	switch k {
	case Link, HTMLInline:
		return "inline"
	default:
		return "block"
	}
}
