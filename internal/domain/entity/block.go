package entity

// BlockKind identifies the structural kind of a content block.
// The set is closed: translation code switches exhaustively over these
// values, and anything else is an UnsupportedBlockError.
type BlockKind string

const (
	BlockParagraph        BlockKind = "paragraph"
	BlockQuote            BlockKind = "quote"
	BlockNumberedListItem BlockKind = "numbered_list_item"
	BlockBulletedListItem BlockKind = "bulleted_list_item"
	BlockCode             BlockKind = "code"
	BlockDivider          BlockKind = "divider"
	BlockHeading1         BlockKind = "heading_1"
	BlockHeading2         BlockKind = "heading_2"
	BlockHeading3         BlockKind = "heading_3"
	BlockImage            BlockKind = "image"
	BlockTableOfContents  BlockKind = "table_of_contents"
)

// Annotations is the set of inline styles carried by a rich-text span.
type Annotations struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Code          bool
}

// RichText is one run of styled text within a block. Spans are immutable
// once read from the source: transformations that need different styling
// (e.g. forcing italics inside quotes) must return a modified copy.
type RichText struct {
	Text        string
	Annotations Annotations
	Href        string
}

// Block is one structural unit of rich content. Only top-level, non-nested
// blocks are supported. The payload fields are kind-specific:
// RichText for text-bearing kinds, Language for code, ImageURL for image,
// Color for kinds that carry a display color.
type Block struct {
	Kind     BlockKind
	RichText []RichText
	Language string
	ImageURL string
	Color    string

	// HasChildren marks a nested block as read from the source. Nested
	// structures are not translatable into a chat message.
	HasChildren bool
}

// PlainText concatenates the raw text of all spans without styling.
func PlainText(spans []RichText) string {
	var out string
	for _, s := range spans {
		out += s.Text
	}
	return out
}
