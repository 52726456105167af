package render

import (
	"fmt"

	"notigram/internal/domain/entity"
)

// renderSpan renders a single rich-text span as MarkdownV2 inline text.
//
// The text is escaped first, then markup is wrapped inside-out: code,
// strikethrough, italic, underline, bold, and finally the link. Applying
// the wrappers in a different order produces invalid nested markup.
func renderSpan(span entity.RichText) string {
	text := EscapeMarkdownV2(span.Text)

	a := span.Annotations
	if a.Code {
		text = "`" + text + "`"
	}
	if a.Strikethrough {
		text = "~" + text + "~"
	}
	if a.Italic {
		text = "_" + text + "_"
	}
	if a.Underline {
		text = "__" + text + "__"
	}
	if a.Bold {
		text = "*" + text + "*"
	}
	text = restoreSpoilers(text)
	if span.Href != "" {
		text = buildLink(text, span.Href)
	}

	return text
}

// buildLink wraps already-rendered text as an inline link. The URL is
// escaped; the text is expected to be escaped by the caller.
func buildLink(text, url string) string {
	return "[" + text + "](" + EscapeMarkdownV2(url) + ")"
}

func renderSpans(spans []entity.RichText) string {
	var out string
	for _, span := range spans {
		out += renderSpan(span)
	}
	return out
}

// translateMessage converts one block into a MarkdownV2 line for the chat
// message target. ordinal is the current numbered-list position, valid only
// for numbered_list_item blocks; the composer maintains it across calls.
//
// The kind switch is exhaustive over the message-translatable subset.
// Layout-only kinds (divider, headings, image, table_of_contents) exist only
// in the digest target and fall through to UnsupportedBlockError here.
func translateMessage(block entity.Block, ordinal int) (string, error) {
	if block.HasChildren {
		return "", &entity.UnsupportedBlockError{Kind: block.Kind, Nested: true}
	}

	switch block.Kind {
	case entity.BlockParagraph:
		return renderSpans(block.RichText), nil

	case entity.BlockQuote:
		// Quotes render as paragraphs with italics forced on every span.
		// The source spans stay untouched; styling is applied to copies.
		var out string
		for _, span := range block.RichText {
			span.Annotations.Italic = true
			out += renderSpan(span)
		}
		return out, nil

	case entity.BlockNumberedListItem:
		prefix := EscapeMarkdownV2(fmt.Sprintf("%d.", ordinal))
		return prefix + " " + renderSpans(block.RichText), nil

	case entity.BlockBulletedListItem:
		return EscapeMarkdownV2("* ") + renderSpans(block.RichText), nil

	case entity.BlockCode:
		return translateCode(block), nil

	default:
		return "", &entity.UnsupportedBlockError{Kind: block.Kind}
	}
}

// translateCode renders a code block as three lines: an escaped fence-open
// line carrying the language tag, the literal fenced code using the first
// span's raw text, and an escaped fence-close line.
func translateCode(block entity.Block) string {
	var raw string
	if len(block.RichText) > 0 {
		raw = block.RichText[0].Text
	}
	open := EscapeMarkdownV2("```" + block.Language)
	fenced := "```" + block.Language + "\n" + raw + "\n```"
	closing := EscapeMarkdownV2("```")
	return open + "\n" + fenced + "\n" + closing
}

// translateDigest converts one block for insertion into a newsletter page.
// Translation is pass-through: the block keeps its kind and payload. Empty
// paragraphs return nil and are filtered out by the composer.
func translateDigest(block entity.Block) *entity.Block {
	if block.Kind == entity.BlockParagraph && len(block.RichText) == 0 {
		return nil
	}
	out := block
	return &out
}
