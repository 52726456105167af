package render

import (
	"strings"

	"notigram/internal/domain/entity"
)

// ComposeMessage walks an ordered block sequence and produces one MarkdownV2
// message body. Blocks are translated in order; the numbered-list ordinal
// increments once per consecutive numbered_list_item and resets to zero on
// any other kind. Lines are joined with a single newline and the final
// result is trimmed.
//
// An unsupported block kind aborts the whole composition: a channel message
// must be fully correct or not produced at all.
func ComposeMessage(blocks []entity.Block) (string, error) {
	lines := make([]string, 0, len(blocks))
	ordinal := 0

	for _, block := range blocks {
		if block.Kind == entity.BlockNumberedListItem {
			ordinal++
		} else {
			ordinal = 0
		}

		line, err := translateMessage(block, ordinal)
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// ComposeDigest walks an ordered block sequence and produces the block
// sequence to append to a newsletter page. Empty paragraphs are dropped;
// the order of everything else is preserved.
func ComposeDigest(blocks []entity.Block) []entity.Block {
	out := make([]entity.Block, 0, len(blocks))
	for _, block := range blocks {
		if translated := translateDigest(block); translated != nil {
			out = append(out, *translated)
		}
	}
	return out
}
