package render

import (
	"fmt"
	"strings"

	"notigram/internal/domain/entity"
)

// maxCovers is the chat platform's album limit.
const maxCovers = 10

// FormattedPost is a complete outbound unit for a single channel send:
// the MarkdownV2 message text and the ordered cover image URLs. The caller
// decides the dispatch mode (text / photo / album) from the cover count.
type FormattedPost struct {
	Text   string
	Covers []string
}

// FormatPost assembles the outbound message for one post. Sections are
// built in fixed order — tags line, title (unless hidden), body, copyright
// footer (unless hidden) — and joined with a blank line; omitted sections
// contribute nothing.
//
// Fails with entity.ErrTooManyCovers when the post carries more than 10
// cover images, before anything else is assembled, and propagates
// translation errors from the body unmodified.
func FormatPost(post *entity.Post, blocks []entity.Block, footer string) (*FormattedPost, error) {
	if len(post.Covers) > maxCovers {
		return nil, fmt.Errorf("%w: %d covers on post %s", entity.ErrTooManyCovers, len(post.Covers), post.ID)
	}

	sections := []string{buildTagsLine(post)}

	if !post.HideTitle {
		sections = append(sections, buildTitle(post))
	}

	body, err := ComposeMessage(blocks)
	if err != nil {
		return nil, err
	}
	if body != "" {
		sections = append(sections, body)
	}

	if !post.HideCopyright && footer != "" {
		sections = append(sections, footer)
	}

	return &FormattedPost{
		Text:   strings.Join(sections, "\n\n"),
		Covers: post.Covers,
	}, nil
}

// buildTagsLine renders the tags line: the category label first, then each
// tag, each escaped and prefixed with an escaped "#", space-joined.
func buildTagsLine(post *entity.Post) string {
	labels := append([]string{post.Category}, post.Tags...)
	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		parts = append(parts, `\#`+EscapeMarkdownV2(label))
	}
	return strings.Join(parts, " ")
}

// buildTitle renders the escaped, bolded title, wrapped as a link when the
// post has a title link and prefixed with the icon emoji when present.
func buildTitle(post *entity.Post) string {
	title := "*" + EscapeMarkdownV2(post.PlainTitle()) + "*"
	if post.TitleLink != "" {
		title = buildLink(title, post.TitleLink)
	}
	if post.IconEmoji != "" {
		title = post.IconEmoji + " " + title
	}
	return title
}
