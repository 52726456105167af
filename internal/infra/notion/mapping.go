package notion

import (
	"time"

	"notigram/internal/domain/entity"
)

// Property names of the channel posts database.
const (
	propName            = "Name"
	propTitleLink       = "TitleLink"
	propCategory        = "Category"
	propTags            = "Tags"
	propCover           = "Cover"
	propHideTitle       = "IsHideTitle"
	propHideCopyright   = "IsHideCopyright"
	propStatus          = "Status"
	propPubPriority     = "PubPriority"
	propNLGenPriority   = "NLGenPriority"
	propPlanningPublish = "PlanningPublish"
	propRealPubTime     = "RealPubTime"
)

// Property names of the newsletter database.
const (
	propNO           = "NO"
	propRelatedPosts = "RelatedToChannelPosts"
	propIsPublished  = "IsPublished"
	propCreatedAt    = "CreatedAt"
)

// notionTimeLayouts covers the date formats the store returns: full ISO
// timestamps with and without sub-second precision, and bare dates.
var notionTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000-07:00",
	"2006-01-02",
}

func parseNotionTime(s string) time.Time {
	for _, layout := range notionTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// dateOnly formats a day the way the store's date filters expect.
func dateOnly(t time.Time) string {
	return t.Format("2006-01-02")
}

/* ───────── wire → entity ───────── */

func toEntityRichText(spans []richText) []entity.RichText {
	if len(spans) == 0 {
		return nil
	}
	out := make([]entity.RichText, 0, len(spans))
	for _, s := range spans {
		span := entity.RichText{Text: s.PlainText, Href: s.Href}
		if span.Text == "" && s.Text != nil {
			span.Text = s.Text.Content
		}
		if s.Annotations != nil {
			span.Annotations = entity.Annotations{
				Bold:          s.Annotations.Bold,
				Italic:        s.Annotations.Italic,
				Underline:     s.Annotations.Underline,
				Strikethrough: s.Annotations.Strikethrough,
				Code:          s.Annotations.Code,
			}
		}
		out = append(out, span)
	}
	return out
}

func (p *page) prop(name string) property {
	if p.Properties == nil {
		return property{}
	}
	return p.Properties[name]
}

func (p *page) selectName(name string) string {
	if s := p.prop(name).Select; s != nil {
		return s.Name
	}
	return ""
}

func (p *page) number(name string) float64 {
	if n := p.prop(name).Number; n != nil {
		return *n
	}
	return 0
}

func (p *page) checkbox(name string) bool {
	if b := p.prop(name).Checkbox; b != nil {
		return *b
	}
	return false
}

func (p *page) date(name string) time.Time {
	if d := p.prop(name).Date; d != nil {
		return parseNotionTime(d.Start)
	}
	return time.Time{}
}

func (p *page) url(name string) string {
	if u := p.prop(name).URL; u != nil {
		return *u
	}
	return ""
}

func (p *page) emoji() string {
	if p.Icon != nil {
		return p.Icon.Emoji
	}
	return ""
}

// toPost maps a channel database page onto the domain entity.
func toPost(p *page) *entity.Post {
	post := &entity.Post{
		ID:              p.ID,
		Title:           toEntityRichText(p.prop(propName).Title),
		TitleLink:       p.url(propTitleLink),
		IconEmoji:       p.emoji(),
		Category:        p.selectName(propCategory),
		HideTitle:       p.checkbox(propHideTitle),
		HideCopyright:   p.checkbox(propHideCopyright),
		Status:          entity.Status(p.selectName(propStatus)),
		PubPriority:     p.number(propPubPriority),
		NLGenPriority:   p.number(propNLGenPriority),
		PlanningPublish: p.date(propPlanningPublish),
		RealPubTime:     p.date(propRealPubTime),
	}

	for _, tag := range p.prop(propTags).MultiSelect {
		post.Tags = append(post.Tags, tag.Name)
	}
	for _, file := range p.prop(propCover).Files {
		switch {
		case file.File != nil:
			post.Covers = append(post.Covers, file.File.URL)
		case file.External != nil:
			post.Covers = append(post.Covers, file.External.URL)
		}
	}
	return post
}

// toDigest maps a newsletter database page onto the domain entity.
func toDigest(p *page) *entity.Digest {
	digest := &entity.Digest{
		ID:          p.ID,
		Title:       entity.PlainText(toEntityRichText(p.prop(propName).Title)),
		No:          p.number(propNO),
		IconEmoji:   p.emoji(),
		Published:   p.checkbox(propIsPublished),
		CreatedAt:   p.date(propCreatedAt),
		RealPubTime: p.date(propRealPubTime),
	}
	if digest.CreatedAt.IsZero() {
		digest.CreatedAt = parseNotionTime(p.CreatedTime)
	}
	for _, rel := range p.prop(propRelatedPosts).Relation {
		digest.RelatedPostIDs = append(digest.RelatedPostIDs, rel.ID)
	}
	return digest
}

// toEntityBlock maps one child block; unknown kinds map through unchanged
// so that translation, not the client, decides how to fail.
func toEntityBlock(b block) entity.Block {
	out := entity.Block{Kind: entity.BlockKind(b.Type), HasChildren: b.HasChildren}

	if payload := b.payload(); payload != nil {
		out.RichText = toEntityRichText(payload.RichText)
		out.Language = payload.Language
		out.Color = payload.Color
	}
	if b.Image != nil {
		switch {
		case b.Image.External != nil:
			out.ImageURL = b.Image.External.URL
		case b.Image.File != nil:
			out.ImageURL = b.Image.File.URL
		}
	}
	if b.TableOfContents != nil {
		out.Color = b.TableOfContents.Color
	}
	return out
}

func (b *block) payload() *blockPayload {
	switch entity.BlockKind(b.Type) {
	case entity.BlockParagraph:
		return b.Paragraph
	case entity.BlockQuote:
		return b.Quote
	case entity.BlockNumberedListItem:
		return b.NumberedListItem
	case entity.BlockBulletedListItem:
		return b.BulletedListItem
	case entity.BlockCode:
		return b.Code
	case entity.BlockHeading1:
		return b.Heading1
	case entity.BlockHeading2:
		return b.Heading2
	case entity.BlockHeading3:
		return b.Heading3
	default:
		return nil
	}
}

/* ───────── entity → wire ───────── */

func toWireRichText(spans []entity.RichText) []richText {
	out := make([]richText, 0, len(spans))
	for _, s := range spans {
		wire := richText{
			Type: "text",
			Text: &textContent{Content: s.Text},
		}
		if s.Href != "" {
			wire.Text.Link = &linkRef{URL: s.Href}
		}
		if s.Annotations != (entity.Annotations{}) {
			wire.Annotations = &annotations{
				Bold:          s.Annotations.Bold,
				Italic:        s.Annotations.Italic,
				Underline:     s.Annotations.Underline,
				Strikethrough: s.Annotations.Strikethrough,
				Code:          s.Annotations.Code,
			}
		}
		out = append(out, wire)
	}
	return out
}

// toWireBlock serializes a domain block for appending to a page.
func toWireBlock(eb entity.Block) block {
	wire := block{Object: "block", Type: string(eb.Kind)}
	payload := &blockPayload{
		RichText: toWireRichText(eb.RichText),
		Color:    eb.Color,
		Language: eb.Language,
	}

	switch eb.Kind {
	case entity.BlockParagraph:
		wire.Paragraph = payload
	case entity.BlockQuote:
		wire.Quote = payload
	case entity.BlockNumberedListItem:
		wire.NumberedListItem = payload
	case entity.BlockBulletedListItem:
		wire.BulletedListItem = payload
	case entity.BlockCode:
		wire.Code = payload
	case entity.BlockHeading1:
		wire.Heading1 = payload
	case entity.BlockHeading2:
		wire.Heading2 = payload
	case entity.BlockHeading3:
		wire.Heading3 = payload
	case entity.BlockDivider:
		wire.Divider = &struct{}{}
	case entity.BlockImage:
		wire.Image = &imageBlock{Type: "external", External: &linkRef{URL: eb.ImageURL}}
	case entity.BlockTableOfContents:
		wire.TableOfContents = &tocBlock{Color: eb.Color}
	}
	return wire
}

func toWireBlocks(blocks []entity.Block) []block {
	out := make([]block, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, toWireBlock(b))
	}
	return out
}
