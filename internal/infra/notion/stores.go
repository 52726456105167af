package notion

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"notigram/internal/domain/entity"
)

// GetPost retrieves one channel post by page ID.
func (c *Client) GetPost(ctx context.Context, pageID string) (*entity.Post, error) {
	p, err := c.getPage(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", pageID, err)
	}
	return toPost(p), nil
}

// ListScheduledPosts returns the posts with status Completed planned for
// the given day.
func (c *Client) ListScheduledPosts(ctx context.Context, day time.Time) ([]*entity.Post, error) {
	filter := map[string]any{
		"and": []any{
			map[string]any{
				"property": propPlanningPublish,
				"date":     map[string]any{"equals": dateOnly(day)},
			},
			map[string]any{
				"property": propStatus,
				"select":   map[string]any{"equals": string(entity.StatusCompleted)},
			},
		},
	}

	pages, err := c.queryAll(ctx, c.channelDatabaseID, databaseQuery{Filter: filter})
	if err != nil {
		return nil, fmt.Errorf("list scheduled posts: %w", err)
	}
	return toPosts(pages), nil
}

// ListUnNewsletterPosts returns one bounded page of posts that were sent to
// the channel but not yet rolled into a newsletter. The store's date-range
// filters are unreliable, so time-window filtering is left to the caller.
func (c *Client) ListUnNewsletterPosts(ctx context.Context) ([]*entity.Post, error) {
	filter := map[string]any{
		"property": propStatus,
		"select":   map[string]any{"equals": string(entity.StatusUnNewsletter)},
	}

	pages, err := c.queryOnce(ctx, c.channelDatabaseID, databaseQuery{Filter: filter, PageSize: pageSize})
	if err != nil {
		return nil, fmt.Errorf("list unnewsletter posts: %w", err)
	}
	return toPosts(pages), nil
}

func toPosts(pages []page) []*entity.Post {
	posts := make([]*entity.Post, 0, len(pages))
	for i := range pages {
		posts = append(posts, toPost(&pages[i]))
	}
	return posts
}

// GetPostBlocks retrieves every content block of a post, following the
// continuation cursor until the store reports no further pages.
func (c *Client) GetPostBlocks(ctx context.Context, pageID string) ([]entity.Block, error) {
	wire, err := c.getAllChildBlocks(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("get post blocks %s: %w", pageID, err)
	}
	blocks := make([]entity.Block, 0, len(wire))
	for _, b := range wire {
		blocks = append(blocks, toEntityBlock(b))
	}
	return blocks, nil
}

// MarkPostSent transitions a post to UnNewsletter and records the real
// publication time with its timezone.
func (c *Client) MarkPostSent(ctx context.Context, pageID string, at time.Time) error {
	err := c.updateProperties(ctx, pageID, map[string]property{
		propStatus: {Select: &selectOption{Name: string(entity.StatusUnNewsletter)}},
		propRealPubTime: {Date: &dateValue{
			Start:    at.Format(time.RFC3339),
			TimeZone: at.Location().String(),
		}},
	})
	if err != nil {
		return fmt.Errorf("mark post sent %s: %w", pageID, err)
	}
	return nil
}

// MarkPostPublished transitions a post to Published.
func (c *Client) MarkPostPublished(ctx context.Context, pageID string) error {
	err := c.updateProperties(ctx, pageID, map[string]property{
		propStatus: {Select: &selectOption{Name: string(entity.StatusPublished)}},
	})
	if err != nil {
		return fmt.Errorf("mark post published %s: %w", pageID, err)
	}
	return nil
}

/* ───────── newsletter database ───────── */

// GetDigest retrieves one newsletter page by ID.
func (c *Client) GetDigest(ctx context.Context, pageID string) (*entity.Digest, error) {
	p, err := c.getPage(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("get digest %s: %w", pageID, err)
	}
	return toDigest(p), nil
}

// ListPublishedDigests returns every published newsletter.
func (c *Client) ListPublishedDigests(ctx context.Context) ([]*entity.Digest, error) {
	return c.listDigests(ctx, true)
}

// ListUnpublishedDigests returns every newsletter not yet published.
func (c *Client) ListUnpublishedDigests(ctx context.Context) ([]*entity.Digest, error) {
	return c.listDigests(ctx, false)
}

func (c *Client) listDigests(ctx context.Context, published bool) ([]*entity.Digest, error) {
	filter := map[string]any{
		"property": propIsPublished,
		"checkbox": map[string]any{"equals": published},
	}

	pages, err := c.queryAll(ctx, c.newsletterDatabaseID, databaseQuery{Filter: filter})
	if err != nil {
		return nil, fmt.Errorf("list digests: %w", err)
	}
	digests := make([]*entity.Digest, 0, len(pages))
	for i := range pages {
		digests = append(digests, toDigest(&pages[i]))
	}
	return digests, nil
}

// CreateDigest creates a newsletter page from a draft and returns its
// entity.
func (c *Client) CreateDigest(ctx context.Context, draft entity.DigestDraft) (*entity.Digest, error) {
	relations := make([]relationRef, 0, len(draft.RelatedPostIDs))
	for _, id := range draft.RelatedPostIDs {
		relations = append(relations, relationRef{ID: id})
	}

	no := draft.No
	req := createPageRequest{
		Parent: pageParent{DatabaseID: c.newsletterDatabaseID},
		Properties: map[string]property{
			propName: {Title: []richText{{
				Type: "text",
				Text: &textContent{Content: draft.Title},
			}}},
			propNO:           {Number: &no},
			propRelatedPosts: {Relation: relations},
			propCreatedAt: {Date: &dateValue{
				Start:    draft.CreatedAt.Format(time.RFC3339),
				TimeZone: draft.CreatedAt.Location().String(),
			}},
		},
	}
	if draft.IconEmoji != "" {
		req.Icon = &icon{Type: "emoji", Emoji: draft.IconEmoji}
	}

	var p page
	if err := c.do(ctx, http.MethodPost, "/pages", req, &p); err != nil {
		return nil, fmt.Errorf("create digest: %w", err)
	}
	return toDigest(&p), nil
}

// AppendBlocks appends blocks to a newsletter page.
func (c *Client) AppendBlocks(ctx context.Context, pageID string, blocks []entity.Block) error {
	if err := c.appendChildBlocks(ctx, pageID, toWireBlocks(blocks)); err != nil {
		return fmt.Errorf("append blocks to %s: %w", pageID, err)
	}
	return nil
}

// MarkDigestPublished checks the published flag of a newsletter page.
func (c *Client) MarkDigestPublished(ctx context.Context, pageID string) error {
	published := true
	err := c.updateProperties(ctx, pageID, map[string]property{
		propIsPublished: {Checkbox: &published},
	})
	if err != nil {
		return fmt.Errorf("mark digest published %s: %w", pageID, err)
	}
	return nil
}
