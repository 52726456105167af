// Package newsletter implements the digest use cases: compiling the posts
// sent over a period into a newsletter page, and publishing a finished
// newsletter by flipping the state of the digest and its posts.
package newsletter

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"notigram/internal/config"
	"notigram/internal/domain/entity"
	"notigram/internal/render"
	"notigram/internal/usecase"
)

// PostStore is the channel-database surface this use case consumes.
type PostStore interface {
	ListUnNewsletterPosts(ctx context.Context) ([]*entity.Post, error)
	GetPostBlocks(ctx context.Context, pageID string) ([]entity.Block, error)
	MarkPostPublished(ctx context.Context, pageID string) error
}

// DigestStore is the newsletter-database surface.
type DigestStore interface {
	GetDigest(ctx context.Context, pageID string) (*entity.Digest, error)
	ListPublishedDigests(ctx context.Context) ([]*entity.Digest, error)
	ListUnpublishedDigests(ctx context.Context) ([]*entity.Digest, error)
	CreateDigest(ctx context.Context, draft entity.DigestDraft) (*entity.Digest, error)
	AppendBlocks(ctx context.Context, pageID string, blocks []entity.Block) error
	MarkDigestPublished(ctx context.Context, pageID string) error
}

// ImageHost re-hosts an external image and returns its new stable URL.
type ImageHost interface {
	UploadExternal(ctx context.Context, imageURL string) (string, error)
}

// Service orchestrates newsletter generation and publication.
//
// Generation is best-effort per insertion batch: once the newsletter page
// exists, a failed section append is logged and composition continues, so a
// partially filled page can be fixed by hand instead of being lost. This is
// deliberately different from the all-or-nothing channel send.
type Service struct {
	Posts   PostStore
	Digests DigestStore
	// Images may be nil; covers are then inserted with their original URLs.
	Images    ImageHost
	Templates *config.Templates
	Logger    *slog.Logger

	// Now is swappable for tests; defaults to time.Now via nowOrDefault.
	Now func() time.Time
}

func (s *Service) nowOrDefault() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Generate compiles every post sent between startDay and endDay (both
// inclusive, whole days) into a new newsletter page. No post in the window
// is a successful no-op, not an error.
func (s *Service) Generate(ctx context.Context, startDay, endDay time.Time) (usecase.Result, error) {
	posts, err := s.selectBatch(ctx, startDay, endDay)
	if err != nil {
		return usecase.Result{}, err
	}
	if len(posts) == 0 {
		return usecase.Empty("NOTHING_TO_DIGEST"), nil
	}

	no, err := s.nextIssueNo(ctx)
	if err != nil {
		return usecase.Result{}, err
	}

	draft := entity.DigestDraft{
		Title:          s.synthesizeTitle(no, posts),
		No:             float64(no),
		IconEmoji:      pickIcon(posts, s.Templates.DefaultIcon),
		RelatedPostIDs: postIDs(posts),
		CreatedAt:      s.nowOrDefault(),
	}
	digest, err := s.Digests.CreateDigest(ctx, draft)
	if err != nil {
		return usecase.Result{}, fmt.Errorf("create newsletter page: %w", err)
	}
	s.Logger.Info("newsletter page created",
		slog.String("page_id", digest.ID),
		slog.Int("issue", no),
		slog.Int("posts", len(posts)))

	s.compose(ctx, digest.ID, posts, startDay, endDay)

	return usecase.OK(fmt.Sprintf("GENERATED #%d (%d posts)", no, len(posts))), nil
}

// Publish marks a generated newsletter as published and moves its
// constituent posts to Published. With an empty pageID the most recently
// created unpublished newsletter is targeted. Dry runs resolve the target
// and report it without touching any property.
func (s *Service) Publish(ctx context.Context, pageID string, dryRun bool) (usecase.Result, error) {
	digest, err := s.resolveTarget(ctx, pageID)
	if err != nil {
		return usecase.Result{}, err
	}
	if digest == nil {
		return usecase.Empty("NOTHING_TO_RELEASE"), nil
	}

	s.Logger.Info("publishing newsletter",
		slog.String("page_id", digest.ID),
		slog.String("title", digest.Title),
		slog.Bool("dry_run", dryRun))

	if !dryRun {
		for _, postID := range digest.RelatedPostIDs {
			if err := s.Posts.MarkPostPublished(ctx, postID); err != nil {
				return usecase.Result{}, err
			}
		}
		if err := s.Digests.MarkDigestPublished(ctx, digest.ID); err != nil {
			return usecase.Result{}, err
		}
	}

	return usecase.OK("RELEASED " + digest.Title), nil
}

func (s *Service) resolveTarget(ctx context.Context, pageID string) (*entity.Digest, error) {
	if pageID != "" {
		return s.Digests.GetDigest(ctx, pageID)
	}

	unpublished, err := s.Digests.ListUnpublishedDigests(ctx)
	if err != nil {
		return nil, err
	}
	if len(unpublished) == 0 {
		return nil, nil
	}

	latest := unpublished[0]
	for _, d := range unpublished[1:] {
		if d.CreatedAt.After(latest.CreatedAt) {
			latest = d
		}
	}
	return latest, nil
}

// selectBatch pulls the un-newslettered posts and narrows them to the
// period locally (the store's date-range filters are unreliable), then
// orders them: chronological by real publication time first, then a stable
// re-sort by newsletter priority so a priority override keeps the
// chronological order of its peers.
func (s *Service) selectBatch(ctx context.Context, startDay, endDay time.Time) ([]*entity.Post, error) {
	posts, err := s.Posts.ListUnNewsletterPosts(ctx)
	if err != nil {
		return nil, err
	}

	start := dayStart(startDay)
	end := dayStart(endDay).AddDate(0, 0, 1)

	batch := make([]*entity.Post, 0, len(posts))
	for _, p := range posts {
		if p.RealPubTime.Before(start) || !p.RealPubTime.Before(end) {
			continue
		}
		batch = append(batch, p)
	}

	sort.SliceStable(batch, func(i, j int) bool {
		return batch[i].RealPubTime.Before(batch[j].RealPubTime)
	})
	sort.SliceStable(batch, func(i, j int) bool {
		return batch[i].NLGenPriority > batch[j].NLGenPriority
	})
	return batch, nil
}

func dayStart(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
}

func (s *Service) nextIssueNo(ctx context.Context) (int, error) {
	published, err := s.Digests.ListPublishedDigests(ctx)
	if err != nil {
		return 0, fmt.Errorf("list published newsletters: %w", err)
	}
	nos := make([]float64, 0, len(published))
	for _, d := range published {
		nos = append(nos, d.No)
	}
	return entity.NextIssueNo(nos), nil
}

// synthesizeTitle joins the constituent titles with "、", strips Chinese
// book-title brackets, and applies the configured issue format.
func (s *Service) synthesizeTitle(no int, posts []*entity.Post) string {
	titles := make([]string, 0, len(posts))
	for _, p := range posts {
		title := strings.NewReplacer("《", "", "》", "").Replace(p.PlainTitle())
		titles = append(titles, title)
	}
	return fmt.Sprintf(s.Templates.TitleFormat, no, strings.Join(titles, "、"))
}

func pickIcon(posts []*entity.Post, fallback string) string {
	for _, p := range posts {
		if p.IconEmoji != "" {
			return p.IconEmoji
		}
	}
	return fallback
}

func postIDs(posts []*entity.Post) []string {
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}

/* ───────── composition ───────── */

// compose fills the newsletter page section by section. Each appendSection
// call is one insertion batch; a failed batch is logged and skipped.
func (s *Service) compose(ctx context.Context, digestID string, posts []*entity.Post, startDay, endDay time.Time) {
	s.appendSection(ctx, digestID, "toc", []entity.Block{
		{Kind: entity.BlockTableOfContents, Color: "gray_background"},
		{Kind: entity.BlockParagraph},
	})
	s.appendSection(ctx, digestID, "preface", s.prefaceBlocks(startDay, endDay))
	s.appendSection(ctx, digestID, "shared_header", sectionHeader(s.Templates.SharedSection))

	for _, post := range posts {
		s.appendSection(ctx, digestID, "post_"+post.ID, s.postBlocks(ctx, post))
	}

	s.appendSection(ctx, digestID, "one_more_thing", sectionHeader(s.Templates.OneMoreThingSection))
	s.appendSection(ctx, digestID, "friendly_links", append(
		sectionHeader(s.Templates.FriendlyLinksSection),
		paragraphsOf(s.Templates.FriendlyLinks)...))
	s.appendSection(ctx, digestID, "copyright", append(
		[]entity.Block{{Kind: entity.BlockDivider}},
		paragraphsOf(s.Templates.Copyright)...))
}

func (s *Service) appendSection(ctx context.Context, digestID, name string, blocks []entity.Block) {
	if len(blocks) == 0 {
		return
	}
	if err := s.Digests.AppendBlocks(ctx, digestID, blocks); err != nil {
		s.Logger.Error("newsletter section insert failed",
			slog.String("section", name),
			slog.Any("error", err))
		return
	}
	s.Logger.Info("newsletter section inserted",
		slog.String("section", name),
		slog.Int("blocks", len(blocks)))
}

func (s *Service) prefaceBlocks(startDay, endDay time.Time) []entity.Block {
	blocks := paragraphsOf(s.Templates.Preface)
	period := fmt.Sprintf(s.Templates.PrefacePeriod,
		startDay.Format("2006-01-02"), endDay.Format("2006-01-02"))
	return append(blocks, entity.Block{
		Kind:     entity.BlockParagraph,
		RichText: []entity.RichText{{Text: period}},
	})
}

// postBlocks renders one constituent post: a linked heading, the gray
// italic tags line, at most one re-hosted cover, then the digest-target
// body.
func (s *Service) postBlocks(ctx context.Context, post *entity.Post) []entity.Block {
	heading := post.PlainTitle()
	if post.IconEmoji != "" {
		heading = post.IconEmoji + " " + heading
	}
	blocks := []entity.Block{{
		Kind:     entity.BlockHeading2,
		RichText: []entity.RichText{{Text: heading, Href: post.TitleLink}},
	}}

	labels := append([]string{post.Category}, post.Tags...)
	for i, label := range labels {
		labels[i] = "#" + label
	}
	blocks = append(blocks, entity.Block{
		Kind:  entity.BlockParagraph,
		Color: "gray",
		RichText: []entity.RichText{{
			Text:        strings.Join(labels, " "),
			Annotations: entity.Annotations{Italic: true},
		}},
	})

	if cover := s.rehostedCover(ctx, post); cover != "" {
		blocks = append(blocks, entity.Block{Kind: entity.BlockImage, ImageURL: cover})
	}

	body, err := s.Posts.GetPostBlocks(ctx, post.ID)
	if err != nil {
		s.Logger.Error("post body fetch failed",
			slog.String("page_id", post.ID),
			slog.Any("error", err))
		return blocks
	}
	return append(blocks, render.ComposeDigest(body)...)
}

// rehostedCover re-hosts the first cover of a post. Covers are optional
// decoration here: any failure downgrades to no image, logged.
func (s *Service) rehostedCover(ctx context.Context, post *entity.Post) string {
	if len(post.Covers) == 0 {
		return ""
	}
	if s.Images == nil {
		return post.Covers[0]
	}
	hosted, err := s.Images.UploadExternal(ctx, post.Covers[0])
	if err != nil {
		s.Logger.Error("cover re-host failed",
			slog.String("page_id", post.ID),
			slog.Any("error", err))
		return ""
	}
	return hosted
}

func sectionHeader(title string) []entity.Block {
	return []entity.Block{
		{Kind: entity.BlockDivider},
		{
			Kind:     entity.BlockHeading1,
			RichText: []entity.RichText{{Text: "「" + title + "」"}},
		},
	}
}

func paragraphsOf(paragraphs []config.TemplateParagraph) []entity.Block {
	blocks := make([]entity.Block, 0, len(paragraphs))
	for _, p := range paragraphs {
		spans := make([]entity.RichText, 0, len(p.Spans))
		for _, span := range p.Spans {
			spans = append(spans, entity.RichText{Text: span.Text, Href: span.Link})
		}
		blocks = append(blocks, entity.Block{Kind: entity.BlockParagraph, RichText: spans})
	}
	return blocks
}
