// Package channel implements the single-post send use case: selecting a
// candidate post, rendering it into a MarkdownV2 message, delivering it to
// the chat channel, and writing the publication state back to the store.
package channel

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"notigram/internal/domain/entity"
	"notigram/internal/render"
	"notigram/internal/usecase"
)

// PostStore is the document-store surface this use case consumes.
type PostStore interface {
	GetPost(ctx context.Context, pageID string) (*entity.Post, error)
	ListScheduledPosts(ctx context.Context, day time.Time) ([]*entity.Post, error)
	GetPostBlocks(ctx context.Context, pageID string) ([]entity.Block, error)
	MarkPostSent(ctx context.Context, pageID string, at time.Time) error
}

// Transport delivers a rendered message to the chat channel. The dispatch
// mode follows the cover count: none — text, one — photo with caption,
// several — album with the caption on the first item.
type Transport interface {
	SendText(ctx context.Context, text string) error
	SendPhoto(ctx context.Context, caption, photoURL string) error
	SendAlbum(ctx context.Context, caption string, photoURLs []string) error
}

// Archiver stores a local snapshot of a sent post. Best-effort: failures
// are logged, never propagated.
type Archiver interface {
	Archive(ctx context.Context, post *entity.Post, text string) error
}

// Service orchestrates channel sends. Sending is all-or-nothing: any
// translation error or remote failure before delivery aborts the operation
// with nothing sent and nothing written back.
type Service struct {
	Posts     PostStore
	Transport Transport
	// Archive may be nil when backups are disabled.
	Archive Archiver
	// Footer is the copyright line appended unless the post hides it.
	Footer string
	Logger *slog.Logger

	// Now is swappable for tests; defaults to time.Now via nowOrDefault.
	Now func() time.Time
}

func (s *Service) nowOrDefault() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// SendByPageID sends one specific post, bypassing day and priority
// selection.
func (s *Service) SendByPageID(ctx context.Context, pageID string, dryRun bool) (usecase.Result, error) {
	post, err := s.Posts.GetPost(ctx, pageID)
	if err != nil {
		return usecase.Result{}, err
	}
	return s.send(ctx, post, dryRun)
}

// SendByDay selects the completed post planned for the given day with the
// highest publish priority and sends it. When several posts share the
// highest priority the first in store order wins (stable sort). No
// candidate is a successful no-op, not an error.
func (s *Service) SendByDay(ctx context.Context, day time.Time, dryRun bool) (usecase.Result, error) {
	posts, err := s.Posts.ListScheduledPosts(ctx, day)
	if err != nil {
		return usecase.Result{}, err
	}
	if len(posts) == 0 {
		return usecase.Empty("NOTHING_TO_PUBLISH"), nil
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PubPriority > posts[j].PubPriority
	})
	return s.send(ctx, posts[0], dryRun)
}

// send renders and delivers one post, then writes the state transition
// back. With dryRun set every read and render step still runs, but the
// transport is not called and no property is written.
func (s *Service) send(ctx context.Context, post *entity.Post, dryRun bool) (usecase.Result, error) {
	s.Logger.Info("sending post",
		slog.String("page_id", post.ID),
		slog.Bool("dry_run", dryRun))

	// Cover sanity comes first: a post over the album limit must fail
	// before any further remote work.
	if len(post.Covers) > 10 {
		return usecase.Result{}, fmt.Errorf("%w: %d covers on post %s", entity.ErrTooManyCovers, len(post.Covers), post.ID)
	}

	blocks, err := s.Posts.GetPostBlocks(ctx, post.ID)
	if err != nil {
		return usecase.Result{}, err
	}

	formatted, err := render.FormatPost(post, blocks, s.Footer)
	if err != nil {
		return usecase.Result{}, err
	}

	s.Logger.Info("post rendered",
		slog.Int("text_length", len(formatted.Text)),
		slog.Int("covers", len(formatted.Covers)))

	if !dryRun {
		if err := s.deliver(ctx, formatted); err != nil {
			return usecase.Result{}, err
		}

		if err := s.Posts.MarkPostSent(ctx, post.ID, s.nowOrDefault()); err != nil {
			return usecase.Result{}, err
		}
		s.Logger.Info("post status updated", slog.String("page_id", post.ID))
	}

	// Local backup is best-effort follow-up: the send already succeeded
	// and a backup failure must not undo that.
	if s.Archive != nil && !dryRun {
		if err := s.Archive.Archive(ctx, post, formatted.Text); err != nil {
			s.Logger.Error("post backup failed",
				slog.String("page_id", post.ID),
				slog.Any("error", err))
		}
	}

	return usecase.OK("SENT"), nil
}

func (s *Service) deliver(ctx context.Context, formatted *render.FormattedPost) error {
	switch len(formatted.Covers) {
	case 0:
		return s.Transport.SendText(ctx, formatted.Text)
	case 1:
		return s.Transport.SendPhoto(ctx, formatted.Text, formatted.Covers[0])
	default:
		return s.Transport.SendAlbum(ctx, formatted.Text, formatted.Covers)
	}
}
