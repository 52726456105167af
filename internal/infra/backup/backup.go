// Package backup writes a local archival snapshot of each sent post: the
// rendered message text plus the cover images, one directory per send
// event. Archiving is best-effort follow-up work — a failed backup never
// undoes or fails an already-delivered send.
package backup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"notigram/internal/domain/entity"
)

// Downloader fetches an image into a directory under a base name.
type Downloader interface {
	Download(ctx context.Context, imageURL, dir, name string) error
}

// Writer archives sent posts under a base directory.
type Writer struct {
	dir        string
	downloader Downloader
	logger     *slog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewWriter builds a Writer rooted at dir.
func NewWriter(dir string, downloader Downloader, logger *slog.Logger) *Writer {
	return &Writer{dir: dir, downloader: downloader, logger: logger, now: time.Now}
}

// Archive stores the rendered text and cover images of one sent post in a
// fresh timestamped directory. Cover download failures are logged and
// skipped; only the text snapshot is mandatory.
func (w *Writer) Archive(ctx context.Context, post *entity.Post, text string) error {
	space := filepath.Join(w.dir, fmt.Sprintf("%s_%s", w.now().Format("2006-01-02_15-04-05"), post.ID))
	if err := os.MkdirAll(space, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}

	if err := os.WriteFile(filepath.Join(space, "_text.txt"), []byte(text), 0o644); err != nil {
		return fmt.Errorf("write text backup: %w", err)
	}
	w.logger.Info("post text backed up", slog.String("dir", space))

	for i, cover := range post.Covers {
		name := fmt.Sprintf("cover_%d", i)
		if err := w.downloader.Download(ctx, cover, space, name); err != nil {
			w.logger.Error("cover backup failed",
				slog.String("cover", name),
				slog.Any("error", err))
			continue
		}
		w.logger.Info("cover backed up", slog.String("cover", name))
	}
	return nil
}
