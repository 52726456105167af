package backup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notigram/internal/domain/entity"
)

type stubDownloader struct {
	calls []string
	err   error
}

func (s *stubDownloader) Download(_ context.Context, imageURL, dir, name string) error {
	s.calls = append(s.calls, name)
	if s.err != nil {
		return s.err
	}
	return os.WriteFile(filepath.Join(dir, name+".png"), []byte("img"), 0o644)
}

func testWriter(t *testing.T, downloader Downloader) (*Writer, string) {
	t.Helper()
	dir := t.TempDir()
	w := NewWriter(dir, downloader, slog.New(slog.NewTextHandler(io.Discard, nil)))
	w.now = func() time.Time { return time.Date(2024, 1, 5, 20, 30, 0, 0, time.UTC) }
	return w, dir
}

func TestArchive_WritesTextAndCovers(t *testing.T) {
	downloader := &stubDownloader{}
	w, dir := testWriter(t, downloader)

	post := &entity.Post{ID: "page-1", Covers: []string{"https://a/1.png", "https://a/2.png"}}
	require.NoError(t, w.Archive(t.Context(), post, "rendered text"))

	space := filepath.Join(dir, "2024-01-05_20-30-00_page-1")
	text, err := os.ReadFile(filepath.Join(space, "_text.txt"))
	require.NoError(t, err)
	assert.Equal(t, "rendered text", string(text))
	assert.Equal(t, []string{"cover_0", "cover_1"}, downloader.calls)
}

func TestArchive_CoverFailureIsNotFatal(t *testing.T) {
	downloader := &stubDownloader{err: errors.New("network down")}
	w, _ := testWriter(t, downloader)

	post := &entity.Post{ID: "page-1", Covers: []string{"https://a/1.png"}}
	assert.NoError(t, w.Archive(t.Context(), post, "text"))
}
