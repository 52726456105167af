package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notigram/internal/domain/entity"
)

const testFooter = "频道：@AboutZY"

func testPost() *entity.Post {
	return &entity.Post{
		ID:       "page-1",
		Title:    []entity.RichText{span("A Good Read")},
		Category: "Blog",
		Tags:     []string{"Go", "Weekly.2"},
	}
}

func TestFormatPost_AllSections(t *testing.T) {
	post := testPost()
	post.IconEmoji = "🦄"
	post.TitleLink = "https://example.com/post"
	blocks := []entity.Block{paragraph("hello")}

	got, err := FormatPost(post, blocks, testFooter)
	require.NoError(t, err)

	want := "\\#Blog \\#Go \\#Weekly\\.2" +
		"\n\n🦄 [*A Good Read*](https://example\\.com/post)" +
		"\n\nhello" +
		"\n\n频道：@AboutZY"
	assert.Equal(t, want, got.Text)
	assert.Empty(t, got.Covers)
}

func TestFormatPost_HiddenSectionsLeaveNoBlankLines(t *testing.T) {
	post := testPost()
	post.HideTitle = true
	post.HideCopyright = true

	got, err := FormatPost(post, []entity.Block{paragraph("body")}, testFooter)
	require.NoError(t, err)
	assert.Equal(t, "\\#Blog \\#Go \\#Weekly\\.2\n\nbody", got.Text)
}

func TestFormatPost_EmptyBodyOmitted(t *testing.T) {
	post := testPost()
	post.HideTitle = true

	got, err := FormatPost(post, nil, testFooter)
	require.NoError(t, err)
	assert.Equal(t, "\\#Blog \\#Go \\#Weekly\\.2\n\n频道：@AboutZY", got.Text)
}

func TestFormatPost_TooManyCovers(t *testing.T) {
	post := testPost()
	for i := 0; i < 11; i++ {
		post.Covers = append(post.Covers, "https://img.example/cover.png")
	}

	_, err := FormatPost(post, nil, testFooter)
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrTooManyCovers))
}

func TestFormatPost_TenCoversAllowed(t *testing.T) {
	post := testPost()
	for i := 0; i < 10; i++ {
		post.Covers = append(post.Covers, "https://img.example/cover.png")
	}

	got, err := FormatPost(post, nil, testFooter)
	require.NoError(t, err)
	assert.Len(t, got.Covers, 10)
}

func TestFormatPost_PropagatesTranslationError(t *testing.T) {
	_, err := FormatPost(testPost(), []entity.Block{{Kind: entity.BlockTableOfContents}}, testFooter)
	require.Error(t, err)
	assert.True(t, entity.IsUnsupportedBlock(err))
}
