package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notigram/internal/domain/entity"
)

func span(text string) entity.RichText {
	return entity.RichText{Text: text}
}

func TestRenderSpan_PlainTextIsJustEscaped(t *testing.T) {
	got := renderSpan(span("plain. text"))
	assert.Equal(t, `plain\. text`, got)
}

func TestRenderSpan_WrappingOrder(t *testing.T) {
	tests := []struct {
		name string
		span entity.RichText
		want string
	}{
		{
			"bold",
			entity.RichText{Text: "hi", Annotations: entity.Annotations{Bold: true}},
			"*hi*",
		},
		{
			"bold inside link, never link inside bold",
			entity.RichText{Text: "hi", Annotations: entity.Annotations{Bold: true}, Href: "https://example.com/a_b"},
			`[*hi*](https://example\.com/a\_b)`,
		},
		{
			"code innermost, bold outermost",
			entity.RichText{Text: "x", Annotations: entity.Annotations{Bold: true, Italic: true, Code: true}},
			"*_`x`_*",
		},
		{
			"strikethrough before italic",
			entity.RichText{Text: "x", Annotations: entity.Annotations{Italic: true, Strikethrough: true}},
			"_~x~_",
		},
		{
			"underline between italic and bold",
			entity.RichText{Text: "x", Annotations: entity.Annotations{Bold: true, Underline: true, Italic: true}},
			"*___x___*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderSpan(tt.span))
		})
	}
}

func TestRenderSpan_SpoilerSurvivesEscaping(t *testing.T) {
	got := renderSpan(span("||hidden||"))
	assert.Equal(t, "||hidden||", got)
}

func TestTranslateMessage_Quote(t *testing.T) {
	block := entity.Block{
		Kind: entity.BlockQuote,
		RichText: []entity.RichText{
			{Text: "already italic", Annotations: entity.Annotations{Italic: true}},
			{Text: " and bold", Annotations: entity.Annotations{Bold: true}},
		},
	}

	got, err := translateMessage(block, 0)
	require.NoError(t, err)
	assert.Equal(t, "_already italic_*_ and bold_*", got)

	// The source spans must not have been mutated.
	assert.False(t, block.RichText[1].Annotations.Italic)
}

func TestTranslateMessage_Lists(t *testing.T) {
	numbered := entity.Block{Kind: entity.BlockNumberedListItem, RichText: []entity.RichText{span("first")}}
	got, err := translateMessage(numbered, 3)
	require.NoError(t, err)
	assert.Equal(t, `3\. first`, got)

	bulleted := entity.Block{Kind: entity.BlockBulletedListItem, RichText: []entity.RichText{span("item")}}
	got, err = translateMessage(bulleted, 0)
	require.NoError(t, err)
	assert.Equal(t, `\* item`, got)
}

func TestTranslateMessage_CodeRendersThreeLines(t *testing.T) {
	block := entity.Block{
		Kind:     entity.BlockCode,
		Language: "go",
		RichText: []entity.RichText{span("fmt.Println(1)")},
	}

	got, err := translateMessage(block, 0)
	require.NoError(t, err)
	assert.Equal(t, "\\`\\`\\`go\n```go\nfmt.Println(1)\n```\n\\`\\`\\`", got)
}

func TestTranslateMessage_UnsupportedKind(t *testing.T) {
	for _, kind := range []entity.BlockKind{
		entity.BlockDivider,
		entity.BlockHeading1,
		entity.BlockImage,
		entity.BlockTableOfContents,
		entity.BlockKind("toggle"),
	} {
		_, err := translateMessage(entity.Block{Kind: kind}, 0)
		require.Error(t, err)

		var unsupported *entity.UnsupportedBlockError
		require.True(t, errors.As(err, &unsupported))
		assert.Equal(t, kind, unsupported.Kind)
	}
}

func TestTranslateMessage_NestedBlock(t *testing.T) {
	block := entity.Block{Kind: entity.BlockParagraph, RichText: []entity.RichText{span("p")}, HasChildren: true}

	_, err := translateMessage(block, 0)
	require.Error(t, err)

	var unsupported *entity.UnsupportedBlockError
	require.True(t, errors.As(err, &unsupported))
	assert.True(t, unsupported.Nested)
}

func TestTranslateDigest(t *testing.T) {
	empty := entity.Block{Kind: entity.BlockParagraph}
	assert.Nil(t, translateDigest(empty))

	full := entity.Block{Kind: entity.BlockQuote, RichText: []entity.RichText{span("q")}}
	got := translateDigest(full)
	require.NotNil(t, got)
	assert.Equal(t, full, *got)
}
