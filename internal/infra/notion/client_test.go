package notion

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notigram/internal/config"
	"notigram/internal/domain/entity"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewClient(config.NotionConfig{
		Token:                "secret",
		ChannelDatabaseID:    "channel-db",
		NewsletterDatabaseID: "newsletter-db",
		Timeout:              5 * time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.baseURL = server.URL
	return c
}

const postPageJSON = `{
  "id": "page-1",
  "icon": {"type": "emoji", "emoji": "🦄"},
  "properties": {
    "Name": {"type": "title", "title": [
      {"type": "text", "plain_text": "Hello ", "text": {"content": "Hello "}},
      {"type": "text", "plain_text": "World", "text": {"content": "World"}}
    ]},
    "TitleLink": {"type": "url", "url": "https://example.com"},
    "Category": {"type": "select", "select": {"name": "Blog"}},
    "Tags": {"type": "multi_select", "multi_select": [{"name": "Go"}, {"name": "Weekly"}]},
    "Cover": {"type": "files", "files": [
      {"type": "file", "file": {"url": "https://files.example/1.png"}},
      {"type": "external", "external": {"url": "https://ext.example/2.png"}}
    ]},
    "IsHideTitle": {"type": "checkbox", "checkbox": false},
    "IsHideCopyright": {"type": "checkbox", "checkbox": true},
    "Status": {"type": "select", "select": {"name": "Completed"}},
    "PubPriority": {"type": "number", "number": 3},
    "NLGenPriority": {"type": "number", "number": 5},
    "PlanningPublish": {"type": "date", "date": {"start": "2024-01-05"}},
    "RealPubTime": {"type": "date", "date": {"start": "2024-01-05T20:30:00.000+08:00"}}
  }
}`

func TestGetPost_MapsProperties(t *testing.T) {
	var gotAuth, gotVersion string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("Notion-Version")
		require.Equal(t, "/pages/page-1", r.URL.Path)
		_, _ = w.Write([]byte(postPageJSON))
	}))

	post, err := client.GetPost(t.Context(), "page-1")
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, apiVersion, gotVersion)

	assert.Equal(t, "page-1", post.ID)
	assert.Equal(t, "Hello World", post.PlainTitle())
	assert.Equal(t, "https://example.com", post.TitleLink)
	assert.Equal(t, "🦄", post.IconEmoji)
	assert.Equal(t, "Blog", post.Category)
	assert.Equal(t, []string{"Go", "Weekly"}, post.Tags)
	assert.Equal(t, []string{"https://files.example/1.png", "https://ext.example/2.png"}, post.Covers)
	assert.False(t, post.HideTitle)
	assert.True(t, post.HideCopyright)
	assert.Equal(t, entity.StatusCompleted, post.Status)
	assert.Equal(t, 3.0, post.PubPriority)
	assert.Equal(t, 5.0, post.NLGenPriority)
	assert.Equal(t, "2024-01-05", post.PlanningPublish.Format("2006-01-02"))
	assert.False(t, post.RealPubTime.IsZero())
}

func TestGetPostBlocks_FollowsContinuationCursor(t *testing.T) {
	var cursors []string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cursor := r.URL.Query().Get("start_cursor")
		cursors = append(cursors, cursor)

		if cursor == "" {
			_, _ = w.Write([]byte(`{
			  "results": [{"type": "paragraph", "paragraph": {"rich_text": [
			    {"plain_text": "first", "annotations": {"bold": true}}
			  ]}}],
			  "has_more": true,
			  "next_cursor": "cursor-2"
			}`))
			return
		}
		_, _ = w.Write([]byte(`{
		  "results": [{"type": "code", "has_children": false, "code":
		    {"rich_text": [{"plain_text": "x := 1"}], "language": "go"}}],
		  "has_more": false
		}`))
	}))

	blocks, err := client.GetPostBlocks(t.Context(), "page-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"", "cursor-2"}, cursors)
	require.Len(t, blocks, 2)
	assert.Equal(t, entity.BlockParagraph, blocks[0].Kind)
	assert.True(t, blocks[0].RichText[0].Annotations.Bold)
	assert.Equal(t, entity.BlockCode, blocks[1].Kind)
	assert.Equal(t, "go", blocks[1].Language)
}

func TestMarkPostSent_PatchesStatusAndRealPubTime(t *testing.T) {
	var body updatePageRequest
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/pages/page-1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{}`))
	}))

	loc, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)
	at := time.Date(2024, 1, 5, 20, 30, 0, 0, loc)

	require.NoError(t, client.MarkPostSent(t.Context(), "page-1", at))

	require.NotNil(t, body.Properties["Status"].Select)
	assert.Equal(t, "UnNewsletter", body.Properties["Status"].Select.Name)
	require.NotNil(t, body.Properties["RealPubTime"].Date)
	assert.Equal(t, "Asia/Shanghai", body.Properties["RealPubTime"].Date.TimeZone)
}

func TestDo_SurfacesAPIError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status": 404, "code": "object_not_found", "message": "no such page"}`))
	}))

	_, err := client.GetPost(t.Context(), "missing")
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusNotFound, reqErr.StatusCode)
	assert.Equal(t, "object_not_found", reqErr.Code)
}

func TestToWireBlock_Shapes(t *testing.T) {
	divider := toWireBlock(entity.Block{Kind: entity.BlockDivider})
	raw, err := json.Marshal(divider)
	require.NoError(t, err)
	assert.JSONEq(t, `{"object": "block", "type": "divider", "divider": {}}`, string(raw))

	image := toWireBlock(entity.Block{Kind: entity.BlockImage, ImageURL: "https://img.example/x.png"})
	raw, err = json.Marshal(image)
	require.NoError(t, err)
	assert.JSONEq(t, `{"object": "block", "type": "image", "image": {"type": "external", "external": {"url": "https://img.example/x.png"}}}`, string(raw))

	spacer := toWireBlock(entity.Block{Kind: entity.BlockParagraph})
	raw, err = json.Marshal(spacer)
	require.NoError(t, err)
	assert.JSONEq(t, `{"object": "block", "type": "paragraph", "paragraph": {"rich_text": []}}`, string(raw))
}
