package tumblr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageJSON = `{
	"meta": {"status": 200, "msg": "OK"},
	"response": {
		"blog": {
			"name": "alpha",
			"title": "Alpha's Blog",
			"description": "hello",
			"url": "https://alpha.tumblr.com/",
			"uuid": "t:abc123",
			"updated": 1700000000,
			"posts": 3,
			"avatar": [
				{"width": 128, "height": 128, "url": "https://example.com/128.png"},
				{"width": 512, "height": 512, "url": "https://example.com/512.png"}
			],
			"theme": {
				"background_color": "#FAFAFA",
				"header_stretch": true,
				"show_avatar": true,
				"title_font": "Gibson"
			}
		},
		"posts": [
			{
				"type": "text",
				"is_blocks_post_format": false,
				"blog_name": "alpha",
				"id_string": "101",
				"post_url": "https://alpha.tumblr.com/post/101",
				"timestamp": 1699999999,
				"state": "published",
				"format": "html",
				"tags": ["archive", "test"],
				"note_count": 7,
				"title": "first",
				"body": "<p>hi</p>",
				"reblog": {"comment": "<p>nice</p>", "tree_html": "<ul></ul>"},
				"trail": [
					{
						"blog": {"name": "origin"},
						"post": {"id": "55"},
						"content_raw": "<p>raw</p>",
						"content": "<p>rendered</p>",
						"is_root_item": true
					}
				]
			}
		],
		"total_posts": 3
	}
}`

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-key", 5*time.Second, nil), srv
}

func TestFetchPage(t *testing.T) {
	t.Parallel()

	var gotPath, gotOffset, gotKey string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotOffset = r.URL.Query().Get("offset")
		gotKey = r.URL.Query().Get("api_key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(pageJSON))
	}))

	page, err := client.FetchPage(context.Background(), "alpha", 40)
	require.NoError(t, err)

	assert.Equal(t, "/v2/blog/alpha.tumblr.com/posts", gotPath)
	assert.Equal(t, "40", gotOffset)
	assert.Equal(t, "test-key", gotKey)

	assert.Equal(t, "alpha", page.Blog.Name)
	assert.Equal(t, int64(1700000000), page.Blog.Updated)
	assert.Equal(t, int64(3), page.Blog.PostCount)
	assert.Len(t, page.Blog.Avatar, 2)
	assert.True(t, page.Blog.Theme.HeaderStretch)
	assert.Equal(t, "Gibson", page.Blog.Theme.TitleFont)

	require.Len(t, page.Posts, 1)
	post := page.Posts[0]
	assert.Equal(t, "101", post.ID)
	assert.Equal(t, []string{"archive", "test"}, post.Tags)
	assert.Equal(t, "<p>nice</p>", post.Reblog.Comment)
	require.Len(t, post.Trail, 1)
	assert.Equal(t, "origin", post.Trail[0].Blog.Name)
	assert.Equal(t, "55", post.Trail[0].Post.ID)
	assert.True(t, post.Trail[0].IsRootItem)

	assert.Equal(t, int64(3), page.TotalPosts)
}

func TestFetchPageCustomDomain(t *testing.T) {
	t.Parallel()

	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(pageJSON))
	}))

	_, err := client.FetchPage(context.Background(), "blog.example.com", 0)
	require.NoError(t, err)
	assert.Equal(t, "/v2/blog/blog.example.com/posts", gotPath)
}

func TestFetchPageNotFound(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	page, err := client.FetchPage(context.Background(), "ghost", 0)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, page)
}

func TestFetchPageRateLimited(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.FetchPage(context.Background(), "alpha", 0)
	require.ErrorIs(t, err, ErrRateLimited)
}

func TestFetchPageServerError(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"meta": {"status": 500, "msg": "Internal Server Error"}}`))
	}))

	_, err := client.FetchPage(context.Background(), "alpha", 0)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
	require.NotErrorIs(t, err, ErrRateLimited)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "Internal Server Error", apiErr.Message)
}

func TestFetchPageBadJSON(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))

	_, err := client.FetchPage(context.Background(), "alpha", 0)
	require.Error(t, err)
}
