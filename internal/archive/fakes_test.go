package archive

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/AnnikaCodes/tumblr-archiver/internal/tumblr"
)

// fakeClock records sleeps instead of waiting.
type fakeClock struct {
	mu       sync.Mutex
	now      time.Time
	sleeps   []time.Duration
	sleepErr error
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sleepErr != nil {
		return c.sleepErr
	}
	c.sleeps = append(c.sleeps, d)
	return nil
}

// scriptedFetcher returns canned results in order, repeating the last one.
type scriptedFetcher struct {
	mu      sync.Mutex
	results []scriptedResult
	calls   int
}

type scriptedResult struct {
	page *tumblr.Page
	err  error
}

func (f *scriptedFetcher) FetchPage(context.Context, string, int) (*tumblr.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	f.calls++
	r := f.results[i]
	return r.page, r.err
}

// blogSource is one fake blog served by sourceFetcher, a page at a time.
type blogSource struct {
	blog     tumblr.Blog
	posts    []tumblr.Post
	total    int64
	pageSize int
}

// sourceFetcher serves paginated fake blogs and counts fetches per blog.
// Unknown blogs are not found.
type sourceFetcher struct {
	mu    sync.Mutex
	blogs map[string]*blogSource
	calls map[string]int
}

func newSourceFetcher() *sourceFetcher {
	return &sourceFetcher{
		blogs: make(map[string]*blogSource),
		calls: make(map[string]int),
	}
}

func (f *sourceFetcher) FetchPage(_ context.Context, name string, offset int) (*tumblr.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++

	src, ok := f.blogs[name]
	if !ok {
		return nil, fmt.Errorf("blog %q: %w", name, tumblr.ErrNotFound)
	}

	pageSize := src.pageSize
	if pageSize <= 0 {
		pageSize = 1
	}
	var posts []tumblr.Post
	if offset < len(src.posts) {
		end := offset + pageSize
		if end > len(src.posts) {
			end = len(src.posts)
		}
		posts = src.posts[offset:end]
	}
	return &tumblr.Page{Blog: src.blog, Posts: posts, TotalPosts: src.total}, nil
}

func (f *sourceFetcher) fetchCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

// fakeStore is an in-memory archive.Store recording the order of writes.
type fakeStore struct {
	mu      sync.Mutex
	blogs   map[string]tumblr.Blog
	posts   map[string]tumblr.Post
	order   []string
	postErr map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		blogs:   make(map[string]tumblr.Blog),
		posts:   make(map[string]tumblr.Post),
		postErr: make(map[string]error),
	}
}

func (s *fakeStore) SaveBlog(_ context.Context, blog tumblr.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blogs[blog.Name] = blog
	s.order = append(s.order, "blog:"+blog.Name)
	return nil
}

func (s *fakeStore) SavePost(_ context.Context, post tumblr.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.postErr[post.ID]; err != nil {
		return err
	}
	s.posts[post.ID] = post
	s.order = append(s.order, "post:"+post.ID)
	return nil
}

func (s *fakeStore) HasBlog(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blogs[name]
	return ok, nil
}

func (s *fakeStore) orderIndex(entry string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.order {
		if e == entry {
			return i
		}
	}
	return -1
}

// textPost builds a minimal post owned by blog with the given id and trail
// references.
func textPost(blog, id string, trailBlogs ...string) tumblr.Post {
	post := tumblr.Post{
		Type:     "text",
		BlogName: blog,
		ID:       id,
		State:    "published",
		Format:   "html",
	}
	for _, name := range trailBlogs {
		var item tumblr.TrailItem
		item.Blog.Name = name
		item.Post.ID = "origin-" + id
		post.Trail = append(post.Trail, item)
	}
	return post
}
