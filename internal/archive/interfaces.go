package archive

import (
	"context"
	"time"

	"github.com/AnnikaCodes/tumblr-archiver/internal/tumblr"
)

// PageFetcher fetches one page of a blog's post history.
type PageFetcher interface {
	FetchPage(ctx context.Context, blog string, offset int) (*tumblr.Page, error)
}

// Store persists blogs and posts. SaveBlog must be durably visible before
// SavePost is called for any post owned by or trailing through that blog.
type Store interface {
	SaveBlog(ctx context.Context, blog tumblr.Blog) error
	SavePost(ctx context.Context, post tumblr.Post) error
	HasBlog(ctx context.Context, name string) (bool, error)
}

// Clock abstracts time and sleeping so tests can run backoff schedules
// without real delays.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}
