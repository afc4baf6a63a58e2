// Package archive drives the per-blog crawl loop: fetch a page, resolve
// trail-referenced blogs, persist the posts, repeat until pagination is
// exhausted.
package archive

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/AnnikaCodes/tumblr-archiver/internal/metrics"
)

// Config controls Archiver behavior.
type Config struct {
	// Concurrency bounds simultaneous blog crawls. 0 means one goroutine
	// per requested blog.
	Concurrency int
	// ExactTotals stops pagination at total_posts. When false the loop
	// keeps the historical total_posts-1 bound, which under-archives by
	// one post when page sizes divide the total evenly.
	ExactTotals bool
	// MaxAttempts caps total fetch attempts for a rate-limited page.
	MaxAttempts int
	// BaseDelay is the first rate-limit backoff wait; it doubles per
	// attempt.
	BaseDelay time.Duration
}

// Archiver archives the complete post history of blogs.
type Archiver struct {
	fetch  *fetchResolver
	trails *trailResolver
	store  Store
	cfg    Config
	logger *zap.Logger
}

// New constructs an Archiver.
func New(fetcher PageFetcher, store Store, clock Clock, cfg Config, logger *zap.Logger) *Archiver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 10
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 20 * time.Second
	}

	fetch := &fetchResolver{
		fetcher:     fetcher,
		clock:       clock,
		baseDelay:   cfg.BaseDelay,
		maxAttempts: cfg.MaxAttempts,
		logger:      logger,
	}
	return &Archiver{
		fetch: fetch,
		trails: &trailResolver{
			resolver: fetch,
			store:    store,
			clock:    clock,
			logger:   logger,
		},
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
}

// Run archives every requested blog, one independent task per blog. A
// blog's failure is logged and never aborts its siblings; Run returns when
// all tasks have reached a terminal state.
func (a *Archiver) Run(ctx context.Context, blogs []string) {
	var g errgroup.Group
	if a.cfg.Concurrency > 0 {
		g.SetLimit(a.cfg.Concurrency)
	}

	for _, name := range blogs {
		name := strings.ToLower(name)
		g.Go(func() error {
			logger := a.logger.With(
				zap.String("blog", name),
				zap.String("run_id", uuid.NewString()),
			)
			if err := a.archiveBlog(ctx, name, logger); err != nil {
				logger.Error("archive failed", zap.Error(err))
			}
			return nil
		})
	}

	_ = g.Wait()
}

// archiveBlog runs the crawl loop for a single blog to completion.
func (a *Archiver) archiveBlog(ctx context.Context, name string, logger *zap.Logger) error {
	var postsSaved int64

	for {
		page, err := a.fetch.Resolve(ctx, name, int(postsSaved))
		if err != nil {
			return err
		}
		if page == nil {
			if postsSaved == 0 {
				logger.Warn("blog unreachable, skipping")
				return nil
			}
			return fmt.Errorf("blog %s became unreachable at offset %d", name, postsSaved)
		}

		if err := a.store.SaveBlog(ctx, page.Blog); err != nil {
			return fmt.Errorf("save blog %s: %w", name, err)
		}

		for _, post := range page.Posts {
			if err := a.trails.ensureTrailBlogs(ctx, post); err != nil {
				return err
			}

			if err := a.store.SavePost(ctx, post); err != nil {
				// Typically a duplicate post id from a
				// re-archive; the post's transaction rolled
				// back, the rest of the crawl continues.
				logger.Warn("post not persisted",
					zap.String("post_id", post.ID),
					zap.Error(err),
				)
			} else {
				metrics.IncPostsSaved(name)
			}
			// The offset cursor advances past the post either way.
			postsSaved++
		}

		if len(page.Posts) == 0 {
			// The source reported more posts than it will serve;
			// treat pagination as exhausted rather than refetching
			// the same empty page.
			logger.Info("pagination exhausted early",
				zap.Int64("posts_seen", postsSaved),
				zap.Int64("total_posts", page.TotalPosts),
			)
			return nil
		}

		limit := page.TotalPosts - 1
		if a.cfg.ExactTotals {
			limit = page.TotalPosts
		}
		if postsSaved >= limit {
			logger.Info("archive complete",
				zap.Int64("posts_seen", postsSaved),
				zap.Int64("total_posts", page.TotalPosts),
			)
			return nil
		}
	}
}
