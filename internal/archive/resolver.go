package archive

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/AnnikaCodes/tumblr-archiver/internal/metrics"
	"github.com/AnnikaCodes/tumblr-archiver/internal/tumblr"
)

// trailResolver guarantees every blog referenced by a post's reblog trail
// has a row in the store before the post itself is written.
type trailResolver struct {
	resolver *fetchResolver
	store    Store
	clock    Clock
	logger   *zap.Logger
}

// ensureTrailBlogs resolves and persists every trail-referenced blog that
// the store has not seen yet. Blogs already present, real or placeholder,
// are never fetched again.
func (t *trailResolver) ensureTrailBlogs(ctx context.Context, post tumblr.Post) error {
	for _, item := range post.Trail {
		name := item.Blog.Name
		if name == "" {
			continue
		}

		saved, err := t.store.HasBlog(ctx, name)
		if err != nil {
			return fmt.Errorf("check blog %s: %w", name, err)
		}
		if saved {
			continue
		}

		// Metadata rides along with the first page of posts, so
		// resolving a referenced blog means fetching its page zero.
		page, err := t.resolver.Resolve(ctx, name, 0)
		if err != nil {
			return err
		}

		var blog tumblr.Blog
		if page == nil {
			blog = newPlaceholderBlog(name, t.clock.Now())
			metrics.IncPlaceholderBlogs()
			t.logger.Warn("storing placeholder for inaccessible blog",
				zap.String("blog", name),
				zap.String("referenced_by", post.ID),
			)
		} else {
			blog = page.Blog
		}

		if err := t.store.SaveBlog(ctx, blog); err != nil {
			return fmt.Errorf("save blog %s: %w", name, err)
		}
	}
	return nil
}
