package archive

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/AnnikaCodes/tumblr-archiver/internal/metrics"
	"github.com/AnnikaCodes/tumblr-archiver/internal/tumblr"
)

// fetchResolver wraps a PageFetcher with rate-limit backoff and not-found
// absorption.
type fetchResolver struct {
	fetcher     PageFetcher
	clock       Clock
	baseDelay   time.Duration
	maxAttempts int
	logger      *zap.Logger
}

// Resolve fetches a page, classifying failures:
//   - not found: returns (nil, nil), signaling the blog is unreachable
//   - rate limited: waits baseDelay*2^attempt and retries, up to maxAttempts
//     total fetches
//   - anything else: returned to the caller without retrying
func (r *fetchResolver) Resolve(ctx context.Context, blog string, offset int) (*tumblr.Page, error) {
	for attempt := 0; ; attempt++ {
		page, err := r.fetcher.FetchPage(ctx, blog, offset)
		switch {
		case err == nil:
			return page, nil

		case errors.Is(err, tumblr.ErrNotFound):
			r.logger.Warn("blog not found", zap.String("blog", blog))
			return nil, nil

		case errors.Is(err, tumblr.ErrRateLimited):
			if attempt+1 >= r.maxAttempts {
				return nil, fmt.Errorf("giving up on %s after %d rate-limited attempts: %w", blog, r.maxAttempts, err)
			}
			delay := r.baseDelay << uint(attempt)
			metrics.ObserveRateLimitWait(delay)
			r.logger.Warn("rate limited, backing off",
				zap.String("blog", blog),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
			)
			if serr := r.clock.Sleep(ctx, delay); serr != nil {
				return nil, serr
			}

		default:
			return nil, fmt.Errorf("fetch %s at offset %d: %w", blog, offset, err)
		}
	}
}
