package tumblr

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that a blog does not exist or is not visible to the
// archiver (deactivated, or restricted to logged-in users).
var ErrNotFound = errors.New("blog not found")

// ErrRateLimited reports that the API rejected the request because the
// caller exceeded its rate limit and must back off.
var ErrRateLimited = errors.New("rate limit exceeded")

// APIError is any other non-success response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tumblr api: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("tumblr api: status %d: %s", e.StatusCode, e.Message)
}
