package imgopt

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// Errors returned by URL rewriting.
var (
	ErrInvalidURL     = errors.New("imgopt: invalid absolute url")
	ErrInvalidOptions = errors.New("imgopt: invalid rewrite options")
)

// RewriteOptions selects which size/quality hints to attach to an image URL.
// Zero values mean "not supplied"; supplied dimensions must be positive and
// quality must be in [1,100].
type RewriteOptions struct {
	Width   int
	Height  int
	Quality int
}

// Rewrite annotates an absolute image URL with `w`, `h` and `q` query
// parameters for the subset of options that were supplied. Same-named
// parameters are overwritten; scheme, host, path and unrelated query
// parameters are preserved. The result is a best-effort hint only: nothing
// checks that the target server honors these parameters.
func Rewrite(rawURL string, opts RewriteOptions) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("imgopt.Rewrite: %q: %w", rawURL, ErrInvalidURL)
	}

	if opts.Width < 0 || opts.Height < 0 {
		return "", fmt.Errorf("imgopt.Rewrite: dimensions must be positive: %w", ErrInvalidOptions)
	}
	if opts.Quality < 0 || opts.Quality > 100 {
		return "", fmt.Errorf("imgopt.Rewrite: quality must be in [1,100]: %w", ErrInvalidOptions)
	}

	q := u.Query()
	if opts.Width > 0 {
		q.Set("w", strconv.Itoa(opts.Width))
	}
	if opts.Height > 0 {
		q.Set("h", strconv.Itoa(opts.Height))
	}
	if opts.Quality > 0 {
		q.Set("q", strconv.Itoa(opts.Quality))
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
