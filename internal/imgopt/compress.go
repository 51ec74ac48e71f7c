package imgopt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"time"

	"github.com/disintegration/imaging"
)

// Compression defaults, matching the service-wide configuration defaults.
const (
	DefaultMaxWidth      = 800
	DefaultQuality       = 0.8
	DefaultDecodeTimeout = 10 * time.Second
)

// Errors returned by compression.
var (
	ErrDecodeStall       = errors.New("imgopt: image decode did not complete in time")
	ErrQualityOutOfRange = errors.New("imgopt: quality must be in (0,1]")
)

// CompressOptions bounds the output of Compress. Zero values fall back to the
// package defaults.
type CompressOptions struct {
	// MaxWidth bounds the larger output dimension. Images already within the
	// bound are re-encoded without scaling; nothing is ever upscaled.
	MaxWidth int
	// Quality is the JPEG quality factor in (0,1].
	Quality float64
	// DecodeTimeout bounds how long a decode may take before the call fails
	// with ErrDecodeStall.
	DecodeTimeout time.Duration
}

// Compress decodes the image in r, uniformly downscales it so its larger
// dimension does not exceed MaxWidth, and re-encodes it as JPEG at the given
// quality. The aspect ratio is always preserved. The decode is bounded by the
// context and by DecodeTimeout; a reader that stalls fails the call instead
// of hanging it.
func Compress(ctx context.Context, r io.Reader, opts CompressOptions) ([]byte, error) {
	if opts.MaxWidth == 0 {
		opts.MaxWidth = DefaultMaxWidth
	}
	if opts.Quality == 0 {
		opts.Quality = DefaultQuality
	}
	if opts.DecodeTimeout == 0 {
		opts.DecodeTimeout = DefaultDecodeTimeout
	}

	if opts.MaxWidth < 1 {
		return nil, fmt.Errorf("imgopt.Compress: max width must be >= 1, got %d", opts.MaxWidth)
	}
	if opts.Quality < 0 || opts.Quality > 1 {
		return nil, fmt.Errorf("imgopt.Compress: %w, got %g", ErrQualityOutOfRange, opts.Quality)
	}

	img, err := decode(ctx, r, opts.DecodeTimeout)
	if err != nil {
		return nil, fmt.Errorf("imgopt.Compress: %w", err)
	}

	// Fit scales down preserving aspect ratio and never upscales, so the
	// larger dimension ends up <= MaxWidth.
	img = imaging.Fit(img, opts.MaxWidth, opts.MaxWidth, imaging.Lanczos)

	buf := new(bytes.Buffer)
	jpegQuality := int(math.Round(opts.Quality * 100))
	if jpegQuality < 1 {
		jpegQuality = 1
	}
	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("imgopt.Compress: encode: %w", err)
	}

	return buf.Bytes(), nil
}

type decodeResult struct {
	img image.Image
	err error
}

// decode runs the blocking image decode in its own goroutine so the caller
// can bail out on context cancellation or a stalled reader. The goroutine is
// abandoned on timeout; it exits once the underlying reader fails or finishes.
func decode(ctx context.Context, r io.Reader, timeout time.Duration) (image.Image, error) {
	ch := make(chan decodeResult, 1)
	go func() {
		img, err := imaging.Decode(r, imaging.AutoOrientation(true))
		ch <- decodeResult{img: img, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		if res.err != nil {
			return nil, fmt.Errorf("decode: %w", res.err)
		}
		return res.img, nil
	case <-timer.C:
		return nil, ErrDecodeStall
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
