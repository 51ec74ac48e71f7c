package imgopt_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homevista/assetopt/internal/imgopt"
)

// testImagePNG renders a w×h gradient and encodes it as PNG. The gradient
// keeps JPEG output sizes sensitive to the quality setting.
func testImagePNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: uint8((x + y) % 256),
				A: 255,
			})
		}
	}

	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestCompress(t *testing.T) {
	t.Parallel()

	t.Run("bounds larger dimension and preserves aspect ratio", func(t *testing.T) {
		t.Parallel()

		src := testImagePNG(t, 1600, 800)
		out, err := imgopt.Compress(context.Background(), bytes.NewReader(src), imgopt.CompressOptions{MaxWidth: 800})
		require.NoError(t, err)

		decoded, err := imaging.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 800, decoded.Bounds().Dx())
		assert.Equal(t, 400, decoded.Bounds().Dy())
	})

	t.Run("portrait image bounded by height", func(t *testing.T) {
		t.Parallel()

		src := testImagePNG(t, 400, 1200)
		out, err := imgopt.Compress(context.Background(), bytes.NewReader(src), imgopt.CompressOptions{MaxWidth: 600})
		require.NoError(t, err)

		decoded, err := imaging.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 200, decoded.Bounds().Dx())
		assert.Equal(t, 600, decoded.Bounds().Dy())
	})

	t.Run("never upscales", func(t *testing.T) {
		t.Parallel()

		src := testImagePNG(t, 100, 50)
		out, err := imgopt.Compress(context.Background(), bytes.NewReader(src), imgopt.CompressOptions{MaxWidth: 800})
		require.NoError(t, err)

		decoded, err := imaging.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 100, decoded.Bounds().Dx())
		assert.Equal(t, 50, decoded.Bounds().Dy())
	})

	t.Run("lower quality does not produce larger output", func(t *testing.T) {
		t.Parallel()

		src := testImagePNG(t, 640, 480)

		high, err := imgopt.Compress(context.Background(), bytes.NewReader(src), imgopt.CompressOptions{Quality: 0.8})
		require.NoError(t, err)
		low, err := imgopt.Compress(context.Background(), bytes.NewReader(src), imgopt.CompressOptions{Quality: 0.3})
		require.NoError(t, err)

		assert.LessOrEqual(t, len(low), len(high))
	})

	t.Run("rejects quality above one", func(t *testing.T) {
		t.Parallel()

		src := testImagePNG(t, 10, 10)
		_, err := imgopt.Compress(context.Background(), bytes.NewReader(src), imgopt.CompressOptions{Quality: 1.5})
		assert.ErrorIs(t, err, imgopt.ErrQualityOutOfRange)
	})

	t.Run("fails on undecodable input", func(t *testing.T) {
		t.Parallel()

		_, err := imgopt.Compress(context.Background(), bytes.NewReader([]byte("not an image")), imgopt.CompressOptions{})
		require.Error(t, err)
		assert.NotErrorIs(t, err, imgopt.ErrDecodeStall)
	})

	t.Run("stalled reader fails with ErrDecodeStall", func(t *testing.T) {
		t.Parallel()

		r := newBlockedReader()
		t.Cleanup(r.release)

		_, err := imgopt.Compress(context.Background(), r, imgopt.CompressOptions{DecodeTimeout: 50 * time.Millisecond})
		assert.ErrorIs(t, err, imgopt.ErrDecodeStall)
	})

	t.Run("context cancellation aborts decode", func(t *testing.T) {
		t.Parallel()

		r := newBlockedReader()
		t.Cleanup(r.release)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := imgopt.Compress(ctx, r, imgopt.CompressOptions{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

// blockedReader blocks every Read until released, simulating a stalled
// upstream source.
type blockedReader struct {
	done chan struct{}
}

func newBlockedReader() *blockedReader {
	return &blockedReader{done: make(chan struct{})}
}

func (r *blockedReader) Read(_ []byte) (int, error) {
	<-r.done
	return 0, io.EOF
}

func (r *blockedReader) release() {
	select {
	case <-r.done:
	default:
		close(r.done)
	}
}
