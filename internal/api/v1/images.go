package v1

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"github.com/homevista/assetopt/internal/config"
	"github.com/homevista/assetopt/internal/domain"
	"github.com/homevista/assetopt/internal/imgopt"
)

type OptimizeImageInput struct {
	MaxWidth int     `query:"max_width" minimum:"0" maximum:"4096" doc:"Bound on the larger output dimension (0 = service default)"`
	Quality  float64 `query:"quality" minimum:"0" maximum:"1" doc:"JPEG quality factor in (0,1] (0 = service default)"`
	RawBody  []byte
}

type OptimizeImageOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

func RegisterImageRoutes(api huma.API, cfg config.ImageConfig, store CacheStore) {
	huma.Register(api, huma.Operation{
		OperationID: "optimize-image",
		Method:      http.MethodPost,
		Path:        "/images/optimize",
		Summary:     "Downscale and re-encode an image as JPEG",
		Tags:        []string{"Images"},
	}, func(ctx context.Context, input *OptimizeImageInput) (*OptimizeImageOutput, error) {
		if len(input.RawBody) == 0 {
			return nil, huma.Error400BadRequest("request body must contain image data")
		}

		opts := imgopt.CompressOptions{
			MaxWidth:      input.MaxWidth,
			Quality:       input.Quality,
			DecodeTimeout: cfg.DecodeTimeout,
		}
		if opts.MaxWidth == 0 {
			opts.MaxWidth = cfg.MaxWidth
		}
		if opts.Quality == 0 {
			opts.Quality = cfg.Quality
		}

		key := optimizeKey(input.RawBody, opts)

		// Cache lookup is best-effort: a store error falls through to a
		// fresh compression.
		if store != nil {
			cached, err := store.Get(ctx, cfg.CacheName, key)
			if err == nil {
				return &OptimizeImageOutput{ContentType: "image/jpeg", Body: cached}, nil
			}
			if !errors.Is(err, domain.ErrNotFound) {
				log.Warn().Err(err).Str("cache", cfg.CacheName).Msg("optimized image cache lookup failed")
			}
		}

		compressed, err := imgopt.Compress(ctx, bytes.NewReader(input.RawBody), opts)
		if err != nil {
			switch {
			case errors.Is(err, imgopt.ErrDecodeStall):
				return nil, huma.Error408RequestTimeout("image decode did not complete in time")
			case errors.Is(err, imgopt.ErrQualityOutOfRange):
				return nil, huma.Error400BadRequest(err.Error())
			default:
				return nil, huma.Error422UnprocessableEntity("could not decode image", err)
			}
		}

		if store != nil {
			if err := store.Set(ctx, cfg.CacheName, key, compressed, cfg.CacheTTL); err != nil {
				log.Warn().Err(err).Str("cache", cfg.CacheName).Msg("optimized image cache write failed")
			}
		}

		return &OptimizeImageOutput{ContentType: "image/jpeg", Body: compressed}, nil
	})
}

// optimizeKey derives the cache key for an optimize request from the source
// bytes and the effective options, so distinct option sets never collide.
func optimizeKey(body []byte, opts imgopt.CompressOptions) string {
	h := sha256.New()
	h.Write(body)
	fmt.Fprintf(h, "|w=%d|q=%.2f", opts.MaxWidth, opts.Quality)
	return hex.EncodeToString(h.Sum(nil))
}
