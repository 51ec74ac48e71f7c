package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/homevista/assetopt/internal/domain"
)

type ListCachesInput struct{}

type ListCachesOutput struct {
	Body []domain.Cache
}

type PurgeCacheInput struct {
	Name string `path:"name" doc:"Registered cache name"`
}

type PurgeCacheOutput struct {
	Body struct {
		Deleted int64 `json:"deleted" doc:"Number of entries removed"`
	}
}

type WarmCacheInput struct {
	Name string `path:"name" doc:"Registered cache name"`
	Body struct {
		URLs []string `json:"urls" minItems:"1" maxItems:"1000" doc:"Absolute asset URLs to pre-fetch"`
	}
}

type WarmCacheOutput struct {
	Status int
	Body   domain.WarmJob
}

type GetWarmJobInput struct {
	ID uuid.UUID `path:"id" doc:"Warm job ID"`
}

type GetWarmJobOutput struct {
	Body domain.WarmJob
}

func RegisterCacheRoutes(api huma.API, registry CacheRegistry, warmer CacheWarmer) {
	huma.Register(api, huma.Operation{
		OperationID: "list-caches",
		Method:      http.MethodGet,
		Path:        "/caches",
		Summary:     "List registered caches",
		Tags:        []string{"Caches"},
	}, func(_ context.Context, _ *ListCachesInput) (*ListCachesOutput, error) {
		return &ListCachesOutput{Body: registry.List()}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "purge-cache",
		Method:      http.MethodDelete,
		Path:        "/caches/{name}",
		Summary:     "Delete every entry of a registered cache",
		Tags:        []string{"Caches"},
	}, func(ctx context.Context, input *PurgeCacheInput) (*PurgeCacheOutput, error) {
		deleted, err := registry.Purge(ctx, input.Name)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("cache not registered")
			}
			return nil, huma.Error500InternalServerError("failed to purge cache", err)
		}

		out := &PurgeCacheOutput{}
		out.Body.Deleted = deleted
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "warm-cache",
		Method:        http.MethodPost,
		Path:          "/caches/{name}/warm",
		Summary:       "Start a fire-and-forget warm run for a registered cache",
		Tags:          []string{"Caches"},
		DefaultStatus: http.StatusAccepted,
	}, func(_ context.Context, input *WarmCacheInput) (*WarmCacheOutput, error) {
		c, ok := registry.Get(input.Name)
		if !ok {
			return nil, huma.Error404NotFound("cache not registered")
		}

		job := warmer.Start(c, input.Body.URLs)
		return &WarmCacheOutput{Status: http.StatusAccepted, Body: job}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-warm-job",
		Method:      http.MethodGet,
		Path:        "/caches/jobs/{id}",
		Summary:     "Get the status of a warm job",
		Tags:        []string{"Caches"},
	}, func(_ context.Context, input *GetWarmJobInput) (*GetWarmJobOutput, error) {
		job, ok := warmer.Job(input.ID)
		if !ok {
			return nil, huma.Error404NotFound("warm job not found")
		}
		return &GetWarmJobOutput{Body: job}, nil
	})
}
