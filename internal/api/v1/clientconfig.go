package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/homevista/assetopt/internal/config"
	"github.com/homevista/assetopt/internal/domain"
)

type GetClientConfigInput struct{}

type GetClientConfigOutput struct {
	Body domain.ClientConfig
}

// RegisterClientConfigRoutes serves the read-only lazy-load and
// virtual-scroll tuning defaults consumed by browser clients.
func RegisterClientConfigRoutes(api huma.API, lazy config.LazyLoadConfig, vscroll config.VirtualScrollConfig) {
	cc := domain.ClientConfig{
		LazyLoad: domain.LazyLoadOptions{
			RootMargin: lazy.RootMargin,
			Threshold:  lazy.Threshold,
		},
		VirtualScroll: domain.VirtualScrollConfig{
			ItemHeightPx:      vscroll.ItemHeightPx,
			OverscanItems:     vscroll.OverscanItems,
			LoadMoreThreshold: vscroll.LoadMoreThreshold,
		},
	}

	huma.Register(api, huma.Operation{
		OperationID: "get-client-config",
		Method:      http.MethodGet,
		Path:        "/client-config",
		Summary:     "Get client-side rendering tuning defaults",
		Tags:        []string{"ClientConfig"},
	}, func(_ context.Context, _ *GetClientConfigInput) (*GetClientConfigOutput, error) {
		return &GetClientConfigOutput{Body: cc}, nil
	})
}
