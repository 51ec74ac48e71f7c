package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/homevista/assetopt/internal/imgopt"
)

type RewriteURLInput struct {
	Body struct {
		URL     string `json:"url" minLength:"1" doc:"Absolute image URL to annotate"`
		Width   int    `json:"width,omitempty" minimum:"0" doc:"Requested width in pixels"`
		Height  int    `json:"height,omitempty" minimum:"0" doc:"Requested height in pixels"`
		Quality int    `json:"quality,omitempty" minimum:"0" maximum:"100" doc:"Requested quality percentage"`
	}
}

type RewriteURLOutput struct {
	Body struct {
		URL string `json:"url" doc:"Annotated image URL"`
	}
}

func RegisterURLRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "rewrite-url",
		Method:      http.MethodPost,
		Path:        "/urls/rewrite",
		Summary:     "Annotate an image URL with size and quality hints",
		Tags:        []string{"URLs"},
	}, func(_ context.Context, input *RewriteURLInput) (*RewriteURLOutput, error) {
		rewritten, err := imgopt.Rewrite(input.Body.URL, imgopt.RewriteOptions{
			Width:   input.Body.Width,
			Height:  input.Body.Height,
			Quality: input.Body.Quality,
		})
		if err != nil {
			if errors.Is(err, imgopt.ErrInvalidURL) || errors.Is(err, imgopt.ErrInvalidOptions) {
				return nil, huma.Error400BadRequest(err.Error())
			}
			return nil, huma.Error500InternalServerError("failed to rewrite url", err)
		}

		out := &RewriteURLOutput{}
		out.Body.URL = rewritten
		return out, nil
	})
}
