package server

import (
	"github.com/danielgtaylor/huma/v2"

	v1 "github.com/homevista/assetopt/internal/api/v1"
	"github.com/homevista/assetopt/internal/cache"
	"github.com/homevista/assetopt/internal/config"
	redisstore "github.com/homevista/assetopt/internal/store/redis"
	"github.com/homevista/assetopt/internal/warm"
)

func registerOpenRoutes(api huma.API, cfg *config.Config, store *redisstore.Store) {
	v1.RegisterImageRoutes(api, cfg.Image, store)
	v1.RegisterURLRoutes(api)
	v1.RegisterClientConfigRoutes(api, cfg.LazyLoad, cfg.VirtualScroll)
}

func registerAdminRoutes(api huma.API, registry *cache.Registry, warmer *warm.Warmer) {
	v1.RegisterCacheRoutes(api, registry, warmer)
}
