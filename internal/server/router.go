package server

import (
	"github.com/AdaptationAtlas/data-management/internal/atlas"
	"github.com/AdaptationAtlas/data-management/internal/auth"
	"github.com/AdaptationAtlas/data-management/internal/config"
	"github.com/AdaptationAtlas/data-management/internal/logger"
	"github.com/AdaptationAtlas/data-management/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Dependencies groups the services required by the HTTP router.
type Dependencies struct {
	Config       config.Config
	Logger       *zap.Logger
	ObjectStore  *minio.Client
	AuthService  *auth.Service
	AtlasService *atlas.Service
}

// NewRouter builds a Gin engine with foundational middleware and routes.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if deps.Logger != nil {
		router.Use(logger.Middleware(deps.Logger))
	}

	registerHealthRoutes(router, deps)
	metrics.Register(router, deps.Config.Metrics.PrometheusPath)

	if deps.AtlasService != nil {
		api := router.Group("/v1")
		if deps.AuthService != nil {
			api.Use(auth.Middleware(deps.AuthService))
		}
		atlas.RegisterRoutes(api, deps.AtlasService)
	}

	return router
}
