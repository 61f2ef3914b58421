package server

import (
	"github.com/cns-tools/store-creator/internal/config"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the Gin router with the configured API handlers.
func NewRouter(cfg *config.Config, batchManager *BatchManager) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), corsMiddleware(cfg.CORSAllowOrigins))
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	handler := newHandler(cfg, batchManager)

	router.GET(HealthEndpoint, handler.health)

	upload := router.Group(UploadBasePath, limitUploadSize(cfg.MaxUploadBytes))
	upload.POST("/:"+EnvironmentParam, handler.createGroups)
	upload.DELETE(DeletePath, handler.deleteGroups)

	return router
}
