package api

import (
	"main/core"

	"github.com/gin-gonic/gin"
)

// NewRouter wires all handlers around the injected backend handle.
// Because the handle is a DynamicBackend, configuration swaps take effect
// without rebuilding the router.
func NewRouter(backend core.Backend) *gin.Engine {
	r := gin.Default()

	commentHandler := NewCommentHandler(backend)
	annotationHandler := NewAnnotationHandler(backend)
	configHandler := NewConfigHandler()

	api := r.Group("/api/v1")
	{
		// All endpoints are POST
		api.POST("/objects/comments/create", commentHandler.Create)
		api.POST("/objects/comments/get", commentHandler.Get)
		api.POST("/objects/comments/update", commentHandler.Update)

		api.POST("/objects/annotations/create", annotationHandler.Create)
		api.POST("/objects/annotations/get", annotationHandler.Get)

		// Configuration API
		api.POST("/config/backend/update", configHandler.UpdateBackend)
	}

	return r
}
