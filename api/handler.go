package api

import (
	"errors"
	"net/http"

	"main/core"
	"main/service"

	"github.com/gin-gonic/gin"
)

// writeStorageError maps the backend failure taxonomy onto HTTP statuses.
func writeStorageError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrTypeMismatch):
		status = http.StatusConflict
	case errors.Is(err, core.ErrUnavailable):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// CommentHandler handles comment object requests
type CommentHandler struct {
	service *service.CommentService
}

func NewCommentHandler(backend core.Backend) *CommentHandler {
	return &CommentHandler{
		service: service.NewCommentService(backend),
	}
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body does not conform to specification: " + err.Error()})
		return
	}

	comment, err := h.service.CreateComment(c.Request.Context(), req.Content.CommentText)
	if err != nil {
		writeStorageError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Get(c *gin.Context) {
	var req GetCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body does not conform to specification: " + err.Error()})
		return
	}

	comment, err := h.service.GetComment(c.Request.Context(), req.Positions.ID)
	if err != nil {
		writeStorageError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Update(c *gin.Context) {
	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body does not conform to specification: " + err.Error()})
		return
	}

	comment, err := h.service.UpdateComment(c.Request.Context(), req.Positions.ID, req.Content.CommentText)
	if err != nil {
		writeStorageError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// AnnotationHandler handles annotation object requests
type AnnotationHandler struct {
	service *service.AnnotationService
}

func NewAnnotationHandler(backend core.Backend) *AnnotationHandler {
	return &AnnotationHandler{
		service: service.NewAnnotationService(backend),
	}
}

func (h *AnnotationHandler) Create(c *gin.Context) {
	// Annotations carry no fields beyond the id, so creation takes no body.
	annotation, err := h.service.CreateAnnotation(c.Request.Context())
	if err != nil {
		writeStorageError(c, err)
		return
	}
	c.JSON(http.StatusOK, annotation)
}

func (h *AnnotationHandler) Get(c *gin.Context) {
	var req GetAnnotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body does not conform to specification: " + err.Error()})
		return
	}

	annotation, err := h.service.GetAnnotation(c.Request.Context(), req.Positions.ID)
	if err != nil {
		writeStorageError(c, err)
		return
	}
	c.JSON(http.StatusOK, annotation)
}

// ConfigHandler handles configuration requests
type ConfigHandler struct {
	service *service.ConfigService
}

func NewConfigHandler() *ConfigHandler {
	return &ConfigHandler{
		service: service.NewConfigService(),
	}
}

func (h *ConfigHandler) UpdateBackend(c *gin.Context) {
	var req UpdateBackendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body does not conform to specification: " + err.Error()})
		return
	}

	if err := h.service.SetBackend(req.Content.Backend, req.Content.DataPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update configuration: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Storage backend updated successfully. Configuration is now in effect.",
		"backend": req.Content.Backend,
	})
}
