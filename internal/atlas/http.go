package atlas

import (
	"errors"
	"net/http"

	"github.com/AdaptationAtlas/data-management/internal/geoparquet"
	"github.com/AdaptationAtlas/data-management/internal/storage"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts catalog operations under the provided router group.
func RegisterRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.POST("/locations/describe", handler.describeLocation)
	group.POST("/catalog/build", handler.buildCatalog)
}

type httpHandler struct {
	service *Service
}

type describeRequest struct {
	Path      string `json:"path" binding:"required"`
	Recursive bool   `json:"recursive"`
}

func (h *httpHandler) describeLocation(c *gin.Context) {
	var req describeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}

	desc, err := h.service.DescribeLocation(c.Request.Context(), req.Path, req.Recursive)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrObjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
		case errors.Is(err, geoparquet.ErrMalformedMetadata):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "malformed geo metadata"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to describe location"})
		}
		return
	}

	c.JSON(http.StatusOK, desc)
}

type buildRequest struct {
	Publish bool `json:"publish"`
}

func (h *httpHandler) buildCatalog(c *gin.Context) {
	var req buildRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	tree, err := h.service.BuildCatalog(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownTheme):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, storage.ErrObjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "dataset location not found"})
		case errors.Is(err, geoparquet.ErrMalformedMetadata):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "malformed geo metadata"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build catalog"})
		}
		return
	}

	if req.Publish {
		if err := h.service.Publish(c.Request.Context(), tree); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to publish catalog"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        tree.ID,
		"items":     tree.ItemCount(),
		"published": req.Publish,
	})
}
