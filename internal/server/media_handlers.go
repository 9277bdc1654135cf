package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kamilwozniak/portfolio/backend/internal/media"
	"go.uber.org/zap"
)

func (h *httpHandler) handleListMedia(c *gin.Context) {
	items, err := h.media.List(c.Request.Context())
	if err != nil {
		h.logger.Error("media listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *httpHandler) handleUploadMedia(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_file"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable_file"})
		return
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	item, err := h.media.Store(c.Request.Context(), file, fileHeader.Filename, mimeType, c.PostForm("postId"))
	if err != nil {
		if errors.Is(err, media.ErrTypeNotAllowed) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "type_not_allowed"})
			return
		}
		h.logger.Error("media upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *httpHandler) handleDeleteMedia(c *gin.Context) {
	if err := h.media.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, media.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		h.logger.Error("media deletion failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	c.Status(http.StatusNoContent)
}
