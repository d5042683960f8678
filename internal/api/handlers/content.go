package handlers

import (
	"errors"
	"net/http"

	"greengrass/internal/content"
	"greengrass/internal/logger"
	"greengrass/internal/settings"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	service *content.Service
	logger  *logger.Logger
}

func NewContentHandler(service *content.Service, logger *logger.Logger) *ContentHandler {
	return &ContentHandler{service: service, logger: logger}
}

func (h *ContentHandler) All(c *gin.Context) {
	all, err := h.service.All(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": all})
}

func (h *ContentHandler) Get(c *gin.Context) {
	value, err := h.service.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		if errors.Is(err, settings.ErrUnknownKey) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown content section"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": value})
}

// Save replaces a whole content section.
func (h *ContentHandler) Save(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}

	value, err := h.service.Save(c.Request.Context(), c.Param("key"), raw)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrUnknownKey):
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown content section"})
		case errors.Is(err, content.ErrSaveFailed):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save content"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": value, "message": "Content saved successfully"})
}
