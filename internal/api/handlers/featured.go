package handlers

import (
	"net/http"

	"greengrass/internal/catalog"
	"greengrass/internal/logger"
	"greengrass/internal/settings"
	"greengrass/internal/storefront"

	"github.com/gin-gonic/gin"
)

type FeaturedHandler struct {
	snapshots *storefront.Snapshots
	store     settings.Store
	logger    *logger.Logger
}

func NewFeaturedHandler(snapshots *storefront.Snapshots, store settings.Store, logger *logger.Logger) *FeaturedHandler {
	return &FeaturedHandler{snapshots: snapshots, store: store, logger: logger}
}

func (h *FeaturedHandler) Section(c *gin.Context) {
	section, err := h.snapshots.Featured(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch featured categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": section})
}

func (h *FeaturedHandler) GetSettings(c *gin.Context) {
	cfg, err := settings.Load(c.Request.Context(), h.store, settings.KeyFeaturedCategorySection, catalog.DefaultFeaturedCategorySettings())
	if err != nil {
		h.logger.Warn("Failed to load featured section settings, using defaults: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"data": cfg})
}

func (h *FeaturedHandler) SaveSettings(c *gin.Context) {
	cfg := catalog.DefaultFeaturedCategorySettings()
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := settings.Validate(cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := settings.Save(c.Request.Context(), h.store, settings.KeyFeaturedCategorySection, cfg); err != nil {
		h.logger.Error("Failed to save featured section: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": cfg})
}
