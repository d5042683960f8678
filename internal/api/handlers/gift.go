package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"greengrass/internal/catalog"
	"greengrass/internal/logger"
	"greengrass/internal/models"
	"greengrass/internal/settings"

	"github.com/gin-gonic/gin"
)

type GiftHandler struct {
	products *catalog.ProductService
	store    settings.Store
	logger   *logger.Logger
}

func NewGiftHandler(products *catalog.ProductService, store settings.Store, logger *logger.Logger) *GiftHandler {
	return &GiftHandler{products: products, store: store, logger: logger}
}

func (h *GiftHandler) load(c *gin.Context) catalog.GiftSection {
	section, err := settings.Load(c.Request.Context(), h.store, settings.KeyGiftSection, catalog.DefaultGiftSection())
	if err != nil {
		h.logger.Warn("Failed to load gift section, using defaults: %v", err)
	}
	return section
}

// Section serves the home page gift block with its products.
func (h *GiftHandler) Section(c *gin.Context) {
	section := h.load(c)

	products := []models.Product{}
	if section.Enabled {
		found, err := h.products.ByIDs(c.Request.Context(), section.ProductIDs)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		for _, p := range found {
			if section.ProductsLimit > 0 && len(products) == section.ProductsLimit {
				break
			}
			if p.IsActive {
				products = append(products, p)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"section": section, "products": products}})
}

func (h *GiftHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.load(c)})
}

func (h *GiftHandler) SaveSettings(c *gin.Context) {
	var section catalog.GiftSection
	if err := c.ShouldBindJSON(&section); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := settings.Validate(section); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if section.ProductsLimit > 0 && len(section.ProductIDs) > section.ProductsLimit {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("You can select up to %d products", section.ProductsLimit)})
		return
	}

	if err := settings.Save(c.Request.Context(), h.store, settings.KeyGiftSection, section); err != nil {
		h.logger.Error("Failed to save gift section: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": section})
}

// Candidates lists products the admin can still add to the section.
func (h *GiftHandler) Candidates(c *gin.Context) {
	section := h.load(c)

	filter := c.Query("category")
	if filter == "" {
		filter = section.CategorySlug
	}

	products, err := h.products.GiftCandidates(c.Request.Context(), filter, section.ProductIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	c.JSON(http.StatusOK, gin.H{"data": products})
}

func (h *GiftHandler) AddProduct(c *gin.Context) {
	var request struct {
		ProductID string `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.products.Get(c.Request.Context(), request.ProductID); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	section := h.load(c)
	selected, err := catalog.AddGift(section.ProductIDs, request.ProductID, section.ProductsLimit)
	if errors.Is(err, catalog.ErrSelectionFull) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("You can select up to %d products", section.ProductsLimit)})
		return
	}
	section.ProductIDs = selected

	h.save(c, section)
}

func (h *GiftHandler) RemoveProduct(c *gin.Context) {
	section := h.load(c)
	section.ProductIDs = catalog.RemoveGift(section.ProductIDs, c.Param("id"))

	h.save(c, section)
}

func (h *GiftHandler) save(c *gin.Context, section catalog.GiftSection) {
	if err := settings.Save(c.Request.Context(), h.store, settings.KeyGiftSection, section); err != nil {
		h.logger.Error("Failed to save gift section: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": section})
}
