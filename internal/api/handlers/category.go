package handlers

import (
	"errors"
	"net/http"

	"greengrass/internal/catalog"
	"greengrass/internal/logger"
	"greengrass/internal/storefront"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	service   *catalog.CategoryService
	snapshots *storefront.Snapshots
	logger    *logger.Logger
}

func NewCategoryHandler(service *catalog.CategoryService, snapshots *storefront.Snapshots, logger *logger.Logger) *CategoryHandler {
	return &CategoryHandler{service: service, snapshots: snapshots, logger: logger}
}

type bulkRequest struct {
	IDs      []string `json:"ids" binding:"required,min=1"`
	IsActive bool     `json:"is_active"`
}

// Tree serves the active category tree for the storefront navigation.
func (h *CategoryHandler) Tree(c *gin.Context) {
	tree, err := h.snapshots.CategoryTree(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tree})
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": categories})
}

func (h *CategoryHandler) Get(c *gin.Context) {
	category, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": category})
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var in catalog.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": category})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var in catalog.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.service.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": category})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CategoryHandler) BulkDelete(c *gin.Context) {
	var request bulkRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n, err := h.service.BulkDelete(c.Request.Context(), request.IDs)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": n}})
}

func (h *CategoryHandler) BulkSetActive(c *gin.Context) {
	var request bulkRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n, err := h.service.BulkSetActive(c.Request.Context(), request.IDs, request.IsActive)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"updated": n}})
}

// fail maps catalog errors to responses. Storage errors are passed through
// verbatim so the admin sees why a save was refused.
func (h *CategoryHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
	case errors.Is(err, catalog.ErrNameRequired), errors.Is(err, catalog.ErrNoIDs):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Category operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
