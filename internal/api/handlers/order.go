package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"greengrass/internal/invoice"
	"greengrass/internal/logger"
	"greengrass/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderHandler struct {
	db        *gorm.DB
	templates *invoice.TemplateSource
	logger    *logger.Logger
}

func NewOrderHandler(db *gorm.DB, templates *invoice.TemplateSource, logger *logger.Logger) *OrderHandler {
	return &OrderHandler{
		db:        db,
		templates: templates,
		logger:    logger,
	}
}

func (h *OrderHandler) List(c *gin.Context) {
	var orders []models.Order

	// Pagination
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := h.db.WithContext(c.Request.Context()).Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": orders,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

func (h *OrderHandler) find(c *gin.Context) (*models.Order, bool) {
	var order models.Order
	if err := h.db.WithContext(c.Request.Context()).First(&order, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return nil, false
	}
	return &order, true
}

func (h *OrderHandler) Get(c *gin.Context) {
	order, ok := h.find(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": order})
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var request struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !request.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
		return
	}

	order, ok := h.find(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Model(order).Update("status", request.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}
	order.Status = request.Status

	c.JSON(http.StatusOK, gin.H{"data": order})
}

// Invoice renders the printable invoice. ?lang=ar renders it in Arabic.
func (h *OrderHandler) Invoice(c *gin.Context) {
	h.renderDocument(c, invoice.RenderWithOptions)
}

func (h *OrderHandler) DeliverySlip(c *gin.Context) {
	h.renderDocument(c, invoice.RenderDeliverySlip)
}

func (h *OrderHandler) renderDocument(c *gin.Context, render func(invoice.Order, invoice.TemplateSettings, invoice.Options) (string, error)) {
	order, ok := h.find(c)
	if !ok {
		return
	}

	tmpl := h.templates.Fetch(c.Request.Context())
	html, err := render(invoice.FromModel(*order), tmpl, invoice.Options{Language: c.Query("lang")})
	if err != nil {
		h.logger.Error("Failed to render document for order %s: %v", order.OrderNumber, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render document"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
