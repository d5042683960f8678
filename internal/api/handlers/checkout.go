package handlers

import (
	"errors"
	"net/http"

	"greengrass/internal/checkout"
	"greengrass/internal/logger"
	"greengrass/internal/storefront"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	service   *checkout.Service
	snapshots *storefront.Snapshots
	logger    *logger.Logger
}

func NewCheckoutHandler(service *checkout.Service, snapshots *storefront.Snapshots, logger *logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{service: service, snapshots: snapshots, logger: logger}
}

// Methods lists the payment options shown on the checkout page.
func (h *CheckoutHandler) Methods(c *gin.Context) {
	methods, err := h.snapshots.CheckoutMethods(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payment settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": methods})
}

func (h *CheckoutHandler) Quote(c *gin.Context) {
	var request struct {
		Items []checkout.Line `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := h.service.Quote(c.Request.Context(), request.Items)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrProductUnavailable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to quote cart: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": quote})
}

func (h *CheckoutHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.service.Settings(c.Request.Context())})
}

func (h *CheckoutHandler) SaveSettings(c *gin.Context) {
	s := checkout.DefaultSettings()
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.SaveSettings(c.Request.Context(), s); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": s, "message": "Checkout settings saved"})
}
