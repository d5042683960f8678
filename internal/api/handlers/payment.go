package handlers

import (
	"errors"
	"net/http"

	"greengrass/internal/logger"
	"greengrass/internal/payments"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	service *payments.Service
	logger  *logger.Logger
}

func NewPaymentHandler(service *payments.Service, logger *logger.Logger) *PaymentHandler {
	return &PaymentHandler{service: service, logger: logger}
}

func (h *PaymentHandler) Get(c *gin.Context) {
	gateways, err := h.service.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payment settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gateways})
}

// Update replaces the whole gateway list.
func (h *PaymentHandler) Update(c *gin.Context) {
	var gateways []payments.Gateway
	if err := c.ShouldBindJSON(&gateways); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.service.Save(c.Request.Context(), gateways)
	if err != nil {
		var verr *payments.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save gateways"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": saved, "message": "Payment settings saved successfully"})
}
