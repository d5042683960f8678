package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"greengrass/internal/logger"
	"greengrass/internal/payments"
	"greengrass/internal/settings"

	"github.com/gin-gonic/gin"
)

// SettingsHandler exposes the raw site_settings rows to admins.
// Payment gateways always go through the payments service so the stored
// list is reconciled and credential checked.
type SettingsHandler struct {
	store    settings.Store
	registry *settings.Registry
	gateways *payments.Service
	logger   *logger.Logger
}

func NewSettingsHandler(store settings.Store, registry *settings.Registry, gateways *payments.Service, logger *logger.Logger) *SettingsHandler {
	return &SettingsHandler{store: store, registry: registry, gateways: gateways, logger: logger}
}

func (h *SettingsHandler) List(c *gin.Context) {
	rows, err := h.store.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list settings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}
	if rows == nil {
		rows = []settings.Setting{}
	}

	c.JSON(http.StatusOK, gin.H{"data": rows, "keys": h.registry.Keys()})
}

func (h *SettingsHandler) Get(c *gin.Context) {
	key := c.Param("key")

	value, err := h.store.Get(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, settings.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Setting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch setting"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"setting_key": key, "setting_value": value}})
}

// Put validates the body against the key's registered type and stores it whole.
func (h *SettingsHandler) Put(c *gin.Context) {
	key := c.Param("key")

	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}

	if err := h.registry.Check(key, raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if key == settings.KeyPaymentGateways {
		h.putGateways(c, raw)
		return
	}

	if err := h.store.Upsert(c.Request.Context(), key, raw); err != nil {
		h.logger.Error("Failed to save setting %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save setting"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"setting_key": key, "setting_value": raw}})
}

func (h *SettingsHandler) putGateways(c *gin.Context, raw json.RawMessage) {
	var gateways []payments.Gateway
	if err := json.Unmarshal(raw, &gateways); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.gateways.Save(c.Request.Context(), gateways)
	if err != nil {
		var verr *payments.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save setting"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"setting_key": settings.KeyPaymentGateways, "setting_value": saved}})
}
