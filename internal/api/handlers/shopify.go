package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"greengrass/internal/logger"
	"greengrass/internal/models"
	"greengrass/internal/services/shopify"

	"github.com/gin-gonic/gin"
)

type ShopifyHandler struct {
	client        *shopify.Client
	transformer   *shopify.Transformer
	syncer        *shopify.Syncer
	webhookSecret string
	logger        *logger.Logger
}

func NewShopifyHandler(client *shopify.Client, transformer *shopify.Transformer, syncer *shopify.Syncer, webhookSecret string, logger *logger.Logger) *ShopifyHandler {
	return &ShopifyHandler{
		client:        client,
		transformer:   transformer,
		syncer:        syncer,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

func (h *ShopifyHandler) configured(c *gin.Context) bool {
	if h.client == nil || !h.client.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Shopify is not configured"})
		return false
	}
	return true
}

// Products lists storefront products straight from Shopify.
func (h *ShopifyHandler) Products(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 250 {
		limit = 20
	}

	resp, err := h.client.GetProducts(c.Request.Context(), limit, c.Query("page_info"))
	if err != nil {
		h.logger.Error("Failed to fetch products: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch products from Shopify"})
		return
	}

	products := make([]models.Product, 0, len(resp.Products))
	for i := range resp.Products {
		product, err := h.transformer.TransformProduct(&resp.Products[i])
		if err != nil {
			h.logger.Warn("Failed to transform product %d: %v", resp.Products[i].ID, err)
			continue
		}
		products = append(products, *product)
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      products,
		"page_info": resp.NextPageInfo,
	})
}

func (h *ShopifyHandler) ProductByHandle(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	shopifyProduct, err := h.client.GetProductByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		if errors.Is(err, shopify.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		h.logger.Error("Failed to fetch product: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch product from Shopify"})
		return
	}

	product, err := h.transformer.TransformProduct(shopifyProduct)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to transform product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}

// SyncProducts copies every Shopify product into the catalog.
func (h *ShopifyHandler) SyncProducts(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	syncedCount, err := h.syncer.SyncProducts(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to sync products: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":        "Failed to fetch products from Shopify",
			"synced_count": syncedCount,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Products synced successfully",
		"synced_count": syncedCount,
	})
}

// Webhook handles Shopify product webhooks.
func (h *ShopifyHandler) Webhook(c *gin.Context) {
	topic := c.GetHeader("X-Shopify-Topic")
	signature := c.GetHeader("X-Shopify-Hmac-Sha256")

	if topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required headers"})
		return
	}

	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read payload"})
		return
	}

	if !shopify.ValidateWebhook(payload, signature, h.webhookSecret) {
		h.logger.Warn("Rejected Shopify webhook %s: invalid signature", topic)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid webhook signature"})
		return
	}

	var product shopify.WebhookPayload
	if err := json.Unmarshal(payload, &product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload"})
		return
	}

	switch topic {
	case "products/create", "products/update":
		err = h.syncer.Upsert(c.Request.Context(), &product)
	case "products/delete":
		err = h.syncer.Delete(c.Request.Context(), product.ID)
	default:
		h.logger.Debug("Unhandled webhook topic: %s", topic)
		c.JSON(http.StatusOK, gin.H{"message": "Webhook received but not processed"})
		return
	}

	if err != nil {
		h.logger.Error("Failed to process webhook: %v", fmt.Errorf("%s: %w", topic, err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process webhook"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Webhook processed successfully"})
}
