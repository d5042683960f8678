package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"greengrass/internal/customers"
	"greengrass/internal/logger"

	"github.com/gin-gonic/gin"
)

const maxImportSize = 5 << 20

type CustomerHandler struct {
	service *customers.Service
	logger  *logger.Logger
}

func NewCustomerHandler(service *customers.Service, logger *logger.Logger) *CustomerHandler {
	return &CustomerHandler{service: service, logger: logger}
}

func (h *CustomerHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.logger.Error("Failed to list customers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var in customers.NewCustomer
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.service.Add(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, customers.ErrNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add customer"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": customer})
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, customers.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CustomerHandler) Orders(c *gin.Context) {
	customer, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, customers.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customer"})
		return
	}

	orders, err := h.service.Orders(c.Request.Context(), customer.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orders})
}

// Import reads a CSV upload from the "file" form field.
func (h *CustomerHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CSV file is required"})
		return
	}
	if fileHeader.Size > maxImportSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CSV file is too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}
	defer file.Close()

	imported, err := h.service.Import(c.Request.Context(), file)
	if err != nil {
		if errors.Is(err, customers.ErrNoValidRows) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Customer import failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import customers"})
		return
	}

	h.logger.Info("Imported %d customers", imported)
	c.JSON(http.StatusOK, gin.H{
		"data":    gin.H{"imported": imported},
		"message": fmt.Sprintf("Successfully imported %d customers", imported),
	})
}

func (h *CustomerHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.service.Export(c.Request.Context(), &buf, c.Query("search")); err != nil {
		h.logger.Error("Customer export failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export customers"})
		return
	}

	filename := fmt.Sprintf("customers-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
