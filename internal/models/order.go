package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Order struct {
	ID              string         `json:"id" gorm:"type:uuid;primaryKey"`
	OrderNumber     string         `json:"order_number" gorm:"uniqueIndex;not null"`
	UserID          *string        `json:"user_id" gorm:"type:uuid;index"`
	Status          OrderStatus    `json:"status" gorm:"default:pending"`
	PaymentMethod   *string        `json:"payment_method"`
	CustomerName    *string        `json:"customer_name"`
	CustomerEmail   *string        `json:"customer_email"`
	CustomerPhone   *string        `json:"customer_phone"`
	CustomerAddress *string        `json:"customer_address"`
	Items           datatypes.JSON `json:"items"`
	Subtotal        *float64       `json:"subtotal" gorm:"type:decimal(10,2)"`
	Tax             *float64       `json:"tax" gorm:"type:decimal(10,2)"`
	Shipping        *float64       `json:"shipping" gorm:"type:decimal(10,2)"`
	Total           *float64       `json:"total" gorm:"type:decimal(10,2)"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
