package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CustomerID uint   `gorm:"index;not null" json:"customer"`
	Status     string `gorm:"size:20;default:'pending'" json:"status"`

	TotalAmount  decimal.Decimal `gorm:"type:decimal(10,2);default:0.00" json:"total_amount"`
	MpesaReceipt *string         `gorm:"size:100" json:"mpesa_receipt"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Customer User        `gorm:"foreignKey:CustomerID" json:"-"`
	Items    []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Payments []Payment   `gorm:"constraint:OnDelete:CASCADE" json:"payments,omitempty"`
}

// OrderItem snapshots the product price at checkout time. Price is never
// recalculated, and ProductID survives as NULL if the product is deleted
// so historical orders stay intact.
type OrderItem struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	OrderID   uint  `gorm:"index;not null" json:"order_id"`
	ProductID *uint `json:"product"`
	Quantity  int   `gorm:"not null;default:1" json:"quantity"`

	Price decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`

	Product *Product `gorm:"constraint:OnDelete:SET NULL" json:"-"`
}
