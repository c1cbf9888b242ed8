package models

import "time"

// Shipping statuses.
const (
	ShippingStatusPending   = "pending"
	ShippingStatusInTransit = "in_transit"
	ShippingStatusDelivered = "delivered"
)

// Shipping is created when an order's payment is confirmed. The address
// defaults to the customer's profile address at that moment.
type Shipping struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"uniqueIndex;not null" json:"order"`

	Address        string `gorm:"size:255" json:"address"`
	ShippingMethod string `gorm:"size:50;default:'standard'" json:"shipping_method"`
	TrackingNumber string `gorm:"size:100" json:"tracking_number"`
	Status         string `gorm:"size:20;default:'pending'" json:"status"`

	ShippedAt   *time.Time `json:"shipped_at"`
	DeliveredAt *time.Time `json:"delivered_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Order Order `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
