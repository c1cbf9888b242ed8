package models

import "time"

// Cart is created lazily the first time a customer touches it. Checkout
// takes an explicit item list instead of draining the cart, so the two
// stay independent.
type Cart struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CustomerID uint `gorm:"uniqueIndex;not null" json:"customer"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []CartItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

type CartItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CartID    uint `gorm:"index;not null" json:"cart_id"`
	ProductID uint `gorm:"not null" json:"product"`
	Quantity  int  `gorm:"not null;default:1" json:"quantity"`

	Product Product `gorm:"constraint:OnDelete:CASCADE" json:"product_detail,omitempty"`
}
