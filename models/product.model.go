package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	SKU         string          `gorm:"size:100;not null;unique" json:"sku"`
	Slug        string          `gorm:"size:255;not null;unique" json:"slug"`
	Name        string          `gorm:"size:255;not null;index" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null;index" json:"price"`
	Currency    string          `gorm:"size:10;default:'KES'" json:"currency"`

	StockQuantity int  `gorm:"not null" json:"stock_quantity"`
	IsActive      bool `gorm:"default:true" json:"is_active"`

	CategoryID uint `gorm:"index;not null" json:"category"`
	SellerID   uint `gorm:"index" json:"seller"`

	// Derived from reviews, see Review. Two decimal places, 0.00 when the
	// product has no reviews.
	AverageRating decimal.Decimal `gorm:"type:decimal(3,2);default:0.00" json:"average_rating"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Category Category `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Seller   User     `gorm:"foreignKey:SellerID" json:"-"`
	Reviews  []Review `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
