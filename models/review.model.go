package models

import "time"

// Review holds one rating per (product, user) pair. Creating or deleting
// a review recomputes the product's average rating.
type Review struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ProductID uint `gorm:"uniqueIndex:idx_review_product_user;not null" json:"product"`
	UserID    uint `gorm:"uniqueIndex:idx_review_product_user;not null" json:"user"`

	Rating  int    `gorm:"not null" json:"rating"` // 1-5
	Comment string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
