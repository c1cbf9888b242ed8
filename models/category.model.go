package models

import "time"

type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:200;not null;unique;index" json:"name"`
	Slug        string `gorm:"size:200;not null;unique" json:"slug"`
	Description string `gorm:"type:text" json:"description"`

	// Self reference. Deleting a parent re-roots its children rather than
	// removing them.
	ParentID *uint      `gorm:"index" json:"parent"`
	Children []Category `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL" json:"children,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
