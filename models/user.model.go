package models

import (
	"time"
)

// User roles. Role is a plain string column so seeding stays trivial, but
// handlers only ever assign one of these.
const (
	RoleCustomer = "customer"
	RoleSeller   = "seller"
	RoleAdmin    = "admin"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Login credentials
	Username string `gorm:"unique;not null;size:150" json:"username"`
	Email    string `gorm:"unique;not null;size:100" json:"email"`
	Password string `gorm:"not null" json:"-"`

	// Role & Status
	Role string `gorm:"default:'customer';size:20" json:"role"` // customer, seller, admin

	DateJoined time.Time `gorm:"autoCreateTime" json:"date_joined"`
	UpdatedAt  time.Time `json:"-"`

	// Relations
	Profile *CustomerProfile `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

// CustomerProfile extends User with contact details. One profile is
// created automatically for every registration.
type CustomerProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	FirstName      string `gorm:"size:100" json:"first_name"`
	LastName       string `gorm:"size:100" json:"last_name"`
	PhoneNumber    string `gorm:"size:20" json:"phone_number"`
	DefaultAddress string `gorm:"size:255" json:"default_address"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
