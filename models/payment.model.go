package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods.
const (
	PaymentMethodMpesa  = "mpesa"
	PaymentMethodCard   = "card"
	PaymentMethodPaypal = "paypal"
)

// Payment statuses. A payment transitions out of pending exactly once;
// refunded exists in the schema but no flow assigns it yet.
const (
	PaymentStatusPending    = "pending"
	PaymentStatusSuccessful = "successful"
	PaymentStatusFailed     = "failed"
	PaymentStatusRefunded   = "refunded"
)

type Payment struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	OrderID       uint            `gorm:"index;not null" json:"order"`
	PaymentMethod string          `gorm:"size:20;not null" json:"payment_method"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status        string          `gorm:"size:20;default:'pending'" json:"status"`

	// TransactionID is generated locally at checkout. CheckoutRequestID is
	// Safaricom's identifier for the STK push and is what the callback
	// carries, so both are kept and the callback matches either.
	TransactionID     string `gorm:"size:100;uniqueIndex" json:"transaction_id"`
	CheckoutRequestID string `gorm:"size:100;index" json:"checkout_request_id,omitempty"`

	PaidAt *time.Time `json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Order Order `json:"-"`
}

// Terminal reports whether the payment has already left the pending
// state. Used as the idempotency guard for duplicate callback deliveries.
func (p *Payment) Terminal() bool {
	return p.Status != PaymentStatusPending
}
