package handlers

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/VictorRop4/alx-project-nexus/models"
)

type MpesaCallbackHandler struct {
	DB *gorm.DB
}

func NewMpesaCallbackHandler(db *gorm.DB) *MpesaCallbackHandler {
	return &MpesaCallbackHandler{DB: db}
}

// CallbackPayload mirrors the nested shape Safaricom posts. Metadata item
// values are mixed-type (numbers and strings), hence RawMessage.
type CallbackPayload struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []struct {
					Name  string          `json:"Name"`
					Value json.RawMessage `json:"Value"`
				} `json:"Item"`
			} `json:"CallbackMetadata"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

// receipt pulls the MpesaReceiptNumber out of the metadata items.
func (p *CallbackPayload) receipt() string {
	for _, item := range p.Body.StkCallback.CallbackMetadata.Item {
		if item.Name == "MpesaReceiptNumber" {
			var value string
			if err := json.Unmarshal(item.Value, &value); err == nil {
				return value
			}
		}
	}
	return ""
}

// Callback - POST /api/mpesa/callback/
//
// Safaricom retries on anything other than a 200 with the expected body,
// so every path acknowledges. Failures to match a payment are logged, not
// surfaced. A payment that already left pending is not reprocessed, which
// makes duplicate deliveries harmless.
func (h *MpesaCallbackHandler) Callback(c *fiber.Ctx) error {
	ack := fiber.Map{"ResultCode": 0, "ResultDesc": "Callback received successfully"}

	var payload CallbackPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("mpesa callback: malformed payload: %v", err)
		return c.JSON(ack)
	}

	stk := payload.Body.StkCallback
	if stk.CheckoutRequestID == "" {
		log.Printf("mpesa callback: missing CheckoutRequestID")
		return c.JSON(ack)
	}

	var payment models.Payment
	err := h.DB.Where("checkout_request_id = ?", stk.CheckoutRequestID).
		Or("transaction_id = ?", stk.CheckoutRequestID).
		First(&payment).Error
	if err != nil {
		log.Printf("mpesa callback: no payment for %s", stk.CheckoutRequestID)
		return c.JSON(ack)
	}

	if payment.Terminal() {
		log.Printf("mpesa callback: payment %d already %s, ignoring redelivery", payment.ID, payment.Status)
		return c.JSON(ack)
	}

	if stk.ResultCode == 0 {
		now := time.Now()
		payment.Status = models.PaymentStatusSuccessful
		payment.PaidAt = &now
		if err := h.DB.Save(&payment).Error; err != nil {
			log.Printf("mpesa callback: saving payment %d: %v", payment.ID, err)
			return c.JSON(ack)
		}

		updates := map[string]interface{}{"status": models.OrderStatusPaid}
		if receipt := payload.receipt(); receipt != "" {
			updates["mpesa_receipt"] = receipt
		}
		if err := h.DB.Model(&models.Order{}).Where("id = ?", payment.OrderID).
			Updates(updates).Error; err != nil {
			log.Printf("mpesa callback: updating order %d: %v", payment.OrderID, err)
			return c.JSON(ack)
		}

		h.createShipping(payment.OrderID)
	} else {
		// Failed push: the payment is terminal, the order stays pending so
		// the customer can retry with a new payment attempt.
		payment.Status = models.PaymentStatusFailed
		if err := h.DB.Save(&payment).Error; err != nil {
			log.Printf("mpesa callback: saving payment %d: %v", payment.ID, err)
		}
	}

	return c.JSON(ack)
}

// createShipping opens the fulfilment record for a freshly paid order,
// defaulting the address from the customer's profile.
func (h *MpesaCallbackHandler) createShipping(orderID uint) {
	var existing models.Shipping
	if err := h.DB.Where("order_id = ?", orderID).First(&existing).Error; err == nil {
		return
	}

	var order models.Order
	if err := h.DB.First(&order, orderID).Error; err != nil {
		return
	}

	address := ""
	var profile models.CustomerProfile
	if err := h.DB.Where("user_id = ?", order.CustomerID).First(&profile).Error; err == nil {
		address = profile.DefaultAddress
	}

	shipping := models.Shipping{
		OrderID: orderID,
		Address: address,
		Status:  models.ShippingStatusPending,
	}
	if err := h.DB.Create(&shipping).Error; err != nil {
		log.Printf("mpesa callback: creating shipping for order %d: %v", orderID, err)
	}
}
