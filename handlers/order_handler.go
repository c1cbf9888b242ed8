package handlers

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/VictorRop4/alx-project-nexus/internal/mpesa"
	"github.com/VictorRop4/alx-project-nexus/middleware"
	"github.com/VictorRop4/alx-project-nexus/models"
)

type OrderHandler struct {
	DB    *gorm.DB
	Mpesa StkPusher
}

func NewOrderHandler(db *gorm.DB, client StkPusher) *OrderHandler {
	return &OrderHandler{DB: db, Mpesa: client}
}

// GetOrders - GET /api/orders
// Customers see their own orders; admin sees everything.
func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	userID, role, ok := middleware.RequestUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	query := h.DB.Preload("Items").Order("id desc")
	if role != models.RoleAdmin {
		query = query.Where("customer_id = ?", userID)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch orders"})
	}
	return c.JSON(fiber.Map{"data": orders})
}

// GetOrder - GET /api/orders/:id
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	userID, role, ok := middleware.RequestUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var order models.Order
	if err := h.DB.Preload("Items").Preload("Payments").First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}

	if !middleware.OrderPolicy.AllowsObject(role, userID, order.CustomerID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}
	return c.JSON(fiber.Map{"data": order})
}

// CancelOrder - DELETE /api/orders/:id
// Only a pending order can be cancelled; paid orders go through support.
func (h *OrderHandler) CancelOrder(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	userID, role, ok := middleware.RequestUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var order models.Order
	if err := h.DB.First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}

	if !middleware.OrderPolicy.AllowsObject(role, userID, order.CustomerID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}

	if order.Status != models.OrderStatusPending {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only pending orders can be cancelled"})
	}

	order.Status = models.OrderStatusCancelled
	if err := h.DB.Save(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not cancel order"})
	}
	return c.JSON(fiber.Map{"message": "Order cancelled"})
}

// ConfirmPayment - POST /api/orders/:id/confirm_payment
//
// Retries payment for an order whose earlier attempt failed or was never
// completed. A fresh pending payment with its own transaction id is created
// and the STK push runs inside the same transaction, so a provider failure
// leaves no new rows behind. The phone number defaults to the customer's
// profile when the body omits it.
func (h *OrderHandler) ConfirmPayment(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	userID, role, ok := middleware.RequestUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var order models.Order
	if err := h.DB.First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}

	if !middleware.OrderPolicy.AllowsObject(role, userID, order.CustomerID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}

	switch order.Status {
	case models.OrderStatusPending:
	case models.OrderStatusCancelled:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Order is cancelled"})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Order already paid"})
	}

	var req struct {
		Phone string `json:"phone"`
	}
	_ = c.BodyParser(&req) // body is optional

	phone := req.Phone
	if phone == "" {
		var profile models.CustomerProfile
		if err := h.DB.Where("user_id = ?", order.CustomerID).First(&profile).Error; err == nil {
			phone = profile.PhoneNumber
		}
	}
	if phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Phone number is required for M-Pesa"})
	}

	var (
		payment  models.Payment
		pushResp *mpesa.STKPushResponse
	)
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		payment = models.Payment{
			OrderID:       order.ID,
			PaymentMethod: models.PaymentMethodMpesa,
			Amount:        order.TotalAmount,
			Status:        models.PaymentStatusPending,
			TransactionID: uuid.NewString(),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		resp, err := h.Mpesa.STKPush(c.Context(), phone, order.TotalAmount.IntPart(),
			payment.TransactionID, "Payment for Order")
		if err != nil {
			return err
		}
		pushResp = resp

		payment.CheckoutRequestID = resp.CheckoutRequestID
		return tx.Save(&payment).Error
	})
	if err != nil {
		log.Printf("confirm payment failed for order %d: %v", order.ID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Could not initiate payment"})
	}

	return c.JSON(fiber.Map{
		"message":        "Payment initiated",
		"payment_id":     payment.ID,
		"mpesa_response": pushResp,
	})
}

// MarkDelivered - POST /api/orders/:id/mark_delivered
// Requires payment first. Closes out the shipping record as well.
func (h *OrderHandler) MarkDelivered(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	userID, role, ok := middleware.RequestUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var order models.Order
	if err := h.DB.First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}

	if !middleware.OrderPolicy.AllowsObject(role, userID, order.CustomerID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}

	if order.Status != models.OrderStatusPaid && order.Status != models.OrderStatusShipped {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Order must be paid before delivery"})
	}

	order.Status = models.OrderStatusDelivered
	if err := h.DB.Save(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update order"})
	}

	now := time.Now()
	h.DB.Model(&models.Shipping{}).Where("order_id = ?", order.ID).
		Updates(map[string]interface{}{
			"status":       models.ShippingStatusDelivered,
			"delivered_at": &now,
		})

	return c.JSON(fiber.Map{"message": "Order marked as delivered"})
}
