package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/VictorRop4/alx-project-nexus/middleware"
	"github.com/VictorRop4/alx-project-nexus/models"
)

type PaymentHandler struct {
	DB    *gorm.DB
	Mpesa StkPusher
}

func NewPaymentHandler(db *gorm.DB, client StkPusher) *PaymentHandler {
	return &PaymentHandler{DB: db, Mpesa: client}
}

// GetPayments - GET /api/payments
// Customers see their own payments; admin sees everything.
func (h *PaymentHandler) GetPayments(c *fiber.Ctx) error {
	userID, role, ok := middleware.RequestUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	query := h.DB.Joins("JOIN orders ON orders.id = payments.order_id")
	if role != models.RoleAdmin {
		query = query.Where("orders.customer_id = ?", userID)
	}

	var payments []models.Payment
	if err := query.Order("payments.id desc").Find(&payments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch payments"})
	}
	return c.JSON(fiber.Map{"data": payments})
}

// GetPayment - GET /api/payments/:id
func (h *PaymentHandler) GetPayment(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	userID, role, ok := middleware.RequestUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var payment models.Payment
	if err := h.DB.Preload("Order").First(&payment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	}

	if !middleware.PaymentPolicy.AllowsObject(role, userID, payment.Order.CustomerID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}
	return c.JSON(fiber.Map{"data": payment})
}

// StkPush - POST /api/payments/mpesa/stkpush/
// Direct push endpoint taking phone_number and amount as query params and
// relaying the provider's raw acknowledgment.
func (h *PaymentHandler) StkPush(c *fiber.Ctx) error {
	phone := c.Query("phone_number")
	amount := c.Query("amount")
	if phone == "" || amount == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "phone_number and amount are required"})
	}

	amountValue, err := strconv.ParseInt(amount, 10, 64)
	if err != nil || amountValue <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "amount must be a positive integer"})
	}

	resp, err := h.Mpesa.STKPush(c.Context(), phone, amountValue, "Direct", "Payment")
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "STK push failed"})
	}
	return c.JSON(resp)
}
