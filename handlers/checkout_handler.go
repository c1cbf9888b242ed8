package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/VictorRop4/alx-project-nexus/internal/mpesa"
	"github.com/VictorRop4/alx-project-nexus/middleware"
	"github.com/VictorRop4/alx-project-nexus/models"
)

// StkPusher is the slice of the Daraja client checkout needs. Tests
// substitute a stub.
type StkPusher interface {
	STKPush(ctx context.Context, phoneNumber string, amount int64, accountReference, description string) (*mpesa.STKPushResponse, error)
}

type CheckoutHandler struct {
	DB    *gorm.DB
	Mpesa StkPusher
}

func NewCheckoutHandler(db *gorm.DB, client StkPusher) *CheckoutHandler {
	return &CheckoutHandler{DB: db, Mpesa: client}
}

type CheckoutItem struct {
	Product  uint `json:"product"`
	Quantity int  `json:"quantity"`
}

type CheckoutRequest struct {
	Items         []CheckoutItem `json:"items"`
	PaymentMethod string         `json:"payment_method"`
	Phone         string         `json:"phone"`
}

var errProductNotFound = errors.New("product not found")

// Checkout - POST /api/checkout/
//
// Creates the order, its price-snapshotted items and a pending payment in
// one transaction. For M-Pesa the STK push runs inside that transaction:
// if the provider rejects or the network fails, everything rolls back and
// no orphaned pending rows are left behind. The push response is only the
// provider acknowledgment; the final result lands on the callback.
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	userID, _, ok := middleware.RequestUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if len(req.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "items must not be empty"})
	}
	switch req.PaymentMethod {
	case models.PaymentMethodMpesa, models.PaymentMethodCard, models.PaymentMethodPaypal:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown payment method"})
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "quantity must be at least 1"})
		}
	}
	if req.PaymentMethod == models.PaymentMethodMpesa && req.Phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Phone number is required for M-Pesa"})
	}

	var (
		order     models.Order
		payment   models.Payment
		pushResp  *mpesa.STKPushResponse
		totalZero = decimal.Zero
	)

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			CustomerID:  userID,
			Status:      models.OrderStatusPending,
			TotalAmount: totalZero,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		total := decimal.Zero
		for _, item := range req.Items {
			var product models.Product
			if err := tx.First(&product, item.Product).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errProductNotFound
				}
				return err
			}

			productID := product.ID
			orderItem := models.OrderItem{
				OrderID:   order.ID,
				ProductID: &productID,
				Quantity:  item.Quantity,
				Price:     product.Price, // snapshot at checkout time
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		order.TotalAmount = total
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		payment = models.Payment{
			OrderID:       order.ID,
			PaymentMethod: req.PaymentMethod,
			Amount:        total,
			Status:        models.PaymentStatusPending,
			TransactionID: uuid.NewString(),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		if req.PaymentMethod == models.PaymentMethodMpesa {
			resp, err := h.Mpesa.STKPush(c.Context(), req.Phone, total.IntPart(),
				payment.TransactionID, "Payment for Order")
			if err != nil {
				// Roll the whole checkout back; nothing to reconcile.
				return err
			}
			pushResp = resp

			// The callback carries Safaricom's CheckoutRequestID, so
			// persist it for reconciliation.
			payment.CheckoutRequestID = resp.CheckoutRequestID
			if err := tx.Save(&payment).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, errProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		log.Printf("checkout failed for user %d: %v", userID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Could not complete checkout"})
	}

	response := fiber.Map{
		"order_id":       order.ID,
		"total_amount":   order.TotalAmount,
		"payment_id":     payment.ID,
		"payment_method": payment.PaymentMethod,
	}
	if pushResp != nil {
		response["mpesa_response"] = pushResp
	}
	return c.JSON(response)
}
