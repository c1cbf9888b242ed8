package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/VictorRop4/alx-project-nexus/middleware"
	"github.com/VictorRop4/alx-project-nexus/models"
)

type CartHandler struct {
	DB *gorm.DB
}

func NewCartHandler(db *gorm.DB) *CartHandler {
	return &CartHandler{DB: db}
}

type CartItemRequest struct {
	Product  uint `json:"product"`
	Quantity int  `json:"quantity"`
}

// cartFor finds or lazily creates the customer's cart.
func (h *CartHandler) cartFor(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := h.DB.Where("customer_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{CustomerID: userID}
		return &cart, h.DB.Create(&cart).Error
	}
	return &cart, err
}

// GetCart - GET /api/cart
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	userID, _, ok := middleware.RequestUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	cart, err := h.cartFor(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch cart"})
	}

	if err := h.DB.Preload("Items.Product").First(cart, cart.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch cart"})
	}
	return c.JSON(fiber.Map{"data": cart})
}

// AddCartItem - POST /api/cart/items
// Adding a product already in the cart bumps its quantity.
func (h *CartHandler) AddCartItem(c *fiber.Ctx) error {
	userID, _, ok := middleware.RequestUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var req CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if req.Quantity < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "quantity must be at least 1"})
	}

	var product models.Product
	if err := h.DB.First(&product, req.Product).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	cart, err := h.cartFor(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch cart"})
	}

	var item models.CartItem
	err = h.DB.Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: req.Quantity}
		if err := h.DB.Create(&item).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not add item"})
		}
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not add item"})
	} else {
		item.Quantity += req.Quantity
		if err := h.DB.Save(&item).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not add item"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Item added", "data": item})
}

// UpdateCartItem - PUT /api/cart/items/:id
func (h *CartHandler) UpdateCartItem(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	userID, _, ok := middleware.RequestUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var req CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if req.Quantity < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "quantity must be at least 1"})
	}

	cart, err := h.cartFor(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch cart"})
	}

	var item models.CartItem
	if err := h.DB.Where("id = ? AND cart_id = ?", id, cart.ID).First(&item).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Cart item not found"})
	}

	item.Quantity = req.Quantity
	if err := h.DB.Save(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update item"})
	}
	return c.JSON(fiber.Map{"message": "Item updated", "data": item})
}

// RemoveCartItem - DELETE /api/cart/items/:id
func (h *CartHandler) RemoveCartItem(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	userID, _, ok := middleware.RequestUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	cart, err := h.cartFor(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch cart"})
	}

	result := h.DB.Where("id = ? AND cart_id = ?", id, cart.ID).Delete(&models.CartItem{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not remove item"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Cart item not found"})
	}
	return c.JSON(fiber.Map{"message": "Item removed"})
}

// ClearCart - DELETE /api/cart
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	userID, _, ok := middleware.RequestUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	cart, err := h.cartFor(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch cart"})
	}

	if err := h.DB.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not clear cart"})
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}
