package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/VictorRop4/alx-project-nexus/middleware"
	"github.com/VictorRop4/alx-project-nexus/models"
)

type ReviewHandler struct {
	DB *gorm.DB
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{DB: db}
}

type ReviewRequest struct {
	Product uint   `json:"product"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// GetReviews - GET /api/reviews?product=N
func (h *ReviewHandler) GetReviews(c *fiber.Ctx) error {
	page, pageSize := models.NormalizePage(c.QueryInt("page", 1), c.QueryInt("page_size", models.DefaultPageSize))

	query := h.DB.Model(&models.Review{})
	if product := c.Query("product"); product != "" {
		query = query.Where("product_id = ?", product)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch reviews"})
	}

	var reviews []models.Review
	if err := query.Order("created_at desc").
		Scopes(models.Paginate(page, pageSize)).
		Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch reviews"})
	}
	return c.JSON(models.SuccessResponse("Reviews fetched", reviews,
		models.NewPaginationMeta(page, pageSize, total)))
}

// GetReview - GET /api/reviews/:id
func (h *ReviewHandler) GetReview(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	var review models.Review
	if err := h.DB.First(&review, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Review not found"})
	}
	return c.JSON(fiber.Map{"data": review})
}

// CreateReview - POST /api/reviews
// A customer may review a product once, and only after receiving it in a
// delivered order.
func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	userID, _, ok := middleware.RequestUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "rating must be between 1 and 5"})
	}

	var product models.Product
	if err := h.DB.First(&product, req.Product).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	var delivered int64
	h.DB.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.product_id = ? AND orders.customer_id = ? AND orders.status = ?",
			product.ID, userID, models.OrderStatusDelivered).
		Count(&delivered)
	if delivered == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "You can only review products from delivered orders",
		})
	}

	review := models.Review{
		ProductID: product.ID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := h.DB.Create(&review).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You have already reviewed this product"})
	}

	if err := h.recomputeRating(product.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update product rating"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Review created", "data": review})
}

// DeleteReview - DELETE /api/reviews/:id
func (h *ReviewHandler) DeleteReview(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	userID, role, ok := middleware.RequestUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var review models.Review
	if err := h.DB.First(&review, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Review not found"})
	}

	if !middleware.ReviewPolicy.AllowsObject(role, userID, review.UserID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}

	if err := h.DB.Delete(&review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete review"})
	}

	if err := h.recomputeRating(review.ProductID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update product rating"})
	}
	return c.JSON(fiber.Map{"message": "Review deleted"})
}

// recomputeRating sets the product's average rating to the mean of its
// current reviews rounded to two decimals, or 0.00 with no reviews left.
func (h *ReviewHandler) recomputeRating(productID uint) error {
	type aggregate struct {
		Total int64
		Count int64
	}
	var agg aggregate
	if err := h.DB.Model(&models.Review{}).
		Select("COALESCE(SUM(rating),0) as total, COUNT(*) as count").
		Where("product_id = ?", productID).
		Scan(&agg).Error; err != nil {
		return err
	}

	average := decimal.Zero
	if agg.Count > 0 {
		average = decimal.NewFromInt(agg.Total).
			Div(decimal.NewFromInt(agg.Count)).
			Round(2)
	}

	return h.DB.Model(&models.Product{}).
		Where("id = ?", productID).
		Update("average_rating", average).Error
}
