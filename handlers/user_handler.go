package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/VictorRop4/alx-project-nexus/middleware"
	"github.com/VictorRop4/alx-project-nexus/models"
)

type UserHandler struct {
	DB *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

type ProfileRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	PhoneNumber    string `json:"phone_number"`
	DefaultAddress string `json:"default_address"`
}

// UpdateProfile - PUT /api/auth/me/profile
// Updates the authenticated user's own customer profile.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, _, ok := middleware.RequestUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var req ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	var profile models.CustomerProfile
	if err := h.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	profile.FirstName = req.FirstName
	profile.LastName = req.LastName
	profile.PhoneNumber = req.PhoneNumber
	profile.DefaultAddress = req.DefaultAddress

	if err := h.DB.Save(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update profile"})
	}
	return c.JSON(fiber.Map{"message": "Profile updated", "data": profile})
}

// ListUsers - GET /api/users (admin only, enforced by route middleware)
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	page, pageSize := models.NormalizePage(c.QueryInt("page", 1), c.QueryInt("page_size", models.DefaultPageSize))

	query := h.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch users"})
	}

	var users []models.User
	if err := query.Scopes(models.Paginate(page, pageSize)).Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch users"})
	}

	return c.JSON(models.SuccessResponse("Users fetched", users,
		models.NewPaginationMeta(page, pageSize, total)))
}
