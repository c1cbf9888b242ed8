package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/VictorRop4/alx-project-nexus/models"
)

type CategoryHandler struct {
	DB *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{DB: db}
}

// CategoryRequest is the create/update payload.
type CategoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Parent      *uint  `json:"parent"`
}

// categoryOrdering maps the ordering query value to a SQL order clause.
// A leading '-' flips the direction, mirroring the query convention the
// mobile clients already use.
func categoryOrdering(ordering string) string {
	desc := strings.HasPrefix(ordering, "-")
	field := strings.TrimPrefix(ordering, "-")
	switch field {
	case "name", "created_at":
	default:
		return "id asc"
	}
	if desc {
		return field + " desc"
	}
	return field + " asc"
}

// GetCategories - GET /api/categories
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	page, pageSize := models.NormalizePage(c.QueryInt("page", 1), c.QueryInt("page_size", models.DefaultPageSize))

	query := h.DB.Model(&models.Category{})

	// Filter by parent ID
	if parent := c.Query("parent"); parent != "" {
		query = query.Where("parent_id = ?", parent)
	}

	// Free-text search over name and description
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch categories"})
	}

	var categories []models.Category
	if err := query.Order(categoryOrdering(c.Query("ordering"))).
		Scopes(models.Paginate(page, pageSize)).
		Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch categories"})
	}

	return c.JSON(models.SuccessResponse("Categories fetched", categories,
		models.NewPaginationMeta(page, pageSize, total)))
}

// GetCategory - GET /api/categories/:id
func (h *CategoryHandler) GetCategory(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	var category models.Category
	if err := h.DB.Preload("Children").First(&category, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
	}
	return c.JSON(fiber.Map{"data": category})
}

// CreateCategory - POST /api/categories
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if req.Name == "" || req.Slug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and slug are required"})
	}

	category := models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ParentID:    req.Parent,
	}

	if err := h.DB.Create(&category).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Category with this name or slug already exists"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Category created", "data": category})
}

// UpdateCategory - PUT /api/categories/:id
func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	var category models.Category
	if err := h.DB.First(&category, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
	}

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if req.Name == "" || req.Slug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and slug are required"})
	}

	category.Name = req.Name
	category.Slug = req.Slug
	category.Description = req.Description
	category.ParentID = req.Parent

	if err := h.DB.Save(&category).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update category"})
	}
	return c.JSON(fiber.Map{"message": "Category updated", "data": category})
}

// DeleteCategory - DELETE /api/categories/:id
// Children are re-rooted (parent set NULL), they are not deleted.
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	var category models.Category
	if err := h.DB.First(&category, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
	}

	if err := h.DB.Model(&models.Category{}).
		Where("parent_id = ?", category.ID).
		Update("parent_id", nil).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete category"})
	}

	if err := h.DB.Delete(&category).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete category"})
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}
