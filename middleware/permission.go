package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/VictorRop4/alx-project-nexus/models"
)

// Policy is the per-resource authorization rule. Reads never pass through
// it (read routes carry no middleware); writes require an authenticated
// role that is either admin or a member of AllowedRoles. An empty
// AllowedRoles set denies every non-admin write.
type Policy struct {
	AllowedRoles []string

	// OwnerOnly means object-level writes must additionally match the
	// object's owner against the requesting user.
	OwnerOnly bool
}

// Per-resource policies. Sellers manage the catalog, customers own their
// orders, reviews and payments; admin bypasses everything.
var (
	CategoryPolicy = Policy{AllowedRoles: []string{models.RoleSeller, models.RoleAdmin}}
	ProductPolicy  = Policy{AllowedRoles: []string{models.RoleSeller, models.RoleAdmin}, OwnerOnly: true}
	OrderPolicy    = Policy{AllowedRoles: []string{models.RoleCustomer}, OwnerOnly: true}
	ReviewPolicy   = Policy{AllowedRoles: []string{models.RoleCustomer}, OwnerOnly: true}
	PaymentPolicy  = Policy{AllowedRoles: []string{models.RoleCustomer}, OwnerOnly: true}
	CartPolicy     = Policy{AllowedRoles: []string{models.RoleCustomer}, OwnerOnly: true}
	CheckoutPolicy = Policy{AllowedRoles: []string{models.RoleCustomer}}

	// AdminOnly declares no roles at all, so the fail-closed default
	// leaves admin as the only role that passes.
	AdminOnly = Policy{}
)

// AllowsRole reports whether a role may perform writes on the resource.
func (p Policy) AllowsRole(role string) bool {
	if role == models.RoleAdmin {
		return true
	}
	for _, allowed := range p.AllowedRoles {
		if allowed == role {
			return true
		}
	}
	return false
}

// AllowsObject is the object-level half of the rule: role membership plus,
// for owner-scoped resources, an ownership match.
func (p Policy) AllowsObject(role string, userID, ownerID uint) bool {
	if role == models.RoleAdmin {
		return true
	}
	if !p.AllowsRole(role) {
		return false
	}
	if p.OwnerOnly {
		return userID == ownerID
	}
	return true
}

// RequireRole returns fiber middleware enforcing the role half of the
// policy. It expects AuthMiddleware to have run first.
func RequireRole(p Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}
		if !p.AllowsRole(role) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You do not have permission to perform this action",
			})
		}
		return c.Next()
	}
}

// RequestUser pulls the authenticated identity out of the locals.
func RequestUser(c *fiber.Ctx) (uint, string, bool) {
	userID, okID := c.Locals("user_id").(uint)
	role, okRole := c.Locals("role").(string)
	return userID, role, okID && okRole
}
