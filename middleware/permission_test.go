package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VictorRop4/alx-project-nexus/models"
)

func TestPolicyAdminBypassesEverything(t *testing.T) {
	for _, p := range []Policy{CategoryPolicy, ProductPolicy, OrderPolicy, CartPolicy, AdminOnly} {
		assert.True(t, p.AllowsRole(models.RoleAdmin))
		assert.True(t, p.AllowsObject(models.RoleAdmin, 1, 2), "admin passes even on someone else's object")
	}
}

func TestPolicyRoleMembership(t *testing.T) {
	assert.True(t, CategoryPolicy.AllowsRole(models.RoleSeller))
	assert.False(t, CategoryPolicy.AllowsRole(models.RoleCustomer))

	assert.True(t, OrderPolicy.AllowsRole(models.RoleCustomer))
	assert.False(t, OrderPolicy.AllowsRole(models.RoleSeller))
}

func TestPolicyDefaultDenies(t *testing.T) {
	// A policy that names no roles denies every non-admin write.
	for _, role := range []string{models.RoleCustomer, models.RoleSeller, "", "auditor"} {
		assert.False(t, AdminOnly.AllowsRole(role), role)
	}
}

func TestPolicyUnknownRoleDenied(t *testing.T) {
	assert.False(t, ProductPolicy.AllowsRole("warehouse"))
	assert.False(t, ProductPolicy.AllowsRole(""))
}

func TestPolicyOwnership(t *testing.T) {
	assert.True(t, ProductPolicy.AllowsObject(models.RoleSeller, 7, 7))
	assert.False(t, ProductPolicy.AllowsObject(models.RoleSeller, 7, 8))

	// Ownership never widens role membership.
	assert.False(t, OrderPolicy.AllowsObject(models.RoleSeller, 7, 7))

	// Policies without OwnerOnly only check the role.
	assert.True(t, CheckoutPolicy.AllowsObject(models.RoleCustomer, 7, 8))
}
