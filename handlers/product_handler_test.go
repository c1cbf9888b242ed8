package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorRop4/alx-project-nexus/models"
)

func productBody(sku, name, price string, category uint) map[string]interface{} {
	return map[string]interface{}{
		"sku":            sku,
		"slug":           sku + "-slug",
		"name":           name,
		"price":          price,
		"stock_quantity": 5,
		"category":       category,
	}
}

func TestProductReadIsPublic(t *testing.T) {
	app, db, _ := newTestApp(t)
	seller := createUser(t, db, "seller", models.RoleSeller)
	category := createCategory(t, db, "Electronics", "electronics")
	createProduct(t, db, seller, category, "SKU-1", "250.00")

	resp := doJSON(t, app, http.MethodGet, "/api/products/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/categories/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProductWritePermissions(t *testing.T) {
	app, db, _ := newTestApp(t)
	customer := createUser(t, db, "customer", models.RoleCustomer)
	seller := createUser(t, db, "seller", models.RoleSeller)
	category := createCategory(t, db, "Electronics", "electronics")

	// Unauthenticated write
	resp := doJSON(t, app, http.MethodPost, "/api/products/", "", productBody("SKU-1", "Earbuds", "250.00", category.ID))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Wrong role
	resp = doJSON(t, app, http.MethodPost, "/api/products/", tokenFor(t, customer), productBody("SKU-1", "Earbuds", "250.00", category.ID))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Seller is allowed
	resp = doJSON(t, app, http.MethodPost, "/api/products/", tokenFor(t, seller), productBody("SKU-1", "Earbuds", "250.00", category.ID))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestProductUpdateRejectsBlankedFields(t *testing.T) {
	app, db, _ := newTestApp(t)
	seller := createUser(t, db, "seller", models.RoleSeller)
	category := createCategory(t, db, "Electronics", "electronics")
	product := createProduct(t, db, seller, category, "SKU-1", "250.00")

	// A partial body must not wipe out sku, slug or name.
	resp := doJSON(t, app, http.MethodPut, "/api/products/"+itoa(product.ID), tokenFor(t, seller),
		map[string]interface{}{"description": "only a description"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, "SKU-1", got.SKU)
	assert.Equal(t, "SKU-1-slug", got.Slug)

	// A complete body still updates.
	resp = doJSON(t, app, http.MethodPut, "/api/products/"+itoa(product.ID), tokenFor(t, seller),
		productBody("SKU-1", "Earbuds Pro", "300.00", category.ID))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, "Earbuds Pro", got.Name)
}

func TestProductOwnershipEnforced(t *testing.T) {
	app, db, _ := newTestApp(t)
	seller := createUser(t, db, "seller", models.RoleSeller)
	rival := createUser(t, db, "rival", models.RoleSeller)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	category := createCategory(t, db, "Electronics", "electronics")
	product := createProduct(t, db, seller, category, "SKU-1", "250.00")

	update := productBody("SKU-1", "Renamed", "300.00", category.ID)

	// Same role, different owner: denied.
	resp := doJSON(t, app, http.MethodPut, "/api/products/"+itoa(product.ID), tokenFor(t, rival), update)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Owner may update.
	resp = doJSON(t, app, http.MethodPut, "/api/products/"+itoa(product.ID), tokenFor(t, seller), update)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Admin bypasses ownership.
	resp = doJSON(t, app, http.MethodDelete, "/api/products/"+itoa(product.ID), tokenFor(t, admin), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProductDeleteKeepsOrderHistory(t *testing.T) {
	app, db, _ := newTestApp(t)
	seller := createUser(t, db, "seller", models.RoleSeller)
	customer := createUser(t, db, "customer", models.RoleCustomer)
	category := createCategory(t, db, "Electronics", "electronics")
	product := createProduct(t, db, seller, category, "SKU-1", "250.00")

	resp := doJSON(t, app, http.MethodPost, "/api/checkout/", tokenFor(t, customer), checkoutBody(product.ID, 1, "card"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/products/"+itoa(product.ID), tokenFor(t, seller), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The order item survives with its snapshot, product link nulled.
	var item models.OrderItem
	require.NoError(t, db.First(&item).Error)
	assert.Nil(t, item.ProductID)
	assert.Equal(t, "250", item.Price.String())
}

func TestProductListFiltersAndPagination(t *testing.T) {
	app, db, _ := newTestApp(t)
	seller := createUser(t, db, "seller", models.RoleSeller)
	electronics := createCategory(t, db, "Electronics", "electronics")
	fashion := createCategory(t, db, "Fashion", "fashion")
	createProduct(t, db, seller, electronics, "SKU-1", "100.00")
	createProduct(t, db, seller, electronics, "SKU-2", "200.00")
	createProduct(t, db, seller, fashion, "SKU-3", "300.00")

	var body struct {
		Data []models.Product      `json:"data"`
		Meta models.PaginationMeta `json:"meta"`
	}

	resp := doJSON(t, app, http.MethodGet, "/api/products/?category="+itoa(electronics.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &body)
	assert.Len(t, body.Data, 2)
	assert.Equal(t, int64(2), body.Meta.Total)

	resp = doJSON(t, app, http.MethodGet, "/api/products/?page=1&page_size=2&ordering=price", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &body)
	require.Len(t, body.Data, 2)
	assert.Equal(t, "SKU-1", body.Data[0].SKU)
	assert.Equal(t, int64(3), body.Meta.Total)
	assert.True(t, body.Meta.HasNext)

	// Search over name/description.
	resp = doJSON(t, app, http.MethodGet, "/api/products/?search=SKU-3", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &body)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "SKU-3", body.Data[0].SKU)
}
