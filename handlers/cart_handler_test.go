package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorRop4/alx-project-nexus/models"
)

func TestCartAddAndMerge(t *testing.T) {
	app, db, _ := newTestApp(t)
	seller := createUser(t, db, "seller", models.RoleSeller)
	customer := createUser(t, db, "customer", models.RoleCustomer)
	category := createCategory(t, db, "Electronics", "electronics")
	product := createProduct(t, db, seller, category, "SKU-1", "250.00")

	body := map[string]interface{}{"product": product.ID, "quantity": 2}
	resp := doJSON(t, app, http.MethodPost, "/api/cart/items", tokenFor(t, customer), body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Same product again merges into one line.
	resp = doJSON(t, app, http.MethodPost, "/api/cart/items", tokenFor(t, customer), body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var items []models.CartItem
	require.NoError(t, db.Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)
}

func TestCartRejectsZeroQuantity(t *testing.T) {
	app, db, _ := newTestApp(t)
	seller := createUser(t, db, "seller", models.RoleSeller)
	customer := createUser(t, db, "customer", models.RoleCustomer)
	category := createCategory(t, db, "Electronics", "electronics")
	product := createProduct(t, db, seller, category, "SKU-1", "250.00")

	resp := doJSON(t, app, http.MethodPost, "/api/cart/items", tokenFor(t, customer), map[string]interface{}{
		"product": product.ID, "quantity": 0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCartIsPerCustomer(t *testing.T) {
	app, db, _ := newTestApp(t)
	seller := createUser(t, db, "seller", models.RoleSeller)
	alice := createUser(t, db, "alice", models.RoleCustomer)
	bob := createUser(t, db, "bob", models.RoleCustomer)
	category := createCategory(t, db, "Electronics", "electronics")
	product := createProduct(t, db, seller, category, "SKU-1", "250.00")

	resp := doJSON(t, app, http.MethodPost, "/api/cart/items", tokenFor(t, alice), map[string]interface{}{
		"product": product.ID, "quantity": 1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var cart struct {
		Data models.Cart `json:"data"`
	}
	resp = doJSON(t, app, http.MethodGet, "/api/cart/", tokenFor(t, bob), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &cart)
	assert.Empty(t, cart.Data.Items)

	resp = doJSON(t, app, http.MethodGet, "/api/cart/", tokenFor(t, alice), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &cart)
	assert.Len(t, cart.Data.Items, 1)
}

func TestCartClear(t *testing.T) {
	app, db, _ := newTestApp(t)
	seller := createUser(t, db, "seller", models.RoleSeller)
	customer := createUser(t, db, "customer", models.RoleCustomer)
	category := createCategory(t, db, "Electronics", "electronics")
	product := createProduct(t, db, seller, category, "SKU-1", "250.00")

	resp := doJSON(t, app, http.MethodPost, "/api/cart/items", tokenFor(t, customer), map[string]interface{}{
		"product": product.ID, "quantity": 3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/cart/", tokenFor(t, customer), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	assert.Zero(t, count)
}
