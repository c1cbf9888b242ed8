package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorRop4/alx-project-nexus/models"
)

func TestCategoryCreateAndFilterByParent(t *testing.T) {
	app, db, _ := newTestApp(t)
	seller := createUser(t, db, "seller", models.RoleSeller)

	resp := doJSON(t, app, http.MethodPost, "/api/categories/", tokenFor(t, seller), map[string]interface{}{
		"name": "Electronics", "slug": "electronics",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Data models.Category `json:"data"`
	}
	decodeJSON(t, resp, &created)

	resp = doJSON(t, app, http.MethodPost, "/api/categories/", tokenFor(t, seller), map[string]interface{}{
		"name": "Phones", "slug": "phones", "parent": created.Data.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var list struct {
		Data []models.Category `json:"data"`
	}
	resp = doJSON(t, app, http.MethodGet, "/api/categories/?parent="+itoa(created.Data.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &list)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Phones", list.Data[0].Name)
}

func TestCategoryUniqueName(t *testing.T) {
	app, db, _ := newTestApp(t)
	seller := createUser(t, db, "seller", models.RoleSeller)
	createCategory(t, db, "Electronics", "electronics")

	resp := doJSON(t, app, http.MethodPost, "/api/categories/", tokenFor(t, seller), map[string]interface{}{
		"name": "Electronics", "slug": "electronics-2",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCategoryUpdateRejectsBlankedFields(t *testing.T) {
	app, db, _ := newTestApp(t)
	seller := createUser(t, db, "seller", models.RoleSeller)
	category := createCategory(t, db, "Electronics", "electronics")

	resp := doJSON(t, app, http.MethodPut, "/api/categories/"+itoa(category.ID), tokenFor(t, seller),
		map[string]interface{}{"description": "only a description"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var got models.Category
	require.NoError(t, db.First(&got, category.ID).Error)
	assert.Equal(t, "Electronics", got.Name)
	assert.Equal(t, "electronics", got.Slug)
}

func TestCategoryDeleteRerootsChildren(t *testing.T) {
	app, db, _ := newTestApp(t)
	admin := createUser(t, db, "admin", models.RoleAdmin)

	parent := createCategory(t, db, "Electronics", "electronics")
	child := models.Category{Name: "Phones", Slug: "phones", ParentID: &parent.ID}
	require.NoError(t, db.Create(&child).Error)

	resp := doJSON(t, app, http.MethodDelete, "/api/categories/"+itoa(parent.ID), tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.Category
	require.NoError(t, db.First(&got, child.ID).Error)
	assert.Nil(t, got.ParentID, "children are re-rooted, not deleted")
}

func TestCategoryOrdering(t *testing.T) {
	app, db, _ := newTestApp(t)
	createCategory(t, db, "Zeta", "zeta")
	createCategory(t, db, "Alpha", "alpha")

	var list struct {
		Data []models.Category `json:"data"`
	}
	resp := doJSON(t, app, http.MethodGet, "/api/categories/?ordering=name", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &list)
	require.Len(t, list.Data, 2)
	assert.Equal(t, "Alpha", list.Data[0].Name)

	resp = doJSON(t, app, http.MethodGet, "/api/categories/?ordering=-name", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &list)
	assert.Equal(t, "Zeta", list.Data[0].Name)
}
