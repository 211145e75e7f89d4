package handlers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroceryUpdateQuantityOnly(t *testing.T) {
	store := newMemStore()
	h := newTestRouter(t, store, nil)

	rec := postForm(h, "/groceries", url.Values{"description": {"Eggs"}, "quantity": {"12"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/groceries", rec.Header().Get("Location"))
	before := store.groceries[1]

	rec = postForm(h, "/groceries/1/update", url.Values{"description": {"Eggs"}, "quantity": {"24"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	after := store.groceries[1]
	assert.Equal(t, "24", after.Quantity)
	assert.Equal(t, "Eggs", after.Description)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)

	body := get(h, "/groceries").Body.String()
	assert.Contains(t, body, "Eggs")
	assert.Contains(t, body, "24")
}

func TestGroceryQuantityIsOptional(t *testing.T) {
	store := newMemStore()
	h := newTestRouter(t, store, nil)

	rec := postForm(h, "/groceries", url.Values{"description": {"Bread"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	require.Len(t, store.groceries, 1)
	assert.Equal(t, "", store.groceries[1].Quantity)
}

func TestGroceryValidationAndMissingRows(t *testing.T) {
	store := newMemStore()
	h := newTestRouter(t, store, nil)

	rec := postForm(h, "/groceries", url.Values{"quantity": {"2"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "description is required", strings.TrimSpace(rec.Body.String()))

	assert.Equal(t, http.StatusNotFound, get(h, "/groceries/5/delete").Code)
	assert.Equal(t, http.StatusNotFound, get(h, "/groceries/5/update").Code)
	assert.Equal(t, http.StatusNotFound, postForm(h, "/groceries/5/update", url.Values{"description": {"Milk"}}).Code)
}

func TestGroceryEditAndDelete(t *testing.T) {
	store := newMemStore()
	h := newTestRouter(t, store, nil)
	postForm(h, "/groceries", url.Values{"description": {"Apples"}, "quantity": {"6"}})

	rec := get(h, "/groceries/1/update")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Apples"`)
	assert.Contains(t, rec.Body.String(), `value="6"`)

	assert.Equal(t, http.StatusSeeOther, get(h, "/groceries/1/delete").Code)
	assert.Empty(t, store.groceries)
}
