package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/devsp0007/restaurant-management/internal/models"
)

func TestCreateMenuItem(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/menu", map[string]any{
		"name":  "Pizza",
		"price": 250.00,
	})
	require.NoError(t, env.Menu.CreateItem(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var item models.MenuItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	require.Equal(t, "Pizza", item.Name)
	require.Equal(t, 250.00, item.Price)

	_, cDup := env.doJSONRequest(http.MethodPost, "/api/v1/admin/menu", map[string]any{
		"name":  "Pizza",
		"price": 300.00,
	})
	err := env.Menu.CreateItem(cDup)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusConflict, he.Code)

	_, cBad := env.doJSONRequest(http.MethodPost, "/api/v1/admin/menu", map[string]any{
		"name":  "Soda",
		"price": -1.00,
	})
	err = env.Menu.CreateItem(cBad)
	he, ok = err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestDeleteMenuItemKeepsOrders(t *testing.T) {
	env := newTestEnv(t)
	env.seedMenu()

	rec, cPlace := env.doJSONRequest(http.MethodPost, "/api/v1/orders", map[string]any{
		"items": map[string]uint{"Pizza": 2},
	})
	require.NoError(t, env.Order.PlaceOrder(env.as(cPlace, customerSess)))
	var placed models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &placed))

	var pizza models.MenuItem
	require.NoError(t, env.DB.Where("name = ?", "Pizza").First(&pizza).Error)

	id := strconv.FormatUint(uint64(pizza.ID), 10)
	recDel, cDel := env.doJSONRequest(http.MethodDelete, "/api/v1/admin/menu/"+id, nil)
	cDel.SetParamNames("id")
	cDel.SetParamValues(id)
	require.NoError(t, env.Menu.DeleteItem(cDel))
	require.Equal(t, http.StatusNoContent, recDel.Code)

	// The placed order's snapshot and total are untouched.
	var stored models.Order
	require.NoError(t, env.DB.First(&stored, placed.ID).Error)
	require.Equal(t, placed.TotalPrice, stored.TotalPrice)
	require.Equal(t, placed.ItemsJSON, stored.ItemsJSON)
}

func TestListMenu(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/menu", nil)
	require.NoError(t, env.Menu.ListItems(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.MenuItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Empty(t, items)

	env.seedMenu()

	rec2, c2 := env.doJSONRequest(http.MethodGet, "/api/v1/menu", nil)
	require.NoError(t, env.Menu.ListItems(c2))
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &items))
	require.Len(t, items, 2)
}
