package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devsp0007/restaurant-management/internal/events"
	"github.com/devsp0007/restaurant-management/internal/menu"
)

type MenuHandler struct {
	Catalog  *menu.Catalog
	Producer *events.Producer
}

func (h *MenuHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicMenuEvents, fmt.Sprint(event["name"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *MenuHandler) ListItems(c echo.Context) error {
	items, err := h.Catalog.ListItems()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *MenuHandler) CreateItem(c echo.Context) error {
	var req struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.Catalog.AddItem(req.Name, req.Price)
	if err != nil {
		switch {
		case errors.Is(err, menu.ErrDuplicateName):
			return echo.NewHTTPError(http.StatusConflict, "item already exists")
		case errors.Is(err, menu.ErrInvalidItem):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{
		"type":  "menu_item_added",
		"name":  item.Name,
		"price": item.Price,
	})

	return c.JSON(http.StatusCreated, item)
}

func (h *MenuHandler) DeleteItem(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Catalog.DeleteItem(uint(id)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{
		"type": "menu_item_deleted",
		"name": fmt.Sprint(id),
	})

	return c.NoContent(http.StatusNoContent)
}
