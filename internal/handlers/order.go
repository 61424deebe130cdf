package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/devsp0007/restaurant-management/internal/events"
	"github.com/devsp0007/restaurant-management/internal/models"
	"github.com/devsp0007/restaurant-management/internal/order"
	"github.com/devsp0007/restaurant-management/internal/search"
	"github.com/devsp0007/restaurant-management/internal/session"
)

type OrderHandler struct {
	Engine   *order.Engine
	Producer *events.Producer
	ES       *elasticsearch.Client
	Index    string
}

func (h *OrderHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicOrderEvents, fmt.Sprint(event["email"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

// index mirrors the order into the search index; failures are logged, never
// surfaced, so search staleness cannot fail an order operation.
func (h *OrderHandler) index(c echo.Context, o models.Order) {
	if h.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.IndexOrder(ctx, h.ES, h.Index, o); err != nil {
		c.Logger().Errorf("ES index error: %v", err)
	}
}

func orderError(err error) error {
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, order.ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, order.ErrEmptySelection),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrUnknownItem),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrNothingDue):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	sess, err := session.From(c)
	if err != nil {
		return err
	}

	var req struct {
		Items map[string]uint `json:"items"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	placed, err := h.Engine.Place(sess, req.Items)
	if err != nil {
		return orderError(err)
	}

	h.index(c, placed)
	h.publish(c, map[string]any{
		"type":    "order_placed",
		"email":   sess.Email,
		"orderID": placed.ID,
		"total":   placed.TotalPrice,
	})

	return c.JSON(http.StatusCreated, placed)
}

// MyOrders returns the caller's orders filtered by the comma-separated
// status query. An empty filter matches nothing.
func (h *OrderHandler) MyOrders(c echo.Context) error {
	sess, err := session.From(c)
	if err != nil {
		return err
	}

	raw := c.QueryParam("status")
	if raw == "" {
		return c.JSON(http.StatusOK, []models.Order{})
	}

	statuses, err := order.ParseStatusFilter(strings.Split(raw, ","))
	if err != nil {
		return orderError(err)
	}

	orders, err := h.Engine.OrdersFor(sess, statuses)
	if err != nil {
		return orderError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) AmountDue(c echo.Context) error {
	sess, err := session.From(c)
	if err != nil {
		return err
	}

	due, err := h.Engine.AmountDue(sess)
	if err != nil {
		return orderError(err)
	}
	return c.JSON(http.StatusOK, due)
}

func (h *OrderHandler) PayBill(c echo.Context) error {
	sess, err := session.From(c)
	if err != nil {
		return err
	}

	receipt, err := h.Engine.PayBill(sess)
	if err != nil {
		return orderError(err)
	}

	for _, id := range receipt.OrderIDs {
		if o, err := h.Engine.Ledger.GetOrder(id); err == nil {
			h.index(c, o)
		}
	}
	h.publish(c, map[string]any{
		"type":   "bill_paid",
		"email":  sess.Email,
		"orders": receipt.OrderIDs,
		"total":  receipt.Total,
	})

	return c.JSON(http.StatusOK, receipt)
}

func (h *OrderHandler) AllOrders(c echo.Context) error {
	sess, err := session.From(c)
	if err != nil {
		return err
	}

	orders, err := h.Engine.AllOrders(sess)
	if err != nil {
		return orderError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	sess, err := session.From(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	newStatus, err := order.ParseStatus(req.Status)
	if err != nil {
		return orderError(err)
	}

	updated, err := h.Engine.Transition(sess, uint(id), newStatus)
	if err != nil {
		return orderError(err)
	}

	h.index(c, updated)
	h.publish(c, map[string]any{
		"type":    "order_status_changed",
		"email":   updated.CustomerEmail,
		"orderID": updated.ID,
		"status":  updated.Status,
	})

	return c.JSON(http.StatusOK, updated)
}

func (h *OrderHandler) Dashboard(c echo.Context) error {
	sess, err := session.From(c)
	if err != nil {
		return err
	}

	stats, err := h.Engine.Dashboard(sess)
	if err != nil {
		return orderError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
