package order

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/devsp0007/restaurant-management/internal/models"
	"github.com/devsp0007/restaurant-management/internal/session"
)

// Engine wraps the Ledger with the lifecycle rules: who may trigger which
// transition, snapshot pricing at placement and the all-or-nothing payment
// of a customer's completed orders. Authorization lives here, not in the
// routing layer.
type Engine struct {
	DB     *gorm.DB
	Ledger *Ledger
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{DB: db, Ledger: &Ledger{DB: db}}
}

// DueSummary lists a customer's completed orders and the amount owed.
type DueSummary struct {
	Orders []models.Order `json:"orders"`
	Total  float64        `json:"total"`
}

// Receipt reports which orders a single attestation settled.
type Receipt struct {
	OrderIDs []uint  `json:"order_ids"`
	Total    float64 `json:"total"`
}

type Stats struct {
	TotalOrders int64   `json:"total_orders"`
	Revenue     float64 `json:"revenue"`
}

// Place prices the selection against the current catalog and persists the
// order with a frozen snapshot. Later menu changes never touch it.
func (e *Engine) Place(sess session.Session, selections map[string]uint) (models.Order, error) {
	if sess.Role != session.RoleCustomer {
		return models.Order{}, fmt.Errorf("%w: only customers place orders", ErrForbidden)
	}
	if len(selections) == 0 {
		return models.Order{}, ErrEmptySelection
	}
	for name, qty := range selections {
		if qty == 0 {
			return models.Order{}, fmt.Errorf("%w: %s", ErrInvalidQuantity, name)
		}
	}

	var placed models.Order
	txErr := e.DB.Transaction(func(tx *gorm.DB) error {
		var total float64
		for name, qty := range selections {
			var item models.MenuItem
			if err := tx.Where("name = ?", name).First(&item).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrUnknownItem, name)
				}
				return err
			}
			total += float64(qty) * item.Price
		}

		o, err := e.Ledger.withTx(tx).PlaceOrder(sess.Email, selections, total)
		if err != nil {
			return err
		}
		placed = o
		return nil
	})
	if txErr != nil {
		return models.Order{}, txErr
	}
	return placed, nil
}

// OrdersFor returns the caller's own orders matching the filter.
func (e *Engine) OrdersFor(sess session.Session, statuses []Status) ([]models.Order, error) {
	return e.Ledger.OrdersForCustomer(sess.Email, statuses)
}

func (e *Engine) AllOrders(sess session.Session) ([]models.Order, error) {
	if !sess.IsAdmin() {
		return nil, fmt.Errorf("%w: admin only", ErrForbidden)
	}
	return e.Ledger.AllOrders()
}

// Transition advances one order a single step. Pending -> In Progress and
// In Progress -> Completed are admin actions; Completed -> Paid may also be
// attested by the customer owning the order.
func (e *Engine) Transition(sess session.Session, orderID uint, to Status) (models.Order, error) {
	if !to.Valid() {
		return models.Order{}, fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}

	o, err := e.Ledger.GetOrder(orderID)
	if err != nil {
		return models.Order{}, err
	}

	from := Status(o.Status)
	if !from.CanTransition(to) {
		return models.Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	switch {
	case sess.IsAdmin():
	case to == StatusPaid && sess.Email == o.CustomerEmail:
	default:
		return models.Order{}, fmt.Errorf("%w: %s -> %s", ErrForbidden, from, to)
	}

	if err := e.Ledger.UpdateStatus(orderID, to); err != nil {
		return models.Order{}, err
	}
	o.Status = string(to)
	return o, nil
}

// AmountDue groups the caller's completed orders into a single bill.
func (e *Engine) AmountDue(sess session.Session) (DueSummary, error) {
	orders, err := e.Ledger.OrdersForCustomer(sess.Email, []Status{StatusCompleted})
	if err != nil {
		return DueSummary{}, err
	}
	due := DueSummary{Orders: orders}
	for _, o := range orders {
		due.Total += o.TotalPrice
	}
	return due, nil
}

// PayBill marks every currently completed order of the caller as paid in
// one transaction. A failure partway rolls the whole attestation back;
// partial payment of a subset is not supported.
func (e *Engine) PayBill(sess session.Session) (Receipt, error) {
	if sess.Role != session.RoleCustomer {
		return Receipt{}, fmt.Errorf("%w: only customers pay bills", ErrForbidden)
	}

	var receipt Receipt
	txErr := e.DB.Transaction(func(tx *gorm.DB) error {
		ledger := e.Ledger.withTx(tx)
		orders, err := ledger.OrdersForCustomer(sess.Email, []Status{StatusCompleted})
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			return ErrNothingDue
		}

		for _, o := range orders {
			if err := ledger.UpdateStatus(o.ID, StatusPaid); err != nil {
				return err
			}
			receipt.OrderIDs = append(receipt.OrderIDs, o.ID)
			receipt.Total += o.TotalPrice
		}
		return nil
	})
	if txErr != nil {
		return Receipt{}, txErr
	}
	return receipt, nil
}

// Dashboard reports the order count and the revenue over paid orders.
func (e *Engine) Dashboard(sess session.Session) (Stats, error) {
	if !sess.IsAdmin() {
		return Stats{}, fmt.Errorf("%w: admin only", ErrForbidden)
	}

	var stats Stats
	if err := e.DB.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return Stats{}, err
	}
	err := e.DB.Model(&models.Order{}).
		Where("status = ?", string(StatusPaid)).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&stats.Revenue).Error
	if err != nil {
		return Stats{}, err
	}
	return stats, nil
}
