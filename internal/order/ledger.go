package order

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/devsp0007/restaurant-management/internal/models"
)

// Ledger is the append-mostly store of orders. Records are created once via
// PlaceOrder and afterwards mutated only through UpdateStatus; item
// snapshots and totals are never rewritten.
type Ledger struct {
	DB *gorm.DB
}

func (l *Ledger) withTx(tx *gorm.DB) *Ledger {
	return &Ledger{DB: tx}
}

func EncodeSnapshot(items map[string]uint) (string, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return string(data), nil
}

func DecodeSnapshot(raw string) (map[string]uint, error) {
	items := map[string]uint{}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return items, nil
}

// PlaceOrder persists a new Pending order with the given snapshot and total.
// The selection must be non-empty with positive quantities and a positive
// total; nothing is written otherwise.
func (l *Ledger) PlaceOrder(customerEmail string, items map[string]uint, total float64) (models.Order, error) {
	if len(items) == 0 {
		return models.Order{}, ErrEmptySelection
	}
	for name, qty := range items {
		if qty == 0 {
			return models.Order{}, fmt.Errorf("%w: %s", ErrInvalidQuantity, name)
		}
	}
	if total <= 0 {
		return models.Order{}, fmt.Errorf("%w: total must be positive", ErrInvalidQuantity)
	}

	snapshot, err := EncodeSnapshot(items)
	if err != nil {
		return models.Order{}, err
	}

	o := models.Order{
		CustomerEmail: customerEmail,
		ItemsJSON:     snapshot,
		TotalPrice:    total,
		Status:        string(StatusPending),
		CreatedAt:     time.Now(),
	}
	if err := l.DB.Create(&o).Error; err != nil {
		return models.Order{}, err
	}
	return o, nil
}

// OrdersForCustomer returns the customer's orders matching the status
// filter, newest first. An empty filter matches nothing, not everything.
func (l *Ledger) OrdersForCustomer(customerEmail string, statuses []Status) ([]models.Order, error) {
	if len(statuses) == 0 {
		return []models.Order{}, nil
	}

	filter := make([]string, 0, len(statuses))
	for _, s := range statuses {
		filter = append(filter, string(s))
	}

	var orders []models.Order
	err := l.DB.
		Where("customer_email = ? AND status IN ?", customerEmail, filter).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (l *Ledger) AllOrders() ([]models.Order, error) {
	var orders []models.Order
	if err := l.DB.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (l *Ledger) GetOrder(id uint) (models.Order, error) {
	var o models.Order
	if err := l.DB.First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, err
	}
	return o, nil
}

// UpdateStatus overwrites the status of one order. A missing id is an
// explicit ErrOrderNotFound, never a silent no-op.
func (l *Ledger) UpdateStatus(id uint, status Status) error {
	res := l.DB.Model(&models.Order{}).Where("id = ?", id).Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
