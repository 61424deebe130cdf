package menu

import (
	"errors"

	"gorm.io/gorm"

	"github.com/devsp0007/restaurant-management/internal/models"
)

var (
	ErrDuplicateName = errors.New("menu item already exists")
	ErrInvalidItem   = errors.New("item name is required and price must be positive")
)

type Catalog struct {
	DB *gorm.DB
}

func (c *Catalog) AddItem(name string, price float64) (models.MenuItem, error) {
	if name == "" || price <= 0 {
		return models.MenuItem{}, ErrInvalidItem
	}

	var existing models.MenuItem
	err := c.DB.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return models.MenuItem{}, ErrDuplicateName
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.MenuItem{}, err
	}

	item := models.MenuItem{Name: name, Price: price}
	if err := c.DB.Create(&item).Error; err != nil {
		return models.MenuItem{}, err
	}
	return item, nil
}

// DeleteItem is idempotent and never cascades to placed orders: their item
// snapshots are denormalized copies, not references into the catalog.
func (c *Catalog) DeleteItem(id uint) error {
	return c.DB.Delete(&models.MenuItem{}, id).Error
}

func (c *Catalog) ListItems() ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := c.DB.Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
