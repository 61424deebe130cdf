package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/devsp0007/restaurant-management/internal/models"
)

func TestDocFromOrder(t *testing.T) {
	now := time.Now()
	o := models.Order{
		ID:            12,
		CustomerEmail: "alice@example.com",
		ItemsJSON:     `{"Pizza":2,"Soda":1}`,
		TotalPrice:    550.00,
		Status:        "Pending",
		CreatedAt:     now,
	}

	doc := DocFromOrder(o)
	require.Equal(t, uint(12), doc.ID)
	require.Equal(t, "alice@example.com", doc.CustomerEmail)
	require.Equal(t, "1 x Soda, 2 x Pizza", doc.Items)
	require.Equal(t, 550.00, doc.TotalPrice)
	require.Equal(t, "Pending", doc.Status)

	// A corrupt snapshot falls back to the raw column.
	o.ItemsJSON = "not-json"
	doc = DocFromOrder(o)
	require.Equal(t, "not-json", doc.Items)
}
