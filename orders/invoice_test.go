package orders

import (
	"testing"
	"time"

	"storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder() models.Order {
	return models.Order{
		OrderID: "ord-1",
		UserID:  "u123",
		Items: []models.OrderItem{
			{ProductID: "p1", Name: "Widget", Quantity: 3, Price: 10.00},
			{ProductID: "p2", Name: "Gadget", Quantity: 2, Price: 4.50},
		},
		Total:     39.00,
		Status:    models.OrderPending,
		Address:   "42 Example Street, Springfield",
		CreatedAt: time.Now(),
	}
}

func TestInvoiceRowsFormatsItemsAndTotal(t *testing.T) {
	rows, total := invoiceRows(testOrder())

	require.Len(t, rows, 2)
	assert.Equal(t, invoiceRow{Name: "Widget", Quantity: "3", Unit: "10.00", Amount: "30.00"}, rows[0])
	assert.Equal(t, invoiceRow{Name: "Gadget", Quantity: "2", Unit: "4.50", Amount: "9.00"}, rows[1])
	assert.Equal(t, "39.00", total)
}

func TestInvoiceRowsEmptyOrder(t *testing.T) {
	rows, total := invoiceRows(models.Order{Total: 0})
	assert.Empty(t, rows)
	assert.Equal(t, "0.00", total)
}

func TestCanViewOrderOwnerAndAdminOnly(t *testing.T) {
	order := testOrder()

	assert.True(t, canViewOrder(order, "u123", models.RoleUser))
	assert.True(t, canViewOrder(order, "someone-else", models.RoleAdmin))
	assert.False(t, canViewOrder(order, "someone-else", models.RoleUser))
	assert.False(t, canViewOrder(order, "", ""))
}
