package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var saleDate = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func newOrder(t *testing.T, invoiceMethod order.InvoiceMethod) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "ACME", "EUR", saleDate, "WH", invoiceMethod, order.ShipmentOnOrder)
	require.NoError(t, err)
	return o
}

func addGoods(t *testing.T, o *order.Order, name, qty, price string, mode kernel.DeliveryMode) *order.Line {
	t.Helper()
	p, err := order.NewProduct(kernel.NewUUID(), name, true)
	require.NoError(t, err)
	line, err := order.NewLine(kernel.NewUUID(), &p, "", decimal.RequireFromString(qty),
		decimal.RequireFromString(price), decimal.Zero, mode, nil)
	require.NoError(t, err)
	require.NoError(t, o.AddLine(line))
	return line
}

func addService(t *testing.T, o *order.Order, name, qty, price string) *order.Line {
	t.Helper()
	p, err := order.NewProduct(kernel.NewUUID(), name, false)
	require.NoError(t, err)
	line, err := order.NewLine(kernel.NewUUID(), &p, "", decimal.RequireFromString(qty),
		decimal.RequireFromString(price), decimal.Zero, kernel.NoDeliveryMode, nil)
	require.NoError(t, err)
	require.NoError(t, o.AddLine(line))
	return line
}

func countRoundOff(o *order.Order) int {
	n := 0
	for _, l := range o.Lines() {
		if l.IsRoundOff() {
			n++
		}
	}
	return n
}
