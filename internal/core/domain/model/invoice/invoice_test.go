package invoice_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLine(t *testing.T, qty, price string) invoice.Line {
	t.Helper()
	l, err := invoice.NewLine(kernel.NewUUID(), nil, "", "Chair",
		decimal.RequireFromString(qty), decimal.RequireFromString(price), false)
	require.NoError(t, err)
	return l
}

func TestNewInvoice(t *testing.T) {
	t.Run("should refuse an empty invoice", func(t *testing.T) {
		_, err := invoice.NewInvoice(kernel.NewUUID(), kernel.NewUUID(), invoice.Sale,
			invoice.OrderTrigger(), "EUR", nil)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should refuse a missing trigger", func(t *testing.T) {
		_, err := invoice.NewInvoice(kernel.NewUUID(), kernel.NewUUID(), invoice.Sale,
			invoice.Trigger{}, "EUR", []invoice.Line{newLine(t, "1", "1")})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "trigger")
	})

	t.Run("round-off line requires an account", func(t *testing.T) {
		_, err := invoice.NewLine(kernel.NewUUID(), nil, "", "Round-off",
			decimal.NewFromInt(-1), decimal.RequireFromString("0.25"), true)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestInvoice_PostPayCancel(t *testing.T) {
	inv, err := invoice.NewInvoice(kernel.NewUUID(), kernel.NewUUID(), invoice.Sale,
		invoice.OrderTrigger(), "eur", []invoice.Line{newLine(t, "2", "10.5")})
	require.NoError(t, err)
	assert.Equal(t, "21", inv.TotalAmount().String())

	require.NoError(t, inv.Post())
	assert.Equal(t, invoice.Posted, inv.Status())
	assert.Error(t, inv.Post())

	require.NoError(t, inv.Pay())
	assert.Equal(t, invoice.Paid, inv.Status())
	assert.Error(t, inv.Cancel())
}

func TestInvoice_PostZeroTotalSettles(t *testing.T) {
	inv, err := invoice.NewInvoice(kernel.NewUUID(), kernel.NewUUID(), invoice.Sale,
		invoice.OrderTrigger(), "EUR", []invoice.Line{newLine(t, "1", "0")})
	require.NoError(t, err)

	require.NoError(t, inv.Post())

	assert.Equal(t, invoice.Paid, inv.Status())
}

func TestInvoice_CreditNoteSignedQuantity(t *testing.T) {
	shipmentID := kernel.NewUUID()
	line, err := invoice.NewLine(kernel.NewUUID(), &shipmentID, "", "Chair",
		decimal.NewFromInt(1), decimal.RequireFromString("200.25"), false)
	require.NoError(t, err)

	inv, err := invoice.NewInvoice(kernel.NewUUID(), kernel.NewUUID(), invoice.CreditNote,
		invoice.ShipmentTrigger(shipmentID), "EUR", []invoice.Line{line})
	require.NoError(t, err)

	assert.Equal(t, "-1", inv.SignedQuantity(line).String())
	assert.True(t, line.Key().ShipmentID.IsEqual(shipmentID))
	assert.True(t, inv.Trigger().IsShipmentDone())

	require.NoError(t, inv.Cancel())
	assert.False(t, inv.IsActive())
}
