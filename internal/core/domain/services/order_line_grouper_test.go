package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderLineGrouper_Group(t *testing.T) {
	grouper := services.NewOrderLineGrouper(nil)

	t.Run("should never mix delivery modes", func(t *testing.T) {
		o := newOrder(t, order.InvoiceOnOrder)
		addGoods(t, o, "Desk", "1", "10", kernel.PickUp)
		addGoods(t, o, "Chair", "1", "10", kernel.Ship)

		groups := grouper.Group(o, nil)

		require.Len(t, groups, 2)
		assert.Equal(t, kernel.PickUp, groups[0].Key.DeliveryMode)
		assert.Equal(t, kernel.Ship, groups[1].Key.DeliveryMode)
	})

	t.Run("should group lines sharing a key", func(t *testing.T) {
		o := newOrder(t, order.InvoiceOnOrder)
		desk := addGoods(t, o, "Desk", "1", "10", kernel.PickUp)
		chair := addGoods(t, o, "Chair", "2", "10", kernel.PickUp)
		addService(t, o, "Assembly", "1", "30")

		groups := grouper.Group(o, nil)

		require.Len(t, groups, 1)
		require.Len(t, groups[0].Lines, 2)
		assert.True(t, groups[0].Lines[0].Line.ID().IsEqual(desk.ID()))
		assert.True(t, groups[0].Lines[1].Line.ID().IsEqual(chair.ID()))
		assert.Equal(t, "WH", groups[0].Key.Warehouse)
		assert.True(t, saleDate.Equal(groups[0].Key.PlannedDate))
	})

	t.Run("should split returns and use the ship-from warehouse", func(t *testing.T) {
		o := newOrder(t, order.InvoiceOnOrder)
		require.NoError(t, o.SetShipFromWarehouse("WEB"))
		addGoods(t, o, "Desk", "-1", "10", kernel.Ship)
		addGoods(t, o, "Chair", "1", "10", kernel.Ship)

		groups := grouper.Group(o, nil)

		require.Len(t, groups, 2)
		assert.Equal(t, shipment.Outgoing, groups[0].Key.Direction)
		assert.Equal(t, shipment.Return, groups[1].Key.Direction)
		assert.Equal(t, "WEB", groups[1].Key.Warehouse)
		assert.Equal(t, "1", groups[1].Lines[0].Quantity.String())
	})

	t.Run("should only group quantities not shipped yet", func(t *testing.T) {
		o := newOrder(t, order.InvoiceOnOrder)
		desk := addGoods(t, o, "Desk", "5", "10", kernel.PickUp)
		chair := addGoods(t, o, "Chair", "1", "10", kernel.PickUp)

		groups := grouper.Group(o, services.ShippedQuantities{
			desk.ID():  decimal.NewFromInt(2),
			chair.ID(): decimal.NewFromInt(1),
		})

		require.Len(t, groups, 1)
		require.Len(t, groups[0].Lines, 1)
		assert.Equal(t, "3", groups[0].Lines[0].Quantity.String())
	})

	t.Run("should split per requested date", func(t *testing.T) {
		o := newOrder(t, order.InvoiceOnOrder)
		p, err := order.NewProduct(kernel.NewUUID(), "Desk", true)
		require.NoError(t, err)
		later := saleDate.Add(72 * time.Hour)
		line, err := order.NewLine(kernel.NewUUID(), &p, "", decimal.NewFromInt(1), decimal.NewFromInt(1),
			decimal.Zero, kernel.Ship, &later)
		require.NoError(t, err)
		require.NoError(t, o.AddLine(line))
		addGoods(t, o, "Chair", "1", "10", kernel.Ship)

		groups := grouper.Group(o, nil)

		require.Len(t, groups, 2)
		assert.True(t, groups[1].Key.PlannedDate.Equal(later))
	})

	t.Run("should apply the key extension", func(t *testing.T) {
		o := newOrder(t, order.InvoiceOnOrder)
		addGoods(t, o, "Desk", "1", "10", kernel.PickUp)
		addGoods(t, o, "Chair", "1", "10", kernel.PickUp)

		groups := services.NewOrderLineGrouper(services.PerLineKeyExtension{}).Group(o, nil)

		assert.Len(t, groups, 2)
	})

	t.Run("should be deterministic", func(t *testing.T) {
		o := newOrder(t, order.InvoiceOnOrder)
		addGoods(t, o, "Desk", "1", "10", kernel.Ship)
		addGoods(t, o, "Chair", "-1", "10", kernel.PickUp)
		addGoods(t, o, "Lamp", "1", "10", kernel.PickUp)

		assert.Equal(t, grouper.Group(o, nil), grouper.Group(o, nil))
	})
}
