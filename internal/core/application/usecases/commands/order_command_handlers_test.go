package commands_test

import (
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfirmOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should confirm a draft order", func(t *testing.T) {
		store := newMemoryStore()
		o := newDraftOrder(t, order.InvoiceOnOrder, order.ShipmentOnOrder)
		addGoods(t, o, "Desk", "1", "100", kernel.Ship)
		store.putOrder(o)

		cmd, err := commands.NewConfirmOrderCommand(o.ID())
		require.NoError(t, err)
		h := commands.NewConfirmOrderCommandHandler(orderUoWs{store})

		require.NoError(t, h.Handle(t.Context(), cmd))
		assert.Equal(t, order.Confirmed, store.order(o.ID()).Status())
	})

	t.Run("should refuse to confirm twice", func(t *testing.T) {
		store := newMemoryStore()
		o := newDraftOrder(t, order.InvoiceOnOrder, order.ShipmentOnOrder)
		addGoods(t, o, "Desk", "1", "100", kernel.Ship)
		store.putOrder(confirm(t, o))

		cmd, err := commands.NewConfirmOrderCommand(o.ID())
		require.NoError(t, err)
		h := commands.NewConfirmOrderCommandHandler(orderUoWs{store})

		require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrValueIsInvalid)
	})

	t.Run("should not commit when the update fails", func(t *testing.T) {
		ctx := t.Context()
		o := newDraftOrder(t, order.InvoiceOnOrder, order.ShipmentOnOrder)
		addGoods(t, o, "Desk", "1", "100", kernel.Ship)

		repo := new(MockOrderRepository)
		uow := new(MockOrderUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
			repo.On("Update", ctx, o).Return(errors.New("update error")).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		cmd, err := commands.NewConfirmOrderCommand(o.ID())
		require.NoError(t, err)
		h := commands.NewConfirmOrderCommandHandler(factory)

		require.Error(t, h.Handle(ctx, cmd))
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})
}

func TestReconcileRoundOffCommandHandler_Handle(t *testing.T) {
	t.Run("should reconcile every order", func(t *testing.T) {
		store := newMemoryStore()
		first := newDraftOrder(t, order.InvoiceOnOrder, order.ShipmentOnOrder)
		addGoods(t, first, "Desk", "1", "200.25", kernel.Ship)
		second := newDraftOrder(t, order.InvoiceOnOrder, order.ShipmentOnOrder)
		addGoods(t, second, "Desk", "-1", "200.25", kernel.Ship)
		require.NoError(t, second.Quote())
		store.putOrder(first)
		store.putOrder(second)

		cmd, err := commands.NewReconcileRoundOffCommand([]kernel.UUID{first.ID(), second.ID()})
		require.NoError(t, err)
		h := commands.NewReconcileRoundOffCommandHandler(orderUoWs{store}, services.NewRoundOffReconciler())

		require.NoError(t, h.Handle(t.Context(), cmd))

		assert.Equal(t, "200", store.order(first.ID()).TotalAmount().String())
		assert.Equal(t, "-201", store.order(second.ID()).TotalAmount().String())
		line, ok := store.order(second.ID()).RoundOffLine()
		require.True(t, ok)
		assert.Equal(t, "0.75", line.UnitPrice().String())
	})

	t.Run("should reconcile no order when one of them fails", func(t *testing.T) {
		store := newMemoryStore()
		editable := newDraftOrder(t, order.InvoiceOnOrder, order.ShipmentOnOrder)
		addGoods(t, editable, "Desk", "1", "200.25", kernel.Ship)
		cancelled := newDraftOrder(t, order.InvoiceOnOrder, order.ShipmentOnOrder)
		addGoods(t, cancelled, "Desk", "1", "200.25", kernel.Ship)
		require.NoError(t, cancelled.Cancel())
		store.putOrder(editable)
		store.putOrder(cancelled)

		cmd, err := commands.NewReconcileRoundOffCommand([]kernel.UUID{editable.ID(), cancelled.ID()})
		require.NoError(t, err)
		h := commands.NewReconcileRoundOffCommandHandler(orderUoWs{store}, services.NewRoundOffReconciler())

		err = h.Handle(t.Context(), cmd)

		require.Error(t, err)
		assert.Contains(t, err.Error(), cancelled.ID().String())
		_, ok := store.order(editable.ID()).RoundOffLine()
		assert.False(t, ok)
	})
	t.Run("should refuse a confirmed order", func(t *testing.T) {
		store := newMemoryStore()
		o := newDraftOrder(t, order.InvoiceOnOrder, order.ShipmentOnOrder)
		addGoods(t, o, "Desk", "1", "200.25", kernel.Ship)
		store.putOrder(confirm(t, o))

		cmd, err := commands.NewReconcileRoundOffCommand([]kernel.UUID{o.ID()})
		require.NoError(t, err)
		h := commands.NewReconcileRoundOffCommandHandler(orderUoWs{store}, services.NewRoundOffReconciler())

		err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		_, ok := store.order(o.ID()).RoundOffLine()
		assert.False(t, ok)
		assert.Equal(t, "200.25", store.order(o.ID()).TotalAmount().String())
	})
}
