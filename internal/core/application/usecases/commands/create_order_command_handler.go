package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
)

// CreateOrderCommandHandler registers Draft orders.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle builds the order and its lines and persists them in one transaction.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.Party(), cmd.Currency(), cmd.SaleDate(),
		cmd.Warehouse(), cmd.InvoiceMethod(), cmd.ShipmentMethod())
	if err != nil {
		return err
	}
	if err = o.SetShipFromWarehouse(cmd.ShipFromWarehouse()); err != nil {
		return err
	}

	for i, in := range cmd.Lines() {
		line, lineErr := buildLine(in)
		if lineErr != nil {
			return fmt.Errorf("line %d: %w", i, lineErr)
		}
		if err = o.AddLine(line); err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func buildLine(in OrderLineInput) (*order.Line, error) {
	var product *order.Product
	if in.ProductID != nil {
		p, err := order.NewProduct(*in.ProductID, in.ProductName, in.IsGoods)
		if err != nil {
			return nil, err
		}
		product = &p
	}
	return order.NewLine(in.LineID, product, in.Description, in.Quantity, in.UnitPrice,
		in.TaxAmount, in.DeliveryMode, in.RequestedDate)
}
