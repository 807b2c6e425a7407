package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/core/application/fulfillment"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var saleDate = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

type MockConfigurationProvider struct{ mock.Mock }

func (m *MockConfigurationProvider) RoundDownAccount(ctx context.Context, scope string) (string, error) {
	args := m.Called(ctx, scope)
	return args.String(0), args.Error(1)
}

type MockOrderLocker struct{ mock.Mock }

func (m *MockOrderLocker) Lock(ctx context.Context, orderID kernel.UUID) (func(context.Context) error, error) {
	args := m.Called(ctx, orderID)
	unlock, _ := args.Get(0).(func(context.Context) error)
	return unlock, args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fulfillmentFixture wires the process, completion and invoice handlers on top of
// one memory store.
type fulfillmentFixture struct {
	store  *memoryStore
	config *MockConfigurationProvider

	process  commands.ProcessOrderCommandHandler
	complete commands.CompleteShipmentCommandHandler
	post     commands.PostInvoiceCommandHandler
	pay      commands.PayInvoiceCommandHandler
	cancel   commands.CancelInvoiceCommandHandler
}

func newFulfillmentFixture(t *testing.T, policy services.InvoiceRederivePolicy, locker *MockOrderLocker) *fulfillmentFixture {
	t.Helper()
	f := &fulfillmentFixture{
		store:  newMemoryStore(),
		config: new(MockConfigurationProvider),
	}
	logger := discardLogger()

	var orderLocker ports.OrderLocker
	if locker != nil {
		orderLocker = locker
	}

	f.process = commands.NewProcessOrderCommandHandler(
		f.store,
		orderLocker,
		services.NewOrderLineGrouper(services.NoKeyExtension{}),
		fulfillment.NewAutoFulfillmentOrchestrator(fulfillment.PickUpPolicy{}, logger),
		fulfillment.NewInvoiceCoordinator(services.NewInvoiceLineBuilder(policy), f.config, logger),
		logger,
	)
	f.complete = commands.NewCompleteShipmentCommandHandler(f.store, &f.process, logger)
	f.post = commands.NewPostInvoiceCommandHandler(f.store)
	f.pay = commands.NewPayInvoiceCommandHandler(f.store)
	f.cancel = commands.NewCancelInvoiceCommandHandler(f.store)
	return f
}

func (f *fulfillmentFixture) runProcess(t *testing.T, orderID kernel.UUID) error {
	t.Helper()
	cmd, err := commands.NewProcessOrderCommand(orderID)
	require.NoError(t, err)
	return f.process.Handle(t.Context(), cmd)
}

func (f *fulfillmentFixture) completeShipment(t *testing.T, shipmentID kernel.UUID) error {
	t.Helper()
	cmd, err := commands.NewCompleteShipmentCommand(shipmentID)
	require.NoError(t, err)
	return f.complete.Handle(t.Context(), cmd)
}

func (f *fulfillmentFixture) payInvoice(t *testing.T, invoiceID kernel.UUID) error {
	t.Helper()
	cmd, err := commands.NewPayInvoiceCommand(invoiceID)
	require.NoError(t, err)
	return f.pay.Handle(t.Context(), cmd)
}

func (f *fulfillmentFixture) postInvoice(t *testing.T, invoiceID kernel.UUID) error {
	t.Helper()
	cmd, err := commands.NewPostInvoiceCommand(invoiceID)
	require.NoError(t, err)
	return f.post.Handle(t.Context(), cmd)
}

func (f *fulfillmentFixture) cancelInvoice(t *testing.T, invoiceID kernel.UUID) error {
	t.Helper()
	cmd, err := commands.NewCancelInvoiceCommand(invoiceID)
	require.NoError(t, err)
	return f.cancel.Handle(t.Context(), cmd)
}

func newDraftOrder(t *testing.T, invoiceMethod order.InvoiceMethod, shipmentMethod order.ShipmentMethod) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "ACME", "EUR", saleDate, "WH", invoiceMethod, shipmentMethod)
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

func productID(line *order.Line) kernel.UUID {
	return line.Product().ID()
}

func confirm(t *testing.T, o *order.Order) *order.Order {
	t.Helper()
	require.NoError(t, o.Confirm())
	return o
}
