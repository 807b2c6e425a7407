package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/generated/servers"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

var _ servers.ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http"),
	}
}

// CreateOrder handles POST /api/v1/orders - registers a draft order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := newCreateOrderCommand(body)
	if err != nil {
		return s.fail(ctx, err, "Invalid order data")
	}

	if err = s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, servers.CreatedOrder{Id: cmd.OrderID().Bytes()})
}

func newCreateOrderCommand(body servers.NewOrder) (commands.CreateOrderCommand, error) {
	invoiceMethod, err := order.ParseInvoiceMethod(string(body.InvoiceMethod))
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	shipmentMethod, err := order.ParseShipmentMethod(string(body.ShipmentMethod))
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	lines := make([]commands.OrderLineInput, 0, len(body.Lines))
	for _, l := range body.Lines {
		line, lineErr := newOrderLineInput(l)
		if lineErr != nil {
			return commands.CreateOrderCommand{}, lineErr
		}
		lines = append(lines, line)
	}

	return commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		body.Party,
		strings.ToUpper(body.Currency),
		body.SaleDate.Time,
		body.Warehouse,
		deref(body.ShipFromWarehouse),
		invoiceMethod,
		shipmentMethod,
		lines,
	)
}

func newOrderLineInput(l servers.NewOrderLine) (commands.OrderLineInput, error) {
	input := commands.OrderLineInput{
		LineID:      kernel.NewUUID(),
		ProductName: deref(l.ProductName),
		Description: deref(l.Description),
		IsGoods:     l.IsGoods != nil && *l.IsGoods,
	}

	var err error
	if input.Quantity, err = parseDecimal("quantity", l.Quantity); err != nil {
		return commands.OrderLineInput{}, err
	}
	if input.UnitPrice, err = parseDecimal("unit price", l.UnitPrice); err != nil {
		return commands.OrderLineInput{}, err
	}
	if l.TaxAmount != nil {
		if input.TaxAmount, err = parseDecimal("tax amount", *l.TaxAmount); err != nil {
			return commands.OrderLineInput{}, err
		}
	}
	if l.ProductId != nil {
		productID, idErr := kernel.UUIDFromBytes(l.ProductId[:])
		if idErr != nil {
			return commands.OrderLineInput{}, idErr
		}
		input.ProductID = &productID
	}
	if l.DeliveryMode != nil {
		if input.DeliveryMode, err = kernel.ParseDeliveryMode(string(*l.DeliveryMode)); err != nil {
			return commands.OrderLineInput{}, err
		}
	}
	if l.RequestedDate != nil {
		requested := l.RequestedDate.Time
		input.RequestedDate = &requested
	}

	return input, nil
}

// GetPendingOrders handles GET /api/v1/orders/pending.
func (s *Server) GetPendingOrders(ctx echo.Context, params servers.GetPendingOrdersParams) error {
	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewGetPendingOrdersQuery(limit)
	if err != nil {
		return s.fail(ctx, err, "Invalid limit")
	}

	pending, err := s.handlers.GetPendingOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve pending orders")
	}

	response := make([]servers.PendingOrder, len(pending))
	for i, o := range pending {
		response[i] = servers.PendingOrder{
			Id:            o.ID.Bytes(),
			Party:         o.Party,
			SaleDate:      date(o.SaleDate),
			Status:        o.Status.String(),
			ShipmentState: o.ShipmentState.String(),
			InvoiceState:  o.InvoiceState.String(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetRecentOrders handles GET /api/v1/orders/recent.
func (s *Server) GetRecentOrders(ctx echo.Context, params servers.GetRecentOrdersParams) error {
	days, limit := 0, 0
	if params.Days != nil {
		days = *params.Days
	}
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewGetRecentOrdersQuery(days, limit)
	if err != nil {
		return s.fail(ctx, err, "Invalid parameters")
	}

	recent, err := s.handlers.GetRecentOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve recent orders")
	}

	response := make([]servers.RecentOrder, len(recent))
	for i, o := range recent {
		response[i] = servers.RecentOrder{
			Id:        o.ID.Bytes(),
			Party:     o.Party,
			SaleDate:  date(o.SaleDate),
			Status:    o.Status.String(),
			TouchedAt: o.TouchedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ReconcileRoundOff handles POST /api/v1/orders/round-off.
func (s *Server) ReconcileRoundOff(ctx echo.Context) error {
	var body servers.OrderIDs
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	ids := make([]kernel.UUID, 0, len(body.OrderIds))
	for _, raw := range body.OrderIds {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return s.fail(ctx, err, "Invalid order id")
		}
		ids = append(ids, id)
	}

	cmd, err := commands.NewReconcileRoundOffCommand(ids)
	if err != nil {
		return s.fail(ctx, err, "Invalid order ids")
	}

	if err = s.handlers.ReconcileRoundOff.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to reconcile round-off")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID servers.OrderId) error {
	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return s.fail(ctx, err, "Invalid order id")
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.fail(ctx, err, "Invalid order id")
	}

	o, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, orderResponse(o))
}

func orderResponse(o queries.GetOrderQueryResponse) servers.Order {
	response := servers.Order{
		Id:             o.ID.Bytes(),
		Party:          o.Party,
		Currency:       o.Currency,
		SaleDate:       date(o.SaleDate),
		Warehouse:      o.Warehouse,
		Status:         o.Status.String(),
		InvoiceMethod:  o.InvoiceMethod.String(),
		ShipmentMethod: o.ShipmentMethod.String(),
		ShipmentState:  o.ShipmentState.String(),
		InvoiceState:   o.InvoiceState.String(),
		UntaxedAmount:  o.UntaxedAmount.String(),
		TaxAmount:      o.TaxAmount.String(),
		TotalAmount:    o.TotalAmount.String(),
		Lines:          make([]servers.OrderLine, len(o.Lines)),
		Shipments:      make([]servers.Shipment, len(o.Shipments)),
		Invoices:       make([]servers.Invoice, len(o.Invoices)),
	}
	if o.ShipFromWarehouse != "" {
		response.ShipFromWarehouse = &o.ShipFromWarehouse
	}

	for i, l := range o.Lines {
		line := servers.OrderLine{
			Id:          l.ID.Bytes(),
			Description: l.Description,
			Quantity:    l.Quantity.String(),
			UnitPrice:   l.UnitPrice.String(),
			TaxAmount:   l.TaxAmount.String(),
			Amount:      l.Amount.String(),
			IsRoundOff:  l.IsRoundOff,
		}
		if l.ProductID != nil {
			productID := l.ProductID.Bytes()
			line.ProductId = &productID
		}
		if l.DeliveryMode.IsSet() {
			mode := l.DeliveryMode.String()
			line.DeliveryMode = &mode
		}
		if l.RequestedDate != nil {
			requested := date(*l.RequestedDate)
			line.RequestedDate = &requested
		}
		response.Lines[i] = line
	}

	for i, sh := range o.Shipments {
		response.Shipments[i] = servers.Shipment{
			Id:           sh.ID.Bytes(),
			Direction:    sh.Direction.String(),
			DeliveryMode: sh.DeliveryMode.String(),
			Warehouse:    sh.Warehouse,
			PlannedDate:  date(sh.PlannedDate),
			Status:       sh.Status.String(),
		}
	}

	for i, inv := range o.Invoices {
		response.Invoices[i] = servers.Invoice{
			Id:          inv.ID.Bytes(),
			Type:        inv.Type.String(),
			Status:      inv.Status.String(),
			TotalAmount: inv.TotalAmount.String(),
		}
	}

	return response
}

// ConfirmOrder handles POST /api/v1/orders/{orderId}/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context, orderID servers.OrderId) error {
	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return s.fail(ctx, err, "Invalid order id")
	}
	cmd, err := commands.NewConfirmOrderCommand(id)
	if err != nil {
		return s.fail(ctx, err, "Invalid order id")
	}

	if err = s.handlers.ConfirmOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to confirm order")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ProcessOrder handles POST /api/v1/orders/{orderId}/process.
func (s *Server) ProcessOrder(ctx echo.Context, orderID servers.OrderId) error {
	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return s.fail(ctx, err, "Invalid order id")
	}
	cmd, err := commands.NewProcessOrderCommand(id)
	if err != nil {
		return s.fail(ctx, err, "Invalid order id")
	}

	if err = s.handlers.ProcessOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to process order")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetShipmentGroups handles GET /api/v1/orders/{orderId}/shipment-groups.
func (s *Server) GetShipmentGroups(ctx echo.Context, orderID servers.OrderId) error {
	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return s.fail(ctx, err, "Invalid order id")
	}
	query, err := queries.NewGetShipmentGroupsQuery(id)
	if err != nil {
		return s.fail(ctx, err, "Invalid order id")
	}

	groups, err := s.handlers.GetShipmentGroups.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to group order lines")
	}

	response := make([]servers.ShipmentGroup, len(groups))
	for i, g := range groups {
		lines := make([]servers.ShipmentGroupLine, len(g.Lines))
		for j, l := range g.Lines {
			lines[j] = servers.ShipmentGroupLine{
				LineId:      l.LineID.Bytes(),
				Description: l.Description,
				Quantity:    l.Quantity.String(),
			}
		}
		response[i] = servers.ShipmentGroup{
			Direction:    g.Direction.String(),
			DeliveryMode: g.DeliveryMode.String(),
			Warehouse:    g.Warehouse,
			PlannedDate:  date(g.PlannedDate),
			Lines:        lines,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CompleteShipment handles POST /api/v1/shipments/{shipmentId}/complete.
func (s *Server) CompleteShipment(ctx echo.Context, shipmentID servers.ShipmentId) error {
	id, err := kernel.UUIDFromBytes(shipmentID[:])
	if err != nil {
		return s.fail(ctx, err, "Invalid shipment id")
	}
	cmd, err := commands.NewCompleteShipmentCommand(id)
	if err != nil {
		return s.fail(ctx, err, "Invalid shipment id")
	}

	if err = s.handlers.CompleteShipment.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to complete shipment")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PostInvoice handles POST /api/v1/invoices/{invoiceId}/post.
func (s *Server) PostInvoice(ctx echo.Context, invoiceID servers.InvoiceId) error {
	id, err := kernel.UUIDFromBytes(invoiceID[:])
	if err != nil {
		return s.fail(ctx, err, "Invalid invoice id")
	}
	cmd, err := commands.NewPostInvoiceCommand(id)
	if err != nil {
		return s.fail(ctx, err, "Invalid invoice id")
	}

	if err = s.handlers.PostInvoice.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to post invoice")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PayInvoice handles POST /api/v1/invoices/{invoiceId}/pay.
func (s *Server) PayInvoice(ctx echo.Context, invoiceID servers.InvoiceId) error {
	id, err := kernel.UUIDFromBytes(invoiceID[:])
	if err != nil {
		return s.fail(ctx, err, "Invalid invoice id")
	}
	cmd, err := commands.NewPayInvoiceCommand(id)
	if err != nil {
		return s.fail(ctx, err, "Invalid invoice id")
	}

	if err = s.handlers.PayInvoice.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to pay invoice")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelInvoice handles POST /api/v1/invoices/{invoiceId}/cancel.
func (s *Server) CancelInvoice(ctx echo.Context, invoiceID servers.InvoiceId) error {
	id, err := kernel.UUIDFromBytes(invoiceID[:])
	if err != nil {
		return s.fail(ctx, err, "Invalid invoice id")
	}
	cmd, err := commands.NewCancelInvoiceCommand(id)
	if err != nil {
		return s.fail(ctx, err, "Invalid invoice id")
	}

	if err = s.handlers.CancelInvoice.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to cancel invoice")
	}

	return ctx.NoContent(http.StatusNoContent)
}

func parseDecimal(name, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return d, nil
}

func date(t time.Time) openapi_types.Date {
	return openapi_types.Date{Time: t}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
