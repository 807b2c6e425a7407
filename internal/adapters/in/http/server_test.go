package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apihttp "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/generated/servers"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCommandHandler[C any] struct{ mock.Mock }

func (m *MockCommandHandler[C]) Handle(ctx context.Context, cmd C) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockQueryHandler[Q, R any] struct{ mock.Mock }

func (m *MockQueryHandler[Q, R]) Handle(ctx context.Context, query Q) (R, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(R), args.Error(1)
}

type apiFixture struct {
	e *echo.Echo

	createOrder       *MockCommandHandler[commands.CreateOrderCommand]
	confirmOrder      *MockCommandHandler[commands.ConfirmOrderCommand]
	processOrder      *MockCommandHandler[commands.ProcessOrderCommand]
	reconcileRoundOff *MockCommandHandler[commands.ReconcileRoundOffCommand]
	completeShipment  *MockCommandHandler[commands.CompleteShipmentCommand]
	postInvoice       *MockCommandHandler[commands.PostInvoiceCommand]
	payInvoice        *MockCommandHandler[commands.PayInvoiceCommand]
	cancelInvoice     *MockCommandHandler[commands.CancelInvoiceCommand]
	getOrder          *MockQueryHandler[queries.GetOrderQuery, queries.GetOrderQueryResponse]
	getPending        *MockQueryHandler[queries.GetPendingOrdersQuery, []queries.GetPendingOrdersQueryResponse]
	getRecent         *MockQueryHandler[queries.GetRecentOrdersQuery, []queries.GetRecentOrdersQueryResponse]
	getGroups         *MockQueryHandler[queries.GetShipmentGroupsQuery, []queries.GetShipmentGroupsQueryResponse]
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	f := &apiFixture{
		createOrder:       &MockCommandHandler[commands.CreateOrderCommand]{},
		confirmOrder:      &MockCommandHandler[commands.ConfirmOrderCommand]{},
		processOrder:      &MockCommandHandler[commands.ProcessOrderCommand]{},
		reconcileRoundOff: &MockCommandHandler[commands.ReconcileRoundOffCommand]{},
		completeShipment:  &MockCommandHandler[commands.CompleteShipmentCommand]{},
		postInvoice:       &MockCommandHandler[commands.PostInvoiceCommand]{},
		payInvoice:        &MockCommandHandler[commands.PayInvoiceCommand]{},
		cancelInvoice:     &MockCommandHandler[commands.CancelInvoiceCommand]{},
		getOrder:          &MockQueryHandler[queries.GetOrderQuery, queries.GetOrderQueryResponse]{},
		getPending:        &MockQueryHandler[queries.GetPendingOrdersQuery, []queries.GetPendingOrdersQueryResponse]{},
		getRecent:         &MockQueryHandler[queries.GetRecentOrdersQuery, []queries.GetRecentOrdersQueryResponse]{},
		getGroups:         &MockQueryHandler[queries.GetShipmentGroupsQuery, []queries.GetShipmentGroupsQueryResponse]{},
	}

	server := apihttp.NewServer(apihttp.Handlers{
		CreateOrder:       f.createOrder,
		ConfirmOrder:      f.confirmOrder,
		ProcessOrder:      f.processOrder,
		ReconcileRoundOff: f.reconcileRoundOff,
		CompleteShipment:  f.completeShipment,
		PostInvoice:       f.postInvoice,
		PayInvoice:        f.payInvoice,
		CancelInvoice:     f.cancelInvoice,
		GetOrder:          f.getOrder,
		GetPendingOrders:  f.getPending,
		GetRecentOrders:   f.getRecent,
		GetShipmentGroups: f.getGroups,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	doc, err := servers.GetSwagger()
	require.NoError(t, err)
	f.e, err = apihttp.NewRouter(server, doc)
	require.NoError(t, err)

	return f
}

func (f *apiFixture) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) servers.Error {
	t.Helper()
	var body servers.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

const newOrderBody = `{
	"party": "ACME",
	"currency": "eur",
	"saleDate": "2024-05-10",
	"warehouse": "WH",
	"invoiceMethod": "shipment",
	"shipmentMethod": "order",
	"lines": [
		{"productName": "Desk", "isGoods": true, "quantity": "2", "unitPrice": "100.25",
		 "taxAmount": "4.1", "deliveryMode": "ship", "requestedDate": "2024-05-20"},
		{"description": "Assembly", "quantity": "1", "unitPrice": "30"}
	]
}`

func TestServer_CreateOrder(t *testing.T) {
	t.Run("should create an order from the request", func(t *testing.T) {
		f := newAPIFixture(t)
		var received commands.CreateOrderCommand
		f.createOrder.On("Handle", mock.Anything, mock.AnythingOfType("commands.CreateOrderCommand")).
			Run(func(args mock.Arguments) { received = args.Get(1).(commands.CreateOrderCommand) }).
			Return(nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/orders", newOrderBody)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var created servers.CreatedOrder
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, received.OrderID().Bytes(), created.Id)

		assert.Equal(t, "ACME", received.Party())
		assert.Equal(t, "EUR", received.Currency())
		assert.Equal(t, order.InvoiceOnShipment, received.InvoiceMethod())
		assert.Equal(t, order.ShipmentOnOrder, received.ShipmentMethod())
		assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), received.SaleDate())

		lines := received.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, "Desk", lines[0].ProductName)
		assert.True(t, lines[0].IsGoods)
		assert.Equal(t, kernel.Ship, lines[0].DeliveryMode)
		assert.True(t, decimal.RequireFromString("100.25").Equal(lines[0].UnitPrice))
		assert.True(t, decimal.RequireFromString("4.1").Equal(lines[0].TaxAmount))
		require.NotNil(t, lines[0].RequestedDate)
		assert.Equal(t, "Assembly", lines[1].Description)
		assert.False(t, lines[1].IsGoods)
		assert.Equal(t, kernel.NoDeliveryMode, lines[1].DeliveryMode)
		f.createOrder.AssertExpectations(t)
	})

	t.Run("should reject a body that does not match the schema", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/orders",
			strings.Replace(newOrderBody, `"quantity": "2"`, `"quantity": "two"`, 1))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, http.StatusBadRequest, decodeError(t, rec).Code)
		f.createOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should reject an order without lines", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/orders", `{"party": "ACME", "currency": "EUR",
			"saleDate": "2024-05-10", "warehouse": "WH", "invoiceMethod": "order",
			"shipmentMethod": "order", "lines": []}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.createOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should map a domain validation error to bad request", func(t *testing.T) {
		f := newAPIFixture(t)
		f.createOrder.On("Handle", mock.Anything, mock.Anything).
			Return(errs.NewValueIsInvalidError("currency")).Once()

		rec := f.do(http.MethodPost, "/api/v1/orders", newOrderBody)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec).Message, "Failed to create order")
	})
}

func TestServer_CommandErrors(t *testing.T) {
	orderID := kernel.NewUUID()

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"not found", errs.NewObjectNotFoundError("order", orderID), http.StatusNotFound},
		{"stock shortage", errs.NewStockShortageError([]string{"Desk"}), http.StatusConflict},
		{"locked", ports.ErrOrderIsLocked, http.StatusConflict},
		{"missing configuration", errs.NewConfigurationError("round_down_account", "EUR", "set it"), http.StatusUnprocessableEntity},
		{"invalid state", errs.NewValueIsInvalidError("order status"), http.StatusBadRequest},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAPIFixture(t)
			f.processOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ProcessOrderCommand) bool {
				return cmd.OrderID().IsEqual(orderID)
			})).Return(tt.err).Once()

			rec := f.do(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/process", "")

			assert.Equal(t, tt.wantCode, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, body.Code)
			if tt.wantCode == http.StatusInternalServerError {
				assert.Equal(t, "Failed to process order", body.Message)
			}
			f.processOrder.AssertExpectations(t)
		})
	}
}

func TestServer_Commands(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("should confirm an order", func(t *testing.T) {
		f := newAPIFixture(t)
		f.confirmOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ConfirmOrderCommand) bool {
			return cmd.OrderID().IsEqual(id)
		})).Return(nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/orders/"+id.String()+"/confirm", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		f.confirmOrder.AssertExpectations(t)
	})

	t.Run("should complete a shipment", func(t *testing.T) {
		f := newAPIFixture(t)
		f.completeShipment.On("Handle", mock.Anything, mock.Anything).Return(nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/shipments/"+id.String()+"/complete", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		f.completeShipment.AssertExpectations(t)
	})

	t.Run("should drive invoice transitions", func(t *testing.T) {
		f := newAPIFixture(t)
		f.postInvoice.On("Handle", mock.Anything, mock.Anything).Return(nil).Once()
		f.payInvoice.On("Handle", mock.Anything, mock.Anything).Return(nil).Once()
		f.cancelInvoice.On("Handle", mock.Anything, mock.Anything).Return(nil).Once()

		for _, action := range []string{"post", "pay", "cancel"} {
			rec := f.do(http.MethodPost, "/api/v1/invoices/"+id.String()+"/"+action, "")
			assert.Equal(t, http.StatusNoContent, rec.Code, action)
		}

		f.postInvoice.AssertExpectations(t)
		f.payInvoice.AssertExpectations(t)
		f.cancelInvoice.AssertExpectations(t)
	})

	t.Run("should reconcile round-off for the given orders", func(t *testing.T) {
		f := newAPIFixture(t)
		other := kernel.NewUUID()
		f.reconcileRoundOff.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ReconcileRoundOffCommand) bool {
			ids := cmd.OrderIDs()
			return len(ids) == 2 && ids[0].IsEqual(id) && ids[1].IsEqual(other)
		})).Return(nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/orders/round-off",
			`{"orderIds": ["`+id.String()+`", "`+other.String()+`"]}`)

		assert.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
		f.reconcileRoundOff.AssertExpectations(t)
	})

	t.Run("should reject a malformed id", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/orders/not-a-uuid/confirm", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.confirmOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestServer_GetOrder(t *testing.T) {
	t.Run("should render the order with its documents", func(t *testing.T) {
		f := newAPIFixture(t)
		id := kernel.NewUUID()
		productID := kernel.NewUUID()
		saleDate := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
		f.getOrder.On("Handle", mock.Anything, mock.Anything).Return(queries.GetOrderQueryResponse{
			ID:             id,
			Party:          "ACME",
			Currency:       "EUR",
			SaleDate:       saleDate,
			Warehouse:      "WH",
			Status:         order.Processing,
			InvoiceMethod:  order.InvoiceOnShipment,
			ShipmentMethod: order.ShipmentOnOrder,
			ShipmentState:  order.ShipmentStateWaiting,
			InvoiceState:   order.InvoiceStateNone,
			UntaxedAmount:  decimal.RequireFromString("200"),
			TaxAmount:      decimal.RequireFromString("4"),
			TotalAmount:    decimal.RequireFromString("204"),
			Lines: []queries.OrderLineView{{
				ID:           kernel.NewUUID(),
				ProductID:    &productID,
				Description:  "Desk",
				Quantity:     decimal.RequireFromString("2"),
				UnitPrice:    decimal.RequireFromString("100"),
				TaxAmount:    decimal.RequireFromString("4"),
				Amount:       decimal.RequireFromString("200"),
				DeliveryMode: kernel.Ship,
			}},
			Shipments: []queries.ShipmentView{{
				ID:           kernel.NewUUID(),
				Direction:    shipment.Outgoing,
				DeliveryMode: kernel.Ship,
				Warehouse:    "WH",
				PlannedDate:  saleDate,
				Status:       shipment.Waiting,
			}},
			Invoices: []queries.InvoiceView{},
		}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/orders/"+id.String(), "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var body servers.Order
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, id.Bytes(), body.Id)
		assert.Equal(t, order.Processing.String(), body.Status)
		assert.Equal(t, "204", body.TotalAmount)
		assert.Nil(t, body.ShipFromWarehouse)
		require.Len(t, body.Lines, 1)
		assert.Equal(t, "ship", *body.Lines[0].DeliveryMode)
		assert.Equal(t, productID.Bytes(), *body.Lines[0].ProductId)
		assert.Nil(t, body.Lines[0].RequestedDate)
		require.Len(t, body.Shipments, 1)
		assert.Equal(t, shipment.Waiting.String(), body.Shipments[0].Status)
		assert.Equal(t, "2024-05-10", body.Shipments[0].PlannedDate.String())
		assert.Empty(t, body.Invoices)
	})

	t.Run("should return not found", func(t *testing.T) {
		f := newAPIFixture(t)
		id := kernel.NewUUID()
		f.getOrder.On("Handle", mock.Anything, mock.Anything).
			Return(queries.GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", id)).Once()

		rec := f.do(http.MethodGet, "/api/v1/orders/"+id.String(), "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_GetPendingOrders(t *testing.T) {
	t.Run("should pass the limit and render the orders", func(t *testing.T) {
		f := newAPIFixture(t)
		id := kernel.NewUUID()
		f.getPending.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetPendingOrdersQuery) bool {
			return q.Limit() == 5
		})).Return([]queries.GetPendingOrdersQueryResponse{{
			ID:            id,
			Party:         "ACME",
			SaleDate:      time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
			Status:        order.Confirmed,
			ShipmentState: order.ShipmentStateNone,
			InvoiceState:  order.InvoiceStateNone,
		}}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/orders/pending?limit=5", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var body []servers.PendingOrder
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body, 1)
		assert.Equal(t, id.Bytes(), body[0].Id)
		assert.Equal(t, order.Confirmed.String(), body[0].Status)
		f.getPending.AssertExpectations(t)
	})

	t.Run("should use the default limit", func(t *testing.T) {
		f := newAPIFixture(t)
		f.getPending.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetPendingOrdersQuery) bool {
			return q.Limit() == queries.DefaultPendingOrdersLimit
		})).Return([]queries.GetPendingOrdersQueryResponse{}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/orders/pending", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}

func TestServer_GetRecentOrders(t *testing.T) {
	t.Run("should render recent orders", func(t *testing.T) {
		f := newAPIFixture(t)
		id := kernel.NewUUID()
		touched := time.Date(2024, 5, 12, 9, 30, 0, 0, time.UTC)
		f.getRecent.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetRecentOrdersQuery) bool {
			return q.Days() == 2 && q.Limit() == 20
		})).Return([]queries.GetRecentOrdersQueryResponse{{
			ID:        id,
			Party:     "ACME",
			SaleDate:  time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
			Status:    order.Quotation,
			TouchedAt: touched,
		}}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/orders/recent?days=2&limit=20", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var body []servers.RecentOrder
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body, 1)
		assert.Equal(t, id.Bytes(), body[0].Id)
		assert.Equal(t, order.Quotation.String(), body[0].Status)
		assert.True(t, touched.Equal(body[0].TouchedAt))
		f.getRecent.AssertExpectations(t)
	})

	t.Run("should use the default window", func(t *testing.T) {
		f := newAPIFixture(t)
		f.getRecent.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetRecentOrdersQuery) bool {
			return q.Days() == queries.DefaultRecentOrdersDays
		})).Return([]queries.GetRecentOrdersQueryResponse{}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/orders/recent", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("should reject a window out of range", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.do(http.MethodGet, "/api/v1/orders/recent?days=0", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.getRecent.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestServer_GetShipmentGroups(t *testing.T) {
	f := newAPIFixture(t)
	id := kernel.NewUUID()
	lineID := kernel.NewUUID()
	f.getGroups.On("Handle", mock.Anything, mock.Anything).Return([]queries.GetShipmentGroupsQueryResponse{{
		Direction:    shipment.Outgoing,
		Warehouse:    "WH",
		PlannedDate:  time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		DeliveryMode: kernel.PickUp,
		Lines: []queries.ShipmentGroupLine{{
			LineID:      lineID,
			Description: "Desk",
			Quantity:    decimal.RequireFromString("2"),
		}},
	}}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/orders/"+id.String()+"/shipment-groups", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body []servers.ShipmentGroup
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "pick_up", body[0].DeliveryMode)
	require.Len(t, body[0].Lines, 1)
	assert.Equal(t, lineID.Bytes(), body[0].Lines[0].LineId)
	assert.Equal(t, "2", body[0].Lines[0].Quantity)
}

func TestRouter_Health(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}
