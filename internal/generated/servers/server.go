// Package servers holds the HTTP contract of the service: the OpenAPI document,
// its models and the echo bindings, laid out the way oapi-codegen produces them.
package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Register a draft sales order with its lines
	// (POST /orders)
	CreateOrder(ctx echo.Context) error
	// List orders waiting for processing passes
	// (GET /orders/pending)
	GetPendingOrders(ctx echo.Context, params GetPendingOrdersParams) error
	// List orders in progress changed within the last days
	// (GET /orders/recent)
	GetRecentOrders(ctx echo.Context, params GetRecentOrdersParams) error
	// Rebuild the round-off line of the given orders, all or nothing
	// (POST /orders/round-off)
	ReconcileRoundOff(ctx echo.Context) error
	// Read an order with its lines, shipments and invoices
	// (GET /orders/{orderId})
	GetOrder(ctx echo.Context, orderId OrderId) error
	// Confirm a draft or quoted order
	// (POST /orders/{orderId}/confirm)
	ConfirmOrder(ctx echo.Context, orderId OrderId) error
	// Run one fulfillment pass over a confirmed order
	// (POST /orders/{orderId}/process)
	ProcessOrder(ctx echo.Context, orderId OrderId) error
	// Preview the shipments the next pass would create
	// (GET /orders/{orderId}/shipment-groups)
	GetShipmentGroups(ctx echo.Context, orderId OrderId) error
	// Report a shipment as shipped or a return as received
	// (POST /shipments/{shipmentId}/complete)
	CompleteShipment(ctx echo.Context, shipmentId ShipmentId) error
	// Post a draft invoice
	// (POST /invoices/{invoiceId}/post)
	PostInvoice(ctx echo.Context, invoiceId InvoiceId) error
	// Record the payment of a posted invoice
	// (POST /invoices/{invoiceId}/pay)
	PayInvoice(ctx echo.Context, invoiceId InvoiceId) error
	// Cancel an unpaid invoice
	// (POST /invoices/{invoiceId}/cancel)
	CancelInvoice(ctx echo.Context, invoiceId InvoiceId) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindUUIDPathParam(ctx echo.Context, name string, dest *openapi_types.UUID) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

// GetPendingOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetPendingOrders(ctx echo.Context) error {
	var params GetPendingOrdersParams

	err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	return w.Handler.GetPendingOrders(ctx, params)
}

// GetRecentOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetRecentOrders(ctx echo.Context) error {
	var params GetRecentOrdersParams

	err := runtime.BindQueryParameter("form", true, false, "days", ctx.QueryParams(), &params.Days)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter days: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	return w.Handler.GetRecentOrders(ctx, params)
}

// ReconcileRoundOff converts echo context to params.
func (w *ServerInterfaceWrapper) ReconcileRoundOff(ctx echo.Context) error {
	return w.Handler.ReconcileRoundOff(ctx)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	var orderID OrderId
	if err := bindUUIDPathParam(ctx, "orderId", &orderID); err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderID)
}

// ConfirmOrder converts echo context to params.
func (w *ServerInterfaceWrapper) ConfirmOrder(ctx echo.Context) error {
	var orderID OrderId
	if err := bindUUIDPathParam(ctx, "orderId", &orderID); err != nil {
		return err
	}
	return w.Handler.ConfirmOrder(ctx, orderID)
}

// ProcessOrder converts echo context to params.
func (w *ServerInterfaceWrapper) ProcessOrder(ctx echo.Context) error {
	var orderID OrderId
	if err := bindUUIDPathParam(ctx, "orderId", &orderID); err != nil {
		return err
	}
	return w.Handler.ProcessOrder(ctx, orderID)
}

// GetShipmentGroups converts echo context to params.
func (w *ServerInterfaceWrapper) GetShipmentGroups(ctx echo.Context) error {
	var orderID OrderId
	if err := bindUUIDPathParam(ctx, "orderId", &orderID); err != nil {
		return err
	}
	return w.Handler.GetShipmentGroups(ctx, orderID)
}

// CompleteShipment converts echo context to params.
func (w *ServerInterfaceWrapper) CompleteShipment(ctx echo.Context) error {
	var shipmentID ShipmentId
	if err := bindUUIDPathParam(ctx, "shipmentId", &shipmentID); err != nil {
		return err
	}
	return w.Handler.CompleteShipment(ctx, shipmentID)
}

// PostInvoice converts echo context to params.
func (w *ServerInterfaceWrapper) PostInvoice(ctx echo.Context) error {
	var invoiceID InvoiceId
	if err := bindUUIDPathParam(ctx, "invoiceId", &invoiceID); err != nil {
		return err
	}
	return w.Handler.PostInvoice(ctx, invoiceID)
}

// PayInvoice converts echo context to params.
func (w *ServerInterfaceWrapper) PayInvoice(ctx echo.Context) error {
	var invoiceID InvoiceId
	if err := bindUUIDPathParam(ctx, "invoiceId", &invoiceID); err != nil {
		return err
	}
	return w.Handler.PayInvoice(ctx, invoiceID)
}

// CancelInvoice converts echo context to params.
func (w *ServerInterfaceWrapper) CancelInvoice(ctx echo.Context) error {
	var invoiceID InvoiceId
	if err := bindUUIDPathParam(ctx, "invoiceId", &invoiceID); err != nil {
		return err
	}
	return w.Handler.CancelInvoice(ctx, invoiceID)
}

// EchoRouter is the subset of echo routing used to register the handlers.
// Both *echo.Echo and *echo.Group implement it.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the handlers, prefixing every path with baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/orders/pending", wrapper.GetPendingOrders)
	router.GET(baseURL+"/orders/recent", wrapper.GetRecentOrders)
	router.POST(baseURL+"/orders/round-off", wrapper.ReconcileRoundOff)
	router.GET(baseURL+"/orders/:orderId", wrapper.GetOrder)
	router.POST(baseURL+"/orders/:orderId/confirm", wrapper.ConfirmOrder)
	router.POST(baseURL+"/orders/:orderId/process", wrapper.ProcessOrder)
	router.GET(baseURL+"/orders/:orderId/shipment-groups", wrapper.GetShipmentGroups)
	router.POST(baseURL+"/shipments/:shipmentId/complete", wrapper.CompleteShipment)
	router.POST(baseURL+"/invoices/:invoiceId/post", wrapper.PostInvoice)
	router.POST(baseURL+"/invoices/:invoiceId/pay", wrapper.PayInvoice)
	router.POST(baseURL+"/invoices/:invoiceId/cancel", wrapper.CancelInvoice)
}
