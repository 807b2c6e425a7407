package http

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
)

// Use case ports of the HTTP adapter. The command and query handlers of the core
// implement them.
type (
	OrderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}

	OrderConfirmer interface {
		Handle(ctx context.Context, cmd commands.ConfirmOrderCommand) error
	}

	OrderProcessor interface {
		Handle(ctx context.Context, cmd commands.ProcessOrderCommand) error
	}

	RoundOffReconciler interface {
		Handle(ctx context.Context, cmd commands.ReconcileRoundOffCommand) error
	}

	ShipmentCompleter interface {
		Handle(ctx context.Context, cmd commands.CompleteShipmentCommand) error
	}

	InvoicePoster interface {
		Handle(ctx context.Context, cmd commands.PostInvoiceCommand) error
	}

	InvoicePayer interface {
		Handle(ctx context.Context, cmd commands.PayInvoiceCommand) error
	}

	InvoiceCanceller interface {
		Handle(ctx context.Context, cmd commands.CancelInvoiceCommand) error
	}

	OrderReader interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}

	PendingOrdersReader interface {
		Handle(ctx context.Context, query queries.GetPendingOrdersQuery) ([]queries.GetPendingOrdersQueryResponse, error)
	}

	RecentOrdersReader interface {
		Handle(ctx context.Context, query queries.GetRecentOrdersQuery) ([]queries.GetRecentOrdersQueryResponse, error)
	}

	ShipmentGroupsReader interface {
		Handle(ctx context.Context, query queries.GetShipmentGroupsQuery) ([]queries.GetShipmentGroupsQueryResponse, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder       OrderCreator
	ConfirmOrder      OrderConfirmer
	ProcessOrder      OrderProcessor
	ReconcileRoundOff RoundOffReconciler
	CompleteShipment  ShipmentCompleter
	PostInvoice       InvoicePoster
	PayInvoice        InvoicePayer
	CancelInvoice     InvoiceCanceller
	GetOrder          OrderReader
	GetPendingOrders  PendingOrdersReader
	GetRecentOrders   RecentOrdersReader
	GetShipmentGroups ShipmentGroupsReader
}
