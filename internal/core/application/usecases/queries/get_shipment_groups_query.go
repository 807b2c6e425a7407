package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetShipmentGroupsQueryIsNotConstructed = errors.New(
		"GetShipmentGroupsQuery must be created via NewGetShipmentGroupsQuery constructor",
	)
)

// GetShipmentGroupsQuery previews how the quantities of an order not covered by
// shipments yet would be split into shipments. Nothing is created.
type GetShipmentGroupsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetShipmentGroupsQuery(orderID kernel.UUID) (GetShipmentGroupsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetShipmentGroupsQuery{}, err
	}
	return GetShipmentGroupsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShipmentGroupsQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetShipmentGroupsQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentGroupsQueryIsNotConstructed)
}

// GetShipmentGroupsQueryResponse is one future shipment.
type GetShipmentGroupsQueryResponse struct {
	Direction    shipment.Direction
	Warehouse    string
	PlannedDate  time.Time
	DeliveryMode kernel.DeliveryMode
	Lines        []ShipmentGroupLine
}

// ShipmentGroupLine is an order line with the unsigned quantity left to move.
type ShipmentGroupLine struct {
	LineID      kernel.UUID
	Description string
	Quantity    decimal.Decimal
}
