package queries

import (
	"context"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// ShipmentGroupsReader gives read access to orders and their shipments.
type ShipmentGroupsReader interface {
	OrderRepository() ports.OrderRepository
	ShipmentRepository() ports.ShipmentRepository
}

// GetShipmentGroupsQueryHandler runs the order line grouper over stored data.
// It uses the same grouper as order processing, so the preview matches the
// shipments the next process pass would create.
type GetShipmentGroupsQueryHandler struct {
	reader  ShipmentGroupsReader
	grouper services.OrderLineGrouper
}

func NewGetShipmentGroupsQueryHandler(
	reader ShipmentGroupsReader,
	grouper services.OrderLineGrouper,
) GetShipmentGroupsQueryHandler {
	return GetShipmentGroupsQueryHandler{reader: reader, grouper: grouper}
}

func (h GetShipmentGroupsQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentGroupsQuery,
) ([]GetShipmentGroupsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.reader.OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}
	shipments, err := h.reader.ShipmentRepository().ListByOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}

	groups := h.grouper.Group(o, services.ShippedQuantitiesOf(shipments))

	result := make([]GetShipmentGroupsQueryResponse, 0, len(groups))
	for _, g := range groups {
		resp := GetShipmentGroupsQueryResponse{
			Direction:    g.Key.Direction,
			Warehouse:    g.Key.Warehouse,
			PlannedDate:  g.Key.PlannedDate,
			DeliveryMode: g.Key.DeliveryMode,
			Lines:        make([]ShipmentGroupLine, 0, len(g.Lines)),
		}
		for _, l := range g.Lines {
			resp.Lines = append(resp.Lines, ShipmentGroupLine{
				LineID:      l.Line.ID(),
				Description: l.Line.Description(),
				Quantity:    l.Quantity,
			})
		}
		result = append(result, resp)
	}

	return result, nil
}
