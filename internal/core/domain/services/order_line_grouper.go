package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/shopspring/decimal"
)

// GroupingKeyExtender adds attributes to the base shipment grouping key of a line.
// Lines with different attributes never share a shipment.
type GroupingKeyExtender interface {
	ExtendKey(o *order.Order, line *order.Line) map[string]string
}

// NoKeyExtension keeps the base grouping key.
type NoKeyExtension struct{}

func (NoKeyExtension) ExtendKey(*order.Order, *order.Line) map[string]string {
	return nil
}

// PerLineKeyExtension ships every order line in its own shipment.
type PerLineKeyExtension struct{}

func (PerLineKeyExtension) ExtendKey(_ *order.Order, line *order.Line) map[string]string {
	return map[string]string{"line": line.ID().String()}
}

// ShippedQuantities holds, per order line, the signed quantity already covered by
// existing shipments. Returns count negatively.
type ShippedQuantities map[kernel.UUID]decimal.Decimal

// ShippedQuantitiesOf sums the quantities moved by the given shipments.
func ShippedQuantitiesOf(shipments []*shipment.Shipment) ShippedQuantities {
	shipped := make(ShippedQuantities)
	for _, s := range shipments {
		for lineID, q := range s.QuantityByLine() {
			shipped[lineID] = shipped[lineID].Add(q)
		}
	}
	return shipped
}

// ShipmentGroupKey partitions order lines into shipments.
type ShipmentGroupKey struct {
	Direction    shipment.Direction
	Warehouse    string
	PlannedDate  time.Time
	DeliveryMode kernel.DeliveryMode
	Attributes   string
}

func (k ShipmentGroupKey) less(other ShipmentGroupKey) bool {
	if k.Direction != other.Direction {
		return k.Direction < other.Direction
	}
	if k.Warehouse != other.Warehouse {
		return k.Warehouse < other.Warehouse
	}
	if !k.PlannedDate.Equal(other.PlannedDate) {
		return k.PlannedDate.Before(other.PlannedDate)
	}
	if k.DeliveryMode != other.DeliveryMode {
		return k.DeliveryMode < other.DeliveryMode
	}
	return k.Attributes < other.Attributes
}

// GroupedLine is a line with the unsigned quantity still to be shipped.
type GroupedLine struct {
	Line     *order.Line
	Quantity decimal.Decimal
}

// ShipmentGroup is the content of one future shipment.
type ShipmentGroup struct {
	Key   ShipmentGroupKey
	Lines []GroupedLine
}

// OrderLineGrouper partitions the goods lines of an order into shipment groups.
// Every eligible line lands in exactly one group and the output order only depends
// on the input.
type OrderLineGrouper struct {
	extender GroupingKeyExtender
}

// NewOrderLineGrouper creates a grouper. A nil extender keeps the base key.
func NewOrderLineGrouper(extender GroupingKeyExtender) OrderLineGrouper {
	if extender == nil {
		extender = NoKeyExtension{}
	}
	return OrderLineGrouper{extender: extender}
}

// Group returns the groups of the quantities not covered by existing shipments.
// A line is eligible when it carries goods, has a delivery mode and a remaining
// quantity different from zero.
func (g OrderLineGrouper) Group(o *order.Order, shipped ShippedQuantities) []ShipmentGroup {
	index := make(map[ShipmentGroupKey]int)
	var groups []ShipmentGroup

	for _, line := range o.Lines() {
		if !line.IsGoods() || !line.DeliveryMode().IsSet() {
			continue
		}
		remaining := line.Quantity().Sub(shipped[line.ID()])
		if remaining.IsZero() {
			continue
		}

		direction := shipment.Outgoing
		if remaining.IsNegative() {
			direction = shipment.Return
		}
		planned := o.LinePlannedDate(line)
		key := ShipmentGroupKey{
			Direction:    direction,
			Warehouse:    o.LineWarehouse(line),
			PlannedDate:  time.Date(planned.Year(), planned.Month(), planned.Day(), 0, 0, 0, 0, time.UTC),
			DeliveryMode: line.DeliveryMode(),
			Attributes:   encodeAttributes(g.extender.ExtendKey(o, line)),
		}

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, ShipmentGroup{Key: key})
		}
		groups[i].Lines = append(groups[i].Lines, GroupedLine{Line: line, Quantity: remaining.Abs()})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Key.less(groups[j].Key)
	})
	return groups
}

func encodeAttributes(attrs map[string]string) string {
	if len(attrs) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(attrs))
	for k, v := range attrs {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ";")
}
