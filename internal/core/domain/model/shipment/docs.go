// Package shipment models the batches of goods derived from an order.
//
// A Shipment groups the moves of order lines sharing a warehouse, a planned
// date and a delivery mode. Outgoing shipments go Draft, Waiting, Assigned,
// Packed, Done; returns go Draft, Received, Done.
package shipment
