// Package order provides the sales order aggregate.
//
// The package includes:
//   - Order: the aggregate root owning lines, policies and rollup states
//   - Line and Product: signed order lines with an optional catalog reference
//   - Status: the order state machine
//   - InvoiceMethod, ShipmentMethod: processing policies
//   - ShipmentState, InvoiceState: rollups recomputed after every process pass
//
// Key business rules:
//   - Lines are edited only while Draft or Quotation
//   - At most one line per order is a round-off line
//   - Goods lines always carry a delivery mode, other lines never do
//   - A Processing order becomes Done once shipments are sent and invoices paid
package order
