// Package services provides domain services working across the order, shipment
// and invoice aggregates.
//
// The package includes:
//   - RoundOffReconciler: rebuilds the single round-off line of an order
//   - OrderLineGrouper: partitions goods lines into shipment groups
//   - InvoiceLineBuilder: computes the material not billed yet and its invoice lines
//
// None of the services perform I/O; persistence and stock reservation live in the
// application layer.
package services
