// Package kernel holds the value objects shared by the order, shipment and invoice
// aggregates: UUID identifiers, the DeliveryMode of lines and shipments, and the
// money helpers built on github.com/shopspring/decimal.
package kernel
