// Package fulfillment drives the shipments and invoices of a Processing order.
//
// The components work on repositories bound to the caller's unit of work, so a
// fatal error in any of them is undone by a single rollback:
//   - ShipmentLifecycle moves shipments through their state machine and keeps the
//     stock service in step
//   - AutoFulfillmentOrchestrator turns shipment groups into shipments and
//     completes pick-up batches in the same call
//   - InvoiceCoordinator derives at most one invoice per pass for the material
//     not billed yet
package fulfillment
