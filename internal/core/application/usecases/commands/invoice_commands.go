package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCancelInvoiceCommandIsNotConstructed = errors.New(
		"CancelInvoiceCommand must be created via NewCancelInvoiceCommand constructor",
	)
	ErrPayInvoiceCommandIsNotConstructed = errors.New(
		"PayInvoiceCommand must be created via NewPayInvoiceCommand constructor",
	)
	ErrPostInvoiceCommandIsNotConstructed = errors.New(
		"PostInvoiceCommand must be created via NewPostInvoiceCommand constructor",
	)
)

// CancelInvoiceCommand voids a Draft or Posted invoice. Shipments are not reopened.
type CancelInvoiceCommand struct { //nolint:recvcheck //using for validation
	invoiceID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelInvoiceCommand(invoiceID kernel.UUID) (CancelInvoiceCommand, error) {
	if err := invoiceID.Validate(); err != nil {
		return CancelInvoiceCommand{}, err
	}
	return CancelInvoiceCommand{invoiceID: invoiceID, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrCancelInvoiceCommandIsNotConstructed)
}

func (c CancelInvoiceCommand) InvoiceID() kernel.UUID {
	return c.invoiceID
}

// PayInvoiceCommand records the payment of a Posted invoice.
type PayInvoiceCommand struct { //nolint:recvcheck //using for validation
	invoiceID kernel.UUID

	guard guard.ConstructorGuard
}

func NewPayInvoiceCommand(invoiceID kernel.UUID) (PayInvoiceCommand, error) {
	if err := invoiceID.Validate(); err != nil {
		return PayInvoiceCommand{}, err
	}
	return PayInvoiceCommand{invoiceID: invoiceID, guard: guard.NewConstructorGuard()}, nil
}

func (c PayInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrPayInvoiceCommandIsNotConstructed)
}

func (c PayInvoiceCommand) InvoiceID() kernel.UUID {
	return c.invoiceID
}

// PostInvoiceCommand posts a Draft invoice, typically one derived on order.
type PostInvoiceCommand struct { //nolint:recvcheck //using for validation
	invoiceID kernel.UUID

	guard guard.ConstructorGuard
}

func NewPostInvoiceCommand(invoiceID kernel.UUID) (PostInvoiceCommand, error) {
	if err := invoiceID.Validate(); err != nil {
		return PostInvoiceCommand{}, err
	}
	return PostInvoiceCommand{invoiceID: invoiceID, guard: guard.NewConstructorGuard()}, nil
}

func (c PostInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrPostInvoiceCommandIsNotConstructed)
}

func (c PostInvoiceCommand) InvoiceID() kernel.UUID {
	return c.invoiceID
}
