package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
)

// CancelInvoiceCommandHandler cancels invoices and refreshes the order rollups.
// Whether a later process pass bills the cancelled material again depends on the
// configured rederive policy.
type CancelInvoiceCommandHandler struct {
	uowFactory UoWFactory
}

func NewCancelInvoiceCommandHandler(uowFactory UoWFactory) CancelInvoiceCommandHandler {
	return CancelInvoiceCommandHandler{uowFactory: uowFactory}
}

func (h *CancelInvoiceCommandHandler) Handle(ctx context.Context, cmd CancelInvoiceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return changeInvoice(ctx, h.uowFactory, cmd.InvoiceID(), (*invoice.Invoice).Cancel)
}

// PayInvoiceCommandHandler records payments; paying the last open invoice of a
// fully shipped order completes it.
type PayInvoiceCommandHandler struct {
	uowFactory UoWFactory
}

func NewPayInvoiceCommandHandler(uowFactory UoWFactory) PayInvoiceCommandHandler {
	return PayInvoiceCommandHandler{uowFactory: uowFactory}
}

func (h *PayInvoiceCommandHandler) Handle(ctx context.Context, cmd PayInvoiceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return changeInvoice(ctx, h.uowFactory, cmd.InvoiceID(), (*invoice.Invoice).Pay)
}

// PostInvoiceCommandHandler posts Draft invoices. Zero-total invoices are paid on
// posting.
type PostInvoiceCommandHandler struct {
	uowFactory UoWFactory
}

func NewPostInvoiceCommandHandler(uowFactory UoWFactory) PostInvoiceCommandHandler {
	return PostInvoiceCommandHandler{uowFactory: uowFactory}
}

func (h *PostInvoiceCommandHandler) Handle(ctx context.Context, cmd PostInvoiceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return changeInvoice(ctx, h.uowFactory, cmd.InvoiceID(), (*invoice.Invoice).Post)
}

func changeInvoice(
	ctx context.Context,
	uowFactory UoWFactory,
	invoiceID kernel.UUID,
	transition func(*invoice.Invoice) error,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.InvoiceRepository()
	inv, err := repo.Get(ctx, invoiceID)
	if err != nil {
		return err
	}

	if err = transition(inv); err != nil {
		return err
	}
	if err = repo.Update(ctx, inv); err != nil {
		return err
	}

	if err = refreshRollups(ctx, uow, inv.OrderID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
