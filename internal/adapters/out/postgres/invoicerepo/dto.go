// Package invoicerepo persists invoices and their lines with GORM.
//
// Invoices are never deleted: cancelled ones take part in the bookkeeping of the
// quantities already billed.
package invoicerepo

import (
	"time"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// InvoiceDTO is the row of the invoices table. TotalAmount is denormalized for
// read models.
type InvoiceDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type               int             `gorm:"type:smallint;not null"`
	Status             int             `gorm:"type:smallint;not null;index"`
	TriggerKind        int             `gorm:"type:smallint;not null"`
	TriggerShipmentIDs pq.StringArray  `gorm:"type:text[]"`
	Currency           string          `gorm:"type:char(3);not null"`
	TotalAmount        decimal.Decimal `gorm:"type:numeric;not null"`
	CreatedAt          time.Time
	Lines              []InvoiceLineDTO `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

func (InvoiceDTO) TableName() string {
	return "invoices"
}

// InvoiceLineDTO is the row of the invoice_lines table.
type InvoiceLineDTO struct {
	ID               uint            `gorm:"primaryKey"`
	InvoiceID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position         int             `gorm:"type:int;not null"`
	OriginLineID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	OriginShipmentID *uuid.UUID      `gorm:"type:uuid"`
	Account          string          `gorm:"type:varchar(64);not null"`
	Description      string          `gorm:"type:text;not null"`
	Quantity         decimal.Decimal `gorm:"type:numeric;not null"`
	UnitPrice        decimal.Decimal `gorm:"type:numeric;not null"`
	IsRoundOff       bool            `gorm:"not null"`
}

func (InvoiceLineDTO) TableName() string {
	return "invoice_lines"
}

func fromDomain(aggregate *invoice.Invoice) InvoiceDTO {
	invoiceID := aggregate.ID().Bytes()

	shipmentIDs := make(pq.StringArray, 0, len(aggregate.Trigger().ShipmentIDs()))
	for _, id := range aggregate.Trigger().ShipmentIDs() {
		shipmentIDs = append(shipmentIDs, id.String())
	}

	lines := make([]InvoiceLineDTO, 0, len(aggregate.Lines()))
	for i, l := range aggregate.Lines() {
		dto := InvoiceLineDTO{
			InvoiceID:    invoiceID,
			Position:     i,
			OriginLineID: l.OriginLineID().Bytes(),
			Account:      l.Account(),
			Description:  l.Description(),
			Quantity:     l.Quantity(),
			UnitPrice:    l.UnitPrice(),
			IsRoundOff:   l.IsRoundOff(),
		}
		if id := l.OriginShipmentID(); id != nil {
			raw := id.Bytes()
			dto.OriginShipmentID = &raw
		}
		lines = append(lines, dto)
	}

	return InvoiceDTO{
		ID:                 invoiceID,
		OrderID:            aggregate.OrderID().Bytes(),
		Type:               int(aggregate.Type()),
		Status:             int(aggregate.Status()),
		TriggerKind:        int(aggregate.Trigger().Kind()),
		TriggerShipmentIDs: shipmentIDs,
		Currency:           aggregate.Currency(),
		TotalAmount:        aggregate.TotalAmount(),
		Lines:              lines,
	}
}

func toDomain(dto InvoiceDTO) (*invoice.Invoice, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	shipmentIDs := make([]kernel.UUID, 0, len(dto.TriggerShipmentIDs))
	for _, raw := range dto.TriggerShipmentIDs {
		shipmentID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return nil, idErr
		}
		shipmentIDs = append(shipmentIDs, shipmentID)
	}
	trigger, err := invoice.RestoreTrigger(invoice.TriggerKind(dto.TriggerKind), shipmentIDs)
	if err != nil {
		return nil, err
	}

	lines := make([]invoice.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		line, lineErr := lineToDomain(l)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return invoice.RestoreInvoice(id, orderID, invoice.Type(dto.Type), invoice.Status(dto.Status),
		trigger, dto.Currency, lines)
}

func lineToDomain(dto InvoiceLineDTO) (invoice.Line, error) {
	lineID, err := kernel.UUIDFromBytes(dto.OriginLineID[:])
	if err != nil {
		return invoice.Line{}, err
	}

	var shipmentID *kernel.UUID
	if dto.OriginShipmentID != nil {
		id, idErr := kernel.UUIDFromBytes((*dto.OriginShipmentID)[:])
		if idErr != nil {
			return invoice.Line{}, idErr
		}
		shipmentID = &id
	}

	return invoice.NewLine(lineID, shipmentID, dto.Account, dto.Description, dto.Quantity,
		dto.UnitPrice, dto.IsRoundOff)
}
