// Package shipmentrepo persists shipments and their stock moves with GORM.
package shipmentrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentDTO is the row of the shipments table.
type ShipmentDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Direction    int       `gorm:"type:smallint;not null"`
	DeliveryMode int       `gorm:"type:smallint;not null"`
	Warehouse    string    `gorm:"type:varchar(64);not null"`
	PlannedDate  time.Time `gorm:"not null"`
	Status       int       `gorm:"type:smallint;not null;index"`
	CreatedAt    time.Time
	Moves        []MoveDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

// MoveDTO is the row of the shipment_moves table.
type MoveDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ShipmentID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position     int             `gorm:"type:int;not null"`
	OriginLineID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName  string          `gorm:"type:varchar(255);not null"`
	Quantity     decimal.Decimal `gorm:"type:numeric;not null"`
	Status       int             `gorm:"type:smallint;not null"`
}

func (MoveDTO) TableName() string {
	return "shipment_moves"
}

func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	shipmentID := aggregate.ID().Bytes()
	moves := make([]MoveDTO, 0, len(aggregate.Moves()))

	for i, m := range aggregate.Moves() {
		moves = append(moves, MoveDTO{
			ID:           m.ID().Bytes(),
			ShipmentID:   shipmentID,
			Position:     i,
			OriginLineID: m.OriginLineID().Bytes(),
			ProductID:    m.ProductID().Bytes(),
			ProductName:  m.ProductName(),
			Quantity:     m.Quantity(),
			Status:       int(m.Status()),
		})
	}

	return ShipmentDTO{
		ID:           shipmentID,
		OrderID:      aggregate.OrderID().Bytes(),
		Direction:    int(aggregate.Direction()),
		DeliveryMode: int(aggregate.DeliveryMode()),
		Warehouse:    aggregate.Warehouse(),
		PlannedDate:  aggregate.PlannedDate(),
		Status:       int(aggregate.Status()),
		Moves:        moves,
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	moves := make([]*shipment.Move, 0, len(dto.Moves))
	for _, m := range dto.Moves {
		move, moveErr := moveToDomain(m)
		if moveErr != nil {
			return nil, moveErr
		}
		moves = append(moves, move)
	}

	return shipment.RestoreShipment(
		id,
		orderID,
		shipment.Direction(dto.Direction),
		kernel.DeliveryMode(dto.DeliveryMode),
		dto.Warehouse,
		dto.PlannedDate,
		shipment.Status(dto.Status),
		moves,
	)
}

func moveToDomain(dto MoveDTO) (*shipment.Move, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	lineID, err := kernel.UUIDFromBytes(dto.OriginLineID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}
	return shipment.RestoreMove(id, lineID, productID, dto.ProductName, dto.Quantity,
		shipment.MoveStatus(dto.Status))
}
