// Package orderrepo persists order aggregates and their lines with GORM.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the row of the orders table. Enumerations are stored as integers.
// The timestamps are maintained by GORM and only read by the recent orders query.
type OrderDTO struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Party             string         `gorm:"type:varchar(255);not null"`
	Currency          string         `gorm:"type:char(3);not null"`
	SaleDate          time.Time      `gorm:"not null;index"`
	Warehouse         string         `gorm:"type:varchar(64);not null"`
	ShipFromWarehouse string         `gorm:"type:varchar(64);not null"`
	Status            int            `gorm:"type:smallint;not null;index"`
	InvoiceMethod     int            `gorm:"type:smallint;not null"`
	ShipmentMethod    int            `gorm:"type:smallint;not null"`
	ShipmentState     int            `gorm:"type:smallint;not null"`
	InvoiceState      int            `gorm:"type:smallint;not null"`
	Lines             []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time      `gorm:"autoCreateTime"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime;index"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO is the row of the order_lines table. Product columns are null for
// round-off lines.
type OrderLineDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position       int             `gorm:"type:int;not null"`
	ProductID      *uuid.UUID      `gorm:"type:uuid"`
	ProductName    string          `gorm:"type:varchar(255);not null"`
	ProductIsGoods bool            `gorm:"not null"`
	Description    string          `gorm:"type:text;not null"`
	Quantity       decimal.Decimal `gorm:"type:numeric;not null"`
	UnitPrice      decimal.Decimal `gorm:"type:numeric;not null"`
	TaxAmount      decimal.Decimal `gorm:"type:numeric;not null"`
	DeliveryMode   int             `gorm:"type:smallint;not null"`
	RequestedDate  *time.Time
	IsRoundOff     bool      `gorm:"not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()
	lines := make([]OrderLineDTO, 0, len(aggregate.Lines()))

	for i, l := range aggregate.Lines() {
		dto := OrderLineDTO{
			ID:            l.ID().Bytes(),
			OrderID:       orderID,
			Position:      i,
			Description:   l.Description(),
			Quantity:      l.Quantity(),
			UnitPrice:     l.UnitPrice(),
			TaxAmount:     l.TaxAmount(),
			DeliveryMode:  int(l.DeliveryMode()),
			RequestedDate: l.RequestedDate(),
			IsRoundOff:    l.IsRoundOff(),
		}
		if p := l.Product(); p != nil {
			raw := p.ID().Bytes()
			dto.ProductID = &raw
			dto.ProductName = p.Name()
			dto.ProductIsGoods = p.IsGoods()
		}
		lines = append(lines, dto)
	}

	return OrderDTO{
		ID:                orderID,
		Party:             aggregate.Party(),
		Currency:          aggregate.Currency(),
		SaleDate:          aggregate.SaleDate(),
		Warehouse:         aggregate.Warehouse(),
		ShipFromWarehouse: aggregate.ShipFromWarehouse(),
		Status:            int(aggregate.Status()),
		InvoiceMethod:     int(aggregate.InvoiceMethod()),
		ShipmentMethod:    int(aggregate.ShipmentMethod()),
		ShipmentState:     int(aggregate.ShipmentState()),
		InvoiceState:      int(aggregate.InvoiceState()),
		Lines:             lines,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		line, lineErr := lineToDomain(l)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(
		id,
		dto.Party,
		dto.Currency,
		dto.SaleDate,
		dto.Warehouse,
		dto.ShipFromWarehouse,
		order.Status(dto.Status),
		order.InvoiceMethod(dto.InvoiceMethod),
		order.ShipmentMethod(dto.ShipmentMethod),
		order.ShipmentState(dto.ShipmentState),
		order.InvoiceState(dto.InvoiceState),
		lines,
	)
}

func lineToDomain(dto OrderLineDTO) (*order.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var product *order.Product
	if dto.ProductID != nil {
		productID, idErr := kernel.UUIDFromBytes((*dto.ProductID)[:])
		if idErr != nil {
			return nil, idErr
		}
		p, productErr := order.NewProduct(productID, dto.ProductName, dto.ProductIsGoods)
		if productErr != nil {
			return nil, productErr
		}
		product = &p
	}

	return order.RestoreLine(
		id,
		product,
		dto.Description,
		dto.Quantity,
		dto.UnitPrice,
		dto.TaxAmount,
		kernel.DeliveryMode(dto.DeliveryMode),
		dto.RequestedDate,
		dto.IsRoundOff,
	)
}
