// Package stockrepo keeps warehouse stock levels and implements stock reservation
// for shipments on top of row locks.
package stockrepo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockLevelDTO is the stock of one product in one warehouse. Reserved is the part
// of OnHand promised to assigned shipments.
type StockLevelDTO struct {
	ProductID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Warehouse   string          `gorm:"type:varchar(64);primaryKey"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	OnHand      decimal.Decimal `gorm:"type:numeric;not null"`
	Reserved    decimal.Decimal `gorm:"type:numeric;not null"`
}

func (StockLevelDTO) TableName() string {
	return "stock_levels"
}

// Available is the quantity that can still be reserved.
func (d StockLevelDTO) Available() decimal.Decimal {
	return d.OnHand.Sub(d.Reserved)
}
