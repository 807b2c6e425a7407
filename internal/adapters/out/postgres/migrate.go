package postgres

import (
	"fulfillment/internal/adapters/out/postgres/configrepo"
	"fulfillment/internal/adapters/out/postgres/invoicerepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/shipmentrepo"
	"fulfillment/internal/adapters/out/postgres/stockrepo"

	"gorm.io/gorm"
)

// Models lists the tables of the service in creation order.
func Models() []any {
	return []any{
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.MoveDTO{},
		&invoicerepo.InvoiceDTO{},
		&invoicerepo.InvoiceLineDTO{},
		&stockrepo.StockLevelDTO{},
		&configrepo.SettingDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
