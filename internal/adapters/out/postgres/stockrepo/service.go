package stockrepo

import (
	"context"
	"sort"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockReservationService implements StockReservationService with GORM.
// Stock rows are locked in key order, so concurrent batches cannot deadlock.
type GormStockReservationService struct {
	db *gorm.DB
}

func NewGormStockReservationService(db *gorm.DB) *GormStockReservationService {
	return &GormStockReservationService{db: db}
}

type stockKey struct {
	productID uuid.UUID
	warehouse string
}

type demand struct {
	key      stockKey
	name     string
	quantity decimal.Decimal
}

// demandOf sums the move quantities of the shipments per product and warehouse.
func demandOf(shipments []*shipment.Shipment) []demand {
	index := make(map[stockKey]int)
	var out []demand
	for _, s := range shipments {
		for _, m := range s.Moves() {
			key := stockKey{productID: m.ProductID().Bytes(), warehouse: s.Warehouse()}
			i, ok := index[key]
			if !ok {
				i = len(out)
				index[key] = i
				out = append(out, demand{key: key, name: m.ProductName()})
			}
			out[i].quantity = out[i].quantity.Add(m.Quantity())
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].key.warehouse != out[j].key.warehouse {
			return out[i].key.warehouse < out[j].key.warehouse
		}
		return out[i].key.productID.String() < out[j].key.productID.String()
	})
	return out
}

// TryAssign locks the stock rows of the batch and reserves them only when every
// product is available in full.
func (s *GormStockReservationService) TryAssign(ctx context.Context, shipments []*shipment.Shipment) ([]string, error) {
	demands := demandOf(shipments)
	db := s.db.WithContext(ctx)

	levels := make([]StockLevelDTO, len(demands))
	var unsatisfied []string
	for i, d := range demands {
		var level StockLevelDTO
		result := db.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("product_id = ? AND warehouse = ?", d.key.productID, d.key.warehouse).
			Limit(1).Find(&level)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 || level.Available().LessThan(d.quantity) {
			unsatisfied = append(unsatisfied, d.name)
			continue
		}
		levels[i] = level
	}
	if len(unsatisfied) > 0 {
		return unsatisfied, nil
	}

	for i, d := range demands {
		err := db.Model(&StockLevelDTO{}).
			Where("product_id = ? AND warehouse = ?", levels[i].ProductID, levels[i].Warehouse).
			Update("reserved", gorm.Expr("reserved + ?", d.quantity)).Error
		if err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// Consume removes shipped quantities from stock and releases their reservation.
func (s *GormStockReservationService) Consume(ctx context.Context, shipments []*shipment.Shipment) error {
	db := s.db.WithContext(ctx)
	for _, d := range demandOf(shipments) {
		err := db.Model(&StockLevelDTO{}).
			Where("product_id = ? AND warehouse = ?", d.key.productID, d.key.warehouse).
			Updates(map[string]any{
				"on_hand":  gorm.Expr("on_hand - ?", d.quantity),
				"reserved": gorm.Expr("GREATEST(reserved - ?, 0)", d.quantity),
			}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// Replenish puts returned quantities back on hand, creating missing stock rows.
func (s *GormStockReservationService) Replenish(ctx context.Context, shipments []*shipment.Shipment) error {
	db := s.db.WithContext(ctx)
	for _, d := range demandOf(shipments) {
		level := StockLevelDTO{
			ProductID:   d.key.productID,
			Warehouse:   d.key.warehouse,
			ProductName: d.name,
			OnHand:      d.quantity,
			Reserved:    decimal.Zero,
		}
		err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "product_id"}, {Name: "warehouse"}},
			DoUpdates: clause.Assignments(map[string]any{
				"on_hand": gorm.Expr("stock_levels.on_hand + ?", d.quantity),
			}),
		}).Create(&level).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// SetOnHand records a stock count of a product in a warehouse.
func (s *GormStockReservationService) SetOnHand(
	ctx context.Context,
	productID kernel.UUID,
	productName string,
	warehouse string,
	onHand decimal.Decimal,
) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	level := StockLevelDTO{
		ProductID:   productID.Bytes(),
		Warehouse:   warehouse,
		ProductName: productName,
		OnHand:      onHand,
		Reserved:    decimal.Zero,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "warehouse"}},
		DoUpdates: clause.AssignmentColumns([]string{"product_name", "on_hand"}),
	}).Create(&level).Error
}

// Level returns the stock row of a product, or a zero level when none exists.
func (s *GormStockReservationService) Level(
	ctx context.Context,
	productID kernel.UUID,
	warehouse string,
) (StockLevelDTO, error) {
	var level StockLevelDTO
	err := s.db.WithContext(ctx).
		Where("product_id = ? AND warehouse = ?", productID.Bytes(), warehouse).
		Limit(1).Find(&level).Error
	return level, err
}
