package commands_test

import (
	"context"
	"errors"
	"sort"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// memoryStore is an in-memory database with transactional units of work: a unit of
// work edits a private copy that only Commit publishes.
type memoryStore struct {
	state storeState

	// addedShipments keeps every shipment passed to Add, committed or not.
	addedShipments []*shipment.Shipment
}

type stockLevel struct {
	onHand   decimal.Decimal
	reserved decimal.Decimal
}

type storeState struct {
	orders    map[kernel.UUID]*order.Order
	shipments []*shipment.Shipment
	invoices  []*invoice.Invoice
	stock     map[kernel.UUID]stockLevel
}

func newMemoryStore() *memoryStore {
	return &memoryStore{state: storeState{
		orders: make(map[kernel.UUID]*order.Order),
		stock:  make(map[kernel.UUID]stockLevel),
	}}
}

func (s *memoryStore) Create() commands.UoW {
	return &memoryUoW{store: s}
}

// orderUoWs exposes the store to handlers that only touch orders.
type orderUoWs struct{ store *memoryStore }

func (f orderUoWs) Create() commands.OrderUoW {
	return &memoryUoW{store: f.store}
}

func (s *memoryStore) putOrder(o *order.Order) {
	s.state.orders[o.ID()] = cloneOrder(o)
}

func (s *memoryStore) setStock(productID kernel.UUID, onHand int64) {
	s.state.stock[productID] = stockLevel{onHand: decimal.NewFromInt(onHand)}
}

func (s *memoryStore) order(id kernel.UUID) *order.Order {
	return cloneOrder(s.state.orders[id])
}

func (s *memoryStore) shipmentsOf(orderID kernel.UUID) []*shipment.Shipment {
	var out []*shipment.Shipment
	for _, sh := range s.state.shipments {
		if sh.OrderID().IsEqual(orderID) {
			out = append(out, cloneShipment(sh))
		}
	}
	return out
}

func (s *memoryStore) invoicesOf(orderID kernel.UUID) []*invoice.Invoice {
	var out []*invoice.Invoice
	for _, inv := range s.state.invoices {
		if inv.OrderID().IsEqual(orderID) {
			out = append(out, cloneInvoice(inv))
		}
	}
	return out
}

func (s *memoryStore) activeInvoicesOf(orderID kernel.UUID) []*invoice.Invoice {
	var out []*invoice.Invoice
	for _, inv := range s.invoicesOf(orderID) {
		if inv.IsActive() {
			out = append(out, inv)
		}
	}
	return out
}

type memoryUoW struct {
	store *memoryStore
	tx    *storeState
}

func (u *memoryUoW) Begin(context.Context) error {
	if u.tx != nil {
		return nil
	}
	u.tx = u.store.state.clone()
	return nil
}

func (u *memoryUoW) Commit(context.Context) error {
	if u.tx == nil {
		return errors.New("no transaction")
	}
	u.store.state = *u.tx
	u.tx = nil
	return nil
}

func (u *memoryUoW) Rollback(context.Context) error {
	if u.tx == nil {
		return errors.New("no transaction")
	}
	u.tx = nil
	return nil
}

func (u *memoryUoW) OrderRepository() ports.OrderRepository                 { return memoryOrders{u} }
func (u *memoryUoW) ShipmentRepository() ports.ShipmentRepository           { return memoryShipments{u} }
func (u *memoryUoW) InvoiceRepository() ports.InvoiceRepository             { return memoryInvoices{u} }
func (u *memoryUoW) StockReservationService() ports.StockReservationService { return memoryStock{u} }

type memoryOrders struct{ u *memoryUoW }

func (r memoryOrders) Add(_ context.Context, o *order.Order) error {
	r.u.tx.orders[o.ID()] = cloneOrder(o)
	return nil
}

func (r memoryOrders) Update(_ context.Context, o *order.Order) error {
	if _, ok := r.u.tx.orders[o.ID()]; !ok {
		return errs.NewObjectNotFoundError("order", o.ID().String())
	}
	r.u.tx.orders[o.ID()] = cloneOrder(o)
	return nil
}

func (r memoryOrders) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	o, ok := r.u.tx.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return cloneOrder(o), nil
}

func (r memoryOrders) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.Get(ctx, id)
}

func (r memoryOrders) FindIDsByStatus(_ context.Context, statuses []order.Status, limit int) ([]kernel.UUID, error) {
	var ids []kernel.UUID
	for id, o := range r.u.tx.orders {
		for _, st := range statuses {
			if o.Status() == st {
				ids = append(ids, id)
			}
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

type memoryShipments struct{ u *memoryUoW }

func (r memoryShipments) Add(_ context.Context, s *shipment.Shipment) error {
	r.u.store.addedShipments = append(r.u.store.addedShipments, s)
	r.u.tx.shipments = append(r.u.tx.shipments, cloneShipment(s))
	return nil
}

func (r memoryShipments) Update(_ context.Context, s *shipment.Shipment) error {
	for i, existing := range r.u.tx.shipments {
		if existing.ID().IsEqual(s.ID()) {
			r.u.tx.shipments[i] = cloneShipment(s)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("shipment", s.ID().String())
}

func (r memoryShipments) Get(_ context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	for _, s := range r.u.tx.shipments {
		if s.ID().IsEqual(id) {
			return cloneShipment(s), nil
		}
	}
	return nil, errs.NewObjectNotFoundError("shipment", id.String())
}

func (r memoryShipments) ListByOrder(_ context.Context, orderID kernel.UUID) ([]*shipment.Shipment, error) {
	var out []*shipment.Shipment
	for _, s := range r.u.tx.shipments {
		if s.OrderID().IsEqual(orderID) {
			out = append(out, cloneShipment(s))
		}
	}
	return out, nil
}

type memoryInvoices struct{ u *memoryUoW }

func (r memoryInvoices) Add(_ context.Context, inv *invoice.Invoice) error {
	r.u.tx.invoices = append(r.u.tx.invoices, cloneInvoice(inv))
	return nil
}

func (r memoryInvoices) Update(_ context.Context, inv *invoice.Invoice) error {
	for i, existing := range r.u.tx.invoices {
		if existing.ID().IsEqual(inv.ID()) {
			r.u.tx.invoices[i] = cloneInvoice(inv)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("invoice", inv.ID().String())
}

func (r memoryInvoices) Get(_ context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	for _, inv := range r.u.tx.invoices {
		if inv.ID().IsEqual(id) {
			return cloneInvoice(inv), nil
		}
	}
	return nil, errs.NewObjectNotFoundError("invoice", id.String())
}

func (r memoryInvoices) ListByOrder(_ context.Context, orderID kernel.UUID) ([]*invoice.Invoice, error) {
	var out []*invoice.Invoice
	for _, inv := range r.u.tx.invoices {
		if inv.OrderID().IsEqual(orderID) {
			out = append(out, cloneInvoice(inv))
		}
	}
	return out, nil
}

type memoryStock struct{ u *memoryUoW }

func (s memoryStock) TryAssign(_ context.Context, batch []*shipment.Shipment) ([]string, error) {
	needed := make(map[kernel.UUID]decimal.Decimal)
	names := make(map[kernel.UUID]string)
	var seen []kernel.UUID
	for _, sh := range batch {
		for _, m := range sh.Moves() {
			if _, ok := needed[m.ProductID()]; !ok {
				seen = append(seen, m.ProductID())
			}
			needed[m.ProductID()] = needed[m.ProductID()].Add(m.Quantity())
			names[m.ProductID()] = m.ProductName()
		}
	}

	var unsatisfied []string
	for _, id := range seen {
		level := s.u.tx.stock[id]
		if level.onHand.Sub(level.reserved).LessThan(needed[id]) {
			unsatisfied = append(unsatisfied, names[id])
		}
	}
	if len(unsatisfied) > 0 {
		return unsatisfied, nil
	}

	for id, q := range needed {
		level := s.u.tx.stock[id]
		level.reserved = level.reserved.Add(q)
		s.u.tx.stock[id] = level
	}
	return nil, nil
}

func (s memoryStock) Consume(_ context.Context, batch []*shipment.Shipment) error {
	for _, sh := range batch {
		for _, m := range sh.Moves() {
			level := s.u.tx.stock[m.ProductID()]
			level.onHand = level.onHand.Sub(m.Quantity())
			level.reserved = level.reserved.Sub(m.Quantity())
			s.u.tx.stock[m.ProductID()] = level
		}
	}
	return nil
}

func (s memoryStock) Replenish(_ context.Context, batch []*shipment.Shipment) error {
	for _, sh := range batch {
		for _, m := range sh.Moves() {
			level := s.u.tx.stock[m.ProductID()]
			level.onHand = level.onHand.Add(m.Quantity())
			s.u.tx.stock[m.ProductID()] = level
		}
	}
	return nil
}

func (st storeState) clone() *storeState {
	c := &storeState{
		orders: make(map[kernel.UUID]*order.Order, len(st.orders)),
		stock:  make(map[kernel.UUID]stockLevel, len(st.stock)),
	}
	for id, o := range st.orders {
		c.orders[id] = cloneOrder(o)
	}
	for _, s := range st.shipments {
		c.shipments = append(c.shipments, cloneShipment(s))
	}
	for _, inv := range st.invoices {
		c.invoices = append(c.invoices, cloneInvoice(inv))
	}
	for id, level := range st.stock {
		c.stock[id] = level
	}
	return c
}

func cloneOrder(o *order.Order) *order.Order {
	if o == nil {
		return nil
	}
	c, err := order.RestoreOrder(o.ID(), o.Party(), o.Currency(), o.SaleDate(), o.Warehouse(),
		o.ShipFromWarehouse(), o.Status(), o.InvoiceMethod(), o.ShipmentMethod(),
		o.ShipmentState(), o.InvoiceState(), o.Lines())
	if err != nil {
		panic(err)
	}
	return c
}

func cloneShipment(s *shipment.Shipment) *shipment.Shipment {
	moves := make([]*shipment.Move, 0, len(s.Moves()))
	for _, m := range s.Moves() {
		mc, err := shipment.RestoreMove(m.ID(), m.OriginLineID(), m.ProductID(), m.ProductName(),
			m.Quantity(), m.Status())
		if err != nil {
			panic(err)
		}
		moves = append(moves, mc)
	}
	c, err := shipment.RestoreShipment(s.ID(), s.OrderID(), s.Direction(), s.DeliveryMode(),
		s.Warehouse(), s.PlannedDate(), s.Status(), moves)
	if err != nil {
		panic(err)
	}
	return c
}

func cloneInvoice(inv *invoice.Invoice) *invoice.Invoice {
	c, err := invoice.RestoreInvoice(inv.ID(), inv.OrderID(), inv.Type(), inv.Status(),
		inv.Trigger(), inv.Currency(), inv.Lines())
	if err != nil {
		panic(err)
	}
	return c
}
