package order

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Product is the catalog reference carried by an order line.
// Only goods move through shipments; services are invoiced directly.
type Product struct {
	id      kernel.UUID
	name    string
	isGoods bool
}

// NewProduct creates a product reference. Name is required because stock shortage
// errors list products by name.
func NewProduct(id kernel.UUID, name string, isGoods bool) (Product, error) {
	if err := id.Validate(); err != nil {
		return Product{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Product{}, errs.NewValueIsRequiredError("product name")
	}
	return Product{id: id, name: name, isGoods: isGoods}, nil
}

func (p Product) ID() kernel.UUID {
	return p.id
}

func (p Product) Name() string {
	return p.name
}

// IsGoods reports whether the product is a tangible item that needs a shipment.
func (p Product) IsGoods() bool {
	return p.isGoods
}

// Validate ensures the product was created via NewProduct.
func (p Product) Validate() error {
	if err := p.id.Validate(); err != nil {
		return errors.Join(errs.NewValueIsRequiredError("product"), err)
	}
	return nil
}
