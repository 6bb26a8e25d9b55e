package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName         = errors.New("product name is required")
	ErrNegativePrice     = errors.New("price must be greater or equal to zero")
	ErrNegativeStock     = errors.New("stock quantity must be greater or equal to zero")
	ErrInsufficientStock = errors.New("stock quantity is lower than the requested amount")
)

// Product represents the catalog aggregate: a sellable item with its
// available stock.
type Product struct {
	ID            int64
	Name          string
	Price         float64
	StockQuantity int32
	Tags          []string
}

// NewProduct validates the invariants and builds a new Product aggregate.
func NewProduct(id int64, name string, price float64, stock int32) (*Product, error) {
	p := &Product{ID: id}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.Reprice(price); err != nil {
		return nil, err
	}
	if err := p.SetStock(stock); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate enforces invariants on the aggregate.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	if p.StockQuantity < 0 {
		return ErrNegativeStock
	}
	return nil
}

// Rename mutates the product name ensuring the invariant.
func (p *Product) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// Reprice stores the latest unit price.
func (p *Product) Reprice(price float64) error {
	if price < 0 {
		return ErrNegativePrice
	}
	p.Price = price
	return nil
}

// SetStock replaces the absolute stock level.
func (p *Product) SetStock(quantity int32) error {
	if quantity < 0 {
		return ErrNegativeStock
	}
	p.StockQuantity = quantity
	return nil
}

// Reserve decrements stock by quantity when enough units are available.
func (p *Product) Reserve(quantity int32) error {
	if quantity <= 0 {
		return ErrNegativeStock
	}
	if p.StockQuantity < quantity {
		return ErrInsufficientStock
	}
	p.StockQuantity -= quantity
	return nil
}

// Release returns previously reserved units to stock.
func (p *Product) Release(quantity int32) error {
	if quantity <= 0 {
		return ErrNegativeStock
	}
	p.StockQuantity += quantity
	return nil
}

// ReplaceTags swaps the current tag set.
func (p *Product) ReplaceTags(tags []string) {
	p.Tags = append([]string{}, tags...)
}
