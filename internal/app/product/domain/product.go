package domain

import (
	"strings"
	"time"
)

// Product is the aggregate root of the catalog. Domain events raised by its
// lifecycle methods are collected and drained by the usecases into the outbox.
type Product struct {
	id          string
	name        string
	description string
	price       Money
	category    string
	sku         string
	events      []DomainEvent
}

// NewProduct builds a new product and records ProductCreatedEvent.
func NewProduct(id, name, description, category, sku string, price Money, now time.Time) (*Product, error) {
	p, err := build(id, name, description, category, sku, price)
	if err != nil {
		return nil, err
	}
	p.record(&ProductCreatedEvent{ProductID: p.id, ProductName: p.name, CreatedAt: now})
	return p, nil
}

// ReviseProduct builds the full replacement state for an existing product and
// records ProductUpdatedEvent.
func ReviseProduct(id, name, description, category, sku string, price Money, now time.Time) (*Product, error) {
	p, err := build(id, name, description, category, sku, price)
	if err != nil {
		return nil, err
	}
	p.record(&ProductUpdatedEvent{ProductID: p.id, ProductName: p.name, UpdatedAt: now})
	return p, nil
}

// ReconstructProduct rebuilds a Product from persisted state without events.
func ReconstructProduct(id, name, description, category, sku string, price Money) *Product {
	return &Product{
		id:          id,
		name:        name,
		description: description,
		price:       price,
		category:    category,
		sku:         sku,
	}
}

// build keeps every attribute exactly as sent; blank values are rejected by
// validation before a product is built.
func build(id, name, description, category, sku string, price Money) (*Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyProductID
	}
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}
	return &Product{
		id:          id,
		name:        name,
		description: description,
		price:       price,
		category:    category,
		sku:         sku,
	}, nil
}

// MarkDeleted records ProductDeletedEvent on a snapshot of a removed product.
func (p *Product) MarkDeleted(now time.Time) {
	p.record(&ProductDeletedEvent{ProductID: p.id, ProductName: p.name, DeletedAt: now})
}

// Getters

func (p *Product) ID() string { return p.id }
func (p *Product) Name() string { return p.name }
func (p *Product) Description() string { return p.description }
func (p *Product) Price() Money { return p.price }
func (p *Product) Category() string { return p.category }
func (p *Product) Sku() string { return p.sku }

// DomainEvents returns the events recorded since construction.
func (p *Product) DomainEvents() []DomainEvent {
	return p.events
}

func (p *Product) record(ev DomainEvent) {
	p.events = append(p.events, ev)
}
