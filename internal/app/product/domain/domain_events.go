package domain

import "time"

// DomainEvent is a fact about a product that downstream consumers care about.
type DomainEvent interface {
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// ProductCreatedEvent is raised when a product is created.
type ProductCreatedEvent struct {
	ProductID   string
	ProductName string
	CreatedAt   time.Time
}

func (e *ProductCreatedEvent) EventType() string { return EventProductCreated }
func (e *ProductCreatedEvent) AggregateID() string { return e.ProductID }
func (e *ProductCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

// ProductUpdatedEvent is raised when a product is replaced by an update.
type ProductUpdatedEvent struct {
	ProductID   string
	ProductName string
	UpdatedAt   time.Time
}

func (e *ProductUpdatedEvent) EventType() string { return EventProductUpdated }
func (e *ProductUpdatedEvent) AggregateID() string { return e.ProductID }
func (e *ProductUpdatedEvent) OccurredAt() time.Time { return e.UpdatedAt }

// ProductDeletedEvent is raised when a product is removed.
type ProductDeletedEvent struct {
	ProductID   string
	ProductName string
	DeletedAt   time.Time
}

func (e *ProductDeletedEvent) EventType() string { return EventProductDeleted }
func (e *ProductDeletedEvent) AggregateID() string { return e.ProductID }
func (e *ProductDeletedEvent) OccurredAt() time.Time { return e.DeletedAt }
