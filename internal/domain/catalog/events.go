package catalog

import (
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const (
	AggregateTypeProduct = "Product"

	EventTypeProductCreated = "ProductCreated"
	EventTypeProductUpdated = "ProductUpdated"
	EventTypeProductDeleted = "ProductDeleted"
)

// ProductChangedEvent carries enough of the product to keep the search index in sync
type ProductChangedEvent struct {
	shared.BaseDomainEvent
	ModelNumber string `json:"model_number"`
	Name        string `json:"name"`
}

func NewProductChangedEvent(eventType string, p *Product) *ProductChangedEvent {
	return &ProductChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeProduct, p.ID, uuid.Nil),
		ModelNumber:     p.ModelNumber,
		Name:            p.Name,
	}
}
