package catalog

import (
	"strings"

	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a frame or sunglass model in the catalogue
type Product struct {
	shared.BaseAggregateRoot
	ModelNumber string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Attributes  map[AttributeKind]uuid.UUID
	ImagePath   string
	Active      bool
}

// NewProduct creates an active product with no attributes
func NewProduct(modelNumber, name string, price decimal.Decimal) (*Product, error) {
	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Attributes:        make(map[AttributeKind]uuid.UUID),
		Active:            true,
	}
	if err := p.SetModelNumber(modelNumber); err != nil {
		return nil, err
	}
	if err := p.Describe(name, ""); err != nil {
		return nil, err
	}
	if err := p.SetPrice(price); err != nil {
		return nil, err
	}
	p.AddDomainEvent(NewProductChangedEvent(EventTypeProductCreated, p))
	return p, nil
}

// SetModelNumber stores the model number upper-cased
func (p *Product) SetModelNumber(model string) error {
	model, err := shared.RequireText("INVALID_MODEL_NUMBER", "Model number", strings.ToUpper(model), 50)
	if err != nil {
		return err
	}
	p.ModelNumber = model
	p.Touch()
	return nil
}

func (p *Product) Describe(name, description string) error {
	name, err := shared.RequireText("INVALID_NAME", "Product name", name, 200)
	if err != nil {
		return err
	}
	description, err = shared.OptionalText("INVALID_DESCRIPTION", "Description", description, 2000)
	if err != nil {
		return err
	}
	p.Name = name
	p.Description = description
	p.Touch()
	return nil
}

func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	p.Price = price.Round(2)
	p.Touch()
	return nil
}

func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	p.Stock = stock
	p.Touch()
	return nil
}

// SetAttribute assigns (or with nil clears) the lookup value of a kind
func (p *Product) SetAttribute(kind AttributeKind, id *uuid.UUID) error {
	if !kind.IsValid() {
		return shared.NewDomainError("INVALID_ATTRIBUTE_KIND", "Unknown attribute kind")
	}
	if p.Attributes == nil {
		p.Attributes = make(map[AttributeKind]uuid.UUID)
	}
	if id == nil || *id == uuid.Nil {
		delete(p.Attributes, kind)
	} else {
		p.Attributes[kind] = *id
	}
	p.Touch()
	return nil
}

// Attribute returns the id assigned for kind, or nil
func (p *Product) Attribute(kind AttributeKind) *uuid.UUID {
	id, ok := p.Attributes[kind]
	if !ok {
		return nil
	}
	return &id
}

// SetImage records the stored image path and returns the previous one
func (p *Product) SetImage(path string) string {
	old := p.ImagePath
	p.ImagePath = path
	p.Touch()
	return old
}

func (p *Product) SetActive(active bool) {
	p.Active = active
	p.Touch()
}

// MarkUpdated records a ProductUpdated event after a batch of edits
func (p *Product) MarkUpdated() {
	p.AddDomainEvent(NewProductChangedEvent(EventTypeProductUpdated, p))
}
