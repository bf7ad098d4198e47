package partner

import (
	"github.com/eyedist/backend/internal/domain/geography"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Distributor is an intermediate reseller account
type Distributor struct {
	shared.OwnedAggregateRoot
	Name           string
	Contact        Contact
	GSTNumber      string
	Location       geography.Location
	CommissionRate decimal.Decimal // percent, 0..100
	Active         bool
}

// NewDistributor creates an active distributor owned by userID
func NewDistributor(userID uuid.UUID, name string) (*Distributor, error) {
	d := &Distributor{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		CommissionRate:     decimal.Zero,
		Active:             true,
	}
	if err := d.Rename(name); err != nil {
		return nil, err
	}
	d.AddDomainEvent(NewDistributorCreatedEvent(d))
	return d, nil
}

func (d *Distributor) Rename(name string) error {
	name, err := shared.RequireText("INVALID_NAME", "Distributor name", name, 200)
	if err != nil {
		return err
	}
	d.Name = name
	d.Touch()
	return nil
}

func (d *Distributor) SetContact(c Contact) error {
	c, err := NormalizeContact(c)
	if err != nil {
		return err
	}
	d.Contact = c
	d.Touch()
	return nil
}

func (d *Distributor) SetGSTNumber(gst string) error {
	gst, err := shared.NormalizeGSTNumber(gst)
	if err != nil {
		return err
	}
	d.GSTNumber = gst
	d.Touch()
	return nil
}

func (d *Distributor) SetLocation(loc geography.Location) {
	d.Location = loc
	d.Touch()
}

func (d *Distributor) SetCommissionRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(hundred) {
		return shared.NewDomainError("INVALID_COMMISSION_RATE", "Commission rate must be between 0 and 100")
	}
	d.CommissionRate = rate
	d.Touch()
	return nil
}

func (d *Distributor) SetActive(active bool) {
	d.Active = active
	d.Touch()
}

// ClearReference implements shared.ReferenceClearer
func (d *Distributor) ClearReference(field string) []string {
	var cleared []string
	d.Location, cleared = d.Location.ClearField(field)
	return cleared
}
