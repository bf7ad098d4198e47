package models

import (
	"github.com/eyedist/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func contactColumns(c partner.Contact) ContactColumns {
	return ContactColumns{ContactPerson: c.ContactPerson, Phone: c.Phone, Email: c.Email, Address: c.Address}
}

func (c ContactColumns) toDomain() partner.Contact {
	return partner.Contact{ContactPerson: c.ContactPerson, Phone: c.Phone, Email: c.Email, Address: c.Address}
}

// PartyModel is the persistence model for partner.Party
type PartyModel struct {
	OwnedModel
	Name          string            `gorm:"type:varchar(200);not null"`
	Type          partner.PartyType `gorm:"type:varchar(20);not null;default:'retail'"`
	Contact       ContactColumns    `gorm:"embedded"`
	GSTNumber     string            `gorm:"column:gst_number;type:varchar(15)"`
	Location      LocationColumns   `gorm:"embedded"`
	DistributorID *uuid.UUID        `gorm:"type:char(36);index"`
	SalesmanID    *uuid.UUID        `gorm:"type:char(36);index"`
	CreditLimit   decimal.Decimal   `gorm:"type:decimal(14,2);not null;default:0"`
	Active        bool              `gorm:"not null;default:true"`
}

func (PartyModel) TableName() string { return "parties" }

func (m *PartyModel) ToDomain() *partner.Party {
	return &partner.Party{
		OwnedAggregateRoot: m.toOwned(),
		Name:               m.Name,
		Type:               m.Type,
		Contact:            m.Contact.toDomain(),
		GSTNumber:          m.GSTNumber,
		Location:           m.Location.toDomain(),
		DistributorID:      m.DistributorID,
		SalesmanID:         m.SalesmanID,
		CreditLimit:        m.CreditLimit,
		Active:             m.Active,
	}
}

func PartyModelFromDomain(p *partner.Party) *PartyModel {
	m := &PartyModel{
		Name:          p.Name,
		Type:          p.Type,
		Contact:       contactColumns(p.Contact),
		GSTNumber:     p.GSTNumber,
		Location:      locationColumns(p.Location),
		DistributorID: p.DistributorID,
		SalesmanID:    p.SalesmanID,
		CreditLimit:   p.CreditLimit,
		Active:        p.Active,
	}
	m.fromOwned(p.OwnedAggregateRoot)
	return m
}

// DistributorModel is the persistence model for partner.Distributor
type DistributorModel struct {
	OwnedModel
	Name           string          `gorm:"type:varchar(200);not null"`
	Contact        ContactColumns  `gorm:"embedded"`
	GSTNumber      string          `gorm:"column:gst_number;type:varchar(15)"`
	Location       LocationColumns `gorm:"embedded"`
	CommissionRate decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Active         bool            `gorm:"not null;default:true"`
}

func (DistributorModel) TableName() string { return "distributors" }

func (m *DistributorModel) ToDomain() *partner.Distributor {
	return &partner.Distributor{
		OwnedAggregateRoot: m.toOwned(),
		Name:               m.Name,
		Contact:            m.Contact.toDomain(),
		GSTNumber:          m.GSTNumber,
		Location:           m.Location.toDomain(),
		CommissionRate:     m.CommissionRate,
		Active:             m.Active,
	}
}

func DistributorModelFromDomain(d *partner.Distributor) *DistributorModel {
	m := &DistributorModel{
		Name:           d.Name,
		Contact:        contactColumns(d.Contact),
		GSTNumber:      d.GSTNumber,
		Location:       locationColumns(d.Location),
		CommissionRate: d.CommissionRate,
		Active:         d.Active,
	}
	m.fromOwned(d.OwnedAggregateRoot)
	return m
}

// SalesmanModel is the persistence model for partner.Salesman
type SalesmanModel struct {
	OwnedModel
	Name         string          `gorm:"type:varchar(200);not null"`
	EmployeeCode string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Contact      ContactColumns  `gorm:"embedded"`
	Location     LocationColumns `gorm:"embedded"`
	AccountID    *uuid.UUID      `gorm:"type:char(36);index"`
	Active       bool            `gorm:"not null;default:true"`
}

func (SalesmanModel) TableName() string { return "salesmen" }

func (m *SalesmanModel) ToDomain() *partner.Salesman {
	return &partner.Salesman{
		OwnedAggregateRoot: m.toOwned(),
		Name:               m.Name,
		EmployeeCode:       m.EmployeeCode,
		Contact:            m.Contact.toDomain(),
		Location:           m.Location.toDomain(),
		AccountID:          m.AccountID,
		Active:             m.Active,
	}
}

func SalesmanModelFromDomain(s *partner.Salesman) *SalesmanModel {
	m := &SalesmanModel{
		Name:         s.Name,
		EmployeeCode: s.EmployeeCode,
		Contact:      contactColumns(s.Contact),
		Location:     locationColumns(s.Location),
		AccountID:    s.AccountID,
		Active:       s.Active,
	}
	m.fromOwned(s.OwnedAggregateRoot)
	return m
}
