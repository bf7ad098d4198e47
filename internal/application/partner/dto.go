package partner

import (
	"time"

	"github.com/eyedist/backend/internal/application"
	"github.com/eyedist/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContactInput is the contact block of create requests
type ContactInput struct {
	ContactPerson string `json:"contact_person" binding:"max=100"`
	Phone         string `json:"phone" binding:"max=20"`
	Email         string `json:"email" binding:"omitempty,email,max=100"`
	Address       string `json:"address" binding:"max=500"`
}

func (c ContactInput) toDomain() partner.Contact {
	return partner.Contact{
		ContactPerson: c.ContactPerson,
		Phone:         c.Phone,
		Email:         c.Email,
		Address:       c.Address,
	}
}

// ContactUpdate is the contact block of update requests; nil fields are kept
type ContactUpdate struct {
	ContactPerson *string `json:"contact_person" binding:"omitempty,max=100"`
	Phone         *string `json:"phone" binding:"omitempty,max=20"`
	Email         *string `json:"email" binding:"omitempty,max=100"`
	Address       *string `json:"address" binding:"omitempty,max=500"`
}

func (u ContactUpdate) changed() bool {
	return u.ContactPerson != nil || u.Phone != nil || u.Email != nil || u.Address != nil
}

func (u ContactUpdate) apply(c partner.Contact) partner.Contact {
	if u.ContactPerson != nil {
		c.ContactPerson = *u.ContactPerson
	}
	if u.Phone != nil {
		c.Phone = *u.Phone
	}
	if u.Email != nil {
		c.Email = *u.Email
	}
	if u.Address != nil {
		c.Address = *u.Address
	}
	return c
}

// ContactResponse is the contact block of responses
type ContactResponse struct {
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
}

func toContactResponse(c partner.Contact) ContactResponse {
	return ContactResponse{
		ContactPerson: c.ContactPerson,
		Phone:         c.Phone,
		Email:         c.Email,
		Address:       c.Address,
	}
}

// =============================================================================
// Party
// =============================================================================

// CreatePartyRequest represents a request to create a party
type CreatePartyRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=200"`
	Type      string `json:"type" binding:"omitempty,oneof=retail institutional"`
	GSTNumber string `json:"gst_number" binding:"max=15"`
	ContactInput
	application.LocationInput
	DistributorID *uuid.UUID       `json:"distributor_id"`
	SalesmanID    *uuid.UUID       `json:"salesman_id"`
	CreditLimit   *decimal.Decimal `json:"credit_limit"`
	// OwnerID lets admins and managers create the party for another user
	OwnerID *uuid.UUID `json:"user_id"`
}

// UpdatePartyRequest represents a partial update of a party
type UpdatePartyRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=200"`
	Type      *string `json:"type" binding:"omitempty,oneof=retail institutional"`
	GSTNumber *string `json:"gst_number" binding:"omitempty,max=15"`
	ContactUpdate
	application.LocationInput
	DistributorID application.OptionalID `json:"distributor_id" swaggertype:"string" format:"uuid"`
	SalesmanID    application.OptionalID `json:"salesman_id" swaggertype:"string" format:"uuid"`
	CreditLimit   *decimal.Decimal       `json:"credit_limit"`
	Active        *bool                  `json:"active"`
}

// PartyListFilter holds the query parameters of the party list
type PartyListFilter struct {
	application.ListQuery
	application.LocationQuery
	Type          string `form:"type" binding:"omitempty,oneof=retail institutional"`
	Active        *bool  `form:"active"`
	DistributorID string `form:"distributor_id" binding:"omitempty,uuid"`
	SalesmanID    string `form:"salesman_id" binding:"omitempty,uuid"`
}

// PartyResponse represents a party in API responses
type PartyResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	GSTNumber string    `json:"gst_number"`
	ContactResponse
	application.LocationResponse
	DistributorID *uuid.UUID      `json:"distributor_id"`
	SalesmanID    *uuid.UUID      `json:"salesman_id"`
	CreditLimit   decimal.Decimal `json:"credit_limit"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
	// DroppedReferences names the ids that were invalid and stored as null
	DroppedReferences []string `json:"dropped_references,omitempty"`
}

func ToPartyResponse(p *partner.Party) PartyResponse {
	return PartyResponse{
		ID:               p.ID,
		UserID:           p.UserID,
		Name:             p.Name,
		Type:             string(p.Type),
		GSTNumber:        p.GSTNumber,
		ContactResponse:  toContactResponse(p.Contact),
		LocationResponse: application.ToLocationResponse(p.Location),
		DistributorID:    p.DistributorID,
		SalesmanID:       p.SalesmanID,
		CreditLimit:      p.CreditLimit,
		Active:           p.Active,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		Version:          p.Version,
	}
}

// =============================================================================
// Distributor
// =============================================================================

// CreateDistributorRequest represents a request to create a distributor
type CreateDistributorRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=200"`
	GSTNumber string `json:"gst_number" binding:"max=15"`
	ContactInput
	application.LocationInput
	CommissionRate *decimal.Decimal `json:"commission_rate"`
	OwnerID        *uuid.UUID       `json:"user_id"`
}

// UpdateDistributorRequest represents a partial update of a distributor
type UpdateDistributorRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=200"`
	GSTNumber *string `json:"gst_number" binding:"omitempty,max=15"`
	ContactUpdate
	application.LocationInput
	CommissionRate *decimal.Decimal `json:"commission_rate"`
	Active         *bool            `json:"active"`
}

// DistributorListFilter holds the query parameters of the distributor list
type DistributorListFilter struct {
	application.ListQuery
	application.LocationQuery
	Active *bool `form:"active"`
}

// DistributorResponse represents a distributor in API responses
type DistributorResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	GSTNumber string    `json:"gst_number"`
	ContactResponse
	application.LocationResponse
	CommissionRate    decimal.Decimal `json:"commission_rate"`
	Active            bool            `json:"active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	Version           int             `json:"version"`
	DroppedReferences []string        `json:"dropped_references,omitempty"`
}

func ToDistributorResponse(d *partner.Distributor) DistributorResponse {
	return DistributorResponse{
		ID:               d.ID,
		UserID:           d.UserID,
		Name:             d.Name,
		GSTNumber:        d.GSTNumber,
		ContactResponse:  toContactResponse(d.Contact),
		LocationResponse: application.ToLocationResponse(d.Location),
		CommissionRate:   d.CommissionRate,
		Active:           d.Active,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
		Version:          d.Version,
	}
}

// =============================================================================
// Salesman
// =============================================================================

// CreateSalesmanRequest represents a request to create a salesman
type CreateSalesmanRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=200"`
	EmployeeCode string `json:"employee_code" binding:"required,min=1,max=30"`
	ContactInput
	application.LocationInput
	AccountID *uuid.UUID `json:"account_id"`
	OwnerID   *uuid.UUID `json:"user_id"`
}

// UpdateSalesmanRequest represents a partial update of a salesman
type UpdateSalesmanRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=200"`
	EmployeeCode *string `json:"employee_code" binding:"omitempty,min=1,max=30"`
	ContactUpdate
	application.LocationInput
	AccountID application.OptionalID `json:"account_id" swaggertype:"string" format:"uuid"`
	Active    *bool                  `json:"active"`
}

// SalesmanListFilter holds the query parameters of the salesman list
type SalesmanListFilter struct {
	application.ListQuery
	application.LocationQuery
	Active *bool `form:"active"`
}

// SalesmanResponse represents a salesman in API responses
type SalesmanResponse struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	EmployeeCode string    `json:"employee_code"`
	ContactResponse
	application.LocationResponse
	AccountID         *uuid.UUID `json:"account_id"`
	Active            bool       `json:"active"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	Version           int        `json:"version"`
	DroppedReferences []string   `json:"dropped_references,omitempty"`
}

func ToSalesmanResponse(s *partner.Salesman) SalesmanResponse {
	return SalesmanResponse{
		ID:               s.ID,
		UserID:           s.UserID,
		Name:             s.Name,
		EmployeeCode:     s.EmployeeCode,
		ContactResponse:  toContactResponse(s.Contact),
		LocationResponse: application.ToLocationResponse(s.Location),
		AccountID:        s.AccountID,
		Active:           s.Active,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
		Version:          s.Version,
	}
}
