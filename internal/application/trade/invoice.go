package trade

import (
	"context"
	"errors"
	"strings"

	"github.com/eyedist/backend/internal/application"
	"github.com/eyedist/backend/internal/domain/partner"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/domain/trade"
	"github.com/eyedist/backend/internal/infrastructure/printing"
	"github.com/google/uuid"
)

// InvoiceRenderer turns an invoice into a PDF
type InvoiceRenderer interface {
	Print(ctx context.Context, inv *printing.Invoice) ([]byte, error)
}

// InvoiceDocument is a rendered invoice ready to download
type InvoiceDocument struct {
	Filename string
	PDF      []byte
}

// Invoice renders the order as a PDF invoice
func (s *OrderService) Invoice(ctx context.Context, actor application.Actor, id uuid.UUID) (*InvoiceDocument, error) {
	if s.invoices == nil {
		return nil, shared.ErrServiceUnavailable
	}
	order, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	inv, err := s.buildInvoice(ctx, order)
	if err != nil {
		return nil, err
	}
	pdf, err := s.invoices.Print(ctx, inv)
	if err != nil {
		return nil, err
	}
	return &InvoiceDocument{
		Filename: "invoice-" + strings.ToLower(order.OrderNumber) + ".pdf",
		PDF:      pdf,
	}, nil
}

// buildInvoice gathers the billing blocks. A counterparty the caller can no
// longer read is left off the invoice.
func (s *OrderService) buildInvoice(ctx context.Context, order *trade.Order) (*printing.Invoice, error) {
	inv := &printing.Invoice{
		OrderNumber:    order.OrderNumber,
		OrderDate:      order.OrderDate,
		Status:         order.Status.String(),
		Subtotal:       order.Subtotal,
		DiscountAmount: order.DiscountAmount,
		Total:          order.Total,
		Notes:          order.Notes,
		Items:          make([]printing.InvoiceLine, len(order.Items)),
	}
	for i, item := range order.Items {
		inv.Items[i] = printing.InvoiceLine{
			ModelNumber: item.ModelNumber,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		}
	}

	if order.PartyID != nil {
		p, err := s.parties.FindByID(ctx, *order.PartyID)
		if err := ignoreMissing(err); err != nil {
			return nil, err
		}
		if p != nil {
			inv.Party = invoiceParty(p.Name, p.GSTNumber, p.Contact)
		}
	}
	if order.DistributorID != nil {
		d, err := s.distributors.FindByID(ctx, *order.DistributorID)
		if err := ignoreMissing(err); err != nil {
			return nil, err
		}
		if d != nil {
			inv.Distributor = invoiceParty(d.Name, d.GSTNumber, d.Contact)
		}
	}
	if order.SalesmanID != nil {
		sm, err := s.salesmen.FindByID(ctx, *order.SalesmanID)
		if err := ignoreMissing(err); err != nil {
			return nil, err
		}
		if sm != nil {
			inv.SalesmanName = sm.Name
		}
	}
	return inv, nil
}

func invoiceParty(name, gst string, c partner.Contact) *printing.InvoiceParty {
	return &printing.InvoiceParty{
		Name:      name,
		Address:   c.Address,
		GSTNumber: gst,
		Phone:     c.Phone,
	}
}

func ignoreMissing(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	return err
}
