package printing

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templateFS embed.FS

// InvoiceParty is the billing block of a party or distributor
type InvoiceParty struct {
	Name      string
	Address   string
	GSTNumber string
	Phone     string
}

// InvoiceLine is one printed order item
type InvoiceLine struct {
	ModelNumber string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// Invoice holds everything printed on an order invoice
type Invoice struct {
	CompanyName    string
	OrderNumber    string
	OrderDate      time.Time
	Status         string
	Party          *InvoiceParty
	Distributor    *InvoiceParty
	SalesmanName   string
	Items          []InvoiceLine
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
	Notes          string
}

var invoiceTemplate = template.Must(
	template.New("invoice.html").Funcs(template.FuncMap{
		"formatMoney": formatMoney,
		"formatDate":  formatDate,
		"title":       titleCase,
		"inc":         func(i int) int { return i + 1 },
	}).ParseFS(templateFS, "templates/invoice.html"),
)

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// titleCase builds a Caser per call; Casers are not safe for concurrent use
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02 Jan 2006")
}

// RenderInvoiceHTML executes the invoice template
func RenderInvoiceHTML(inv *Invoice) (string, error) {
	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, inv); err != nil {
		return "", NewRenderError(ErrCodeTemplate, "render invoice template", err)
	}
	return buf.String(), nil
}

// InvoicePrinter turns invoices into PDF documents
type InvoicePrinter struct {
	renderer    PDFRenderer
	companyName string
}

func NewInvoicePrinter(renderer PDFRenderer, companyName string) *InvoicePrinter {
	return &InvoicePrinter{renderer: renderer, companyName: companyName}
}

// Print renders inv to PDF. The company name defaults to the configured one.
func (p *InvoicePrinter) Print(ctx context.Context, inv *Invoice) ([]byte, error) {
	if inv.CompanyName == "" {
		inv.CompanyName = p.companyName
	}
	doc, err := RenderInvoiceHTML(inv)
	if err != nil {
		return nil, err
	}
	res, err := p.renderer.Render(ctx, &RenderRequest{
		HTML:       doc,
		Title:      "Invoice " + inv.OrderNumber,
		FooterHTML: `<div style="font-size:8px;width:100%;text-align:center;"><span class="pageNumber"></span> / <span class="totalPages"></span></div>`,
	})
	if err != nil {
		return nil, err
	}
	return res.PDFData, nil
}
