// Package printing renders order invoices to PDF.
//
// Invoices are built from an html/template and printed by headless Chrome
// through the DevTools protocol:
//
//	renderer, err := NewChromedpRenderer(cfg.Printing, logger)
//	invoices := NewInvoicePrinter(renderer, cfg.App.CompanyName)
//	pdf, err := invoices.Print(ctx, invoice)
package printing
