package printing

import (
	"bytes"
	"context"
	"time"
)

// Margins in millimeters
type Margins struct {
	Top, Right, Bottom, Left float64
}

// DefaultMargins are used for A4 documents
func DefaultMargins() Margins {
	return Margins{Top: 12, Right: 10, Bottom: 12, Left: 10}
}

// RenderRequest contains the parameters for rendering HTML to PDF
type RenderRequest struct {
	HTML      string
	Title     string
	Landscape bool
	Margins   Margins
	// FooterHTML is printed on every page; Chrome substitutes the
	// pageNumber and totalPages classes
	FooterHTML string
	// Timeout overrides the renderer default
	Timeout time.Duration
}

// RenderResult contains the output from PDF rendering
type RenderResult struct {
	PDFData        []byte
	PageCount      int
	RenderDuration time.Duration
}

// PDFRenderer converts HTML to PDF
type PDFRenderer interface {
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	Close() error
}

// RenderError represents an error during PDF rendering
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

const (
	ErrCodeRenderTimeout = "RENDER_TIMEOUT"
	ErrCodeRenderFailed  = "RENDER_FAILED"
	ErrCodeInvalidHTML   = "INVALID_HTML"
	ErrCodeTemplate      = "TEMPLATE_FAILED"
)

func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// estimatePageCount counts page objects in a PDF
func estimatePageCount(pdf []byte) int {
	n := bytes.Count(pdf, []byte("/Type /Page")) - bytes.Count(pdf, []byte("/Type /Pages"))
	if n <= 0 {
		n = bytes.Count(pdf, []byte("/Type/Page")) - bytes.Count(pdf, []byte("/Type/Pages"))
	}
	return max(n, 1)
}
