package printing

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/eyedist/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const (
	defaultChromeTimeout = 30 * time.Second
	a4WidthMM            = 210.0
	a4HeightMM           = 297.0
)

// ChromedpRenderer renders HTML to A4 PDF using Chrome DevTools Protocol
type ChromedpRenderer struct {
	timeout     time.Duration
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpRenderer starts a browser allocator. With cfg.RemoteURL set it
// attaches to a running Chrome instead of launching one.
func NewChromedpRenderer(cfg config.PrintingConfig, logger *zap.Logger) (*ChromedpRenderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &ChromedpRenderer{
		timeout: cfg.Timeout,
		logger:  logger,
	}
	if r.timeout <= 0 {
		r.timeout = defaultChromeTimeout
	}

	if cfg.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.RemoteURL)
		return r, nil
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true), // small /dev/shm in containers
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if cfg.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	return r, nil
}

// Render converts HTML content to PDF
func (r *ChromedpRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	if req == nil || strings.TrimSpace(req.HTML) == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	}

	start := time.Now()
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = r.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			r.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()
	// stop the tab when the request context ends
	stop := context.AfterFunc(ctx, browserCancel)
	defer stop()

	doc := completeHTML(req)
	params := buildPrintParams(req)

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, doc).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := params.Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, NewRenderError(ErrCodeRenderTimeout,
				fmt.Sprintf("PDF rendering timed out after %v", timeout), err)
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, NewRenderError(ErrCodeRenderTimeout, "PDF rendering was cancelled", err)
		}
		r.logger.Error("chromedp rendering failed", zap.Error(err))
		return nil, NewRenderError(ErrCodeRenderFailed, "chromedp execution failed", err)
	}
	if len(pdf) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}

	res := &RenderResult{
		PDFData:        pdf,
		PageCount:      estimatePageCount(pdf),
		RenderDuration: time.Since(start),
	}
	r.logger.Info("PDF rendered",
		zap.Int("bytes", len(pdf)),
		zap.Int("pages", res.PageCount),
		zap.Duration("duration", res.RenderDuration))
	return res, nil
}

// Close shuts the browser allocator down
func (r *ChromedpRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

func buildPrintParams(req *RenderRequest) *page.PrintToPDFParams {
	m := req.Margins
	if m == (Margins{}) {
		m = DefaultMargins()
	}
	p := page.PrintToPDF().
		WithPrintBackground(true).
		WithPaperWidth(mmToInches(a4WidthMM)).
		WithPaperHeight(mmToInches(a4HeightMM)).
		WithLandscape(req.Landscape).
		WithScale(1.0)

	if req.FooterHTML != "" {
		m.Bottom = max(m.Bottom, 15)
		p = p.WithDisplayHeaderFooter(true).
			WithHeaderTemplate("<span></span>").
			WithFooterTemplate(req.FooterHTML)
	}
	return p.
		WithMarginTop(mmToInches(m.Top)).
		WithMarginRight(mmToInches(m.Right)).
		WithMarginBottom(mmToInches(m.Bottom)).
		WithMarginLeft(mmToInches(m.Left))
}

// completeHTML wraps a fragment in a document; full documents pass through
func completeHTML(req *RenderRequest) string {
	lower := strings.ToLower(req.HTML)
	if strings.Contains(lower, "<!doctype") || strings.Contains(lower, "<html") {
		return req.HTML
	}
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><meta charset="UTF-8">`)
	if req.Title != "" {
		b.WriteString("<title>")
		b.WriteString(html.EscapeString(req.Title))
		b.WriteString("</title>")
	}
	b.WriteString("</head><body>")
	b.WriteString(req.HTML)
	b.WriteString("</body></html>")
	return b.String()
}

func mmToInches(mm float64) float64 {
	return mm / 25.4
}

var _ PDFRenderer = (*ChromedpRenderer)(nil)
