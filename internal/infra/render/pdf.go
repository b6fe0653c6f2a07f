package render

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"legal-docgen/internal/domain"
	"legal-docgen/internal/domain/model"
)

// browserSession is one isolated headless-browser process. It exists so the
// PDF path can be exercised without Chrome and so the close-on-every-exit-path
// rule is a checkable contract rather than a convention.
type browserSession interface {
	PrintToPDF(ctx context.Context, html, footerHTML string) ([]byte, error)
	Close()
}

type sessionFactory func(ctx context.Context) (browserSession, error)

// pdfRenderer runs one browser process per render. Browsers are not pooled;
// concurrency is bounded upstream by the render slots.
type pdfRenderer struct {
	newSession sessionFactory
	navTimeout time.Duration
}

func newPDFRenderer(navTimeout time.Duration) *pdfRenderer {
	return &pdfRenderer{newSession: newChromeSession, navTimeout: navTimeout}
}

func (r *pdfRenderer) render(ctx context.Context, markup string, meta renderMeta) ([]byte, error) {
	html, err := BuildHTML(markup, meta.title)
	if err != nil {
		return nil, err
	}

	session, err := r.newSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: browser launch: %v", domain.ErrRendering, err)
	}
	// Guaranteed release on every exit path, page-load and extraction
	// failures included.
	defer session.Close()

	navCtx, cancel := context.WithTimeout(ctx, r.navTimeout)
	defer cancel()

	pdf, err := session.PrintToPDF(navCtx, html, FooterHTML(meta.footer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRendering, err)
	}
	return pdf, nil
}

type renderMeta struct {
	title  string
	footer model.FooterFields
}

// --- chromedp-backed session ---

type chromeSession struct {
	ctx         context.Context
	cancelTask  context.CancelFunc
	cancelAlloc context.CancelFunc
}

func newChromeSession(parent context.Context) (browserSession, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, chromedp.DefaultExecAllocatorOptions[:]...)
	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	return &chromeSession{ctx: taskCtx, cancelTask: cancelTask, cancelAlloc: cancelAlloc}, nil
}

func (s *chromeSession) PrintToPDF(ctx context.Context, html, footerHTML string) ([]byte, error) {
	runCtx, cancel := mergeDeadline(s.ctx, ctx)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(runCtx,
		chromedp.Navigate("data:text/html;base64,"+base64.StdEncoding.EncodeToString([]byte(html))),
		// Layout settle before pagination.
		chromedp.WaitReady("body", chromedp.ByQuery),
		emulation.SetEmulatedMedia().WithMedia("print"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				WithMarginTop(0.79).
				WithMarginBottom(0.87).
				WithMarginLeft(0.71).
				WithMarginRight(0.71).
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate(`<span></span>`).
				WithFooterTemplate(footerHTML).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

func (s *chromeSession) Close() {
	s.cancelTask()
	s.cancelAlloc()
}

const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// mergeDeadline binds the browser context to the caller's deadline without
// replacing its chromedp internals.
func mergeDeadline(browserCtx, caller context.Context) (context.Context, context.CancelFunc) {
	if dl, ok := caller.Deadline(); ok {
		return context.WithDeadline(browserCtx, dl)
	}
	return context.WithCancel(browserCtx)
}
