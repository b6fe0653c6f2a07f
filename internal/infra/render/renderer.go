package render

import (
	"context"
	"fmt"
	"time"

	"legal-docgen/internal/domain"
	"legal-docgen/internal/domain/model"
	"legal-docgen/internal/domain/ports/adapter"
	"legal-docgen/internal/infra/metrics"
)

var _ adapter.DocumentRenderer = (*Renderer)(nil)

// Renderer dispatches to the PDF or docx path. PDF renders contend for a
// bounded number of browser slots: acquisition blocks (backpressure by
// queueing) until a slot frees or the caller's context is cancelled.
type Renderer struct {
	pdf   *pdfRenderer
	docx  *docxRenderer
	slots chan struct{}
}

func NewRenderer(slots int, navTimeout time.Duration) *Renderer {
	if slots <= 0 {
		slots = 1
	}
	return &Renderer{
		pdf:   newPDFRenderer(navTimeout),
		docx:  newDocxRenderer(),
		slots: make(chan struct{}, slots),
	}
}

func (r *Renderer) Render(ctx context.Context, markup string, meta adapter.RenderMeta, format model.OutputFormat) ([]byte, error) {
	start := time.Now()
	data, err := r.dispatch(ctx, markup, meta, format)
	metrics.ObserveRender(string(format), int(time.Since(start)/time.Millisecond), err == nil)
	return data, err
}

func (r *Renderer) dispatch(ctx context.Context, markup string, meta adapter.RenderMeta, format model.OutputFormat) ([]byte, error) {
	switch format {
	case model.FormatPDF:
		waitStart := time.Now()
		select {
		case r.slots <- struct{}{}:
			metrics.ObserveRenderSlotWait(int(time.Since(waitStart) / time.Millisecond))
			defer func() { <-r.slots }()
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: waiting for browser slot: %v", domain.ErrRendering, ctx.Err())
		}
		return r.pdf.render(ctx, markup, renderMeta{title: meta.Title, footer: meta.Footer})
	case model.FormatDocx:
		return r.docx.render(markup)
	default:
		return nil, fmt.Errorf("%w: unsupported output format %q", domain.ErrValidation, format)
	}
}
