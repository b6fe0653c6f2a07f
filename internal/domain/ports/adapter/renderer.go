package adapter

import (
	"context"

	"legal-docgen/internal/domain/model"
)

// RenderMeta carries the non-markup inputs of a render: the document title
// and the fields injected into the per-page PDF footer.
type RenderMeta struct {
	Title  string
	Footer model.FooterFields
}

// DocumentRenderer converts drafted markup into a binary artifact.
// Implementations must release any scoped resource (browser process) on every
// exit path and surface failures wrapped in domain.ErrRendering.
type DocumentRenderer interface {
	Render(ctx context.Context, markup string, meta RenderMeta, format model.OutputFormat) ([]byte, error)
}
