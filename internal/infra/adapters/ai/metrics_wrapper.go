package ai

import (
	"context"
	"time"

	"legal-docgen/internal/domain/ports/adapter"
	"legal-docgen/internal/infra/metrics"
)

var _ adapter.Drafter = (*MeteredDrafter)(nil)

// MeteredDrafter wraps another drafter and records tokens, latency and
// outcome for every call.
type MeteredDrafter struct {
	inner adapter.Drafter
}

func NewMeteredDrafter(inner adapter.Drafter) *MeteredDrafter {
	return &MeteredDrafter{inner: inner}
}

func (m *MeteredDrafter) Name() string { return m.inner.Name() }

func (m *MeteredDrafter) Draft(ctx context.Context, req adapter.DraftRequest) (string, adapter.Usage, error) {
	start := time.Now()
	markup, usage, err := m.inner.Draft(ctx, req)
	latency := time.Since(start)

	metrics.ObserveDraft(m.inner.Name(),
		usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens,
		int(latency/time.Millisecond), err == nil)
	return markup, usage, err
}
