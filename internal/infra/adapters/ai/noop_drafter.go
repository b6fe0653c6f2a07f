package ai

import (
	"context"
	"strings"
	"time"

	"legal-docgen/internal/domain/ports/adapter"
)

var _ adapter.Drafter = (*NoopDrafter)(nil)

// NoopDrafter is the dev-mode provider: it returns a deterministic skeleton
// document instead of calling a real drafting service.
type NoopDrafter struct{}

func NewNoopDrafter() *NoopDrafter { return &NoopDrafter{} }

func (n *NoopDrafter) Name() string { return "noop" }

func (n *NoopDrafter) Draft(ctx context.Context, req adapter.DraftRequest) (string, adapter.Usage, error) {
	select {
	case <-time.After(50 * time.Millisecond):
	case <-ctx.Done():
		return "", adapter.Usage{}, ctx.Err()
	}

	var b strings.Builder
	b.WriteString("# Draft Document\n\n")
	b.WriteString("## 1. Parties and Scope\n\n")
	b.WriteString("Generated in dev mode; grounded stores: " + strings.Join(req.GroundingStoreIDs, ", ") + ".\n\n")
	b.WriteString("## 2. Terms\n\n")
	for _, line := range strings.Split(req.UserInstructions, "\n") {
		if strings.HasPrefix(line, "- ") {
			b.WriteString(line + "\n")
		}
	}
	b.WriteString("\n## 3. Signatures\n\nPlace, date, signatures of both parties.\n")

	text := b.String()
	return text, adapter.Usage{PromptTokens: len(req.UserInstructions) / 4, CompletionTokens: len(text) / 4}, nil
}
