package ai

import (
	"context"
	"errors"

	"legal-docgen/internal/domain/ports/adapter"
)

var _ adapter.Drafter = (*FailoverDrafter)(nil)

// FailoverDrafter tries each provider in order and returns the first
// successful draft. An empty draft counts as a provider failure; the last
// error is returned when every provider fails.
type FailoverDrafter struct {
	chain []adapter.Drafter
}

func NewFailoverDrafter(chain ...adapter.Drafter) (*FailoverDrafter, error) {
	filtered := make([]adapter.Drafter, 0, len(chain))
	for _, d := range chain {
		if d != nil {
			filtered = append(filtered, d)
		}
	}
	if len(filtered) == 0 {
		return nil, errors.New("failover: no drafting providers configured")
	}
	return &FailoverDrafter{chain: filtered}, nil
}

func (f *FailoverDrafter) Name() string {
	if len(f.chain) == 1 {
		return f.chain[0].Name()
	}
	return "failover"
}

func (f *FailoverDrafter) Draft(ctx context.Context, req adapter.DraftRequest) (string, adapter.Usage, error) {
	var lastErr error
	for _, d := range f.chain {
		if ctx.Err() != nil {
			return "", adapter.Usage{}, ctx.Err()
		}
		markup, usage, err := d.Draft(ctx, req)
		if err == nil {
			return markup, usage, nil
		}
		lastErr = err
	}
	return "", adapter.Usage{}, lastErr
}
