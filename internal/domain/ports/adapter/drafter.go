package adapter

import "context"

// DraftRequest is a fully composed drafting call: instructions plus the
// knowledge-store identifiers the generation must stay grounded to.
type DraftRequest struct {
	SystemInstructions string
	UserInstructions   string
	GroundingStoreIDs  []string
}

// Usage for a single drafting call, as reported by the provider.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Drafter is the port for the external generative-text service.
//
// Draft is explicitly not idempotent: identical requests may yield different
// markup, and no caching happens at this layer. An empty response is the
// adapter's problem to reject (domain.ErrEmptyDraft); transport errors
// propagate unchanged.
type Drafter interface {
	Name() string
	Draft(ctx context.Context, req DraftRequest) (markup string, usage Usage, err error)
}
