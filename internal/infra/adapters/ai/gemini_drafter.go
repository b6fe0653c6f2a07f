package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	"google.golang.org/genai"

	"legal-docgen/internal/domain"
	"legal-docgen/internal/domain/ports/adapter"
)

var _ adapter.Drafter = (*GeminiDrafter)(nil)

// GeminiDrafter drafts documents through the Gemini API with retrieval
// grounding restricted to the composed knowledge stores.
type GeminiDrafter struct {
	client  *genai.Client
	model   string
	maxOut  int
	timeout time.Duration
}

func NewGeminiDrafter(ctx context.Context, apiKey, baseURL, model string, maxOut int, timeout time.Duration) (*GeminiDrafter, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: empty api key")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: baseURL,
		},
	})
	if err != nil {
		return nil, err
	}
	return &GeminiDrafter{client: c, model: model, maxOut: maxOut, timeout: timeout}, nil
}

func (g *GeminiDrafter) Name() string { return "gemini" }

func (g *GeminiDrafter) Draft(ctx context.Context, req adapter.DraftRequest) (string, adapter.Usage, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemInstructions}},
		},
		MaxOutputTokens: int32(g.maxOut),
		Tools:           groundingTools(req.GroundingStoreIDs),
	}

	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: req.UserInstructions}},
	}}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", adapter.Usage{}, err
	}

	text := ""
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		var b strings.Builder
		for _, p := range resp.Candidates[0].Content.Parts {
			b.WriteString(p.Text)
		}
		text = b.String()
	}
	if strings.TrimSpace(text) == "" {
		return "", adapter.Usage{}, domain.ErrEmptyDraft
	}

	u := adapter.Usage{}
	if resp.UsageMetadata != nil {
		u.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		u.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		u.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}
	return text, u, nil
}

// groundingTools binds the generation to the supplied corpora; the model may
// not range outside them.
func groundingTools(storeIDs []string) []*genai.Tool {
	if len(storeIDs) == 0 {
		return nil
	}
	resources := make([]*genai.VertexRAGStoreRAGResource, 0, len(storeIDs))
	for _, id := range storeIDs {
		resources = append(resources, &genai.VertexRAGStoreRAGResource{RAGCorpus: id})
	}
	return []*genai.Tool{{
		Retrieval: &genai.Retrieval{
			VertexRAGStore: &genai.VertexRAGStore{RAGResources: resources},
		},
	}}
}
