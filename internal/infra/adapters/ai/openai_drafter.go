package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/pkoukk/tiktoken-go"

	"legal-docgen/internal/domain"
	"legal-docgen/internal/domain/ports/adapter"
)

var _ adapter.Drafter = (*OpenAIDrafter)(nil)

// OpenAIDrafter is the secondary drafting provider. Chat Completions has no
// retrieval-store binding, so the grounding contract is carried as an
// instruction preamble naming the corpora the draft must stay inside.
type OpenAIDrafter struct {
	client  openai.Client
	model   string
	maxOut  int
	timeout time.Duration
}

func NewOpenAIDrafter(apiKey, model string, maxOut int, timeout time.Duration) (*OpenAIDrafter, error) {
	if apiKey == "" {
		return nil, errors.New("openai: empty api key")
	}
	return &OpenAIDrafter{
		client:  openai.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		maxOut:  maxOut,
		timeout: timeout,
	}, nil
}

func (o *OpenAIDrafter) Name() string { return "openai" }

func (o *OpenAIDrafter) Draft(ctx context.Context, req adapter.DraftRequest) (string, adapter.Usage, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	sys := req.SystemInstructions
	if len(req.GroundingStoreIDs) > 0 {
		sys = "Draft strictly from the organization's corpora " +
			strings.Join(req.GroundingStoreIDs, ", ") +
			"; where a clause is not covered by them, follow the template wording verbatim.\n\n" + sys
	}

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(sys),
			openai.UserMessage(req.UserInstructions),
		},
		MaxTokens: openai.Int(int64(o.maxOut)),
	})
	if err != nil {
		return "", adapter.Usage{}, err
	}

	text := ""
	if len(resp.Choices) > 0 {
		text = resp.Choices[0].Message.Content
	}
	if strings.TrimSpace(text) == "" {
		return "", adapter.Usage{}, domain.ErrEmptyDraft
	}

	u := adapter.Usage{
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
		TotalTokens:      int(resp.Usage.TotalTokens),
	}
	if u.PromptTokens == 0 {
		u.PromptTokens = countTokens(sys + req.UserInstructions)
	}
	return text, u, nil
}

// countTokens is a best-effort local count used when the API omits usage.
func countTokens(s string) int {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return 0
	}
	return len(enc.Encode(s, nil, nil))
}
