package prompt

import (
	"fmt"
	"strings"

	"legal-docgen/internal/domain"
	"legal-docgen/internal/domain/model"
)

// ComposedPrompt is a drafting request ready for the AI adapter: instructions
// plus the knowledge stores the generation must stay grounded to.
type ComposedPrompt struct {
	SystemInstructions string
	UserInstructions   string
	GroundingStoreIDs  []string
}

// Composer turns a validated parameter set into a grounded drafting request.
// All per-type behavior lives in the strategy table; Compose itself has no
// type switches. Callers must have validated parameters against the registry
// before composing.
type Composer struct{}

func NewComposer() *Composer { return &Composer{} }

func (c *Composer) Compose(def *model.ContractTypeDefinition, params map[string]any) (ComposedPrompt, error) {
	st, ok := strategies[def.ID]
	if !ok {
		return ComposedPrompt{}, fmt.Errorf("%w: no drafting strategy for type %q", domain.ErrValidation, def.ID)
	}

	lines, err := st.buildPrompt(params)
	if err != nil {
		return ComposedPrompt{}, err
	}

	var b strings.Builder
	b.WriteString("Draft a complete " + def.Name + " using the grounded template corpus.\n\n")
	b.WriteString("Contract details:\n")
	for _, l := range lines {
		b.WriteString("- " + l + "\n")
	}
	b.WriteString("\n")
	b.WriteString(formattingContract)

	return ComposedPrompt{
		SystemInstructions: st.systemInstructions,
		UserInstructions:   b.String(),
		GroundingStoreIDs:  []string{st.templateStore, statuteStore},
	}, nil
}

// FooterFields extracts the per-page footer data for a contract type. Types
// without a footer extractor get an empty footer (blank PDF footer except the
// page number).
func (c *Composer) FooterFields(typeID string, params map[string]any) model.FooterFields {
	st, ok := strategies[typeID]
	if !ok || st.footerFields == nil {
		return model.FooterFields{}
	}
	return st.footerFields(params)
}

// formattingContract is the fixed, non-negotiable output shape. It is
// appended verbatim to every drafting request.
const formattingContract = `Output requirements (strict):
- Produce the document as Markdown: one "# " top-level title, "## " numbered section headings ("## 1. ..."), plain paragraphs below each heading.
- Number sections sequentially and keep the section order of the grounding template.
- Do not invent sections that are not present in the grounding template.
- Do not add commentary, explanations, greetings or closing remarks around the document. Output the document text only.
- Write dates exactly as given in the contract details.`
