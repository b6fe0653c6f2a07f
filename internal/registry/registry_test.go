package registry

import (
	"errors"
	"testing"

	"legal-docgen/internal/domain"
	"legal-docgen/internal/domain/model"
)

func TestResolveType_Unknown(t *testing.T) {
	t.Parallel()

	r := New()
	_, err := r.ResolveType("lease")
	if err == nil {
		t.Fatalf("expected error for unknown type")
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestListTypes_Immutable(t *testing.T) {
	t.Parallel()

	r := New()
	got := r.ListTypes()
	if len(got) != 3 {
		t.Fatalf("expected 3 contract types, got %d", len(got))
	}
	got[0].ID = "tampered"
	if again := r.ListTypes(); again[0].ID == "tampered" {
		t.Fatalf("ListTypes must return a copy")
	}
}

func TestSelectOptionsNonEmpty(t *testing.T) {
	t.Parallel()

	for _, def := range New().ListTypes() {
		for _, p := range def.Parameters {
			if p.Type == model.ParameterSelect && len(p.Options) == 0 {
				t.Fatalf("%s/%s: select parameter without options", def.ID, p.ID)
			}
		}
	}
}

func TestValidateParameters_RequiredWithoutDefault(t *testing.T) {
	t.Parallel()

	r := New()
	for _, def := range r.ListTypes() {
		def := def
		for _, spec := range def.Parameters {
			if !spec.Required || spec.DefaultValue != nil {
				continue
			}
			params := fullParams(def)
			delete(params, spec.ID)
			if err := r.ValidateParameters(&def, params); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("%s: dropping %q should fail validation, got %v", def.ID, spec.ID, err)
			}
		}
	}
}

func TestValidateParameters_OptionalMayBeAbsent(t *testing.T) {
	t.Parallel()

	r := New()
	def, err := r.ResolveType("employment")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	params := fullParams(*def)
	delete(params, "vacationDays")
	delete(params, "probationMonths")
	if err := r.ValidateParameters(def, params); err != nil {
		t.Fatalf("optional parameters must not be required: %v", err)
	}
}

func TestValidateParameters_SelectOutOfRange(t *testing.T) {
	t.Parallel()

	r := New()
	def, _ := r.ResolveType("tos")
	params := fullParams(*def)
	params["audience"] = "robots"
	if err := r.ValidateParameters(def, params); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for out-of-range select, got %v", err)
	}
}

// fullParams builds a syntactically valid parameter set for a definition.
func fullParams(def model.ContractTypeDefinition) map[string]any {
	params := make(map[string]any)
	for _, p := range def.Parameters {
		switch p.Type {
		case model.ParameterNumber:
			params[p.ID] = 1
		case model.ParameterBoolean:
			params[p.ID] = true
		case model.ParameterDate:
			params[p.ID] = "2024-03-01"
		case model.ParameterSelect:
			params[p.ID] = p.Options[0]
		default:
			params[p.ID] = "value"
		}
	}
	return params
}
