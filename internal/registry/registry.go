package registry

import (
	"fmt"

	"legal-docgen/internal/domain"
	"legal-docgen/internal/domain/model"
)

// Registry is the static contract-type catalog. It is built once at process
// start; ListTypes and ResolveType are pure and side-effect free.
type Registry struct {
	types []model.ContractTypeDefinition
	byID  map[string]*model.ContractTypeDefinition
}

func New() *Registry {
	r := &Registry{byID: make(map[string]*model.ContractTypeDefinition, len(contractTypes))}
	r.types = contractTypes
	for i := range r.types {
		r.byID[r.types[i].ID] = &r.types[i]
	}
	return r
}

func (r *Registry) ListTypes() []model.ContractTypeDefinition {
	out := make([]model.ContractTypeDefinition, len(r.types))
	copy(out, r.types)
	return out
}

func (r *Registry) ResolveType(id string) (*model.ContractTypeDefinition, error) {
	def, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: unknown contract type %q", domain.ErrValidation, id)
	}
	return def, nil
}

// ValidateParameters rejects a request before any drafting cost is incurred.
// A required parameter with no default must be present and non-empty.
func (r *Registry) ValidateParameters(def *model.ContractTypeDefinition, params map[string]any) error {
	for _, spec := range def.Parameters {
		v, ok := params[spec.ID]
		if !ok || v == nil || v == "" {
			if spec.Required && spec.DefaultValue == nil {
				return fmt.Errorf("%w: missing required parameter %q for type %q", domain.ErrValidation, spec.ID, def.ID)
			}
			continue
		}
		if spec.Type == model.ParameterSelect && !contains(spec.Options, fmt.Sprintf("%v", v)) {
			return fmt.Errorf("%w: parameter %q must be one of %v", domain.ErrValidation, spec.ID, spec.Options)
		}
	}
	return nil
}

func contains(opts []string, v string) bool {
	for _, o := range opts {
		if o == v {
			return true
		}
	}
	return false
}

var contractTypes = []model.ContractTypeDefinition{
	{
		ID:          "nda",
		Name:        "Non-Disclosure Agreement",
		Description: "Confidentiality agreement between a disclosing and a receiving party.",
		Parameters: []model.ContractParameterSpec{
			{ID: "disclosingParty", Name: "Disclosing party", Type: model.ParameterText, Required: true, Description: "Legal name of the party sharing confidential information"},
			{ID: "receivingParty", Name: "Receiving party", Type: model.ParameterText, Required: true, Description: "Legal name of the party receiving confidential information"},
			{ID: "purpose", Name: "Purpose", Type: model.ParameterText, Required: true, Description: "Purpose for which the information may be used"},
			{ID: "duration", Name: "Duration (years)", Type: model.ParameterNumber, Required: true, Description: "Confidentiality term in years"},
			{ID: "mutualNDA", Name: "Mutual", Type: model.ParameterBoolean, Required: false, Description: "Whether both parties disclose", DefaultValue: false},
			{ID: "effectiveDate", Name: "Effective date", Type: model.ParameterDate, Required: false, Description: "Date the agreement takes effect"},
		},
	},
	{
		ID:          "employment",
		Name:        "Employment Contract",
		Description: "Full-time employment contract with statutory minimum checks.",
		Parameters: []model.ContractParameterSpec{
			{ID: "employerName", Name: "Employer", Type: model.ParameterText, Required: true, Description: "Legal name of the employer"},
			{ID: "employerAddress", Name: "Employer address", Type: model.ParameterText, Required: true, Description: "Registered address of the employer"},
			{ID: "employeeName", Name: "Employee", Type: model.ParameterText, Required: true, Description: "Full name of the employee"},
			{ID: "position", Name: "Position", Type: model.ParameterText, Required: true, Description: "Job title"},
			{ID: "startDate", Name: "Start date", Type: model.ParameterDate, Required: true, Description: "First day of employment (ISO date)"},
			{ID: "annualSalary", Name: "Annual salary", Type: model.ParameterNumber, Required: true, Description: "Gross annual salary"},
			{ID: "weeklyHours", Name: "Weekly hours", Type: model.ParameterNumber, Required: false, Description: "Contracted hours per week", DefaultValue: 40},
			{ID: "vacationDays", Name: "Vacation days", Type: model.ParameterNumber, Required: false, Description: "Paid vacation days per year", DefaultValue: 25},
			{ID: "probationMonths", Name: "Probation (months)", Type: model.ParameterNumber, Required: false, Description: "Probation period length", DefaultValue: 6},
		},
	},
	{
		ID:          "tos",
		Name:        "Terms of Service",
		Description: "Terms of service for an online product or service.",
		Parameters: []model.ContractParameterSpec{
			{ID: "companyName", Name: "Company", Type: model.ParameterText, Required: true, Description: "Legal name of the operating company"},
			{ID: "companyAddress", Name: "Company address", Type: model.ParameterText, Required: true, Description: "Registered address"},
			{ID: "serviceName", Name: "Service name", Type: model.ParameterText, Required: true, Description: "Name of the product or service"},
			{ID: "serviceDescription", Name: "Service description", Type: model.ParameterText, Required: true, Description: "What the service does"},
			{ID: "audience", Name: "Audience", Type: model.ParameterSelect, Required: false, Description: "Primary customer group", Options: []string{"consumers", "businesses", "both"}, DefaultValue: "both"},
			{ID: "effectiveDate", Name: "Effective date", Type: model.ParameterDate, Required: false, Description: "Date the terms take effect"},
		},
	},
}
