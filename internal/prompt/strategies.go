package prompt

import (
	"fmt"

	"legal-docgen/internal/domain/model"
)

// Knowledge-store identifiers. Each contract type grounds against its own
// template corpus plus the shared statute corpus.
const (
	statuteStore         = "corpus-statutes-general"
	ndaTemplateStore     = "corpus-templates-nda"
	employmentTplStore   = "corpus-templates-employment"
	tosTemplateStore     = "corpus-templates-tos"
	defaultVacationDays  = 25
	defaultProbationMons = 6
	defaultWeeklyHours   = 40
)

// strategy bundles everything that differs per contract type. Selected once
// by type id; nothing downstream branches on the type again.
type strategy struct {
	templateStore      string
	systemInstructions string
	buildPrompt        func(params map[string]any) ([]string, error)
	footerFields       func(params map[string]any) model.FooterFields
}

var strategies = map[string]strategy{
	"nda": {
		templateStore:      ndaTemplateStore,
		systemInstructions: ndaSystem,
		buildPrompt:        buildNDAPrompt,
		footerFields: func(p map[string]any) model.FooterFields {
			return model.FooterFields{SignerName: asString(p["disclosingParty"])}
		},
	},
	"employment": {
		templateStore:      employmentTplStore,
		systemInstructions: employmentSystem,
		buildPrompt:        buildEmploymentPrompt,
		footerFields: func(p map[string]any) model.FooterFields {
			return model.FooterFields{
				SignerName:    asString(p["employerName"]),
				SignerAddress: asString(p["employerAddress"]),
			}
		},
	},
	"tos": {
		templateStore:      tosTemplateStore,
		systemInstructions: tosSystem,
		buildPrompt:        buildTOSPrompt,
		footerFields: func(p map[string]any) model.FooterFields {
			return model.FooterFields{
				SignerName:    asString(p["companyName"]),
				SignerAddress: asString(p["companyAddress"]),
			}
		},
	},
}

const ndaSystem = `You are a legal drafting assistant specialized in confidentiality agreements.
Ground every clause in the supplied template corpus and keep definitions of confidential information, permitted use and return of materials consistent with the template. Do not weaken the receiving party's obligations.`

const employmentSystem = `You are a legal drafting assistant specialized in employment contracts.
Ground every clause in the supplied template corpus. Check each clause against the statutory corpus: minimum vacation entitlement, maximum probation length, notice periods and working-time limits must meet or exceed the statutory floor. If a requested value falls below a statutory minimum, use the statutory minimum instead and keep the clause wording from the template.`

const tosSystem = `You are a legal drafting assistant specialized in consumer-facing terms of service.
Ground every clause in the supplied template corpus. Keep liability, termination and dispute-resolution clauses aligned with the template; do not introduce jurisdiction-specific clauses absent from it.`

func buildNDAPrompt(p map[string]any) ([]string, error) {
	lines := []string{
		"Disclosing party: " + asString(p["disclosingParty"]),
		"Receiving party: " + asString(p["receivingParty"]),
		"Permitted purpose: " + asString(p["purpose"]),
	}
	if d, ok := asNumber(p["duration"]); ok {
		lines = append(lines, fmt.Sprintf("Confidentiality term: %d years", int(d)))
	}
	if asBool(p["mutualNDA"]) {
		lines = append(lines, "Form: mutual (both parties disclose)")
	} else {
		lines = append(lines, "Form: unilateral (only the disclosing party discloses)")
	}
	if iso := asString(p["effectiveDate"]); iso != "" {
		d, err := formatDate(iso)
		if err != nil {
			return nil, err
		}
		lines = append(lines, "Effective date: "+d)
	}
	return lines, nil
}

func buildEmploymentPrompt(p map[string]any) ([]string, error) {
	start, err := formatDate(asString(p["startDate"]))
	if err != nil {
		return nil, err
	}
	annual, _ := asNumber(p["annualSalary"])
	lines := []string{
		"Employer: " + asString(p["employerName"]) + ", " + asString(p["employerAddress"]),
		"Employee: " + asString(p["employeeName"]),
		"Position: " + asString(p["position"]),
		"Start date: " + start,
		fmt.Sprintf("Annual gross salary: %d", int(annual)),
		fmt.Sprintf("Monthly gross salary: %d", monthlyFromAnnual(annual)),
		fmt.Sprintf("Weekly working hours: %d", numberOrDefault(p["weeklyHours"], defaultWeeklyHours)),
		fmt.Sprintf("Paid vacation days per year: %d", numberOrDefault(p["vacationDays"], defaultVacationDays)),
		fmt.Sprintf("Probation period: %d months", numberOrDefault(p["probationMonths"], defaultProbationMons)),
	}
	return lines, nil
}

func buildTOSPrompt(p map[string]any) ([]string, error) {
	lines := []string{
		"Operating company: " + asString(p["companyName"]) + ", " + asString(p["companyAddress"]),
		"Service: " + asString(p["serviceName"]),
		"Service description: " + asString(p["serviceDescription"]),
		"Audience: " + stringOrDefault(p["audience"], "both"),
	}
	if iso := asString(p["effectiveDate"]); iso != "" {
		d, err := formatDate(iso)
		if err != nil {
			return nil, err
		}
		lines = append(lines, "Effective date: "+d)
	}
	return lines, nil
}
